// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Lunch Pick API server.

Lunch Pick is a daily blind vote on where to eat. Every client spreads a
small budget of votes (3 by default) across the candidate restaurants,
submits once per day, and only then sees the tallies.

# Starting the Server

Configuration comes from a .env file, environment variables or CLI flags:

	go run main.go

Or with PostgreSQL and flags:

	go run main.go -p 3318 -t postgres -d "postgres://..."

# Configuration

Storage:

  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): connection string (default: file:lunch-pick.db)
  - LEDGER_BACKEND (-ledger): sql or airtable (default: sql)

Airtable (required when LEDGER_BACKEND=airtable):

  - AIRTABLE_API_KEY (-airtable-key)
  - AIRTABLE_BASE_ID (-airtable-base)
  - CANDIDATES_TABLE, LEDGER_TABLE: table names (default: Lokale, Stimmen-Log)

Candidates (SQL backend):

  - ADMIN_KEY (-admin-key): key for POST /candidates. Unset rejects every
    request; candidates then have to be inserted directly.

Voting:

  - MAX_VOTES (-max-votes): daily budget per client (default: 3)
  - SESSION_TTL (-session-ttl): idle session lifetime (default: 12h)
  - PORT (-p): Server port (default: 3318)

# Architecture

  - handlers: HTTP request handlers (clients, ballot, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, client id header
  - session: per-client voting state and its TTL registry
  - budget, gate, submit, tally: the voting core
  - store, db, airtable: persistence contracts and backends
  - daykey: voting day keys
  - auth: id generation and validation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
