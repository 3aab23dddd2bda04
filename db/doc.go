// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation and the SQL-backed store.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - candidate: lunch venues, ordered by position
  - vote_event: append-only vote ledger, one row per vote unit, ordered by seq
  - voted_flag: last voting day per client id

# Store

Store implements store.CandidateSource, store.Ledger and store.FlagStore:

	s := db.New(conn)
	id, err := s.AddCandidate(ctx, models.Candidate{Name: "Pizzeria Roma"})

AppendLedger writes one batch inside a transaction, so a batch is either
fully committed or not at all. The statements use $n placeholders and
ON CONFLICT upserts, which both PostgreSQL and SQLite accept.
*/
package db
