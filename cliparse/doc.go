// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

LoadEnvFile reads an optional .env file, then ParseFlags returns a Config:

	if err := cliparse.LoadEnvFile(".env"); err != nil {
		log.Fatal(err)
	}
	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags and Environment Variables

	-p                 PORT              Server port (default: 3318)
	-t                 DATABASE_TYPE     sqlite or postgres (default: sqlite)
	-d                 DATABASE_URL      Connection string (default: file:lunch-pick.db)
	-ledger            LEDGER_BACKEND    sql or airtable (default: sql)
	-airtable-url      AIRTABLE_URL      API base URL
	-airtable-base     AIRTABLE_BASE_ID  Base holding both tables
	-airtable-key      AIRTABLE_API_KEY  Personal access token
	-candidates-table  CANDIDATES_TABLE  (default: Lokale)
	-ledger-table      LEDGER_TABLE      (default: Stimmen-Log)
	-max-votes         MAX_VOTES         Votes per client per day (default: 3)
	-session-ttl       SESSION_TTL       Idle session lifetime (default: 12h)
	-http-timeout      HTTP_TIMEOUT      Ledger HTTP timeout (default: 15s)

CLI flags take precedence over environment variables, which take precedence
over the .env file.

# Validation

ParseFlags returns an error if:

  - DATABASE_URL is missing for postgres
  - AIRTABLE_API_KEY or AIRTABLE_BASE_ID is missing for the airtable ledger
  - a numeric or duration value does not parse
  - MAX_VOTES is below 1

The database always holds the per-client voted flags; with the sql ledger it
also holds candidates and votes.
*/
package cliparse
