// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Candidates (lunch venues)
CREATE TABLE IF NOT EXISTS candidate (
    id TEXT PRIMARY KEY,
    position INTEGER NOT NULL CONSTRAINT candidate_position_unique UNIQUE,
    name TEXT NOT NULL,
    cuisine TEXT,
    link TEXT,
    price TEXT,
    distance TEXT
);

-- Vote ledger, one row per vote unit. Rows are never updated or deleted.
CREATE TABLE IF NOT EXISTS vote_event (
    id TEXT PRIMARY KEY,
    seq INTEGER NOT NULL CONSTRAINT vote_event_seq_unique UNIQUE,
    candidate_id TEXT NOT NULL,
    voting_day TEXT NOT NULL,
    submission_id TEXT,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_vote_event_voting_day ON vote_event(voting_day);

-- Last voting day per client
CREATE TABLE IF NOT EXISTS voted_flag (
    client_id TEXT PRIMARY KEY,
    voting_day TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
`
