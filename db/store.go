// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/lunch-pick/auth"
	"github.com/danielhkuo/lunch-pick/daykey"
	"github.com/danielhkuo/lunch-pick/models"
	"github.com/danielhkuo/lunch-pick/store"
)

// Store implements every store contract on top of a SQL database.
// The same statements run on PostgreSQL (lib/pq) and SQLite (modernc).
type Store struct {
	db *sql.DB
}

var (
	_ store.CandidateSource = (*Store)(nil)
	_ store.Ledger          = (*Store)(nil)
	_ store.FlagStore       = (*Store)(nil)
)

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// AddCandidate inserts a candidate at the end of the list and returns its id.
func (s *Store) AddCandidate(ctx context.Context, c models.Candidate) (string, error) {
	if c.Name == "" {
		return "", errors.New("candidate name is required")
	}

	id := c.ID
	if id == "" {
		var err error
		id, err = auth.GenerateRecordID()
		if err != nil {
			return "", err
		}
	}

	// position is MAX+1; concurrent postgres writers can race for it
	err := retryOnConflict(ctx, func() error {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO candidate (id, position, name, cuisine, link, price, distance)
			VALUES ($1, (SELECT COALESCE(MAX(position), 0) + 1 FROM candidate), $2, $3, $4, $5, $6)
		`, id, c.Name, nullString(c.Cuisine), nullString(c.Link), nullString(c.Price), nullString(c.Distance))
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to insert candidate: %w", err)
	}

	return id, nil
}

// FetchCandidates returns every candidate in insertion order.
func (s *Store) FetchCandidates(ctx context.Context) ([]models.Candidate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, cuisine, link, price, distance
		FROM candidate
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: query candidates: %v", store.ErrFetch, err)
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		var cuisine, link, price, distance sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &cuisine, &link, &price, &distance); err != nil {
			return nil, fmt.Errorf("%w: scan candidate: %v", store.ErrFetch, err)
		}
		c.Cuisine = cuisine.String
		if c.Cuisine == "" {
			c.Cuisine = models.UnknownCuisine
		}
		c.Link = link.String
		c.Price = price.String
		c.Distance = distance.String
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read candidates: %v", store.ErrFetch, err)
	}

	return candidates, nil
}

// FetchLedger returns every vote event across all days in write order.
func (s *Store) FetchLedger(ctx context.Context) ([]models.VoteEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, candidate_id, voting_day, submission_id
		FROM vote_event
		ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: query ledger: %v", store.ErrFetch, err)
	}
	defer rows.Close()

	events := []models.VoteEvent{}
	for rows.Next() {
		var e models.VoteEvent
		var day string
		var submissionID sql.NullString
		if err := rows.Scan(&e.ID, &e.CandidateID, &day, &submissionID); err != nil {
			return nil, fmt.Errorf("%w: scan vote event: %v", store.ErrFetch, err)
		}
		e.VotingDay = daykey.Key(day)
		e.SubmissionID = submissionID.String
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read ledger: %v", store.ErrFetch, err)
	}

	return events, nil
}

// AppendLedger writes one batch in a single transaction.
func (s *Store) AppendLedger(ctx context.Context, batch []models.VoteEvent) error {
	if len(batch) > store.MaxBatchSize {
		return fmt.Errorf("%w: %d events", store.ErrBatchTooLarge, len(batch))
	}
	if len(batch) == 0 {
		return nil
	}

	// a concurrent writer that took the same seq aborts this attempt
	return retryOnConflict(ctx, func() error {
		return s.appendBatch(ctx, batch)
	})
}

func (s *Store) appendBatch(ctx context.Context, batch []models.VoteEvent) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	err = tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) FROM vote_event`).Scan(&seq)
	if err != nil {
		return fmt.Errorf("failed to read ledger position: %w", err)
	}

	now := time.Now().UTC()
	for _, e := range batch {
		id, err := auth.GenerateRecordID()
		if err != nil {
			return err
		}
		seq++
		_, err = tx.ExecContext(ctx, `
			INSERT INTO vote_event (id, seq, candidate_id, voting_day, submission_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, id, seq, e.CandidateID, string(e.VotingDay), nullString(e.SubmissionID), now)
		if err != nil {
			return fmt.Errorf("failed to insert vote event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit vote batch: %w", err)
	}

	return nil
}

func (s *Store) ReadFlag(ctx context.Context, clientID string) (string, error) {
	var day string
	err := s.db.QueryRowContext(ctx, `
		SELECT voting_day FROM voted_flag WHERE client_id = $1
	`, clientID).Scan(&day)

	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query voted flag: %w", err)
	}

	return day, nil
}

func (s *Store) WriteFlag(ctx context.Context, clientID, day string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO voted_flag (client_id, voting_day, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (client_id) DO UPDATE
		SET voting_day = excluded.voting_day, updated_at = excluded.updated_at
	`, clientID, day, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to upsert voted flag: %w", err)
	}

	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
