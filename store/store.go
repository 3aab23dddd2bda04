// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"

	"github.com/danielhkuo/lunch-pick/models"
)

// MaxBatchSize is the largest number of events a single append may carry
const MaxBatchSize = 10

var (
	ErrFetch         = errors.New("fetch failed")
	ErrBatchTooLarge = errors.New("batch exceeds maximum size")
)

type CandidateSource interface {
	FetchCandidates(ctx context.Context) ([]models.Candidate, error)
}

// CandidateWriter appends a candidate to the end of the list and returns
// its id.
type CandidateWriter interface {
	AddCandidate(ctx context.Context, c models.Candidate) (string, error)
}

type LedgerSource interface {
	FetchLedger(ctx context.Context) ([]models.VoteEvent, error)
}

// LedgerWriter commits every event of a batch or none of them.
type LedgerWriter interface {
	AppendLedger(ctx context.Context, batch []models.VoteEvent) error
}

type Ledger interface {
	LedgerSource
	LedgerWriter
}

// FlagStore persists the last voting day on which a client submitted.
// ReadFlag returns "" for a client that never submitted.
type FlagStore interface {
	ReadFlag(ctx context.Context, clientID string) (string, error)
	WriteFlag(ctx context.Context, clientID, day string) error
}
