// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package submit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/danielhkuo/lunch-pick/daykey"
	"github.com/danielhkuo/lunch-pick/models"
	"github.com/danielhkuo/lunch-pick/store"
)

var ErrEmptyAllocation = errors.New("allocation is empty")

// BatchError reports the batch that stopped a submission. Batches before it
// are committed.
type BatchError struct {
	Batch     int // 1-indexed
	Batches   int
	Committed int // events durably written before the failure
	Err       error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("batch %d of %d failed after %d committed votes: %v", e.Batch, e.Batches, e.Committed, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}

// Receipt describes a fully committed submission.
type Receipt struct {
	SubmissionID string
	Events       int
	Batches      int
}

// Flatten expands an allocation into one event per vote unit. Candidates are
// emitted in id order so the result is deterministic.
func Flatten(alloc models.Allocation, day daykey.Key, submissionID string) []models.VoteEvent {
	ids := make([]string, 0, len(alloc))
	for id := range alloc {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	events := make([]models.VoteEvent, 0, alloc.Total())
	for _, id := range ids {
		for i := 0; i < alloc[id]; i++ {
			events = append(events, models.VoteEvent{
				CandidateID:  id,
				VotingDay:    day,
				SubmissionID: submissionID,
			})
		}
	}
	return events
}

// Partition splits events into consecutive batches of at most size events.
func Partition(events []models.VoteEvent, size int) [][]models.VoteEvent {
	if size <= 0 {
		size = store.MaxBatchSize
	}

	batches := make([][]models.VoteEvent, 0, (len(events)+size-1)/size)
	for start := 0; start < len(events); start += size {
		end := min(start+size, len(events))
		batches = append(batches, events[start:end])
	}
	return batches
}

type Pipeline struct {
	ledger    store.LedgerWriter
	batchSize int
}

func New(ledger store.LedgerWriter) *Pipeline {
	return &Pipeline{ledger: ledger, batchSize: store.MaxBatchSize}
}

// Submit writes alloc to the ledger for day.
func (p *Pipeline) Submit(ctx context.Context, alloc models.Allocation, day daykey.Key) (Receipt, error) {
	if alloc.Total() == 0 {
		return Receipt{}, ErrEmptyAllocation
	}

	submissionID := uuid.NewString()
	events := Flatten(alloc, day, submissionID)
	batches := Partition(events, p.batchSize)

	committed := 0
	for i, batch := range batches {
		err := ctx.Err()
		if err == nil {
			err = p.ledger.AppendLedger(ctx, batch)
		}
		if err != nil {
			slog.Error("vote batch failed",
				"submission_id", submissionID,
				"batch", i+1,
				"batches", len(batches),
				"committed", committed,
				"error", err,
			)
			return Receipt{}, &BatchError{
				Batch:     i + 1,
				Batches:   len(batches),
				Committed: committed,
				Err:       err,
			}
		}
		committed += len(batch)
	}

	return Receipt{
		SubmissionID: submissionID,
		Events:       len(events),
		Batches:      len(batches),
	}, nil
}
