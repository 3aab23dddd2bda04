// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/lib/pq"
)

// conflictRetries bounds how often an insert that lost an ordering race is
// replayed.
const conflictRetries = 5

// orderingConstraints are the unique constraints on MAX+1 ordering columns.
// Violating one means another writer committed the same slot first.
var orderingConstraints = map[string]bool{
	"candidate_position_unique": true,
	"vote_event_seq_unique":     true,
}

// isOrderingConflict reports a postgres unique_violation (23505) on an
// ordering column. sqlite serializes writers and never reports one.
func isOrderingConflict(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "23505" && orderingConstraints[pqErr.Constraint]
}

// retryOnConflict runs fn until it succeeds, fails for another reason, or the
// retries run out.
func retryOnConflict(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 1; attempt <= conflictRetries; attempt++ {
		err = fn()
		if !isOrderingConflict(err) || ctx.Err() != nil {
			return err
		}
		slog.Warn("ordering conflict, retrying insert", "attempt", attempt, "error", err)
	}
	return err
}
