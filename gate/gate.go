// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package gate

import (
	"context"
	"fmt"

	"github.com/danielhkuo/lunch-pick/daykey"
	"github.com/danielhkuo/lunch-pick/store"
)

// HasVotedToday reports whether the persisted value marks today as voted.
func HasVotedToday(persisted string, today daykey.Key) bool {
	return persisted != "" && persisted == string(today)
}

type Gate struct {
	flags store.FlagStore
}

func New(flags store.FlagStore) *Gate {
	return &Gate{flags: flags}
}

// Check reads the client's flag and compares it with today.
func (g *Gate) Check(ctx context.Context, clientID string, today daykey.Key) (bool, error) {
	persisted, err := g.flags.ReadFlag(ctx, clientID)
	if err != nil {
		return false, fmt.Errorf("%w: read voted flag: %w", store.ErrFetch, err)
	}
	return HasVotedToday(persisted, today), nil
}

// MarkVoted overwrites the client's flag with today.
func (g *Gate) MarkVoted(ctx context.Context, clientID string, today daykey.Key) error {
	if err := g.flags.WriteFlag(ctx, clientID, string(today)); err != nil {
		return fmt.Errorf("failed to write voted flag: %w", err)
	}
	return nil
}
