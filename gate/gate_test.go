// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package gate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/lunch-pick/store"
)

type mapFlags struct {
	values map[string]string
	err    error
}

func (m *mapFlags) ReadFlag(ctx context.Context, clientID string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.values[clientID], nil
}

func (m *mapFlags) WriteFlag(ctx context.Context, clientID, day string) error {
	if m.err != nil {
		return m.err
	}
	m.values[clientID] = day
	return nil
}

func TestHasVotedToday(t *testing.T) {
	require.True(t, HasVotedToday("2024-05-01", "2024-05-01"))
	require.False(t, HasVotedToday("2024-04-30", "2024-05-01"))
	require.False(t, HasVotedToday("", "2024-05-01"))
}

func TestGate_MarkThenCheck(t *testing.T) {
	ctx := context.Background()
	g := New(&mapFlags{values: map[string]string{}})

	voted, err := g.Check(ctx, "client-1", "2024-05-01")
	require.NoError(t, err)
	require.False(t, voted)

	require.NoError(t, g.MarkVoted(ctx, "client-1", "2024-05-01"))

	voted, err = g.Check(ctx, "client-1", "2024-05-01")
	require.NoError(t, err)
	require.True(t, voted)

	// other clients are unaffected
	voted, err = g.Check(ctx, "client-2", "2024-05-01")
	require.NoError(t, err)
	require.False(t, voted)

	// next day reads as not voted without any write
	voted, err = g.Check(ctx, "client-1", "2024-05-02")
	require.NoError(t, err)
	require.False(t, voted)
}

func TestGate_MarkVotedOverwrites(t *testing.T) {
	ctx := context.Background()
	flags := &mapFlags{values: map[string]string{"client-1": "2024-04-30"}}
	g := New(flags)

	require.NoError(t, g.MarkVoted(ctx, "client-1", "2024-05-01"))
	require.Equal(t, "2024-05-01", flags.values["client-1"])
}

func TestGate_PropagatesStoreErrors(t *testing.T) {
	boom := errors.New("disk on fire")
	g := New(&mapFlags{err: boom})

	_, err := g.Check(context.Background(), "client-1", "2024-05-01")
	require.ErrorIs(t, err, boom)
	// a failed read is a load failure like any other fetch
	require.ErrorIs(t, err, store.ErrFetch)

	err = g.MarkVoted(context.Background(), "client-1", "2024-05-01")
	require.ErrorIs(t, err, boom)
}
