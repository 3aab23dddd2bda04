// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/danielhkuo/lunch-pick/models"
	"github.com/danielhkuo/lunch-pick/store"
)

var ErrInjected = errors.New("injected failure")

// MemoryStore is an in-memory implementation of every store contract with
// switches to simulate collaborator failures.
type MemoryStore struct {
	mu         sync.Mutex
	candidates []models.Candidate
	ledger     []models.VoteEvent
	flags      map[string]string

	FailCandidates bool
	FailLedger     bool
	FailFlagRead   bool
	FailFlagWrite  bool
	// FailAppendOn fails the n-th AppendLedger call (1-indexed, 0 = never)
	FailAppendOn int
	// BeforeAppend runs before each append, outside the lock
	BeforeAppend func()

	appendCalls int
}

var (
	_ store.CandidateSource = (*MemoryStore)(nil)
	_ store.Ledger          = (*MemoryStore)(nil)
	_ store.FlagStore       = (*MemoryStore)(nil)
)

func NewMemoryStore(candidates ...models.Candidate) *MemoryStore {
	return &MemoryStore{
		candidates: candidates,
		flags:      make(map[string]string),
	}
}

func (m *MemoryStore) FetchCandidates(ctx context.Context) ([]models.Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailCandidates {
		return nil, fmt.Errorf("%w: %v", store.ErrFetch, ErrInjected)
	}
	return append([]models.Candidate(nil), m.candidates...), nil
}

func (m *MemoryStore) FetchLedger(ctx context.Context) ([]models.VoteEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailLedger {
		return nil, fmt.Errorf("%w: %v", store.ErrFetch, ErrInjected)
	}
	return append([]models.VoteEvent(nil), m.ledger...), nil
}

func (m *MemoryStore) AppendLedger(ctx context.Context, batch []models.VoteEvent) error {
	if m.BeforeAppend != nil {
		m.BeforeAppend()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.appendCalls++
	if m.FailAppendOn != 0 && m.appendCalls == m.FailAppendOn {
		return ErrInjected
	}
	if len(batch) > store.MaxBatchSize {
		return store.ErrBatchTooLarge
	}
	for _, e := range batch {
		e.ID = fmt.Sprintf("rec%06d", len(m.ledger)+1)
		m.ledger = append(m.ledger, e)
	}
	return nil
}

func (m *MemoryStore) ReadFlag(ctx context.Context, clientID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailFlagRead {
		return "", ErrInjected
	}
	return m.flags[clientID], nil
}

func (m *MemoryStore) WriteFlag(ctx context.Context, clientID, day string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailFlagWrite {
		return ErrInjected
	}
	m.flags[clientID] = day
	return nil
}

// Ledger returns a copy of every committed vote event
func (m *MemoryStore) Ledger() []models.VoteEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.VoteEvent(nil), m.ledger...)
}

// SeedVotes appends votes directly, bypassing failure injection
func (m *MemoryStore) SeedVotes(events ...models.VoteEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ledger = append(m.ledger, events...)
}

// AppendCalls returns the number of AppendLedger calls so far
func (m *MemoryStore) AppendCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.appendCalls
}

// Lunch returns a small fixed candidate list
func Lunch() []models.Candidate {
	return []models.Candidate{
		{ID: "recA", Name: "Pizzeria Roma", Cuisine: "Italienisch", Price: "€€"},
		{ID: "recB", Name: "Sushi Bar", Cuisine: "Japanisch", Distance: "5 min"},
		{ID: "recC", Name: "Döner Eck", Cuisine: "Türkisch"},
	}
}
