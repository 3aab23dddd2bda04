// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package budget

import "github.com/danielhkuo/lunch-pick/models"

type Budget struct {
	max        int
	used       int
	allocation models.Allocation
}

// New creates an empty budget of max vote units. A non-positive max falls
// back to models.DefaultMaxVotes.
func New(max int) *Budget {
	if max <= 0 {
		max = models.DefaultMaxVotes
	}
	return &Budget{
		max:        max,
		allocation: make(models.Allocation),
	}
}

// Increment adds one vote for candidateID. Does nothing once the budget is spent.
func (b *Budget) Increment(candidateID string) bool {
	if b.used >= b.max {
		return false
	}
	b.allocation[candidateID]++
	b.used++
	return true
}

// Decrement removes one vote from candidateID, dropping the entry at zero.
// Does nothing if candidateID holds no votes.
func (b *Budget) Decrement(candidateID string) bool {
	n := b.allocation[candidateID]
	if n <= 0 {
		return false
	}
	if n == 1 {
		delete(b.allocation, candidateID)
	} else {
		b.allocation[candidateID] = n - 1
	}
	b.used--
	return true
}

// Reset clears every allocated vote.
func (b *Budget) Reset() {
	b.allocation = make(models.Allocation)
	b.used = 0
}

func (b *Budget) Max() int {
	return b.max
}

func (b *Budget) Used() int {
	return b.used
}

func (b *Budget) Remaining() int {
	return b.max - b.used
}

// Count returns the votes allocated to candidateID.
func (b *Budget) Count(candidateID string) int {
	return b.allocation[candidateID]
}

// Allocation returns a copy of the current allocation.
func (b *Budget) Allocation() models.Allocation {
	out := make(models.Allocation, len(b.allocation))
	for id, n := range b.allocation {
		out[id] = n
	}
	return out
}
