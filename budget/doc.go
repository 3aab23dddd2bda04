// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package budget tracks how a client spreads a fixed number of daily votes
across candidates.

	b := budget.New(3)
	b.Increment("rec1")
	b.Increment("rec1")
	b.Increment("rec2")
	b.Remaining() // 0

Over-budget increments and decrements of unallocated candidates are silent
no-ops. The allocation never holds a zero count and its total never exceeds
the budget. A Budget is not safe for concurrent use; callers serialize
access (see package session).
*/
package budget
