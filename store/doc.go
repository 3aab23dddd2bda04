// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store defines the contracts of the external collaborators the voting
core depends on.

# Collaborators

  - CandidateSource: read-only list of every candidate
  - LedgerSource: read-only list of every vote event, all days
  - LedgerWriter: append one batch of at most MaxBatchSize events atomically
  - FlagStore: one string slot per client holding the last voted day

Implementations live in package airtable (remote REST table store) and
package db (SQL tables via lib/pq or modernc sqlite). The core never sees
credentials or transport details.

# Errors

Read failures wrap ErrFetch so callers can tell a failed load apart from
other errors:

	if errors.Is(err, store.ErrFetch) {
		// show retry affordance
	}
*/
package store
