// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain and response types for the API.

# Domain Types

  - Candidate: lunch venue with a derived per-day tally
  - VoteEvent: one vote unit in the ledger (candidate id + voting day)
  - Allocation: a session's pending votes, candidate id -> count

# Response Types

  - RegisterClientResponse: client_id
  - Ballot: the blind voting view (tallies withheld until voted)
  - Results: rankings and podium for the current voting day
  - ErrorResponse: error, message

# Constants

	DefaultMaxVotes = 3

	ModeVoting  = "voting"
	ModeResults = "results"
*/
package models
