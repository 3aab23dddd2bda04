// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Lunch Pick API.

# Handler Types

  - ClientHandler: issues anonymous client ids
  - BallotHandler: ballot view, vote allocation, submission and results
  - CandidateHandler: appends venues to the SQL candidate list (X-Admin-Key)

BallotHandler is created with the session registry:

	ballotHandler := handlers.NewBallotHandler(registry)

# Voting Flow

	POST /candidates                       → AddCandidate (admin, returns candidate_id)
	POST /clients                          → Register (returns client_id)
	GET  /ballot                           → GetBallot (reloads, tallies hidden)
	POST /ballot/candidates/{id}/increment → Increment
	POST /ballot/candidates/{id}/decrement → Decrement
	POST /ballot/submit                    → Submit (returns results)
	GET  /results                          → GetResults (403 until voted)

Ballot operations require the X-Client-ID header.

# Errors

Session errors map to status codes:

	store.ErrFetch                  → 502 (retry)
	*submit.BatchError              → 502 (retry; committed batches stay)
	session.ErrResultsUnavailable   → 502 (votes are in, reload)
	session.ErrSubmissionInProgress → 409
	session.ErrAlreadyVoted         → 409
	session.ErrUnknownCandidate     → 404
	submit.ErrEmptyAllocation       → 400
	session.ErrResultsSealed        → 403
	session.ErrNotLoaded            → 503

Over-budget increments and decrements below zero are not errors; they
return 200 with the unchanged ballot.
*/
package handlers
