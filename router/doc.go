// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Lunch Pick API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(registry, sqlStore, cfg)

The candidate route is only registered when a CandidateWriter is given.

# Endpoints

Health:

	GET /health

Clients:

	POST /clients - Issue an anonymous client id

Candidates (requires X-Admin-Key):

	POST /candidates - Append a venue to the ballot

Voting (requires X-Client-ID):

	GET  /ballot                           - Ballot view (blind until voted)
	POST /ballot/candidates/{id}/increment - Add one vote
	POST /ballot/candidates/{id}/decrement - Remove one vote
	POST /ballot/submit                    - Cast allocated votes

Results (requires X-Client-ID):

	GET /results - Today's rankings and podium (403 until voted)
*/
package router
