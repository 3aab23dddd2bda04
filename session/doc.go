// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session runs the per-client voting state machine.

# Modes

A session is in voting mode until the client's voted flag matches today,
then in results mode until the day advances:

	s := session.New(deps, clientID)
	if err := s.Load(ctx); err != nil {
		// store.ErrFetch: show retry, block voting
	}
	s.Increment("rec1")
	results, err := s.Submit(ctx)

In voting mode View lists candidates in the candidate source's order with
tallies withheld, so neither the counts nor the ranking leak before the
client votes. In results mode View sorts by tally and marks the leaders.

# Submission

Submit rejects an empty allocation, refuses to run while another
submission of the same session is in flight, and otherwise:

 1. writes the allocation through submit.Pipeline
 2. persists the voted flag for today
 3. clears the allocation
 4. reloads candidates and ledger

A failed batch leaves the allocation in place so the client can retry.
Retrying after a partial failure counts the committed votes again.

If the flag cannot be persisted the session still switches to results
mode in memory, since the votes are already in the ledger.

# Registry

Registry keeps sessions in a go-cache keyed by client id and drops them
after an idle TTL.
*/
package session
