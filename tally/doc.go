// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tally turns the raw vote ledger into per-candidate counts.

# Aggregation

Aggregate recomputes every tally from scratch for one voting day:

	ranked := tally.Aggregate(candidates, ledger, today)

Entries from other days and entries naming unknown candidates are ignored.
The result is sorted by tally, highest first; ties keep the candidate
source's order. Inputs are never modified.

# Leaderboard

Leading reports the candidates sharing the highest non-zero tally.
Podium returns the top places among candidates that received votes, each
labelled with its ordinal ("1st", "2nd", ...).
*/
package tally
