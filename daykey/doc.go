// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package daykey produces the canonical voting day identifier.

A Key is the calendar date of an instant in the instant's own location,
formatted as YYYY-MM-DD:

	today := daykey.Today(time.Now())

Two instants on the same local calendar day produce equal keys. This is the
only mechanism behind the daily reset: votes are partitioned by Key and the
"has voted" flag stores a Key, so a new day simply stops matching.

Ledger rows written by other clients may carry either a bare date or a full
timestamp. Normalize reduces both forms to a Key.
*/
package daykey
