// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package gate decides whether a client is in voting or results mode.

A client has voted today exactly when its persisted flag equals today's key:

	voted := gate.HasVotedToday(stored, daykey.Today(time.Now()))

Stale flags from earlier days read as "not voted"; nothing is ever cleared.
Gate wraps a store.FlagStore for the read and the single write that follows
a successful submission.
*/
package gate
