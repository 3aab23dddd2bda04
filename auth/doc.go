// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides identifier generation and validation.

# Client IDs

Voters are anonymous. A client asks for an id once and sends it with every
ballot request in the X-Client-ID header:

	id := auth.GenerateClientID()
	canonical, err := auth.ValidateClientID(header)

Client ids are random UUIDs. They separate sessions and key the persisted
"voted today" flag; they do not prove identity.

# Record IDs

Ids for candidate and ledger rows in the SQL store mimic remote table
record ids:

	id, err := auth.GenerateRecordID() // "rec" + 14 hex characters

# ID Generation

Random hex IDs:

	id, err := auth.GenerateID(16)  // 32 hex characters
*/
package auth
