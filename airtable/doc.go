// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package airtable is the remote table store collaborator.

# Tables

Two tables in one base:

  - candidates (default "Lokale"): Name, Essen, Link, Preis,
    "Time to Travel (1-way)"
  - vote ledger (default "Stimmen-Log"): "Lokal ID", Datum, optional Submission

# Client

Credentials and table names are injected at construction:

	client := airtable.New(airtable.Config{
		URL:             "https://api.airtable.com/v0",
		APIKey:          os.Getenv("AIRTABLE_API_KEY"),
		BaseID:          "app...",
		CandidatesTable: "Lokale",
		LedgerTable:     "Stimmen-Log",
		HTTPClient:      &http.Client{Timeout: 15 * time.Second},
	})

Reads follow the offset cursor until every page is consumed and wrap
failures in store.ErrFetch. AppendLedger posts at most store.MaxBatchSize
records in one request; the API commits or rejects a request as a whole.
*/
package airtable
