// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package submit writes a client's allocation to the vote ledger.

# Pipeline

Submit runs three steps:

 1. Flatten: {A:2, C:1} becomes three VoteEvents (A, A, C), all tagged with
    the voting day and one submission id
 2. Partition: events are split into batches of store.MaxBatchSize
 3. Write: batches are appended one after another, never concurrently

If batch k fails, batches 1..k-1 are already committed and batches after k
are never sent. The failure is reported as a single *BatchError; nothing is
rolled back. Retrying the same allocation after a partial failure writes the
committed votes a second time.

An empty allocation is rejected with ErrEmptyAllocation before any write.

# Submission IDs

Every event of one Submit call carries the same random submission id. It is
recorded for reconciliation only; the ledger does not deduplicate on it.
*/
package submit
