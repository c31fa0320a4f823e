// Package service provides the report pipeline orchestrator.
//
// The Service is the single entry point callers use: it owns the three
// capability registries (generators, formatters, delivery strategies), the
// history ledger, and the optional SQLite archive, and drives one pipeline
// Builder per request.
//
// Design decision: The orchestrator resolves all three capabilities before
// any pipeline stage runs. A typo in the channel tag should fail the request
// immediately, not after a report was generated and formatted. This also
// keeps registry misses cleanly separated from stage failures in the error
// taxonomy.
//
// History policy lives here rather than in the pipeline: by default only
// successful deliveries are recorded, matching the invariant that the ledger
// reflects completed work. WithRecordFailedDeliveries(true) opts into
// recording failed attempts with a failed outcome, which some operators
// prefer for auditing. Generation and format failures never reach the
// ledger under either policy; there is no report to record.
package service
