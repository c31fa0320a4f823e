// Package ledger keeps the in-process history of pipeline runs.
//
// The ledger is strictly append-only: entries are added to the tail in
// completion order and are never updated or removed. Readers get snapshot
// copies, so consumers can iterate or serialize history without holding any
// lock and without observing later appends.
//
// Design decision: The Ledger interface exists so the orchestrator can be
// tested against a recording fake and so alternative backends can be added
// without touching the service. Memory is the canonical implementation; the
// SQLite archive is deliberately NOT a Ledger implementation because it has
// different durability and failure semantics (best-effort mirror versus
// source of truth for the running process).
package ledger
