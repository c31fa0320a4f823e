// Package database provides SQLite-based storage for report history.
//
// This package implements the HistoryDB, which archives one row per
// delivery attempt: the report identity and rendered content, the channel
// it went through, and the outcome. The in-memory ledger remains the
// source of truth for a running process; the archive exists so history
// survives restarts and can be inspected with ordinary SQL tooling.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
package database
