package ledger

import (
	"sync"

	"github.com/reportpipe/reportpipe/internal/model"
)

// Ledger is an append-only, time-ordered log of pipeline runs.
type Ledger interface {
	// Append adds an entry to the tail of the ledger.
	Append(entry model.HistoryEntry)

	// Snapshot returns a copy of all entries in append order. The caller
	// owns the returned slice; mutating it does not affect the ledger.
	Snapshot() []model.HistoryEntry

	// Len returns the number of recorded entries.
	Len() int
}

// Memory is the in-process Ledger implementation backing a single service
// instance. It is safe for concurrent use; appends from concurrent pipeline
// runs are serialized by a mutex and keep strict insertion order.
type Memory struct {
	mu      sync.RWMutex
	entries []model.HistoryEntry
}

// NewMemory creates an empty in-memory ledger.
func NewMemory() *Memory {
	return &Memory{
		entries: make([]model.HistoryEntry, 0),
	}
}

// Append adds an entry to the tail of the ledger.
func (l *Memory) Append(entry model.HistoryEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, entry)
}

// Snapshot returns a copy of all entries in append order. Entries are value
// types carrying immutable Reports, so the copy is fully isolated from the
// ledger.
func (l *Memory) Snapshot() []model.HistoryEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]model.HistoryEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of recorded entries.
func (l *Memory) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.entries)
}
