// Package ledger implements an append-only inventory log bound to a JSONL
// file. Entries accumulate in memory; Save writes the whole log and Load
// replaces the in-memory log with the file contents.
package ledger

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/stockroom/internal/jsonl"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// FileName is the default ledger file inside the data directory.
const FileName = "inventory_log.jsonl"

// Ledger is an append-only log of entities of one type.
type Ledger[T types.Entity] struct {
	mu      sync.RWMutex
	path    string
	entries []T
}

// New creates an empty ledger bound to path. Nothing is read until Load.
func New[T types.Entity](path string) *Ledger[T] {
	return &Ledger[T]{path: path}
}

// Path returns the backing file path.
func (l *Ledger[T]) Path() string {
	return l.path
}

// Add appends entry. Entries are never deduplicated.
func (l *Ledger[T]) Add(entry T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
}

// All returns a copy of the log in insertion order.
func (l *Ledger[T]) All() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]T, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *Ledger[T]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Save writes every entry to the backing file, replacing its contents.
func (l *Ledger[T]) Save() error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if err := jsonl.Save(l.path, l.entries); err != nil {
		return fmt.Errorf("saving ledger: %w", err)
	}
	return nil
}

// Load replaces the in-memory log with the backing file. A missing file
// resets the log to empty.
func (l *Ledger[T]) Load() error {
	entries, err := jsonl.Load[T](l.path)
	if err != nil {
		return fmt.Errorf("loading ledger: %w", err)
	}

	l.mu.Lock()
	l.entries = entries
	l.mu.Unlock()
	return nil
}

// Clock returns the current time; tests substitute a fixed clock.
type Clock func() time.Time

// NewEntry builds a LogEntry stamped with clock() and a fresh UUID v7 ref.
// A nil clock uses time.Now.
func NewEntry(id int, name string, quantity int, clock Clock) types.LogEntry {
	if clock == nil {
		clock = time.Now
	}
	return types.LogEntry{
		ID:        id,
		Name:      name,
		Quantity:  quantity,
		DateAdded: clock().UTC(),
		Ref:       newRef(),
	}
}

// newRef generates a UUID v7, falling back to v4 if v7 generation fails.
func newRef() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
