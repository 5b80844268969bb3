// Package sqlite implements the SQLite item repository backend. A Backend
// owns one database file in the data directory; Open hands out a typed
// Repository per item kind on top of it.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/stockroom/pkg/logger"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// DBFileName is the database file created inside the data directory.
const DBFileName = "stockroom.db"

// Backend manages the SQLite connection shared by all repositories.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	log      *zap.SugaredLogger
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend(log *zap.Logger) *Backend {
	return &Backend{
		log: logger.Component(log, "sqlite"),
	}
}

// Attach opens (or creates) the database in config.DataDir and applies the
// schema. Existing rows are kept across attaches.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, DBFileName)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", dbPath, err)
	}
	// One connection keeps read-modify-write transactions serialized.
	db.SetMaxOpenConns(1)

	for _, ddl := range append(slices.Clone(schemaDDL), indexDDL...) {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("applying schema: %w", err)
		}
	}

	b.db = db
	b.config = config
	b.attached = true
	b.log.Debugw("attached", "path", dbPath)
	return nil
}

// Detach closes the database. Detach is idempotent. After Detach, repository
// operations return ErrDetached.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if err := b.db.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	b.db = nil
	b.attached = false
	b.log.Debugw("detached")
	return nil
}

// read runs fn under the backend read lock.
func (b *Backend) read(fn func(db *sql.DB) error) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.ErrDetached
	}
	return fn(b.db)
}

// writeTx runs fn inside a transaction under the backend write lock.
// The transaction commits only when fn returns nil.
func (b *Backend) writeTx(fn func(tx *sql.Tx) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrDetached
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
