// Package badger implements the BadgerDB item repository backend. Every item
// kind lives under its own key prefix in one database.
package badger

import (
	"fmt"
	"os"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/stockroom/pkg/logger"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// Backend wraps a BadgerDB instance shared by all repositories.
type Backend struct {
	writeMu sync.Mutex // serializes writers so badger never reports txn conflicts
	db      *badger.DB
	log     *zap.SugaredLogger
}

// zapLoggerAdapter adapts zap to the badger.Logger interface.
type zapLoggerAdapter struct {
	log *zap.SugaredLogger
}

var _ badger.Logger = (*zapLoggerAdapter)(nil)

func (a *zapLoggerAdapter) Errorf(msg string, items ...any)   { a.log.Errorf(msg, items...) }
func (a *zapLoggerAdapter) Warningf(msg string, items ...any) { a.log.Warnf(msg, items...) }
func (a *zapLoggerAdapter) Infof(msg string, items ...any)    { a.log.Debugf(msg, items...) }
func (a *zapLoggerAdapter) Debugf(msg string, items ...any)   { a.log.Debugf(msg, items...) }

// OpenBackend opens a BadgerDB database in dir, creating the directory if
// needed. With inMemory set, dir is ignored and nothing touches disk.
func OpenBackend(dir string, inMemory bool, log *zap.Logger) (*Backend, error) {
	sugar := logger.Component(log, "badger")

	var opts badger.Options
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		info, err := os.Stat(dir)
		if os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating %s: %w", dir, err)
			}
		} else if err != nil {
			return nil, err
		} else if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", dir)
		}
		opts = badger.DefaultOptions(dir)
	}
	opts.Logger = &zapLoggerAdapter{log: sugar}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger: %w", err)
	}
	sugar.Debugw("opened", "dir", dir, "in_memory", inMemory)
	return &Backend{db: db, log: sugar}, nil
}

// Close closes the database. Close is idempotent.
func (b *Backend) Close() error {
	if b.db.IsClosed() {
		return nil
	}
	return b.db.Close()
}

// IsClosed reports whether the database has been closed.
func (b *Backend) IsClosed() bool {
	return b.db.IsClosed()
}

// view runs fn in a read-only transaction.
func (b *Backend) view(fn func(txn *badger.Txn) error) error {
	if b.db.IsClosed() {
		return types.ErrDetached
	}
	return b.db.View(fn)
}

// update runs fn in a read-write transaction that commits when fn returns nil.
func (b *Backend) update(fn func(txn *badger.Txn) error) error {
	b.writeMu.Lock()
	defer b.writeMu.Unlock()

	if b.db.IsClosed() {
		return types.ErrDetached
	}
	return b.db.Update(fn)
}
