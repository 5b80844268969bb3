package warehouse

import (
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/stockroom/internal/badger"
	"github.com/mesh-intelligence/stockroom/internal/jsonl"
	"github.com/mesh-intelligence/stockroom/internal/memory"
	"github.com/mesh-intelligence/stockroom/internal/sqlite"
	"github.com/mesh-intelligence/stockroom/pkg/logger"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// Snapshot and database locations inside the data directory.
const (
	ElectronicsSnapshot = "electronics.jsonl"
	GroceriesSnapshot   = "groceries.jsonl"
	BadgerDirName       = "badger"
)

// Store holds the two repositories opened for a configured backend.
type Store struct {
	Electronics types.Repository[types.ElectronicItem]
	Groceries   types.Repository[types.GroceryItem]

	close func() error
}

// OpenStore opens both repositories on the backend named by cfg. The memory
// backend restores its contents from JSONL snapshots in cfg.DataDir and
// writes them back on Close; sqlite and badger persist on every write.
func OpenStore(cfg types.Config, log *zap.Logger) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	sugar := logger.Component(log, "store")

	switch cfg.Backend {
	case types.BackendMemory:
		return openMemoryStore(dataDir, sugar)
	case types.BackendSQLite:
		return openSQLiteStore(cfg, log)
	case types.BackendBadger:
		return openBadgerStore(filepath.Join(dataDir, BadgerDirName), log)
	default:
		return nil, types.ErrBackendUnknown
	}
}

// Close releases the backend, flushing snapshots for the memory backend.
// Close is idempotent.
func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	err := s.close()
	s.close = nil
	return err
}

func openMemoryStore(dataDir string, log *zap.SugaredLogger) (*Store, error) {
	electronics := memory.New[types.ElectronicItem]()
	groceries := memory.New[types.GroceryItem]()

	electronicsPath := filepath.Join(dataDir, ElectronicsSnapshot)
	groceriesPath := filepath.Join(dataDir, GroceriesSnapshot)

	if err := LoadSnapshot[types.ElectronicItem](electronics, electronicsPath); err != nil {
		return nil, err
	}
	if err := LoadSnapshot[types.GroceryItem](groceries, groceriesPath); err != nil {
		return nil, err
	}
	log.Debugw("memory store restored", "dir", dataDir)

	return &Store{
		Electronics: electronics,
		Groceries:   groceries,
		close: func() error {
			return errors.Join(
				SaveSnapshot[types.ElectronicItem](electronics, electronicsPath),
				SaveSnapshot[types.GroceryItem](groceries, groceriesPath),
			)
		},
	}, nil
}

func openSQLiteStore(cfg types.Config, log *zap.Logger) (*Store, error) {
	backend := sqlite.NewBackend(log)
	if err := backend.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach sqlite: %w", err)
	}
	electronics, err := sqlite.Open[types.ElectronicItem](backend, types.KindElectronics)
	if err != nil {
		backend.Detach()
		return nil, err
	}
	groceries, err := sqlite.Open[types.GroceryItem](backend, types.KindGroceries)
	if err != nil {
		backend.Detach()
		return nil, err
	}
	return &Store{Electronics: electronics, Groceries: groceries, close: backend.Detach}, nil
}

func openBadgerStore(dir string, log *zap.Logger) (*Store, error) {
	backend, err := badger.OpenBackend(dir, false, log)
	if err != nil {
		return nil, err
	}
	electronics, err := badger.Open[types.ElectronicItem](backend, types.KindElectronics)
	if err != nil {
		backend.Close()
		return nil, err
	}
	groceries, err := badger.Open[types.GroceryItem](backend, types.KindGroceries)
	if err != nil {
		backend.Close()
		return nil, err
	}
	return &Store{Electronics: electronics, Groceries: groceries, close: backend.Close}, nil
}

// SaveSnapshot writes every item in repo to a JSONL file at path.
func SaveSnapshot[V types.Stockable[V]](repo types.Repository[V], path string) error {
	items, err := repo.All()
	if err != nil {
		return fmt.Errorf("snapshot %s: %w", path, err)
	}
	if err := jsonl.Save(path, items); err != nil {
		return fmt.Errorf("snapshot %s: %w", path, err)
	}
	return nil
}

// LoadSnapshot replaces the contents of repo with the JSONL file at path.
// A missing file empties the repository.
func LoadSnapshot[V types.Stockable[V]](repo types.Repository[V], path string) error {
	items, err := jsonl.Load[V](path)
	if err != nil {
		return fmt.Errorf("restore %s: %w", path, err)
	}
	if err := repo.Restore(items); err != nil {
		return fmt.Errorf("restore %s: %w", path, err)
	}
	return nil
}
