package badger

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/dgraph-io/badger/v4"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// Repository implements types.Repository for one item kind on a Backend.
type Repository[V types.Stockable[V]] struct {
	kind    string
	backend *Backend
}

// Compile-time interface checks.
var (
	_ types.Repository[types.ElectronicItem] = (*Repository[types.ElectronicItem])(nil)
	_ types.Repository[types.GroceryItem]    = (*Repository[types.GroceryItem])(nil)
)

// Open returns the repository for kind. Returns ErrKindNotFound for unknown
// kinds and ErrDetached if the backend is closed.
func Open[V types.Stockable[V]](b *Backend, kind string) (*Repository[V], error) {
	if !slices.Contains(types.StandardKinds, kind) {
		return nil, fmt.Errorf("%w: %q", types.ErrKindNotFound, kind)
	}
	if b.IsClosed() {
		return nil, types.ErrDetached
	}
	return &Repository[V]{kind: kind, backend: b}, nil
}

// Insert stores item; the existence check and the write share a transaction.
func (r *Repository[V]) Insert(item V) error {
	id := item.GetID()
	return r.backend.update(func(txn *badger.Txn) error {
		_, err := txn.Get(makeItemKey(r.kind, id))
		if err == nil {
			return types.DuplicateItem(types.OpInsert, id)
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("checking %s %d: %w", r.kind, id, err)
		}
		return r.put(txn, item)
	})
}

// Get returns the item stored under id.
func (r *Repository[V]) Get(id int) (V, error) {
	var item V
	err := r.backend.view(func(txn *badger.Txn) error {
		var err error
		item, err = r.load(txn, types.OpGet, id)
		return err
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return item, nil
}

// Remove deletes the item stored under id.
func (r *Repository[V]) Remove(id int) error {
	return r.backend.update(func(txn *badger.Txn) error {
		if _, err := r.load(txn, types.OpRemove, id); err != nil {
			return err
		}
		return txn.Delete(makeItemKey(r.kind, id))
	})
}

// All returns every item of this kind ordered by ID.
func (r *Repository[V]) All() ([]V, error) {
	out := make([]V, 0)
	err := r.backend.view(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePrefix(r.kind)
		iter := txn.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var item V
			err := iter.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &item)
			})
			if err != nil {
				return fmt.Errorf("reading %s: %w", r.kind, err)
			}
			out = append(out, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateQuantity replaces the quantity of the item stored under id.
func (r *Repository[V]) UpdateQuantity(id, quantity int) error {
	if quantity < 0 {
		return types.InvalidQuantity(types.OpUpdateQuantity, id, quantity)
	}

	return r.backend.update(func(txn *badger.Txn) error {
		item, err := r.load(txn, types.OpUpdateQuantity, id)
		if err != nil {
			return err
		}
		return r.put(txn, item.WithQuantity(quantity))
	})
}

// AdjustQuantity adds delta to the stored quantity in one transaction.
func (r *Repository[V]) AdjustQuantity(id, delta int) (V, error) {
	var updated V
	err := r.backend.update(func(txn *badger.Txn) error {
		item, err := r.load(txn, types.OpAdjustQuantity, id)
		if err != nil {
			return err
		}
		next := item.GetQuantity() + delta
		if next < 0 {
			return types.InvalidQuantity(types.OpAdjustQuantity, id, next)
		}
		updated = item.WithQuantity(next)
		return r.put(txn, updated)
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return updated, nil
}

// Len counts the keys under this kind's prefix without reading values.
func (r *Repository[V]) Len() (int, error) {
	n := 0
	err := r.backend.view(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePrefix(r.kind)
		opts.PrefetchValues = false
		iter := txn.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			n++
		}
		return nil
	})
	return n, err
}

// Restore replaces every item of this kind with items in one transaction.
func (r *Repository[V]) Restore(items []V) error {
	seen := make(map[int]bool, len(items))
	for _, item := range items {
		if seen[item.GetID()] {
			return types.DuplicateItem(types.OpRestore, item.GetID())
		}
		seen[item.GetID()] = true
	}

	return r.backend.update(func(txn *badger.Txn) error {
		var stale [][]byte
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePrefix(r.kind)
		opts.PrefetchValues = false
		iter := txn.NewIterator(opts)
		for iter.Rewind(); iter.Valid(); iter.Next() {
			stale = append(stale, iter.Item().KeyCopy(nil))
		}
		iter.Close()

		for _, key := range stale {
			if err := txn.Delete(key); err != nil {
				return fmt.Errorf("clearing %s: %w", r.kind, err)
			}
		}
		for _, item := range items {
			if err := r.put(txn, item); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repository[V]) load(txn *badger.Txn, op string, id int) (V, error) {
	var item V
	entry, err := txn.Get(makeItemKey(r.kind, id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return item, types.ItemNotFound(op, id)
	}
	if err != nil {
		return item, fmt.Errorf("loading %s %d: %w", r.kind, id, err)
	}
	err = entry.Value(func(val []byte) error {
		return json.Unmarshal(val, &item)
	})
	if err != nil {
		return item, fmt.Errorf("parsing %s %d: %w", r.kind, id, err)
	}
	return item, nil
}

func (r *Repository[V]) put(txn *badger.Txn, item V) error {
	val, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("marshaling %s %d: %w", r.kind, item.GetID(), err)
	}
	if err := txn.Set(makeItemKey(r.kind, item.GetID()), val); err != nil {
		return fmt.Errorf("writing %s %d: %w", r.kind, item.GetID(), err)
	}
	return nil
}
