// Package memory implements the in-memory item repository. It is the
// reference backend: the sqlite and badger backends mirror its error
// precedence exactly.
package memory

import (
	"cmp"
	"slices"
	"sync"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// Repository stores items of one variant in a map keyed by ID. A single
// RWMutex guards the map; every operation is O(1) except All and Restore.
type Repository[V types.Stockable[V]] struct {
	mu    sync.RWMutex
	items map[int]V
}

// Compile-time interface checks.
var (
	_ types.Repository[types.ElectronicItem] = (*Repository[types.ElectronicItem])(nil)
	_ types.Repository[types.GroceryItem]    = (*Repository[types.GroceryItem])(nil)
)

// New creates an empty repository.
func New[V types.Stockable[V]]() *Repository[V] {
	return &Repository[V]{
		items: make(map[int]V),
	}
}

// Insert stores item. Returns ErrDuplicateItem if the ID is taken.
func (r *Repository[V]) Insert(item V) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := item.GetID()
	if _, exists := r.items[id]; exists {
		return types.DuplicateItem(types.OpInsert, id)
	}
	r.items[id] = item
	return nil
}

// Get returns the item stored under id.
func (r *Repository[V]) Get(id int) (V, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		var zero V
		return zero, types.ItemNotFound(types.OpGet, id)
	}
	return item, nil
}

// Remove deletes the item stored under id.
func (r *Repository[V]) Remove(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return types.ItemNotFound(types.OpRemove, id)
	}
	delete(r.items, id)
	return nil
}

// All returns a fresh slice of every item, ordered by ID.
func (r *Repository[V]) All() ([]V, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]V, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	slices.SortFunc(out, func(a, b V) int {
		return cmp.Compare(a.GetID(), b.GetID())
	})
	return out, nil
}

// UpdateQuantity replaces the quantity of the item stored under id.
// The negative check runs before the lookup.
func (r *Repository[V]) UpdateQuantity(id, quantity int) error {
	if quantity < 0 {
		return types.InvalidQuantity(types.OpUpdateQuantity, id, quantity)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return types.ItemNotFound(types.OpUpdateQuantity, id)
	}
	r.items[id] = item.WithQuantity(quantity)
	return nil
}

// AdjustQuantity adds delta to the stored quantity under one lock.
func (r *Repository[V]) AdjustQuantity(id, delta int) (V, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero V
	item, ok := r.items[id]
	if !ok {
		return zero, types.ItemNotFound(types.OpAdjustQuantity, id)
	}
	next := item.GetQuantity() + delta
	if next < 0 {
		return zero, types.InvalidQuantity(types.OpAdjustQuantity, id, next)
	}
	item = item.WithQuantity(next)
	r.items[id] = item
	return item, nil
}

// Len returns the number of stored items.
func (r *Repository[V]) Len() (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items), nil
}

// Restore replaces the contents with items.
func (r *Repository[V]) Restore(items []V) error {
	next := make(map[int]V, len(items))
	for _, item := range items {
		id := item.GetID()
		if _, dup := next[id]; dup {
			return types.DuplicateItem(types.OpRestore, id)
		}
		next[id] = item
	}

	r.mu.Lock()
	r.items = next
	r.mu.Unlock()
	return nil
}
