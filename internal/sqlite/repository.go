package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// Repository implements types.Repository for one item kind. Items are
// hydrated from and dehydrated to the JSON payload column.
type Repository[V types.Stockable[V]] struct {
	kind    string
	backend *Backend
}

// Compile-time interface checks.
var (
	_ types.Repository[types.ElectronicItem] = (*Repository[types.ElectronicItem])(nil)
	_ types.Repository[types.GroceryItem]    = (*Repository[types.GroceryItem])(nil)
)

// Open returns the repository for kind on an attached backend.
// Returns ErrKindNotFound for unknown kinds and ErrDetached if the backend
// is not attached.
func Open[V types.Stockable[V]](b *Backend, kind string) (*Repository[V], error) {
	if !slices.Contains(types.StandardKinds, kind) {
		return nil, fmt.Errorf("%w: %q", types.ErrKindNotFound, kind)
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrDetached
	}
	return &Repository[V]{kind: kind, backend: b}, nil
}

// Insert stores item. The existence check and the insert share one
// transaction.
func (r *Repository[V]) Insert(item V) error {
	id := item.GetID()
	return r.backend.writeTx(func(tx *sql.Tx) error {
		exists, err := r.exists(tx, id)
		if err != nil {
			return err
		}
		if exists {
			return types.DuplicateItem(types.OpInsert, id)
		}
		return r.insertRow(tx, item)
	})
}

// Get returns the item stored under id.
func (r *Repository[V]) Get(id int) (V, error) {
	var item V
	err := r.backend.read(func(db *sql.DB) error {
		var err error
		item, err = r.load(db.QueryRow, types.OpGet, id)
		return err
	})
	return item, err
}

// Remove deletes the item stored under id.
func (r *Repository[V]) Remove(id int) error {
	return r.backend.writeTx(func(tx *sql.Tx) error {
		res, err := tx.Exec("DELETE FROM items WHERE kind = ? AND id = ?", r.kind, id)
		if err != nil {
			return fmt.Errorf("deleting %s %d: %w", r.kind, id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("deleting %s %d: %w", r.kind, id, err)
		}
		if n == 0 {
			return types.ItemNotFound(types.OpRemove, id)
		}
		return nil
	})
}

// All returns every item of this kind ordered by ID.
func (r *Repository[V]) All() ([]V, error) {
	var out []V
	err := r.backend.read(func(db *sql.DB) error {
		rows, err := db.Query("SELECT payload FROM items WHERE kind = ? ORDER BY id ASC", r.kind)
		if err != nil {
			return fmt.Errorf("querying %s: %w", r.kind, err)
		}
		defer rows.Close()

		out = make([]V, 0)
		for rows.Next() {
			var payload string
			if err := rows.Scan(&payload); err != nil {
				return fmt.Errorf("scanning %s: %w", r.kind, err)
			}
			item, err := r.decode(payload)
			if err != nil {
				return err
			}
			out = append(out, item)
		}
		return rows.Err()
	})
	return out, err
}

// UpdateQuantity replaces the quantity of the item stored under id.
func (r *Repository[V]) UpdateQuantity(id, quantity int) error {
	if quantity < 0 {
		return types.InvalidQuantity(types.OpUpdateQuantity, id, quantity)
	}
	return r.backend.writeTx(func(tx *sql.Tx) error {
		item, err := r.load(tx.QueryRow, types.OpUpdateQuantity, id)
		if err != nil {
			return err
		}
		return r.updateRow(tx, item.WithQuantity(quantity))
	})
}

// AdjustQuantity adds delta to the stored quantity in one transaction.
func (r *Repository[V]) AdjustQuantity(id, delta int) (V, error) {
	var updated V
	err := r.backend.writeTx(func(tx *sql.Tx) error {
		item, err := r.load(tx.QueryRow, types.OpAdjustQuantity, id)
		if err != nil {
			return err
		}
		next := item.GetQuantity() + delta
		if next < 0 {
			return types.InvalidQuantity(types.OpAdjustQuantity, id, next)
		}
		updated = item.WithQuantity(next)
		return r.updateRow(tx, updated)
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return updated, nil
}

// Len returns the number of stored items of this kind.
func (r *Repository[V]) Len() (int, error) {
	var n int
	err := r.backend.read(func(db *sql.DB) error {
		if err := db.QueryRow("SELECT COUNT(*) FROM items WHERE kind = ?", r.kind).Scan(&n); err != nil {
			return fmt.Errorf("counting %s: %w", r.kind, err)
		}
		return nil
	})
	return n, err
}

// Restore replaces every row of this kind with items.
func (r *Repository[V]) Restore(items []V) error {
	seen := make(map[int]bool, len(items))
	for _, item := range items {
		if seen[item.GetID()] {
			return types.DuplicateItem(types.OpRestore, item.GetID())
		}
		seen[item.GetID()] = true
	}
	return r.backend.writeTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM items WHERE kind = ?", r.kind); err != nil {
			return fmt.Errorf("clearing %s: %w", r.kind, err)
		}
		for _, item := range items {
			if err := r.insertRow(tx, item); err != nil {
				return err
			}
		}
		return nil
	})
}

// queryRowFunc is satisfied by both (*sql.DB).QueryRow and (*sql.Tx).QueryRow.
type queryRowFunc func(query string, args ...any) *sql.Row

func (r *Repository[V]) load(queryRow queryRowFunc, op string, id int) (V, error) {
	var zero V
	var payload string
	err := queryRow("SELECT payload FROM items WHERE kind = ? AND id = ?", r.kind, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, types.ItemNotFound(op, id)
	}
	if err != nil {
		return zero, fmt.Errorf("loading %s %d: %w", r.kind, id, err)
	}
	return r.decode(payload)
}

func (r *Repository[V]) exists(tx *sql.Tx, id int) (bool, error) {
	var one int
	err := tx.QueryRow("SELECT 1 FROM items WHERE kind = ? AND id = ?", r.kind, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking %s %d: %w", r.kind, id, err)
	}
	return true, nil
}

func (r *Repository[V]) insertRow(tx *sql.Tx, item V) error {
	payload, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("marshaling %s %d: %w", r.kind, item.GetID(), err)
	}
	_, err = tx.Exec(
		"INSERT INTO items (kind, id, name, quantity, payload, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		r.kind, item.GetID(), item.GetName(), item.GetQuantity(), string(payload), now(),
	)
	if err != nil {
		return fmt.Errorf("inserting %s %d: %w", r.kind, item.GetID(), err)
	}
	return nil
}

func (r *Repository[V]) updateRow(tx *sql.Tx, item V) error {
	payload, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("marshaling %s %d: %w", r.kind, item.GetID(), err)
	}
	_, err = tx.Exec(
		"UPDATE items SET quantity = ?, payload = ?, updated_at = ? WHERE kind = ? AND id = ?",
		item.GetQuantity(), string(payload), now(), r.kind, item.GetID(),
	)
	if err != nil {
		return fmt.Errorf("updating %s %d: %w", r.kind, item.GetID(), err)
	}
	return nil
}

func (r *Repository[V]) decode(payload string) (V, error) {
	var item V
	if err := json.Unmarshal([]byte(payload), &item); err != nil {
		return item, fmt.Errorf("parsing %s payload: %w", r.kind, err)
	}
	return item, nil
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
