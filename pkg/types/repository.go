package types

// Repository provides keyed storage for a single item variant. The repository
// owns every stored item; callers only ever see copies. All failures from the
// item error taxonomy are returned, never absorbed: catching is the caller's
// decision.
type Repository[V Stockable[V]] interface {
	// Insert stores item under item.GetID().
	// Returns ErrDuplicateItem if an item with that ID is already stored;
	// the stored set is left unchanged.
	Insert(item V) error

	// Get returns the item with the given ID.
	// Returns ErrItemNotFound if no item exists with that ID.
	Get(id int) (V, error)

	// Remove deletes the item with the given ID.
	// Returns ErrItemNotFound if no item exists with that ID.
	Remove(id int) error

	// All returns a copy of every stored item ordered by ascending ID.
	All() ([]V, error)

	// UpdateQuantity replaces the quantity of the item with the given ID.
	// A negative quantity returns ErrInvalidQuantity before the ID is looked
	// up; a missing ID returns ErrItemNotFound. No other field changes.
	UpdateQuantity(id, quantity int) error

	// AdjustQuantity adds delta to the stored quantity and returns the
	// updated item. The read and the write happen under one lock or
	// transaction. A missing ID returns ErrItemNotFound; a result below zero
	// returns ErrInvalidQuantity and leaves the item unchanged.
	AdjustQuantity(id, delta int) (V, error)

	// Len returns the number of stored items.
	Len() (int, error)

	// Restore replaces the whole contents with items. Returns
	// ErrDuplicateItem if items repeats an ID, leaving the contents unchanged.
	Restore(items []V) error
}
