package types

import (
	"errors"
	"fmt"
)

// Item error taxonomy. Every repository failure wraps exactly one of these,
// so callers match with errors.Is.
var (
	ErrDuplicateItem   = errors.New("duplicate item")
	ErrItemNotFound    = errors.New("item not found")
	ErrInvalidQuantity = errors.New("invalid quantity")
)

// ItemError describes a failed repository operation on a single item.
type ItemError struct {
	Kind     error  // One of the taxonomy sentinels.
	Op       string // Repository operation, e.g. "insert".
	ID       int    // Offending identity.
	Quantity int    // Offending quantity (ErrInvalidQuantity only).
}

func (e *ItemError) Error() string {
	switch e.Kind {
	case ErrDuplicateItem:
		return fmt.Sprintf("item with ID %d already exists", e.ID)
	case ErrItemNotFound:
		return fmt.Sprintf("item with ID %d not found", e.ID)
	case ErrInvalidQuantity:
		return fmt.Sprintf("quantity %d for item with ID %d cannot be negative", e.Quantity, e.ID)
	default:
		return fmt.Sprintf("%s item %d: %v", e.Op, e.ID, e.Kind)
	}
}

// Unwrap returns the taxonomy sentinel for errors.Is support.
func (e *ItemError) Unwrap() error {
	return e.Kind
}

// DuplicateItem returns an ErrDuplicateItem failure for id.
func DuplicateItem(op string, id int) error {
	return &ItemError{Kind: ErrDuplicateItem, Op: op, ID: id}
}

// ItemNotFound returns an ErrItemNotFound failure for id.
func ItemNotFound(op string, id int) error {
	return &ItemError{Kind: ErrItemNotFound, Op: op, ID: id}
}

// InvalidQuantity returns an ErrInvalidQuantity failure for quantity q on id.
func InvalidQuantity(op string, id, q int) error {
	return &ItemError{Kind: ErrInvalidQuantity, Op: op, ID: id, Quantity: q}
}

// IsItemError reports whether err belongs to the item error taxonomy.
func IsItemError(err error) bool {
	return errors.Is(err, ErrDuplicateItem) ||
		errors.Is(err, ErrItemNotFound) ||
		errors.Is(err, ErrInvalidQuantity)
}

// Repository operation names recorded in ItemError.Op.
const (
	OpInsert         = "insert"
	OpGet            = "get"
	OpRemove         = "remove"
	OpUpdateQuantity = "update_quantity"
	OpAdjustQuantity = "adjust_quantity"
	OpRestore        = "restore"
)

// Backend lifecycle errors.
var (
	ErrDetached        = errors.New("backend is detached")
	ErrAlreadyAttached = errors.New("backend is already attached")
	ErrKindNotFound    = errors.New("unknown item kind")
)
