package warehouse

import (
	"errors"
	"fmt"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// RunDemo drives the reference scenario: seed, list both repositories, then
// make three direct repository calls that are expected to fail and report
// each expected failure. Direct calls bypass the manager, so RunDemo is the
// caller that decides to catch. Any other error aborts the demo.
func RunDemo(m *Manager) error {
	m.Seed()

	PrintAll(m, m.Groceries)
	PrintAll(m, m.Electronics)

	dup := types.GroceryItem{ID: 101, Name: "DuplicateRice", Quantity: 10, ExpiryDate: m.clock().AddDate(0, 6, 0)}
	if err := expect(m, m.Groceries.Insert(dup), types.ErrDuplicateItem); err != nil {
		return err
	}
	if err := expect(m, m.Electronics.Remove(999), types.ErrItemNotFound); err != nil {
		return err
	}
	if err := expect(m, m.Groceries.UpdateQuantity(102, -5), types.ErrInvalidQuantity); err != nil {
		return err
	}
	return nil
}

// expect reports err when it matches kind and returns anything else.
func expect(m *Manager, err, kind error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, kind):
		fmt.Fprintln(m.out, err.Error())
		return nil
	default:
		return err
	}
}
