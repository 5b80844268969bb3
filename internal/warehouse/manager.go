// Package warehouse implements the inventory manager that sits on top of the
// typed repositories. Repositories return errors; the manager's convenience
// operations are where those errors are caught and reported instead of
// propagated.
package warehouse

import (
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/stockroom/pkg/logger"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// Manager orchestrates one repository per item variant. It does not own
// items; the repositories do.
type Manager struct {
	Electronics types.Repository[types.ElectronicItem]
	Groceries   types.Repository[types.GroceryItem]

	out   io.Writer
	log   *zap.SugaredLogger
	clock func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithOutput sets the writer that listings and reported errors go to.
// Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(m *Manager) { m.out = w }
}

// WithLogger sets the diagnostics logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) { m.log = logger.Component(l, "warehouse") }
}

// WithClock sets the clock used to compute seed expiry dates.
func WithClock(clock func() time.Time) Option {
	return func(m *Manager) { m.clock = clock }
}

// New creates a Manager over the given repositories.
func New(electronics types.Repository[types.ElectronicItem], groceries types.Repository[types.GroceryItem], opts ...Option) *Manager {
	m := &Manager{
		Electronics: electronics,
		Groceries:   groceries,
		out:         os.Stdout,
		log:         logger.Component(nil, "warehouse"),
		clock:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// report writes err's message as a user-facing line and logs it.
func (m *Manager) report(op string, err error) {
	fmt.Fprintln(m.out, err.Error())
	m.log.Warnw("operation failed", "op", op, "error", err)
}

// PrintAll writes one line per item in repo: ID, name and quantity. It never
// fails; a backend read error is reported in place of the listing.
func PrintAll[V types.Stockable[V]](m *Manager, repo types.Repository[V]) {
	items, err := repo.All()
	if err != nil {
		m.report("print_all", err)
		return
	}
	for _, it := range items {
		fmt.Fprintln(m.out, FormatItem(it))
	}
}

// FormatItem renders the listing line for one item.
func FormatItem(it types.Item) string {
	return fmt.Sprintf("ID: %d, Name: %s, Quantity: %d", it.GetID(), it.GetName(), it.GetQuantity())
}

// IncreaseStock adds delta to the quantity of item id. The lookup and the
// write happen in one AdjustQuantity call. ErrItemNotFound, ErrInvalidQuantity
// and backend failures are reported, never returned. It reports true when the
// new quantity was stored.
func IncreaseStock[V types.Stockable[V]](m *Manager, repo types.Repository[V], id, delta int) bool {
	item, err := repo.AdjustQuantity(id, delta)
	if err != nil {
		m.report("increase_stock", err)
		return false
	}
	m.log.Debugw("stock increased", "id", id, "delta", delta, "quantity", item.GetQuantity())
	return true
}

// RemoveByID removes item id from repo. ErrItemNotFound and backend failures
// are reported, never returned. It reports true when the item was removed.
func RemoveByID[V types.Stockable[V]](m *Manager, repo types.Repository[V], id int) bool {
	if err := repo.Remove(id); err != nil {
		m.report("remove", err)
		return false
	}
	m.log.Debugw("item removed", "id", id)
	return true
}
