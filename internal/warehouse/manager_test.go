package warehouse

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mesh-intelligence/stockroom/internal/memory"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

var testNow = time.Date(2026, time.October, 19, 8, 0, 0, 0, time.UTC)

// newTestManager returns a manager over empty memory repositories with its
// output captured and its logs observed.
func newTestManager(t *testing.T) (*Manager, *bytes.Buffer, *observer.ObservedLogs) {
	t.Helper()
	var out bytes.Buffer
	core, logs := observer.New(zapcore.DebugLevel)
	m := New(
		memory.New[types.ElectronicItem](),
		memory.New[types.GroceryItem](),
		WithOutput(&out),
		WithLogger(zap.New(core)),
		WithClock(func() time.Time { return testNow }),
	)
	return m, &out, logs
}

func TestIncreaseStockThenRemoveScenario(t *testing.T) {
	m, out, _ := newTestManager(t)
	require.NoError(t, m.Electronics.Insert(types.ElectronicItem{ID: 1, Name: "Smartphone", Quantity: 10}))
	require.NoError(t, m.Electronics.Insert(types.ElectronicItem{ID: 2, Name: "Laptop", Quantity: 5}))

	assert.True(t, IncreaseStock(m, m.Electronics, 1, 5))
	got, err := m.Electronics.Get(1)
	require.NoError(t, err)
	assert.Equal(t, 15, got.Quantity)

	assert.True(t, RemoveByID(m, m.Electronics, 2))
	out.Reset()
	PrintAll(m, m.Electronics)

	assert.Equal(t, "ID: 1, Name: Smartphone, Quantity: 15\n", out.String())
}

func TestIncreaseStockReportsNotFound(t *testing.T) {
	m, out, logs := newTestManager(t)

	assert.False(t, IncreaseStock(m, m.Electronics, 42, 1))

	assert.Equal(t, "item with ID 42 not found\n", out.String())
	warns := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warns, 1)
	assert.Equal(t, "increase_stock", warns[0].ContextMap()["op"])
}

func TestIncreaseStockReportsInvalidQuantity(t *testing.T) {
	m, out, _ := newTestManager(t)
	require.NoError(t, m.Groceries.Insert(types.GroceryItem{ID: 101, Name: "Rice", Quantity: 3}))

	assert.False(t, IncreaseStock(m, m.Groceries, 101, -4))

	assert.Contains(t, out.String(), "cannot be negative")
	got, err := m.Groceries.Get(101)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Quantity)
}

func TestIncreaseStockToExactlyZero(t *testing.T) {
	m, out, _ := newTestManager(t)
	require.NoError(t, m.Groceries.Insert(types.GroceryItem{ID: 101, Name: "Rice", Quantity: 3}))

	assert.True(t, IncreaseStock(m, m.Groceries, 101, -3))
	assert.Empty(t, out.String())
}

func TestRemoveByIDReportsNotFound(t *testing.T) {
	m, out, _ := newTestManager(t)
	require.NoError(t, m.Electronics.Insert(types.ElectronicItem{ID: 1, Name: "Smartphone", Quantity: 10}))

	assert.False(t, RemoveByID(m, m.Electronics, 999))

	assert.Equal(t, "item with ID 999 not found\n", out.String())
	n, err := m.Electronics.Len()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestPrintAllEmpty(t *testing.T) {
	m, out, _ := newTestManager(t)
	PrintAll(m, m.Groceries)
	assert.Empty(t, out.String())
}

func TestDirectRepositoryCallsPropagate(t *testing.T) {
	m, out, _ := newTestManager(t)

	err := m.Electronics.Remove(999)
	assert.ErrorIs(t, err, types.ErrItemNotFound)
	assert.Empty(t, out.String(), "the manager must not report direct calls")
}

func TestDefaultsUseStdoutAndNopLogger(t *testing.T) {
	m := New(memory.New[types.ElectronicItem](), memory.New[types.GroceryItem]())
	assert.Equal(t, os.Stdout, m.out)
	assert.NotPanics(t, func() { m.log.Infow("noop") })
}
