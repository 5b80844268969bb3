package integration

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/stockroom/internal/ledger"
	"github.com/mesh-intelligence/stockroom/internal/warehouse"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// TestMain builds the stockroom binary once before running tests.
func TestMain(m *testing.M) {
	projectRoot, err := FindProjectRoot()
	if err != nil {
		buildErr = err
		os.Exit(m.Run())
	}

	tmpDir, err := os.MkdirTemp("", "stockroom-test-*")
	if err != nil {
		buildErr = err
		os.Exit(m.Run())
	}
	stockroomBin = filepath.Join(tmpDir, "stockroom")

	cmd := exec.Command("go", "build", "-o", stockroomBin, "./cmd/stockroom")
	cmd.Dir = projectRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		buildErr = &BuildError{Err: err, Output: string(output)}
	}

	code := m.Run()
	os.RemoveAll(tmpDir)
	os.Exit(code)
}

var backends = []string{types.BackendMemory, types.BackendSQLite, types.BackendBadger}

// TestInventoryLifecycle walks the seed, restock, remove and list flow on
// each backend, with every step in its own process.
func TestInventoryLifecycle(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			env := NewTestEnv(t, backend)

			result := env.MustRun("init")
			assert.Contains(t, result.Stdout, "backend: "+backend)

			report := ParseJSON[warehouse.SeedReport](t, env.MustRun("--json", "seed").Stdout)
			assert.Equal(t, 6, report.Inserted)

			env.MustRun("restock", "electronics", "1", "5")
			env.MustRun("remove", "electronics", "2")

			items := ParseJSON[[]types.ElectronicItem](t, env.MustRun("--json", "list", "electronics").Stdout)
			require.Len(t, items, 2)
			assert.Equal(t, types.ElectronicItem{ID: 1, Name: "Smartphone", Quantity: 15, Brand: "BrandA", WarrantyMonths: 24}, items[0])
			assert.Equal(t, 3, items[1].ID)

			groceries := ParseJSON[[]types.GroceryItem](t, env.MustRun("--json", "list", "groceries").Stdout)
			require.Len(t, groceries, 3)
			assert.False(t, groceries[0].ExpiryDate.IsZero())
		})
	}
}

// TestErrorTaxonomyExitCodes checks that direct operations fail with exit
// code 1 and leave state unchanged, while manager operations report and
// succeed.
func TestErrorTaxonomyExitCodes(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			env := NewTestEnv(t, backend)
			env.MustRun("seed")

			dup := env.Run("add", "groceries", "101", "DuplicateRice", "10")
			assert.Equal(t, 1, dup.ExitCode)
			assert.Contains(t, dup.Stderr, "item with ID 101 already exists")

			neg := env.Run("set-quantity", "groceries", "102", "--", "-5")
			assert.Equal(t, 1, neg.ExitCode)
			assert.Contains(t, neg.Stderr, "cannot be negative")

			missing := env.MustRun("remove", "electronics", "999")
			assert.Equal(t, "item with ID 999 not found\n", missing.Stdout)

			list := env.MustRun("list", "groceries")
			assert.Equal(t,
				"ID: 101, Name: Rice, Quantity: 50\n"+
					"ID: 102, Name: Milk Powder, Quantity: 30\n"+
					"ID: 103, Name: Sugar, Quantity: 40\n",
				list.Stdout)
		})
	}
}

func TestMemoryBackendWritesSnapshots(t *testing.T) {
	env := NewTestEnv(t, types.BackendMemory)
	env.MustRun("seed")

	records := ReadJSONLFile[types.GroceryItem](t, filepath.Join(env.DataDir, warehouse.GroceriesSnapshot))
	require.Len(t, records, 3)
	assert.Equal(t, "Rice", records[0].Name)
}

func TestBackendOverrideFromEnv(t *testing.T) {
	env := NewTestEnv(t, types.BackendMemory)
	env.Env = []string{"STOCKROOM_BACKEND=badger"}
	env.MustRun("seed")

	_, err := os.Stat(filepath.Join(env.DataDir, warehouse.BadgerDirName))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(env.DataDir, warehouse.ElectronicsSnapshot))
	assert.True(t, os.IsNotExist(err))
}

func TestDemo(t *testing.T) {
	env := NewTestEnv(t, types.BackendSQLite)
	result := env.MustRun("demo")

	lines := strings.Split(strings.TrimSpace(result.Stdout), "\n")
	require.Len(t, lines, 9)
	assert.Equal(t, "ID: 101, Name: Rice, Quantity: 50", lines[0])
	assert.Equal(t, "quantity -5 for item with ID 102 cannot be negative", lines[8])
}

func TestLedgerPersistsAcrossRuns(t *testing.T) {
	env := NewTestEnv(t, types.BackendSQLite)
	env.MustRun("log", "add", "1", "Laptop", "50")
	env.MustRun("log", "add", "2", "Mouse", "200")

	entries := ReadJSONLFile[types.LogEntry](t, filepath.Join(env.DataDir, ledger.FileName))
	require.Len(t, entries, 2)
	assert.Equal(t, "Mouse", entries[1].Name)

	listed := ParseJSON[[]types.LogEntry](t, env.MustRun("--json", "log", "list").Stdout)
	assert.Equal(t, entries[0].Ref, listed[0].Ref)
}

func TestVersion(t *testing.T) {
	env := NewTestEnv(t, types.BackendMemory)
	result := env.MustRun("version")
	assert.True(t, strings.HasPrefix(result.Stdout, "stockroom v"))
}
