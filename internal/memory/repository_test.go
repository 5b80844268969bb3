package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/stockroom/internal/repotest"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

func TestRepositoryElectronics(t *testing.T) {
	repotest.RunElectronics(t, func(t *testing.T) types.Repository[types.ElectronicItem] {
		return New[types.ElectronicItem]()
	})
}

func TestRepositoryGroceries(t *testing.T) {
	repotest.RunGroceries(t, func(t *testing.T) types.Repository[types.GroceryItem] {
		return New[types.GroceryItem]()
	})
}

func TestZeroValueOnNotFound(t *testing.T) {
	repo := New[types.ElectronicItem]()

	got, err := repo.Get(5)
	require.Error(t, err)
	assert.Equal(t, types.ElectronicItem{}, got)

	adjusted, err := repo.AdjustQuantity(5, 1)
	require.Error(t, err)
	assert.Equal(t, types.ElectronicItem{}, adjusted)
}

func TestRestoreNilEmptiesRepository(t *testing.T) {
	var repo types.Repository[types.ElectronicItem] = New[types.ElectronicItem]()
	repotest.MustInsert(t, repo, repotest.Smartphone, repotest.Laptop)

	require.NoError(t, repo.Restore(nil))
	repotest.MustLen(t, repo, 0)

	// The repository stays usable after a restore.
	repotest.MustInsert(t, repo, repotest.Laptop)
	repotest.MustLen(t, repo, 1)
}
