package badger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

func TestOpenBackend_InMemory(t *testing.T) {
	backend, err := OpenBackend("", true, nil)
	require.NoError(t, err)
	defer backend.Close()

	assert.False(t, backend.IsClosed())
}

func TestOpenBackend_FileSystem(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "db")
	backend, err := OpenBackend(dir, false, nil)
	require.NoError(t, err)
	defer backend.Close()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestOpenBackend_PathIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	_, err := OpenBackend(path, false, nil)
	assert.Error(t, err)
}

func TestBackendClose(t *testing.T) {
	backend, err := OpenBackend("", true, nil)
	require.NoError(t, err)
	repo, err := Open[types.ElectronicItem](backend, types.KindElectronics)
	require.NoError(t, err)

	require.NoError(t, backend.Close())
	assert.True(t, backend.IsClosed())
	assert.NoError(t, backend.Close(), "Close is idempotent")

	_, err = repo.Get(1)
	assert.ErrorIs(t, err, types.ErrDetached)
	assert.ErrorIs(t, repo.Insert(types.ElectronicItem{ID: 1}), types.ErrDetached)

	_, err = Open[types.ElectronicItem](backend, types.KindElectronics)
	assert.ErrorIs(t, err, types.ErrDetached)
}

func TestOpen_UnknownKind(t *testing.T) {
	backend, err := OpenBackend("", true, nil)
	require.NoError(t, err)
	defer backend.Close()

	_, err = Open[types.GroceryItem](backend, "furniture")
	assert.ErrorIs(t, err, types.ErrKindNotFound)
}

func TestItemKeyOrdering(t *testing.T) {
	ids := []int{-5, 0, 3, 255, 256, 1 << 40}
	for i := 1; i < len(ids); i++ {
		prev := makeItemKey(types.KindGroceries, ids[i-1])
		next := makeItemKey(types.KindGroceries, ids[i])
		assert.Negative(t, bytes.Compare(prev, next), "keys for %d and %d out of order", ids[i-1], ids[i])
	}
	for _, id := range ids {
		assert.Equal(t, id, parseItemKey(types.KindGroceries, makeItemKey(types.KindGroceries, id)))
	}
}
