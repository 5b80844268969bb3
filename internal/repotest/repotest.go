// Package repotest provides a behavioural test suite shared by every
// types.Repository backend. Backends call RunElectronics and RunGroceries
// from their own _test.go files with a factory that returns an empty
// repository.
package repotest

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// Factory builds a fresh, empty repository for a single subtest.
type Factory[V types.Stockable[V]] func(t *testing.T) types.Repository[V]

// Expiry is the fixed expiry date used by grocery fixtures.
var Expiry = time.Date(2027, time.March, 1, 12, 30, 0, 0, time.UTC)

// Smartphone and Laptop are the electronics fixtures.
var (
	Smartphone = types.ElectronicItem{ID: 1, Name: "Smartphone", Quantity: 10, Brand: "BrandA", WarrantyMonths: 24}
	Laptop     = types.ElectronicItem{ID: 2, Name: "Laptop", Quantity: 5, Brand: "BrandB", WarrantyMonths: 12}
	Headphones = types.ElectronicItem{ID: 3, Name: "Headphones", Quantity: 15, Brand: "BrandC", WarrantyMonths: 6}
)

// Rice and MilkPowder are the grocery fixtures.
var (
	Rice       = types.GroceryItem{ID: 101, Name: "Rice", Quantity: 50, ExpiryDate: Expiry}
	MilkPowder = types.GroceryItem{ID: 102, Name: "Milk Powder", Quantity: 30, ExpiryDate: Expiry.AddDate(0, -6, 0)}
)

// MustInsert inserts every item or fails the test.
func MustInsert[V types.Stockable[V]](t *testing.T, repo types.Repository[V], items ...V) {
	t.Helper()
	for _, item := range items {
		require.NoError(t, repo.Insert(item), "insert %d", item.GetID())
	}
}

// MustLen asserts the repository size.
func MustLen[V types.Stockable[V]](t *testing.T, repo types.Repository[V], want int) {
	t.Helper()
	n, err := repo.Len()
	require.NoError(t, err)
	assert.Equal(t, want, n)
}

// RunElectronics exercises the full Repository contract against electronics.
func RunElectronics(t *testing.T, newRepo Factory[types.ElectronicItem]) {
	t.Run("insert then get returns the item", func(t *testing.T) {
		repo := newRepo(t)
		MustInsert(t, repo, Smartphone)

		got, err := repo.Get(Smartphone.ID)
		require.NoError(t, err)
		assert.Equal(t, Smartphone, got)
	})

	t.Run("duplicate insert fails and leaves the set unchanged", func(t *testing.T) {
		repo := newRepo(t)
		MustInsert(t, repo, Smartphone, Laptop)

		err := repo.Insert(types.ElectronicItem{ID: 1, Name: "Tablet", Quantity: 99, Brand: "BrandZ"})
		require.ErrorIs(t, err, types.ErrDuplicateItem)
		assert.Contains(t, err.Error(), "1")

		all, err := repo.All()
		require.NoError(t, err)
		assert.Equal(t, []types.ElectronicItem{Smartphone, Laptop}, all)
	})

	t.Run("duplicate names with distinct IDs coexist", func(t *testing.T) {
		repo := newRepo(t)
		twin := Laptop
		twin.ID = 20
		MustInsert(t, repo, Laptop, twin)
		MustLen(t, repo, 2)
	})

	t.Run("never inserted ID is not found everywhere", func(t *testing.T) {
		repo := newRepo(t)
		MustInsert(t, repo, Smartphone)

		_, err := repo.Get(42)
		assert.ErrorIs(t, err, types.ErrItemNotFound)
		assert.ErrorIs(t, repo.Remove(42), types.ErrItemNotFound)
		assert.ErrorIs(t, repo.UpdateQuantity(42, 1), types.ErrItemNotFound)
		_, err = repo.AdjustQuantity(42, 1)
		assert.ErrorIs(t, err, types.ErrItemNotFound)
	})

	t.Run("removed ID is not found everywhere", func(t *testing.T) {
		repo := newRepo(t)
		MustInsert(t, repo, Smartphone, Laptop)
		require.NoError(t, repo.Remove(Laptop.ID))

		_, err := repo.Get(Laptop.ID)
		assert.ErrorIs(t, err, types.ErrItemNotFound)
		assert.ErrorIs(t, repo.Remove(Laptop.ID), types.ErrItemNotFound)
		assert.ErrorIs(t, repo.UpdateQuantity(Laptop.ID, 3), types.ErrItemNotFound)
		MustLen(t, repo, 1)
	})

	t.Run("remove of unknown ID leaves size unchanged", func(t *testing.T) {
		repo := newRepo(t)
		MustInsert(t, repo, Smartphone, Laptop, Headphones)

		err := repo.Remove(999)
		require.ErrorIs(t, err, types.ErrItemNotFound)
		assert.Equal(t, "item with ID 999 not found", err.Error())
		MustLen(t, repo, 3)
	})

	t.Run("negative quantity is checked before existence", func(t *testing.T) {
		repo := newRepo(t)

		err := repo.UpdateQuantity(77, -1)
		assert.ErrorIs(t, err, types.ErrInvalidQuantity)
		assert.NotErrorIs(t, err, types.ErrItemNotFound)
	})

	t.Run("update changes only the quantity", func(t *testing.T) {
		repo := newRepo(t)
		MustInsert(t, repo, Smartphone)

		before, err := repo.Get(Smartphone.ID)
		require.NoError(t, err)
		require.NoError(t, repo.UpdateQuantity(Smartphone.ID, 0))
		after, err := repo.Get(Smartphone.ID)
		require.NoError(t, err)

		assert.Equal(t, 0, after.Quantity)
		assert.Equal(t, before.WithQuantity(0), after)
	})

	t.Run("all returns an independent snapshot", func(t *testing.T) {
		repo := newRepo(t)
		MustInsert(t, repo, Smartphone, Laptop)

		first, err := repo.All()
		require.NoError(t, err)
		first[0].Name = "Mutated"
		first[1].Quantity = 1000

		second, err := repo.All()
		require.NoError(t, err)
		assert.Equal(t, []types.ElectronicItem{Smartphone, Laptop}, second)
	})

	t.Run("get returns a copy", func(t *testing.T) {
		repo := newRepo(t)
		MustInsert(t, repo, Smartphone)

		got, err := repo.Get(Smartphone.ID)
		require.NoError(t, err)
		got.Quantity = 1

		again, err := repo.Get(Smartphone.ID)
		require.NoError(t, err)
		assert.Equal(t, Smartphone.Quantity, again.Quantity)
	})

	t.Run("all is ordered by ID", func(t *testing.T) {
		repo := newRepo(t)
		MustInsert(t, repo, Headphones, Smartphone, Laptop)

		all, err := repo.All()
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []int{1, 2, 3}, []int{all[0].ID, all[1].ID, all[2].ID})
	})

	t.Run("extreme IDs are ordered numerically", func(t *testing.T) {
		repo := newRepo(t)
		MustInsert(t, repo,
			types.ElectronicItem{ID: math.MaxInt, Name: "Max"},
			types.ElectronicItem{ID: 1, Name: "One"},
			types.ElectronicItem{ID: math.MinInt, Name: "Min"},
		)

		all, err := repo.All()
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []int{math.MinInt, 1, math.MaxInt}, []int{all[0].ID, all[1].ID, all[2].ID})
	})

	t.Run("insert stores the quantity as given", func(t *testing.T) {
		repo := newRepo(t)
		odd := types.ElectronicItem{ID: 5, Name: "Returned", Quantity: -3}

		require.NoError(t, repo.Insert(odd))

		got, err := repo.Get(5)
		require.NoError(t, err)
		assert.Equal(t, odd, got)

		require.NoError(t, repo.UpdateQuantity(5, 0))
		got, err = repo.Get(5)
		require.NoError(t, err)
		assert.Equal(t, 0, got.Quantity)
	})

	t.Run("restore stores quantities as given", func(t *testing.T) {
		repo := newRepo(t)
		odd := types.ElectronicItem{ID: 6, Name: "Returned", Quantity: -1}

		require.NoError(t, repo.Restore([]types.ElectronicItem{Smartphone, odd}))

		all, err := repo.All()
		require.NoError(t, err)
		assert.Equal(t, []types.ElectronicItem{Smartphone, odd}, all)
	})

	t.Run("all on empty repository is empty", func(t *testing.T) {
		repo := newRepo(t)
		all, err := repo.All()
		require.NoError(t, err)
		assert.Empty(t, all)
		MustLen(t, repo, 0)
	})

	t.Run("adjust quantity adds delta", func(t *testing.T) {
		repo := newRepo(t)
		MustInsert(t, repo, Smartphone)

		got, err := repo.AdjustQuantity(Smartphone.ID, 5)
		require.NoError(t, err)
		assert.Equal(t, 15, got.Quantity)

		stored, err := repo.Get(Smartphone.ID)
		require.NoError(t, err)
		assert.Equal(t, Smartphone.WithQuantity(15), stored)
	})

	t.Run("adjust below zero fails and leaves the item unchanged", func(t *testing.T) {
		repo := newRepo(t)
		MustInsert(t, repo, Laptop)

		_, err := repo.AdjustQuantity(Laptop.ID, -6)
		require.ErrorIs(t, err, types.ErrInvalidQuantity)

		stored, err := repo.Get(Laptop.ID)
		require.NoError(t, err)
		assert.Equal(t, Laptop, stored)
	})

	t.Run("restore replaces contents", func(t *testing.T) {
		repo := newRepo(t)
		MustInsert(t, repo, Smartphone)

		require.NoError(t, repo.Restore([]types.ElectronicItem{Laptop, Headphones}))

		all, err := repo.All()
		require.NoError(t, err)
		assert.Equal(t, []types.ElectronicItem{Laptop, Headphones}, all)
	})

	t.Run("restore with repeated ID leaves contents unchanged", func(t *testing.T) {
		repo := newRepo(t)
		MustInsert(t, repo, Smartphone)

		err := repo.Restore([]types.ElectronicItem{Laptop, Laptop})
		require.ErrorIs(t, err, types.ErrDuplicateItem)

		all, err := repo.All()
		require.NoError(t, err)
		assert.Equal(t, []types.ElectronicItem{Smartphone}, all)
	})
}

// RunGroceries exercises the grocery scenarios, which also cover time
// fields surviving the backend's storage format.
func RunGroceries(t *testing.T, newRepo Factory[types.GroceryItem]) {
	t.Run("duplicate rice keeps the original", func(t *testing.T) {
		repo := newRepo(t)
		MustInsert(t, repo, Rice)

		err := repo.Insert(types.GroceryItem{ID: 101, Name: "DuplicateRice", Quantity: 10, ExpiryDate: Expiry.AddDate(0, 6, 0)})
		require.ErrorIs(t, err, types.ErrDuplicateItem)
		assert.Equal(t, "item with ID 101 already exists", err.Error())

		all, err := repo.All()
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, 101, all[0].ID)
		assert.Equal(t, "Rice", all[0].Name)
		assert.Equal(t, 50, all[0].Quantity)
	})

	t.Run("negative update on existing item keeps quantity", func(t *testing.T) {
		repo := newRepo(t)
		MustInsert(t, repo, Rice, MilkPowder)

		err := repo.UpdateQuantity(MilkPowder.ID, -5)
		require.ErrorIs(t, err, types.ErrInvalidQuantity)

		got, err := repo.Get(MilkPowder.ID)
		require.NoError(t, err)
		assert.Equal(t, 30, got.Quantity)
	})

	t.Run("expiry date survives storage", func(t *testing.T) {
		repo := newRepo(t)
		MustInsert(t, repo, MilkPowder)
		require.NoError(t, repo.UpdateQuantity(MilkPowder.ID, 12))

		got, err := repo.Get(MilkPowder.ID)
		require.NoError(t, err)
		assert.Equal(t, MilkPowder.ID, got.ID)
		assert.Equal(t, MilkPowder.Name, got.Name)
		assert.Equal(t, 12, got.Quantity)
		assert.True(t, got.ExpiryDate.Equal(MilkPowder.ExpiryDate),
			"expiry %v != %v", got.ExpiryDate, MilkPowder.ExpiryDate)
	})
}
