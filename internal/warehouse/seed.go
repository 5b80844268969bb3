package warehouse

import (
	"go.uber.org/zap"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// SeedReport counts the outcome of a seeding pass.
type SeedReport struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

// seedElectronics is the fixed electronics starting set.
var seedElectronics = []types.ElectronicItem{
	{ID: 1, Name: "Smartphone", Quantity: 10, Brand: "BrandA", WarrantyMonths: 24},
	{ID: 2, Name: "Laptop", Quantity: 5, Brand: "BrandB", WarrantyMonths: 12},
	{ID: 3, Name: "Headphones", Quantity: 15, Brand: "BrandC", WarrantyMonths: 6},
}

// seedGrocery describes a grocery seed; expiry is relative to seeding time.
type seedGrocery struct {
	id           int
	name         string
	quantity     int
	expiryMonths int
}

// seedGroceries is the fixed grocery starting set.
var seedGroceries = []seedGrocery{
	{101, "Rice", 50, 12},
	{102, "Milk Powder", 30, 6},
	{103, "Sugar", 40, 18},
}

// Seed populates both repositories with the fixed starting set. Seeding is
// best effort: a failed insert (typically a duplicate ID from an earlier
// run) is skipped and counted, never returned.
func (m *Manager) Seed() SeedReport {
	now := m.clock()

	groceries := make([]types.GroceryItem, 0, len(seedGroceries))
	for _, g := range seedGroceries {
		groceries = append(groceries, types.GroceryItem{
			ID:         g.id,
			Name:       g.name,
			Quantity:   g.quantity,
			ExpiryDate: now.AddDate(0, g.expiryMonths, 0),
		})
	}

	var report SeedReport
	seedInto(m.log, m.Electronics, seedElectronics, &report)
	seedInto(m.log, m.Groceries, groceries, &report)

	m.log.Infow("seeded", "inserted", report.Inserted, "skipped", report.Skipped)
	return report
}

func seedInto[V types.Stockable[V]](log *zap.SugaredLogger, repo types.Repository[V], items []V, report *SeedReport) {
	for _, item := range items {
		if err := repo.Insert(item); err != nil {
			report.Skipped++
			log.Debugw("seed skipped", "id", item.GetID(), "error", err)
			continue
		}
		report.Inserted++
	}
}
