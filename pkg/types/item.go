package types

import "time"

// Item is the capability set every storable record exposes. ID and Name are
// fixed at construction; Quantity is the only field a repository mutates.
type Item interface {
	GetID() int
	GetName() string
	GetQuantity() int
}

// Stockable is the constraint repositories are generic over. WithQuantity
// returns a copy of the item with only the quantity replaced, which lets a
// repository store values and still update quantities in place.
type Stockable[V any] interface {
	Item
	WithQuantity(q int) V
}

// Item kinds. Each kind is stored in its own repository instance and kinds
// are never mixed.
const (
	KindElectronics = "electronics"
	KindGroceries   = "groceries"
)

// StandardKinds lists all item kinds for enumeration.
var StandardKinds = []string{
	KindElectronics,
	KindGroceries,
}

// ElectronicItem is a stocked electronic product.
type ElectronicItem struct {
	ID             int    `json:"id" yaml:"id"`
	Name           string `json:"name" yaml:"name"`
	Quantity       int    `json:"quantity" yaml:"quantity"`
	Brand          string `json:"brand" yaml:"brand"`
	WarrantyMonths int    `json:"warranty_months" yaml:"warranty_months"`
}

// Compile-time check: ElectronicItem must satisfy Stockable.
var _ Stockable[ElectronicItem] = ElectronicItem{}

func (e ElectronicItem) GetID() int       { return e.ID }
func (e ElectronicItem) GetName() string  { return e.Name }
func (e ElectronicItem) GetQuantity() int { return e.Quantity }

// WithQuantity returns a copy of e with Quantity set to q.
func (e ElectronicItem) WithQuantity(q int) ElectronicItem {
	e.Quantity = q
	return e
}

// GroceryItem is a stocked perishable product.
type GroceryItem struct {
	ID         int       `json:"id" yaml:"id"`
	Name       string    `json:"name" yaml:"name"`
	Quantity   int       `json:"quantity" yaml:"quantity"`
	ExpiryDate time.Time `json:"expiry_date" yaml:"expiry_date"`
}

var _ Stockable[GroceryItem] = GroceryItem{}

func (g GroceryItem) GetID() int       { return g.ID }
func (g GroceryItem) GetName() string  { return g.Name }
func (g GroceryItem) GetQuantity() int { return g.Quantity }

// WithQuantity returns a copy of g with Quantity set to q.
func (g GroceryItem) WithQuantity(q int) GroceryItem {
	g.Quantity = q
	return g
}
