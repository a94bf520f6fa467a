// Package provider abstracts the external food catalog behind a
// two-method interface and combines it with local search/cache. The
// default implementation is an Open Food Facts client behind the
// pluggable FoodLookupProvider interface the core takes as a dependency.
package provider

// NewFood is what a provider returns: enough fields to insert a Food row,
// never a Food itself, so providers stay decoupled from the store.
type NewFood struct {
	Name            string
	Brand           *string
	Barcode         *string
	CaloriesPer100g float64
	ProteinPer100g  *float64
	CarbsPer100g    *float64
	FatPer100g      *float64
}

// FoodLookupProvider is the pluggable external catalog interface. The
// core takes any object offering these two methods; tests substitute an
// in-memory fake.
type FoodLookupProvider interface {
	Search(query string) ([]NewFood, error)
	LookupBarcode(code string) (*NewFood, error)
}
