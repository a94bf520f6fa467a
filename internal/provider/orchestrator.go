package provider

import (
	"log/slog"
	"strings"

	"grub-core/internal/common"
	"grub-core/internal/errs"
	"grub-core/internal/food"
)

// FoodStore is the subset of food.Repository the orchestrator needs,
// narrowed to an interface so tests can substitute an in-memory fake
// without standing up a database.
type FoodStore interface {
	Search(query string) ([]food.Food, error)
	GetByBarcode(barcode string) (*food.Food, error)
	UpsertByBarcode(req food.CreateFoodRequest, source common.FoodSource) (*food.Food, error)
}

// Orchestrator combines local search with the pluggable external
// provider and caches results.
type Orchestrator struct {
	foods    FoodStore
	provider FoodLookupProvider
}

func NewOrchestrator(foods FoodStore, lookup FoodLookupProvider) *Orchestrator {
	return &Orchestrator{foods: foods, provider: lookup}
}

// Search runs the local search first, then the provider; remote results
// are cached by barcode upsert and merged with local results,
// deduplicating by local ID (local rows take precedence). A failed
// remote call during search yields an empty remote list rather than an
// error; local results are still returned.
func (o *Orchestrator) Search(query string) ([]food.Food, error) {
	local, err := o.foods.Search(query)
	if err != nil {
		return nil, err
	}

	remote, err := o.provider.Search(query)
	if err != nil {
		slog.Warn("provider search failed, returning local results only", "error", err)
		remote = nil
	}

	seen := make(map[uint]bool, len(local))
	merged := make([]food.Food, 0, len(local)+len(remote))
	for _, f := range local {
		seen[f.ID] = true
		merged = append(merged, f)
	}

	for _, nf := range remote {
		cached, err := o.cacheRemote(nf, common.FoodSourceExternal)
		if err != nil {
			slog.Warn("failed to cache remote search result", "name", nf.Name, "error", err)
			continue
		}
		if seen[cached.ID] {
			continue
		}
		seen[cached.ID] = true
		merged = append(merged, *cached)
	}

	return merged, nil
}

// LookupBarcode consults the local cache first; the provider is called
// only on miss, and the result is cached before return. Returns
// (nil, nil) when neither the cache nor the provider has the barcode.
func (o *Orchestrator) LookupBarcode(code string) (*food.Food, error) {
	cached, err := o.foods.GetByBarcode(code)
	if err == nil {
		return cached, nil
	}
	if ae := errs.AsAppError(err); ae.StatusCode != 404 {
		return nil, err
	}

	remote, err := o.provider.LookupBarcode(code)
	if err != nil {
		return nil, errs.NewInternalError(err)
	}
	if remote == nil {
		return nil, nil
	}

	return o.cacheRemote(*remote, common.FoodSourceExternal)
}

// cacheRemote attempts upsert-by-barcode; if the barcode unexpectedly
// conflicts with a different existing row (should not occur under the
// uniqueness invariant, but handled defensively), the result is retried
// as a plain insert with the barcode stripped.
func (o *Orchestrator) cacheRemote(nf NewFood, source common.FoodSource) (*food.Food, error) {
	req := food.CreateFoodRequest{
		Name:            nf.Name,
		Brand:           nf.Brand,
		Barcode:         nf.Barcode,
		CaloriesPer100g: nf.CaloriesPer100g,
		ProteinPer100g:  nf.ProteinPer100g,
		CarbsPer100g:    nf.CarbsPer100g,
		FatPer100g:      nf.FatPer100g,
	}

	cached, err := o.foods.UpsertByBarcode(req, source)
	if err == nil {
		return cached, nil
	}
	if !isUniqueConstraintError(err) {
		return nil, err
	}

	req.Barcode = nil
	return o.foods.UpsertByBarcode(req, source)
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique")
}
