// Package exportimport implements the full-state snapshot surface:
// GET /api/export (current v3 format) and POST /api/import (v1 legacy,
// ID-preserving; v2+, the same LWW merge the sync engine uses).
package exportimport

import (
	"time"

	"grub-core/internal/sync"
	"grub-core/internal/target"
	"grub-core/internal/weight"
)

const currentExportVersion = 3

// ExportV3 is the full-state snapshot format. Every cross-table reference
// is expressed by UUID, identical to the sync engine's delta wire shape:
// export is simply "changes since the beginning of time".
type ExportV3 struct {
	Version           int                  `json:"version"`
	ExportedAt        time.Time            `json:"exported_at"`
	DeviceID          string               `json:"device_id"`
	Foods             []sync.FoodDTO       `json:"foods"`
	MealEntries       []sync.MealEntryDTO  `json:"meal_entries"`
	Recipes           []sync.RecipeDTO     `json:"recipes"`
	RecipeIngredients []sync.IngredientDTO `json:"recipe_ingredients"`
	Targets           []target.DailyTarget `json:"targets"`
	WeightEntries     []weight.Entry       `json:"weight_entries"`
	Tombstones        []sync.TombstoneDTO  `json:"tombstones"`
}

// versionProbe reads just enough of an import body to decide which path
// handles it: version 1 (or absent) is the legacy ID-preserving format,
// version 2+ uses the same UUID/LWW shape the sync engine merges.
type versionProbe struct {
	Version int `json:"version"`
}

// LegacyFood is the v1 food shape: no uuid, no timestamps.
type LegacyFood struct {
	ID              uint     `json:"id"`
	Name            string   `json:"name"`
	Brand           *string  `json:"brand,omitempty"`
	Barcode         *string  `json:"barcode,omitempty"`
	CaloriesPer100g float64  `json:"calories_per_100g"`
	ProteinPer100g  *float64 `json:"protein_per_100g,omitempty"`
	CarbsPer100g    *float64 `json:"carbs_per_100g,omitempty"`
	FatPer100g      *float64 `json:"fat_per_100g,omitempty"`
	DefaultServingG *float64 `json:"default_serving_g,omitempty"`
}

// LegacyMealEntry is the v1 meal entry shape: references food by local ID.
type LegacyMealEntry struct {
	ID              uint     `json:"id"`
	Date            string   `json:"date"`
	MealType        string   `json:"meal_type"`
	FoodID          uint     `json:"food_id"`
	ServingG        float64  `json:"serving_g"`
	DisplayUnit     *string  `json:"display_unit,omitempty"`
	DisplayQuantity *float64 `json:"display_quantity,omitempty"`
}

// LegacyIngredient is the v1 recipe ingredient shape.
type LegacyIngredient struct {
	FoodID    uint    `json:"food_id"`
	QuantityG float64 `json:"quantity_g"`
}

// LegacyRecipe is the v1 recipe shape: a name and an inline ingredient list.
type LegacyRecipe struct {
	Name        string             `json:"name"`
	Portions    float64            `json:"portions"`
	Ingredients []LegacyIngredient `json:"ingredients"`
}

// LegacyTarget is the v1 singleton target: the same goal applied to every
// weekday, rather than per-day targets.
type LegacyTarget struct {
	Calories   float64  `json:"calories"`
	ProteinPct *float64 `json:"protein_pct,omitempty"`
	CarbsPct   *float64 `json:"carbs_pct,omitempty"`
	FatPct     *float64 `json:"fat_pct,omitempty"`
}

// LegacyWeightEntry is the v1 weight entry shape.
type LegacyWeightEntry struct {
	Date     string  `json:"date"`
	WeightKg float64 `json:"weight_kg"`
	Notes    *string `json:"notes,omitempty"`
}

// ImportV1 is the legacy import body: plain ID-preserving rows, a single
// target applied to all seven weekdays.
type ImportV1 struct {
	Foods         []LegacyFood        `json:"foods"`
	MealEntries   []LegacyMealEntry   `json:"meal_entries"`
	Recipes       []LegacyRecipe      `json:"recipes"`
	Target        *LegacyTarget       `json:"target"`
	WeightEntries []LegacyWeightEntry `json:"weight_entries"`
}

// ImportResult summarizes what an import applied, returned to the caller
// as a receipt rather than leaving them to infer it from a bare 200.
type ImportResult struct {
	Version           int `json:"version"`
	FoodsApplied      int `json:"foods_applied"`
	MealEntries       int `json:"meal_entries_applied"`
	Recipes           int `json:"recipes_applied"`
	RecipeIngredients int `json:"recipe_ingredients_applied"`
	Targets           int `json:"targets_applied"`
	WeightEntries     int `json:"weight_entries_applied"`
	Tombstones        int `json:"tombstones_applied"`
}
