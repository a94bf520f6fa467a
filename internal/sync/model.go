// Package sync implements the bidirectional delta-sync protocol: delta
// extraction relative to a watermark, and a fixed-order LWW merge of an
// incoming batch into the local store. Every cross-table reference in the
// wire format is expressed by UUID; local auto-increment IDs never leave
// the process.
package sync

import (
	"time"

	"grub-core/internal/target"
	"grub-core/internal/weight"
)

// FoodDTO is the wire shape of a food row.
type FoodDTO struct {
	UUID            string    `json:"uuid"`
	Name            string    `json:"name"`
	Brand           *string   `json:"brand,omitempty"`
	Barcode         *string   `json:"barcode,omitempty"`
	CaloriesPer100g float64   `json:"calories_per_100g"`
	ProteinPer100g  *float64  `json:"protein_per_100g,omitempty"`
	CarbsPer100g    *float64  `json:"carbs_per_100g,omitempty"`
	FatPer100g      *float64  `json:"fat_per_100g,omitempty"`
	DefaultServingG *float64  `json:"default_serving_g,omitempty"`
	Source          string    `json:"source"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// MealEntryDTO is the wire shape of a meal entry; it references its food
// by UUID rather than local ID. Calories/macros are intentionally absent:
// they are never stored and are re-derived locally after merge.
type MealEntryDTO struct {
	UUID            string    `json:"uuid"`
	Date            string    `json:"date"`
	MealType        string    `json:"meal_type"`
	FoodUUID        string    `json:"food_uuid"`
	ServingG        float64   `json:"serving_g"`
	DisplayUnit     *string   `json:"display_unit,omitempty"`
	DisplayQuantity *float64  `json:"display_quantity,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// RecipeDTO is the wire shape of a recipe; it references its virtual
// food by UUID.
type RecipeDTO struct {
	UUID      string    `json:"uuid"`
	FoodUUID  string    `json:"food_uuid"`
	Portions  float64   `json:"portions"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IngredientDTO is the wire shape of a recipe ingredient; it references
// its recipe and food by UUID.
type IngredientDTO struct {
	UUID       string    `json:"uuid"`
	RecipeUUID string    `json:"recipe_uuid"`
	FoodUUID   string    `json:"food_uuid"`
	QuantityG  float64   `json:"quantity_g"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TombstoneDTO is the wire shape of a tombstone.
type TombstoneDTO struct {
	UUID      string    `json:"uuid"`
	Table     string    `json:"table_name"`
	DeletedAt time.Time `json:"deleted_at"`
}

// Delta is a batch of changes: either what changed on the server since a
// watermark (delta extraction), or what a client wants to push (merge
// input). ServerTimestamp is only meaningful on output: the fresh
// watermark the caller should persist for its next pull. Targets and
// weight entries have no cross-table FK and no UUID (targets) or a
// natural date key (weights), so they travel as their local model types
// rather than needing a translated wire DTO.
type Delta struct {
	ServerTimestamp   time.Time              `json:"server_timestamp"`
	Foods             []FoodDTO              `json:"foods"`
	MealEntries       []MealEntryDTO         `json:"meal_entries"`
	Recipes           []RecipeDTO            `json:"recipes"`
	RecipeIngredients []IngredientDTO        `json:"recipe_ingredients"`
	Targets           []target.DailyTarget   `json:"targets"`
	WeightEntries     []weight.Entry         `json:"weight_entries"`
	Tombstones        []TombstoneDTO         `json:"tombstones"`
}
