package mealentry

import (
	"encoding/json"
	"time"
)

// Entry is a single logged consumption. Derived calories/macros are never
// stored; they are projected at read time from the joined Food.
type Entry struct {
	ID              uint      `json:"id" gorm:"column:id;primaryKey"`
	UUID            string    `json:"uuid" gorm:"column:uuid;uniqueIndex"`
	Date            string    `json:"date" gorm:"column:date;not null;index"`
	MealType        string    `json:"meal_type" gorm:"column:meal_type;not null"`
	FoodID          uint      `json:"food_id" gorm:"column:food_id;not null"`
	ServingG        float64   `json:"serving_g" gorm:"column:serving_g;not null"`
	DisplayUnit     *string   `json:"display_unit,omitempty" gorm:"column:display_unit"`
	DisplayQuantity *float64  `json:"display_quantity,omitempty" gorm:"column:display_quantity"`
	CreatedAt       time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Entry) TableName() string { return "meal_entries" }

// WithNutrition is an Entry joined with its Food's derived values.
type WithNutrition struct {
	Entry
	FoodName string  `json:"food_name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// CreateEntryRequest is the request body for POST /api/meals. FoodID
// resolves to a local surrogate key at the REST boundary; sync payloads
// instead carry a food UUID resolved internally by the sync engine.
type CreateEntryRequest struct {
	Date            string   `json:"date"`
	MealType        string   `json:"meal_type"`
	FoodID          uint     `json:"food_id"`
	ServingG        float64  `json:"serving_g"`
	DisplayUnit     *string  `json:"display_unit,omitempty"`
	DisplayQuantity *float64 `json:"display_quantity,omitempty"`
}

// optionalString and optionalFloat distinguish "key absent" (no change)
// from "key present with null" (clear the field) in a partial patch.
// encoding/json calls UnmarshalJSON even for a literal null key, but
// never calls it when the key is missing. That asymmetry is what makes
// the double-option encoding work.
type optionalString struct {
	set   bool
	value *string
}

func (o *optionalString) UnmarshalJSON(data []byte) error {
	o.set = true
	if string(data) == "null" {
		o.value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.value = &s
	return nil
}

type optionalFloat struct {
	set   bool
	value *float64
}

func (o *optionalFloat) UnmarshalJSON(data []byte) error {
	o.set = true
	if string(data) == "null" {
		o.value = nil
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	o.value = &f
	return nil
}

// UpdateEntryRequest is the partial patch body for PUT /api/meals/{id}.
// ServingG, MealType, and Date are plain optional fields (absent means
// unchanged, by Go's normal nil-pointer semantics); DisplayUnit and
// DisplayQuantity need the double-option encoding because "clear this
// field" and "leave it alone" are both expressed with the same JSON type.
type UpdateEntryRequest struct {
	ServingG        *float64       `json:"serving_g,omitempty"`
	MealType        *string        `json:"meal_type,omitempty"`
	Date            *string        `json:"date,omitempty"`
	DisplayUnit     optionalString `json:"display_unit"`
	DisplayQuantity optionalFloat  `json:"display_quantity"`
}

// HasDisplayUnit reports whether display_unit was mentioned in the patch.
func (u UpdateEntryRequest) HasDisplayUnit() bool { return u.DisplayUnit.set }

// DisplayUnitValue is the value to apply when HasDisplayUnit is true.
func (u UpdateEntryRequest) DisplayUnitValue() *string { return u.DisplayUnit.value }

// HasDisplayQuantity reports whether display_quantity was mentioned in the patch.
func (u UpdateEntryRequest) HasDisplayQuantity() bool { return u.DisplayQuantity.set }

// DisplayQuantityValue is the value to apply when HasDisplayQuantity is true.
func (u UpdateEntryRequest) DisplayQuantityValue() *float64 { return u.DisplayQuantity.value }
