// Package validate enforces the cross-cutting invariants every boundary
// payload (REST body, sync push, import file) must satisfy before it
// touches the store.
package validate

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"grub-core/internal/common"
	"grub-core/internal/errs"
)

var v = validator.New()

// Food enforces: non-empty name, non-negative macros.
type FoodInput struct {
	Name            string   `validate:"required"`
	CaloriesPer100g float64  `validate:"gte=0"`
	ProteinPer100g  *float64 `validate:"omitempty,gte=0"`
	CarbsPer100g    *float64 `validate:"omitempty,gte=0"`
	FatPer100g      *float64 `validate:"omitempty,gte=0"`
}

func Food(in FoodInput) error {
	if err := v.Struct(in); err != nil {
		return errs.NewBadRequestError(fieldMessage(err))
	}
	return nil
}

// MealEntry enforces: canonical meal type, serving_g > 0, valid date.
type MealEntryInput struct {
	Date     string
	MealType string
	ServingG float64
}

func MealEntry(in MealEntryInput) error {
	if _, err := ParseCivilDate(in.Date); err != nil {
		return errs.NewBadRequestError("invalid date: " + err.Error())
	}
	if !common.IsValidMealType(in.MealType) {
		return errs.NewBadRequestError(fmt.Sprintf("invalid meal_type %q", in.MealType))
	}
	if in.ServingG <= 0 {
		return errs.NewBadRequestError("serving_g must be greater than 0")
	}
	return nil
}

// Recipe enforces: portions > 0.
func Recipe(portions float64) error {
	if portions <= 0 {
		return errs.NewBadRequestError("portions must be greater than 0")
	}
	return nil
}

// RecipeIngredient enforces: quantity_g > 0.
func RecipeIngredient(quantityG float64) error {
	if quantityG <= 0 {
		return errs.NewBadRequestError("quantity_g must be greater than 0")
	}
	return nil
}

// Target enforces: day_of_week in [0,6], calories > 0, macro triple
// all-or-nothing summing to 100.
func Target(dayOfWeek int, calories float64, proteinPct, carbsPct, fatPct *float64) error {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return errs.NewBadRequestError("day_of_week must be between 0 and 6")
	}
	if calories <= 0 {
		return errs.NewBadRequestError("calories must be greater than 0")
	}
	present := 0
	if proteinPct != nil {
		present++
	}
	if carbsPct != nil {
		present++
	}
	if fatPct != nil {
		present++
	}
	if present == 0 {
		return nil
	}
	if present != 3 {
		return errs.NewBadRequestError("protein_pct, carbs_pct, and fat_pct must all be present or all absent")
	}
	sum := *proteinPct + *carbsPct + *fatPct
	if diff := sum - 100; diff < -1e-6 || diff > 1e-6 {
		return errs.NewBadRequestError(fmt.Sprintf("macro percentages must sum to 100, got %.4f", sum))
	}
	return nil
}

// Weight enforces: weight_kg > 0, valid date.
func Weight(date string, weightKg float64) error {
	if _, err := ParseCivilDate(date); err != nil {
		return errs.NewBadRequestError("invalid date: " + err.Error())
	}
	if weightKg <= 0 {
		return errs.NewBadRequestError("weight_kg must be greater than 0")
	}
	return nil
}

// Tombstone enforces: allowed table name, parseable timestamp (future
// clamped by the caller, not rejected here).
func Tombstone(tableName, deletedAt string) error {
	if !common.TombstoneTables[tableName] {
		return errs.NewBadRequestError(fmt.Sprintf("tombstone table %q is not allowed", tableName))
	}
	if _, err := time.Parse(time.RFC3339, deletedAt); err != nil {
		return errs.NewBadRequestError("tombstone deleted_at must be RFC 3339: " + err.Error())
	}
	return nil
}

// ParseCivilDate parses a YYYY-MM-DD date, the only date shape accepted
// at any boundary.
func ParseCivilDate(date string) (time.Time, error) {
	return time.Parse("2006-01-02", date)
}

func fieldMessage(err error) string {
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("%s failed validation: %s", fe.Field(), fe.Tag())
	}
	return err.Error()
}
