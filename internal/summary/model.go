// Package summary computes the read-only aggregation views over meal
// entries: the per-day nutrition summary, the logging streak, the rolling
// calorie average, and the compact watch projections.
package summary

import (
	"grub-core/internal/mealentry"
	"grub-core/internal/target"
)

// Macro is a set of calorie/macro totals.
type Macro struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

func (m *Macro) add(calories, protein, carbs, fat float64) {
	m.Calories += calories
	m.Protein += protein
	m.Carbs += carbs
	m.Fat += fat
}

// MealGroup is one meal-type's entries for a day plus their subtotal.
type MealGroup struct {
	MealType string                    `json:"meal_type"`
	Entries  []mealentry.WithNutrition `json:"entries"`
	Subtotal Macro                     `json:"subtotal"`
}

// DailySummary is the full aggregation for one civil date: entries
// grouped by meal type in canonical order (empty groups omitted), whole
// day totals, and the target for that date's weekday, if one is set.
type DailySummary struct {
	Date   string             `json:"date"`
	Groups []MealGroup        `json:"groups"`
	Totals Macro              `json:"totals"`
	Target *target.DailyTarget `json:"target,omitempty"`
}

// WatchGlance is the compact today's-status projection: totals, the
// configured target and what's left of it, meal count, and streak.
type WatchGlance struct {
	Date      string              `json:"date"`
	Totals    Macro               `json:"totals"`
	Target    *target.DailyTarget `json:"target,omitempty"`
	Remaining *Macro              `json:"remaining,omitempty"`
	MealCount int                 `json:"meal_count"`
	Streak    int                 `json:"streak"`
}

// RecentFood is one recently-logged food annotated with how it was last
// served and how many times it has been logged in total.
type RecentFood struct {
	FoodID          uint    `json:"food_id"`
	FoodName        string  `json:"food_name"`
	LastDate        string  `json:"last_date"`
	LastMealType    string  `json:"last_meal_type"`
	LastServingG    float64 `json:"last_serving_g"`
	LogCount        int     `json:"log_count"`
	CaloriesPer100g float64 `json:"calories_per_100g"`
}

// QuickLogRequest is the minimal-insert body for POST /api/watch/quick-log.
// Date defaults to today (UTC) when omitted.
type QuickLogRequest struct {
	FoodID   uint    `json:"food_id"`
	ServingG float64 `json:"serving_g"`
	MealType string  `json:"meal_type"`
	Date     *string `json:"date,omitempty"`
}
