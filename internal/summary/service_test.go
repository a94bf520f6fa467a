package summary_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grub-core/internal/database"
	"grub-core/internal/food"
	"grub-core/internal/mealentry"
	"grub-core/internal/summary"
	"grub-core/internal/target"
	"grub-core/internal/tombstone"
)

func newFixture(t *testing.T) (*summary.Service, *food.Repository, *mealentry.Repository, *target.Repository) {
	t.Helper()
	db := database.SetupTestDB(t)
	foods := food.NewRepository(db)
	tombstones := tombstone.NewRepository(db)
	meals := mealentry.NewRepository(db, foods, tombstones)
	targets := target.NewRepository(db)
	return summary.NewService(meals, foods, targets), foods, meals, targets
}

func mustCreateFood(t *testing.T, foods *food.Repository, caloriesPer100g float64) *food.Food {
	t.Helper()
	protein, carbs, fat := 10.0, 20.0, 5.0
	f, err := foods.Create(food.CreateFoodRequest{
		Name:            "test food",
		CaloriesPer100g: caloriesPer100g,
		ProteinPer100g:  &protein,
		CarbsPer100g:    &carbs,
		FatPer100g:      &fat,
	})
	require.NoError(t, err)
	return f
}

func TestDailySummary_GroupsByMealTypeInCanonicalOrder(t *testing.T) {
	svc, foods, meals, _ := newFixture(t)
	f := mustCreateFood(t, foods, 200)

	_, err := meals.Create(mealentry.CreateEntryRequest{Date: "2026-01-01", MealType: "dinner", FoodID: f.ID, ServingG: 100})
	require.NoError(t, err)
	_, err = meals.Create(mealentry.CreateEntryRequest{Date: "2026-01-01", MealType: "breakfast", FoodID: f.ID, ServingG: 100})
	require.NoError(t, err)

	s, err := svc.DailySummary("2026-01-01")
	require.NoError(t, err)
	require.Len(t, s.Groups, 2)
	assert.Equal(t, "breakfast", s.Groups[0].MealType, "breakfast must sort before dinner regardless of insertion order")
	assert.Equal(t, "dinner", s.Groups[1].MealType)
	assert.Equal(t, 400.0, s.Totals.Calories)
}

func TestDailySummary_EmptyGroupsOmitted(t *testing.T) {
	svc, _, _, _ := newFixture(t)
	s, err := svc.DailySummary("2026-01-01")
	require.NoError(t, err)
	assert.Empty(t, s.Groups)
	assert.Equal(t, 0.0, s.Totals.Calories)
}

func TestDailySummary_AttachesWeekdayTarget(t *testing.T) {
	svc, _, _, targets := newFixture(t)
	// 2026-01-05 is a Monday -> spec day_of_week 0.
	_, err := targets.Set(0, target.SetTargetRequest{Calories: 2200})
	require.NoError(t, err)

	s, err := svc.DailySummary("2026-01-05")
	require.NoError(t, err)
	require.NotNil(t, s.Target)
	assert.Equal(t, 2200.0, s.Target.Calories)
}

func TestStreak_ZeroWhenNoRecentEntries(t *testing.T) {
	svc, _, _, _ := newFixture(t)
	streak, err := svc.Streak("2026-01-10")
	require.NoError(t, err)
	assert.Equal(t, 0, streak)
}

func TestStreak_CountsConsecutiveDaysIncludingToday(t *testing.T) {
	svc, foods, meals, _ := newFixture(t)
	f := mustCreateFood(t, foods, 100)

	for _, d := range []string{"2026-01-08", "2026-01-09", "2026-01-10"} {
		_, err := meals.Create(mealentry.CreateEntryRequest{Date: d, MealType: "snack", FoodID: f.ID, ServingG: 50})
		require.NoError(t, err)
	}

	streak, err := svc.Streak("2026-01-10")
	require.NoError(t, err)
	assert.Equal(t, 3, streak)
}

func TestStreak_FallsBackToYesterdayWhenTodayEmpty(t *testing.T) {
	svc, foods, meals, _ := newFixture(t)
	f := mustCreateFood(t, foods, 100)

	_, err := meals.Create(mealentry.CreateEntryRequest{Date: "2026-01-09", MealType: "snack", FoodID: f.ID, ServingG: 50})
	require.NoError(t, err)

	streak, err := svc.Streak("2026-01-10")
	require.NoError(t, err)
	assert.Equal(t, 1, streak, "yesterday having entries should still count when today has none")
}

func TestCalorieAverage_OnlyCountsDaysWithEntries(t *testing.T) {
	svc, foods, meals, _ := newFixture(t)
	f := mustCreateFood(t, foods, 200)

	_, err := meals.Create(mealentry.CreateEntryRequest{Date: "2026-01-10", MealType: "snack", FoodID: f.ID, ServingG: 100})
	require.NoError(t, err)
	_, err = meals.Create(mealentry.CreateEntryRequest{Date: "2026-01-08", MealType: "snack", FoodID: f.ID, ServingG: 200})
	require.NoError(t, err)

	avg, err := svc.CalorieAverage("2026-01-10", 3)
	require.NoError(t, err)
	// day 10: 200 kcal, day 9: none, day 8: 400 kcal -> average over 2 contributing days.
	assert.InDelta(t, 300.0, avg, 0.01)
}

func TestGlance_RemainingDerivesMacroGramsFromPercentages(t *testing.T) {
	svc, foods, meals, targets := newFixture(t)
	f := mustCreateFood(t, foods, 200) // 10g protein / 20g carbs / 5g fat per 100g

	proteinPct, carbsPct, fatPct := 30.0, 40.0, 30.0
	_, err := targets.Set(0, target.SetTargetRequest{Calories: 2000, ProteinPct: &proteinPct, CarbsPct: &carbsPct, FatPct: &fatPct})
	require.NoError(t, err)

	_, err = meals.Create(mealentry.CreateEntryRequest{Date: "2026-01-05", MealType: "breakfast", FoodID: f.ID, ServingG: 100})
	require.NoError(t, err)

	g, err := svc.Glance("2026-01-05")
	require.NoError(t, err)
	require.NotNil(t, g.Remaining)
	// target protein grams = 2000 * 0.30 / 4 = 150; eaten 10 -> remaining 140.
	assert.InDelta(t, 140.0, g.Remaining.Protein, 0.01)
	// target carbs grams = 2000 * 0.40 / 4 = 200; eaten 20 -> remaining 180.
	assert.InDelta(t, 180.0, g.Remaining.Carbs, 0.01)
	// target fat grams = 2000 * 0.30 / 9 = 66.67; eaten 5 -> remaining 61.67.
	assert.InDelta(t, 61.67, g.Remaining.Fat, 0.01)
	assert.Equal(t, 1, g.MealCount)
}

func TestGlance_NoTargetLeavesRemainingNil(t *testing.T) {
	svc, _, _, _ := newFixture(t)
	g, err := svc.Glance("2026-01-05")
	require.NoError(t, err)
	assert.Nil(t, g.Remaining)
}

func TestRecentFoods_OrderedByLastLoggedThenCount(t *testing.T) {
	svc, foods, meals, _ := newFixture(t)
	a := mustCreateFood(t, foods, 100)
	b := mustCreateFood(t, foods, 150)

	_, err := meals.Create(mealentry.CreateEntryRequest{Date: "2026-01-01", MealType: "snack", FoodID: a.ID, ServingG: 10})
	require.NoError(t, err)
	_, err = meals.Create(mealentry.CreateEntryRequest{Date: "2026-01-02", MealType: "snack", FoodID: b.ID, ServingG: 10})
	require.NoError(t, err)

	recent, err := svc.RecentFoods(10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, b.ID, recent[0].FoodID, "most recently logged food should lead")
}

func TestQuickLog_DefaultsDateToToday(t *testing.T) {
	svc, foods, _, _ := newFixture(t)
	f := mustCreateFood(t, foods, 100)

	entry, err := svc.QuickLog(summary.QuickLogRequest{FoodID: f.ID, ServingG: 50, MealType: "snack"})
	require.NoError(t, err)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), entry.Date)
}
