package mealentry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grub-core/internal/database"
	"grub-core/internal/food"
	"grub-core/internal/mealentry"
	"grub-core/internal/tombstone"
)

func newFixture(t *testing.T) (*mealentry.Repository, *food.Repository) {
	t.Helper()
	db := database.SetupTestDB(t)
	foods := food.NewRepository(db)
	tombstones := tombstone.NewRepository(db)
	return mealentry.NewRepository(db, foods, tombstones), foods
}

// TestScenario1_BasicLog is the spec's first concrete scenario: a food
// and one meal entry against it, read back with derived nutrition.
func TestScenario1_BasicLog(t *testing.T) {
	meals, foods := newFixture(t)

	protein := 31.0
	f, err := foods.Create(food.CreateFoodRequest{Name: "Chicken", CaloriesPer100g: 165, ProteinPer100g: &protein})
	require.NoError(t, err)

	entry, err := meals.Create(mealentry.CreateEntryRequest{
		Date:     "2024-06-15",
		MealType: "lunch",
		FoodID:   f.ID,
		ServingG: 200,
	})
	require.NoError(t, err)
	assert.InDelta(t, 330.0, entry.Calories, 0.01)
	assert.InDelta(t, 62.0, entry.Protein, 0.01)

	byDate, err := meals.GetByDate("2024-06-15")
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.Equal(t, "lunch", byDate[0].MealType)
	assert.InDelta(t, 330.0, byDate[0].Calories, 0.01)
}

func TestRepository_UpdatePartialPatchLeavesUnmentionedFieldsAlone(t *testing.T) {
	meals, foods := newFixture(t)

	f, err := foods.Create(food.CreateFoodRequest{Name: "Rice", CaloriesPer100g: 130})
	require.NoError(t, err)

	unit := "cup"
	qty := 1.0
	entry, err := meals.Create(mealentry.CreateEntryRequest{
		Date: "2024-06-15", MealType: "dinner", FoodID: f.ID, ServingG: 150,
		DisplayUnit: &unit, DisplayQuantity: &qty,
	})
	require.NoError(t, err)

	newServing := 300.0
	updated, err := meals.Update(entry.ID, mealentry.UpdateEntryRequest{ServingG: &newServing})
	require.NoError(t, err)
	assert.Equal(t, 300.0, updated.ServingG)
	require.NotNil(t, updated.DisplayUnit)
	assert.Equal(t, "cup", *updated.DisplayUnit, "a field not mentioned in the patch must survive untouched")
}

func TestRepository_DeleteEmitsTombstone(t *testing.T) {
	db := database.SetupTestDB(t)
	foods := food.NewRepository(db)
	tombstones := tombstone.NewRepository(db)
	meals := mealentry.NewRepository(db, foods, tombstones)

	f, err := foods.Create(food.CreateFoodRequest{Name: "Oats", CaloriesPer100g: 389})
	require.NoError(t, err)
	entry, err := meals.Create(mealentry.CreateEntryRequest{Date: "2024-06-15", MealType: "breakfast", FoodID: f.ID, ServingG: 50})
	require.NoError(t, err)

	require.NoError(t, meals.Delete(entry.ID))

	all, err := tombstones.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "meal_entries", all[0].Table)
	assert.Equal(t, entry.UUID, all[0].UUID)
}
