package recipe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grub-core/internal/database"
	"grub-core/internal/food"
	"grub-core/internal/recipe"
	"grub-core/internal/tombstone"
)

func newFixture(t *testing.T) (*recipe.Repository, *food.Repository) {
	t.Helper()
	db := database.SetupTestDB(t)
	foods := food.NewRepository(db)
	tombstones := tombstone.NewRepository(db)
	return recipe.NewRepository(db, foods, tombstones), foods
}

// TestScenario2_RecipeMath is the spec's second concrete scenario:
// calories_per_100g = (330+336)*100/500 = 133.2, default_serving_g = 250.
func TestScenario2_RecipeMath(t *testing.T) {
	recipes, foods := newFixture(t)

	food1, err := foods.Create(food.CreateFoodRequest{Name: "food1", CaloriesPer100g: 165})
	require.NoError(t, err)
	food2, err := foods.Create(food.CreateFoodRequest{Name: "food2", CaloriesPer100g: 112})
	require.NoError(t, err)

	out, err := recipes.Create(recipe.CreateRecipeRequest{
		Name:     "CR",
		Portions: 2,
		Ingredients: []recipe.CreateIngredientRequest{
			{FoodID: food1.ID, QuantityG: 200},
			{FoodID: food2.ID, QuantityG: 300},
		},
	})
	require.NoError(t, err)

	assert.InDelta(t, 133.2, out.CaloriesPer100g, 0.01)
	assert.InDelta(t, 250.0, out.DefaultServingG, 0.01)
	assert.InDelta(t, 500.0, out.TotalWeightG, 0.01)
}

func TestRepository_MaterializeZeroIngredientsYieldsZeroedVirtualFood(t *testing.T) {
	recipes, _ := newFixture(t)

	out, err := recipes.Create(recipe.CreateRecipeRequest{Name: "Empty", Portions: 1})
	require.NoError(t, err)

	assert.Equal(t, 0.0, out.CaloriesPer100g, "a recipe with no ingredients must not divide by zero")
	assert.Equal(t, 0.0, out.ProteinPer100g)
	assert.Equal(t, 0.0, out.DefaultServingG)
	assert.Equal(t, 0.0, out.TotalWeightG)
}

func TestRepository_RemoveLastIngredientReZeroesVirtualFood(t *testing.T) {
	recipes, foods := newFixture(t)

	f, err := foods.Create(food.CreateFoodRequest{Name: "flour", CaloriesPer100g: 364})
	require.NoError(t, err)

	created, err := recipes.Create(recipe.CreateRecipeRequest{
		Name:        "Bread",
		Portions:    1,
		Ingredients: []recipe.CreateIngredientRequest{{FoodID: f.ID, QuantityG: 500}},
	})
	require.NoError(t, err)
	require.Len(t, created.Ingredients, 1)

	out, err := recipes.RemoveIngredient(created.ID, created.Ingredients[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, out.CaloriesPer100g, "removing the only ingredient must re-zero the materialized total")
}

func TestRepository_DeleteEmitsTombstonesForRecipeIngredientsAndVirtualFood(t *testing.T) {
	db := database.SetupTestDB(t)
	foods := food.NewRepository(db)
	tombstones := tombstone.NewRepository(db)
	recipes := recipe.NewRepository(db, foods, tombstones)

	f, err := foods.Create(food.CreateFoodRequest{Name: "butter", CaloriesPer100g: 717})
	require.NoError(t, err)
	created, err := recipes.Create(recipe.CreateRecipeRequest{
		Name:        "Toast",
		Portions:    1,
		Ingredients: []recipe.CreateIngredientRequest{{FoodID: f.ID, QuantityG: 10}},
	})
	require.NoError(t, err)

	require.NoError(t, recipes.Delete(created.ID))

	all, err := tombstones.GetAll()
	require.NoError(t, err)

	byTable := make(map[string]int)
	for _, ts := range all {
		byTable[ts.Table]++
	}
	assert.Equal(t, 1, byTable["recipes"])
	assert.Equal(t, 1, byTable["recipe_ingredients"])
	assert.Equal(t, 1, byTable["foods"], "deleting a recipe must tombstone its virtual food too")
}
