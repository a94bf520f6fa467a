package food_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grub-core/internal/database"
	"grub-core/internal/food"
)

func TestRepository_CreateRejectsDuplicateBarcode(t *testing.T) {
	db := database.SetupTestDB(t)
	repo := food.NewRepository(db)

	barcode := "049000042566"
	_, err := repo.Create(food.CreateFoodRequest{Name: "Cola", CaloriesPer100g: 42, Barcode: &barcode})
	require.NoError(t, err)

	_, err = repo.Create(food.CreateFoodRequest{Name: "Cola Zero", CaloriesPer100g: 0, Barcode: &barcode})
	assert.Error(t, err, "a second food with the same barcode must be rejected")
}

func TestRepository_CreateAllowsMultipleEmptyBarcodes(t *testing.T) {
	db := database.SetupTestDB(t)
	repo := food.NewRepository(db)

	_, err := repo.Create(food.CreateFoodRequest{Name: "Apple", CaloriesPer100g: 52})
	require.NoError(t, err)
	_, err = repo.Create(food.CreateFoodRequest{Name: "Banana", CaloriesPer100g: 89})
	assert.NoError(t, err, "two foods with no barcode at all must not collide")
}

func TestRepository_SearchMatchesNameAndBrandCaseInsensitive(t *testing.T) {
	db := database.SetupTestDB(t)
	repo := food.NewRepository(db)

	brand := "Acme"
	_, err := repo.Create(food.CreateFoodRequest{Name: "Chicken Breast", CaloriesPer100g: 165, Brand: &brand})
	require.NoError(t, err)

	results, err := repo.Search("chicken")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Chicken Breast", results[0].Name)

	results, err = repo.Search("ACME")
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

// TestScenario1_BasicLog covers the "insert a food, log it, check the
// daily summary" walkthrough without going through the summary package,
// verifying the food side of the derived-nutrition math on its own.
func TestScenario1_BasicLog(t *testing.T) {
	db := database.SetupTestDB(t)
	repo := food.NewRepository(db)

	protein := 31.0
	f, err := repo.Create(food.CreateFoodRequest{Name: "Chicken", CaloriesPer100g: 165, ProteinPer100g: &protein})
	require.NoError(t, err)

	scale := 200.0 / 100.0
	assert.InDelta(t, 330.0, f.CaloriesPer100g*scale, 0.01)
	assert.InDelta(t, 62.0, *f.ProteinPer100g*scale, 0.01)
}
