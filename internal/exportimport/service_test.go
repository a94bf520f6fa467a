package exportimport_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grub-core/internal/database"
	"grub-core/internal/exportimport"
	"grub-core/internal/food"
	"grub-core/internal/mealentry"
	"grub-core/internal/recipe"
	"grub-core/internal/sync"
	"grub-core/internal/target"
	"grub-core/internal/tombstone"
	"grub-core/internal/weight"
)

func newFixture(t *testing.T) (*exportimport.Service, *food.Repository) {
	t.Helper()
	db := database.SetupTestDB(t)
	foods := food.NewRepository(db)
	tombstones := tombstone.NewRepository(db)
	meals := mealentry.NewRepository(db, foods, tombstones)
	recipes := recipe.NewRepository(db, foods, tombstones)
	targets := target.NewRepository(db)
	weights := weight.NewRepository(db)
	engine := sync.NewEngine(foods, meals, recipes, targets, weights, tombstones)
	deviceID := func() (string, error) { return "test-device", nil }
	svc := exportimport.NewService(db, engine, recipes, targets, deviceID)
	return svc, foods
}

func TestExport_IncludesDeviceIDAndCurrentVersion(t *testing.T) {
	svc, foods := newFixture(t)
	_, err := foods.Create(food.CreateFoodRequest{Name: "apple", CaloriesPer100g: 52})
	require.NoError(t, err)

	snapshot, err := svc.Export()
	require.NoError(t, err)
	assert.Equal(t, 3, snapshot.Version)
	assert.Equal(t, "test-device", snapshot.DeviceID)
	assert.Len(t, snapshot.Foods, 1)
}

func TestImport_LegacyV1PreservesFoodID(t *testing.T) {
	svc, foods := newFixture(t)

	body := `{
		"foods": [{"id": 42, "name": "legacy apple", "calories_per_100g": 52}]
	}`
	result, err := svc.Import([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Version)
	assert.Equal(t, 1, result.FoodsApplied)

	f, err := foods.GetByID(42)
	require.NoError(t, err)
	assert.Equal(t, "legacy apple", f.Name)
}

func TestImport_LegacyV1ExpandsSingletonTargetToAllWeekdays(t *testing.T) {
	svc, _ := newFixture(t)

	body := `{"target": {"calories": 2200}}`
	result, err := svc.Import([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, 7, result.Targets)
}

func TestImport_CurrentVersionMergesThroughSyncEngine(t *testing.T) {
	svc, foods := newFixture(t)

	body := exportimport.ExportV3{
		Version: 3,
		Foods:   []sync.FoodDTO{{UUID: "food-uuid-1", Name: "synced apple", CaloriesPer100g: 52}},
	}
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	result, err := svc.Import(raw)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Version)
	assert.Equal(t, 1, result.FoodsApplied)

	f, err := foods.GetByUUID("food-uuid-1")
	require.NoError(t, err)
	assert.Equal(t, "synced apple", f.Name)
}

func TestImport_InvalidBodyIsBadRequest(t *testing.T) {
	svc, _ := newFixture(t)
	_, err := svc.Import([]byte("not json"))
	assert.Error(t, err)
}
