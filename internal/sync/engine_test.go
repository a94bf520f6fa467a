package sync_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"grub-core/internal/database"
	"grub-core/internal/food"
	"grub-core/internal/mealentry"
	"grub-core/internal/recipe"
	"grub-core/internal/sync"
	"grub-core/internal/target"
	"grub-core/internal/tombstone"
	"grub-core/internal/weight"
)

func newEngine(t *testing.T) (*sync.Engine, *gorm.DB, *food.Repository, *mealentry.Repository, *recipe.Repository, *tombstone.Repository) {
	t.Helper()
	db := database.SetupTestDB(t)
	foods := food.NewRepository(db)
	tombstones := tombstone.NewRepository(db)
	meals := mealentry.NewRepository(db, foods, tombstones)
	recipes := recipe.NewRepository(db, foods, tombstones)
	targets := target.NewRepository(db)
	weights := weight.NewRepository(db)
	engine := sync.NewEngine(foods, meals, recipes, targets, weights, tombstones)
	return engine, db, foods, meals, recipes, tombstones
}

func TestChangesSince_ZeroWatermarkReturnsFullState(t *testing.T) {
	engine, _, foods, _, _, _ := newEngine(t)
	_, err := foods.Create(food.CreateFoodRequest{Name: "apple", CaloriesPer100g: 52})
	require.NoError(t, err)

	delta, err := engine.ChangesSince(time.Time{})
	require.NoError(t, err)
	assert.Len(t, delta.Foods, 1)
}

func TestChangesSince_ExcludesRowsOlderThanWatermark(t *testing.T) {
	engine, _, foods, _, _, _ := newEngine(t)
	_, err := foods.Create(food.CreateFoodRequest{Name: "apple", CaloriesPer100g: 52})
	require.NoError(t, err)

	future := time.Now().UTC().Add(time.Hour)
	delta, err := engine.ChangesSince(future)
	require.NoError(t, err)
	assert.Empty(t, delta.Foods)
}

func TestApply_FoodsLWWByUUID(t *testing.T) {
	engine, _, foods, _, _, _ := newEngine(t)
	local, err := foods.Create(food.CreateFoodRequest{Name: "apple", CaloriesPer100g: 52})
	require.NoError(t, err)

	older := sync.FoodDTO{
		UUID: local.UUID, Name: "stale apple", CaloriesPer100g: 1,
		CreatedAt: local.CreatedAt, UpdatedAt: local.UpdatedAt.Add(-time.Hour),
	}
	require.NoError(t, engine.Apply(sync.Delta{Foods: []sync.FoodDTO{older}}))
	unchanged, err := foods.GetByUUID(local.UUID)
	require.NoError(t, err)
	assert.Equal(t, "apple", unchanged.Name, "an older incoming write must lose LWW")

	newer := sync.FoodDTO{
		UUID: local.UUID, Name: "fresh apple", CaloriesPer100g: 60,
		CreatedAt: local.CreatedAt, UpdatedAt: local.UpdatedAt.Add(time.Hour),
	}
	require.NoError(t, engine.Apply(sync.Delta{Foods: []sync.FoodDTO{newer}}))
	changed, err := foods.GetByUUID(local.UUID)
	require.NoError(t, err)
	assert.Equal(t, "fresh apple", changed.Name, "a newer incoming write must win LWW")
}

func TestApply_MealEntrySkippedWhenFoodAbsent(t *testing.T) {
	engine, _, _, meals, _, _ := newEngine(t)

	d := sync.Delta{MealEntries: []sync.MealEntryDTO{{
		UUID: uuid.NewString(), Date: "2026-01-01", MealType: "snack",
		FoodUUID: uuid.NewString(), ServingG: 50,
		CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
	}}}
	require.NoError(t, engine.Apply(d))

	entries, err := meals.GetByDate("2026-01-01")
	require.NoError(t, err)
	assert.Empty(t, entries, "a meal entry referencing an unknown food must be skipped, not errored")
}

func TestApply_MealEntryResolvesFoodFromSameBatch(t *testing.T) {
	engine, _, _, meals, _, _ := newEngine(t)
	now := time.Now().UTC()
	foodUUID := uuid.NewString()

	d := sync.Delta{
		Foods: []sync.FoodDTO{{UUID: foodUUID, Name: "banana", CaloriesPer100g: 89, CreatedAt: now, UpdatedAt: now}},
		MealEntries: []sync.MealEntryDTO{{
			UUID: uuid.NewString(), Date: "2026-01-01", MealType: "snack",
			FoodUUID: foodUUID, ServingG: 100, CreatedAt: now, UpdatedAt: now,
		}},
	}
	require.NoError(t, engine.Apply(d))

	entries, err := meals.GetByDate("2026-01-01")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 89.0, entries[0].Calories)
}

func TestApply_TombstoneDeletesAndIsIdempotent(t *testing.T) {
	engine, _, foods, _, _, tombstones := newEngine(t)
	f, err := foods.Create(food.CreateFoodRequest{Name: "apple", CaloriesPer100g: 52})
	require.NoError(t, err)

	td := sync.TombstoneDTO{UUID: f.UUID, Table: "foods", DeletedAt: time.Now().UTC()}
	require.NoError(t, engine.Apply(sync.Delta{Tombstones: []sync.TombstoneDTO{td}}))

	_, err = foods.GetByUUID(f.UUID)
	assert.Error(t, err, "tombstoned food must be gone")

	// Re-applying the same tombstone must not error and must not duplicate.
	require.NoError(t, engine.Apply(sync.Delta{Tombstones: []sync.TombstoneDTO{td}}))
	all, err := tombstones.GetAll()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestApply_FutureTombstoneTimestampClamped(t *testing.T) {
	engine, _, foods, _, _, tombstones := newEngine(t)
	f, err := foods.Create(food.CreateFoodRequest{Name: "apple", CaloriesPer100g: 52})
	require.NoError(t, err)

	future := time.Now().UTC().Add(24 * time.Hour)
	td := sync.TombstoneDTO{UUID: f.UUID, Table: "foods", DeletedAt: future}
	require.NoError(t, engine.Apply(sync.Delta{Tombstones: []sync.TombstoneDTO{td}}))

	all, err := tombstones.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].DeletedAt.Before(future), "a future deleted_at must be clamped to now")
}

func TestApply_TombstoneOlderThanRowIsNoOp(t *testing.T) {
	engine, _, foods, _, _, tombstones := newEngine(t)
	f, err := foods.Create(food.CreateFoodRequest{Name: "apple", CaloriesPer100g: 52})
	require.NoError(t, err)

	td := sync.TombstoneDTO{UUID: f.UUID, Table: "foods", DeletedAt: f.UpdatedAt.Add(-time.Hour)}
	require.NoError(t, engine.Apply(sync.Delta{Tombstones: []sync.TombstoneDTO{td}}))

	survivor, err := foods.GetByUUID(f.UUID)
	require.NoError(t, err, "a row updated after the tombstone's deleted_at must survive")
	assert.Equal(t, "apple", survivor.Name)

	all, err := tombstones.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 1, "the tombstone is still recorded even though the delete was skipped")
}

func TestApply_WeightEntryInsertedAndReturnedByChangesSince(t *testing.T) {
	engine, _, _, _, _, _ := newEngine(t)
	now := time.Now().UTC()

	w := weight.Entry{UUID: uuid.NewString(), Date: "2026-01-01", WeightKg: 80, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, engine.Apply(sync.Delta{WeightEntries: []weight.Entry{w}}))

	delta, err := engine.ChangesSince(time.Time{})
	require.NoError(t, err)
	require.Len(t, delta.WeightEntries, 1)
	assert.Equal(t, 80.0, delta.WeightEntries[0].WeightKg)
}
