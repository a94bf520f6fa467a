package target_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grub-core/internal/database"
	"grub-core/internal/target"
)

func TestRepository_SetThenGetByDay(t *testing.T) {
	db := database.SetupTestDB(t)
	repo := target.NewRepository(db)

	protein := 30.0
	set, err := repo.Set(0, target.SetTargetRequest{Calories: 2200, ProteinPct: &protein})
	require.NoError(t, err)
	assert.Equal(t, 0, set.DayOfWeek)

	got, err := repo.GetByDay(0)
	require.NoError(t, err)
	assert.Equal(t, 2200.0, got.Calories)

	_, err = repo.GetByDay(1)
	assert.Error(t, err, "unset weekday should 404")
}

func TestRepository_DeleteAllClearsEveryDay(t *testing.T) {
	db := database.SetupTestDB(t)
	repo := target.NewRepository(db)

	for day := 0; day < 7; day++ {
		_, err := repo.Set(day, target.SetTargetRequest{Calories: 2000})
		require.NoError(t, err)
	}

	require.NoError(t, repo.DeleteAll())
	all, err := repo.GetAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRepository_UpsertLWW(t *testing.T) {
	db := database.SetupTestDB(t)
	repo := target.NewRepository(db)

	existing, err := repo.Set(0, target.SetTargetRequest{Calories: 2000})
	require.NoError(t, err)

	older := target.DailyTarget{DayOfWeek: 0, Calories: 9999, UpdatedAt: existing.UpdatedAt.Add(-time.Hour)}
	require.NoError(t, repo.Upsert(older))
	unchanged, err := repo.GetByDay(0)
	require.NoError(t, err)
	assert.Equal(t, 2000.0, unchanged.Calories, "older incoming write must lose LWW")

	newer := target.DailyTarget{DayOfWeek: 0, Calories: 1800, UpdatedAt: existing.UpdatedAt.Add(time.Hour)}
	require.NoError(t, repo.Upsert(newer))
	changed, err := repo.GetByDay(0)
	require.NoError(t, err)
	assert.Equal(t, 1800.0, changed.Calories, "newer incoming write must win LWW")
}

func TestRepository_UpsertInsertsWhenAbsent(t *testing.T) {
	db := database.SetupTestDB(t)
	repo := target.NewRepository(db)

	require.NoError(t, repo.Upsert(target.DailyTarget{DayOfWeek: 3, Calories: 2100, UpdatedAt: time.Now().UTC()}))
	got, err := repo.GetByDay(3)
	require.NoError(t, err)
	assert.Equal(t, 2100.0, got.Calories)
}
