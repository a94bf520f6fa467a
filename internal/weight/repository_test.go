package weight_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grub-core/internal/database"
	"grub-core/internal/weight"
)

func TestRepository_UpsertInsertsThenReplaces(t *testing.T) {
	db := database.SetupTestDB(t)
	repo := weight.NewRepository(db)

	e, err := repo.Upsert(weight.UpsertEntryRequest{Date: "2026-01-01", WeightKg: 80.0})
	require.NoError(t, err)
	assert.NotZero(t, e.ID)
	assert.NotEmpty(t, e.UUID)

	updated, err := repo.Upsert(weight.UpsertEntryRequest{Date: "2026-01-01", WeightKg: 79.5})
	require.NoError(t, err)
	assert.Equal(t, e.ID, updated.ID, "upsert by date must replace in place, not duplicate")
	assert.Equal(t, e.UUID, updated.UUID)
	assert.Equal(t, 79.5, updated.WeightKg)

	byDate, err := repo.GetByDate("2026-01-01")
	require.NoError(t, err)
	require.NotNil(t, byDate)
	assert.Equal(t, 79.5, byDate.WeightKg)
}

func TestRepository_GetByDateMissReturnsNilNil(t *testing.T) {
	db := database.SetupTestDB(t)
	repo := weight.NewRepository(db)

	e, err := repo.GetByDate("2026-01-01")
	require.NoError(t, err)
	assert.Nil(t, e)
}

func TestRepository_GetRangeInclusive(t *testing.T) {
	db := database.SetupTestDB(t)
	repo := weight.NewRepository(db)

	for _, d := range []string{"2026-01-01", "2026-01-02", "2026-01-03"} {
		_, err := repo.Upsert(weight.UpsertEntryRequest{Date: d, WeightKg: 80})
		require.NoError(t, err)
	}

	entries, err := repo.GetRange("2026-01-01", "2026-01-02")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestRepository_MergeIncomingLWW(t *testing.T) {
	db := database.SetupTestDB(t)
	repo := weight.NewRepository(db)

	existing, err := repo.Upsert(weight.UpsertEntryRequest{Date: "2026-01-01", WeightKg: 80})
	require.NoError(t, err)

	older := weight.Entry{
		UUID: "incoming-uuid", Date: "2026-01-01", WeightKg: 999,
		UpdatedAt: existing.UpdatedAt.Add(-time.Hour),
	}
	require.NoError(t, repo.MergeIncoming(older))
	unchanged, err := repo.GetByDate("2026-01-01")
	require.NoError(t, err)
	assert.Equal(t, 80.0, unchanged.WeightKg, "an older incoming write must lose LWW")

	newer := weight.Entry{
		UUID: "incoming-uuid-2", Date: "2026-01-01", WeightKg: 75,
		UpdatedAt: existing.UpdatedAt.Add(time.Hour),
	}
	require.NoError(t, repo.MergeIncoming(newer))
	changed, err := repo.GetByDate("2026-01-01")
	require.NoError(t, err)
	assert.Equal(t, 75.0, changed.WeightKg, "a newer incoming write must win LWW")
	assert.Equal(t, existing.ID, changed.ID, "LWW replace must preserve the local row identity")
}

func TestRepository_DeleteByID(t *testing.T) {
	db := database.SetupTestDB(t)
	repo := weight.NewRepository(db)

	e, err := repo.Upsert(weight.UpsertEntryRequest{Date: "2026-01-01", WeightKg: 80})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteByID(e.ID))
	err = repo.DeleteByID(e.ID)
	assert.Error(t, err, "deleting an already-deleted entry should 404")
}
