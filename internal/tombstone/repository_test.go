package tombstone_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grub-core/internal/database"
	"grub-core/internal/tombstone"
)

func TestRepository_PutIsIdempotent(t *testing.T) {
	db := database.SetupTestDB(t)
	repo := tombstone.NewRepository(db)

	tomb := tombstone.Tombstone{UUID: "food-1", Table: "foods", DeletedAt: time.Now().UTC()}
	require.NoError(t, repo.Put(tomb))
	require.NoError(t, repo.Put(tomb))

	all, err := repo.GetAll()
	require.NoError(t, err)
	assert.Len(t, all, 1, "a second Put for the same (uuid, table) must not duplicate")
}

func TestRepository_Exists(t *testing.T) {
	db := database.SetupTestDB(t)
	repo := tombstone.NewRepository(db)

	exists, err := repo.Exists("missing", "foods")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.Put(tombstone.Tombstone{UUID: "food-1", Table: "foods", DeletedAt: time.Now().UTC()}))

	exists, err = repo.Exists("food-1", "foods")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRepository_GetSinceFiltersByWatermark(t *testing.T) {
	db := database.SetupTestDB(t)
	repo := tombstone.NewRepository(db)

	old := time.Now().UTC().Add(-time.Hour)
	fresh := time.Now().UTC()
	require.NoError(t, repo.Put(tombstone.Tombstone{UUID: "old", Table: "foods", DeletedAt: old}))
	require.NoError(t, repo.Put(tombstone.Tombstone{UUID: "new", Table: "foods", DeletedAt: fresh}))

	since, err := repo.GetSince(old.Add(time.Minute))
	require.NoError(t, err)
	assert.Len(t, since, 1)
	assert.Equal(t, "new", since[0].UUID)

	all, err := repo.GetSince(time.Time{})
	require.NoError(t, err)
	assert.Len(t, all, 2, "zero watermark means full state")
}
