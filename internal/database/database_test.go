package database

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/healthara/backend/config"
	"github.com/pageza/healthara/backend/internal/models"
	"github.com/pageza/healthara/backend/internal/testhelpers"
)

func TestOpen(t *testing.T) {
	t.Run("should return no handle for the file store", func(t *testing.T) {
		db, err := Open(&config.Config{ProfileStore: config.StoreFile})
		require.NoError(t, err)
		assert.Nil(t, db)
	})

	t.Run("should open sqlite", func(t *testing.T) {
		db, err := Open(&config.Config{ProfileStore: config.StoreSQLite, SQLitePath: t.TempDir() + "/test.db"})
		require.NoError(t, err)
		require.NotNil(t, db)
		assert.Equal(t, "sqlite", db.Dialector.Name())
	})
}

func TestSeedDefaultProfile(t *testing.T) {
	ctx := context.Background()
	db := testhelpers.SetupSQLiteDB(t)
	require.NoError(t, RunMigrations(db))

	t.Run("should insert a default record once", func(t *testing.T) {
		inserted, err := SeedDefaultProfile(ctx, db, "default")
		require.NoError(t, err)
		assert.True(t, inserted)

		inserted, err = SeedDefaultProfile(ctx, db, "default")
		require.NoError(t, err)
		assert.False(t, inserted)
	})

	t.Run("should store a loadable default document", func(t *testing.T) {
		var rec models.ProfileRecord
		require.NoError(t, db.Where("record_key = ?", "default").First(&rec).Error)

		var p models.HealthProfile
		require.NoError(t, json.Unmarshal(rec.Document, &p))
		assert.Equal(t, models.DefaultActivityLevel, p.HealthGoals.ActivityLevel)
	})
}

func TestSeedDefaultProfilePostgres(t *testing.T) {
	db := testhelpers.SetupPostgresDB(t)
	require.NoError(t, RunMigrations(db))

	inserted, err := SeedDefaultProfile(context.Background(), db, "default")
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = SeedDefaultProfile(context.Background(), db, "default")
	require.NoError(t, err)
	assert.False(t, inserted)
}
