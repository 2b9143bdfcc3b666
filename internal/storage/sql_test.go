package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/healthara/backend/internal/models"
	"github.com/pageza/healthara/backend/internal/testhelpers"
)

func exerciseStore(t *testing.T, store RecordStore) {
	ctx := context.Background()

	_, err := store.Read(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Write(ctx, []byte(`{"version":1}`)))
	data, err := store.Read(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1}`, string(data))

	require.NoError(t, store.Write(ctx, []byte(`{"version":2}`)))
	data, err = store.Read(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":2}`, string(data))
}

func TestSQLStore(t *testing.T) {
	t.Run("should read back the last written document", func(t *testing.T) {
		exerciseStore(t, NewSQLStore(testhelpers.SetupSQLiteDB(t), "default"))
	})

	t.Run("should keep one row per key", func(t *testing.T) {
		db := testhelpers.SetupSQLiteDB(t)
		ctx := context.Background()
		require.NoError(t, NewSQLStore(db, "a").Write(ctx, []byte(`{"who":"a"}`)))
		require.NoError(t, NewSQLStore(db, "a").Write(ctx, []byte(`{"who":"a2"}`)))
		require.NoError(t, NewSQLStore(db, "b").Write(ctx, []byte(`{"who":"b"}`)))

		var count int64
		require.NoError(t, db.Model(&models.ProfileRecord{}).Count(&count).Error)
		assert.Equal(t, int64(2), count)

		data, err := NewSQLStore(db, "b").Read(ctx)
		require.NoError(t, err)
		assert.JSONEq(t, `{"who":"b"}`, string(data))
	})
}
