package boltdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/cloudsync/internal/models"
	"github.com/iudanet/cloudsync/internal/storage"
)

var testSchema = models.TableSchema{
	Name: "notes",
	Fields: []models.Field{
		{Name: "id", Type: models.FieldInt, PrimaryKey: true},
		{Name: "text", Type: models.FieldText, Nullable: true},
		{Name: "image", Type: models.FieldAsset, Nullable: true},
	},
}

// createTestStorage создает временное хранилище с таблицей notes
func createTestStorage(t *testing.T) (*Storage, func()) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	ctx := context.Background()
	store, err := New(ctx, dbPath, "device-local")
	require.NoError(t, err)
	require.NoError(t, store.CreateTable(ctx, testSchema))
	require.NoError(t, store.SetCloudSchema(ctx, testSchema))

	cleanup := func() {
		require.NoError(t, store.Close())
	}
	return store, cleanup
}

func TestStorage_PutGet(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "notes", models.Row{"id": 1, "text": "hello"}))

	row, log, err := store.Get(ctx, "notes", models.Row{"id": 1})
	require.NoError(t, err)
	assert.Equal(t, "hello", row["text"])
	assert.Equal(t, "device-local", log.Device)
	assert.NotEmpty(t, log.HashKey)
	assert.False(t, log.IsConsistent())
	assert.NotZero(t, log.Flag&models.FlagLocal)

	// hash key не меняется при изменении содержимого
	require.NoError(t, store.Put(ctx, "notes", models.Row{"id": 1, "text": "changed"}))
	_, log2, err := store.Get(ctx, "notes", models.Row{"id": 1})
	require.NoError(t, err)
	assert.Equal(t, log.HashKey, log2.HashKey)
	assert.Greater(t, log2.Timestamp, log.Timestamp)
	assert.Equal(t, log.WriteTimestamp, log2.WriteTimestamp)
}

func TestStorage_PutErrors(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	err := store.Put(ctx, "notes", models.Row{"text": "no pk"})
	assert.ErrorIs(t, err, storage.ErrInvalidRow)

	err = store.Put(ctx, "unknown", models.Row{"id": 1})
	assert.ErrorIs(t, err, storage.ErrSchemaMismatch)

	_, _, err = store.Get(ctx, "notes", models.Row{"id": 42})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStorage_Delete(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	t.Run("never uploaded row is removed", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "notes", models.Row{"id": 1}))
		require.NoError(t, store.Delete(ctx, "notes", models.Row{"id": 1}))

		info, err := store.GetInfoByPrimaryKeyOrGid(ctx, "notes", &models.Record{Data: models.Row{"id": 1}})
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.Nil(t, info)
	})

	t.Run("uploaded row leaves tombstone", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "notes", models.Row{"id": 2, "text": "x"}))
		uploadAll(t, store, "notes")

		require.NoError(t, store.Delete(ctx, "notes", models.Row{"id": 2}))

		info, err := store.GetInfoByPrimaryKeyOrGid(ctx, "notes", &models.Record{Data: models.Row{"id": 2}})
		require.NoError(t, err)
		assert.True(t, info.Log.IsDeleted())
		assert.NotEmpty(t, info.Log.CloudGid)

		_, _, err = store.Get(ctx, "notes", models.Row{"id": 2})
		assert.ErrorIs(t, err, storage.ErrNotFound)

		err = store.Delete(ctx, "notes", models.Row{"id": 2})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestStorage_CheckSchema(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	assert.NoError(t, store.CheckSchema(ctx, []string{"notes"}))
	assert.ErrorIs(t, store.CheckSchema(ctx, []string{"missing"}), storage.ErrSchemaMismatch)

	other := models.TableSchema{
		Name:   "local_only",
		Fields: []models.Field{{Name: "id", Type: models.FieldText, PrimaryKey: true}},
	}
	require.NoError(t, store.CreateTable(ctx, other))
	assert.ErrorIs(t, store.CheckSchema(ctx, []string{"local_only"}), storage.ErrSchemaMismatch)

	changed := other
	changed.Fields = []models.Field{{Name: "id", Type: models.FieldInt, PrimaryKey: true}}
	require.NoError(t, store.SetCloudSchema(ctx, changed))
	assert.ErrorIs(t, store.CheckSchema(ctx, []string{"local_only"}), storage.ErrSchemaMismatch)

	pks, assets, err := store.GetPrimaryColNamesWithAssetsFields(ctx, "notes")
	require.NoError(t, err)
	assert.Equal(t, []string{"id"}, pks)
	assert.Equal(t, []string{"image"}, assets)
}

func TestStorage_WaterMarks(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	mark, err := store.GetLocalWaterMark(ctx, "notes", models.WaterMarkNormal)
	require.NoError(t, err)
	assert.Zero(t, mark)

	require.NoError(t, store.PutLocalWaterMark(ctx, "notes", models.WaterMarkNormal, 100))
	// меньшее значение игнорируется
	require.NoError(t, store.PutLocalWaterMark(ctx, "notes", models.WaterMarkNormal, 50))
	mark, err = store.GetLocalWaterMark(ctx, "notes", models.WaterMarkNormal)
	require.NoError(t, err)
	assert.Equal(t, int64(100), mark)

	forcePush, err := store.GetLocalWaterMark(ctx, "notes", models.WaterMarkForcePush)
	require.NoError(t, err)
	assert.Zero(t, forcePush)

	require.NoError(t, store.PutCloudWaterMark(ctx, "alice", "notes", "0005"))
	require.NoError(t, store.PutCloudWaterMark(ctx, "alice", "notes", ""))
	cursor, err := store.GetCloudWaterMark(ctx, "alice", "notes")
	require.NoError(t, err)
	assert.Equal(t, "0005", cursor)

	cursor, err = store.GetCloudWaterMark(ctx, "bob", "notes")
	require.NoError(t, err)
	assert.Empty(t, cursor)
}

func TestStorage_Transaction(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.StartTransaction(ctx))
	assert.ErrorIs(t, store.StartTransaction(ctx), storage.ErrTransaction)
	require.NoError(t, store.PutCloudWaterMark(ctx, "", "notes", "0001"))
	require.NoError(t, store.Rollback(ctx))

	cursor, err := store.GetCloudWaterMark(ctx, "", "notes")
	require.NoError(t, err)
	assert.Empty(t, cursor)

	require.NoError(t, store.StartTransaction(ctx))
	require.NoError(t, store.PutCloudWaterMark(ctx, "", "notes", "0002"))
	require.NoError(t, store.Commit(ctx))

	cursor, err = store.GetCloudWaterMark(ctx, "", "notes")
	require.NoError(t, err)
	assert.Equal(t, "0002", cursor)

	assert.ErrorIs(t, store.Commit(ctx), storage.ErrTransaction)
	assert.NoError(t, store.Rollback(ctx))
}

func TestStorage_ClosedStorage(t *testing.T) {
	store, _ := createTestStorage(t)
	require.NoError(t, store.Close())

	ctx := context.Background()
	assert.ErrorIs(t, store.Put(ctx, "notes", models.Row{"id": 1}), storage.ErrStorageClosed)
	assert.ErrorIs(t, store.StartTransaction(ctx), storage.ErrStorageClosed)
	_, err := store.GetLocalWaterMark(ctx, "notes", models.WaterMarkNormal)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	assert.NoError(t, store.Close())
}

func TestStorage_ClockSurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	store, err := New(ctx, dbPath, "dev")
	require.NoError(t, err)
	require.NoError(t, store.CreateTable(ctx, testSchema))
	require.NoError(t, store.Put(ctx, "notes", models.Row{"id": 1}))
	_, log, err := store.Get(ctx, "notes", models.Row{"id": 1})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := New(ctx, dbPath, "dev")
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	assert.GreaterOrEqual(t, reopened.clock.Last(), log.Timestamp)
	assert.Greater(t, reopened.clock.Now(), log.Timestamp)
}
