package boltdb

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/cloudsync/internal/models"
	"github.com/iudanet/cloudsync/internal/storage"
)

// uploadAll имитирует успешную загрузку всех изменений таблицы
func uploadAll(t *testing.T, store *Storage, table string) {
	t.Helper()
	ctx := context.Background()

	data, next, err := store.GetCloudData(ctx, storage.UploadQuery{Table: table}, "")
	require.NoError(t, err)
	require.Empty(t, next)

	fill := func(op models.OpType, bucket *models.UploadBucket) {
		results := make([]models.RowResult, bucket.Len())
		for i := range bucket.Records {
			gid := bucket.Records[i].Gid
			if gid == "" {
				gid = "gid-" + bucket.Logs[i].HashKey[:8]
			}
			results[i] = models.RowResult{Gid: gid, Version: "1"}
		}
		require.NoError(t, store.FillCloudLogAndAsset(ctx, table, op, bucket, results))
	}
	fill(models.OpInsert, &data.Insert)
	fill(models.OpUpdate, &data.Update)
	fill(models.OpDelete, &data.Delete)
}

func TestStorage_GetCloudData_Buckets(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "notes", models.Row{"id": 1}))
	require.NoError(t, store.Put(ctx, "notes", models.Row{"id": 2}))
	uploadAll(t, store, "notes")

	require.NoError(t, store.Put(ctx, "notes", models.Row{"id": 1, "text": "upd"}))
	require.NoError(t, store.Delete(ctx, "notes", models.Row{"id": 2}))
	require.NoError(t, store.Put(ctx, "notes", models.Row{"id": 3}))

	count, err := store.GetUploadCount(ctx, storage.UploadQuery{Table: "notes"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	data, next, err := store.GetCloudData(ctx, storage.UploadQuery{Table: "notes"}, "")
	require.NoError(t, err)
	assert.Empty(t, next)
	require.Equal(t, 1, data.Insert.Len())
	require.Equal(t, 1, data.Update.Len())
	require.Equal(t, 1, data.Delete.Len())
	assert.Equal(t, "upd", data.Update.Records[0].Data["text"])
	assert.NotEmpty(t, data.Update.Records[0].Gid)
	assert.True(t, data.Delete.Records[0].Deleted)
	assert.Empty(t, data.Insert.Records[0].Gid)
}

func TestStorage_GetCloudData_Paging(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Put(ctx, "notes", models.Row{"id": i}))
	}

	q := storage.UploadQuery{Table: "notes", Limit: 2}
	var (
		token string
		pages int
		seen  []int64
	)
	for {
		data, next, err := store.GetCloudData(ctx, q, token)
		require.NoError(t, err)
		for _, l := range data.Insert.Logs {
			seen = append(seen, l.Timestamp)
		}
		pages++
		if next == "" {
			break
		}
		token = next
	}

	assert.Equal(t, 3, pages)
	require.Len(t, seen, 5)
	for i := 1; i < len(seen); i++ {
		assert.Greater(t, seen[i], seen[i-1])
	}

	_, _, err := store.GetCloudData(ctx, q, "garbage")
	assert.Error(t, err)
}

func TestStorage_GetCloudData_Since(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "notes", models.Row{"id": 1}))
	_, first, err := store.Get(ctx, "notes", models.Row{"id": 1})
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, "notes", models.Row{"id": 2}))

	count, err := store.GetUploadCount(ctx, storage.UploadQuery{Table: "notes", Since: first.Timestamp})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = store.GetUploadCount(ctx, storage.UploadQuery{Table: "notes", Since: first.Timestamp, ForcePush: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestStorage_FillCloudLogAndAsset(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "notes", models.Row{"id": 1}))
	require.NoError(t, store.Put(ctx, "notes", models.Row{"id": 2}))

	data, _, err := store.GetCloudData(ctx, storage.UploadQuery{Table: "notes"}, "")
	require.NoError(t, err)
	require.Equal(t, 2, data.Insert.Len())

	hashes := []string{data.Insert.Logs[0].HashKey, data.Insert.Logs[1].HashKey}
	require.NoError(t, store.MarkUploading(ctx, "notes", hashes))

	results := []models.RowResult{
		{Gid: "g1", Version: "1"},
		{Err: errors.New("rejected")},
	}
	require.NoError(t, store.FillCloudLogAndAsset(ctx, "notes", models.OpInsert, &data.Insert, results))

	ok, err := store.GetInfoByPrimaryKeyOrGid(ctx, "notes", &models.Record{Gid: "g1"})
	require.NoError(t, err)
	assert.True(t, ok.Log.IsConsistent())
	assert.Zero(t, ok.Log.Flag&models.FlagUploading)
	assert.Equal(t, "1", ok.Log.Version)

	failed, err := store.GetInfoByPrimaryKeyOrGid(ctx, "notes", &models.Record{Data: data.Insert.Records[1].Data})
	require.NoError(t, err)
	assert.False(t, failed.Log.IsConsistent())
	assert.Zero(t, failed.Log.Flag&models.FlagUploading)
	assert.Empty(t, failed.Log.CloudGid)

	count, err := store.GetUploadCount(ctx, storage.UploadQuery{Table: "notes"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	err = store.FillCloudLogAndAsset(ctx, "notes", models.OpInsert, &data.Insert, results[:1])
	assert.Error(t, err)
}

func TestStorage_FillCloudLog_RowChangedDuringUpload(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "notes", models.Row{"id": 1, "text": "v1"}))
	data, _, err := store.GetCloudData(ctx, storage.UploadQuery{Table: "notes"}, "")
	require.NoError(t, err)

	// пока запрос в облако выполняется, строку меняют
	require.NoError(t, store.Put(ctx, "notes", models.Row{"id": 1, "text": "v2"}))

	results := []models.RowResult{{Gid: "g1", Version: "1"}}
	require.NoError(t, store.FillCloudLogAndAsset(ctx, "notes", models.OpInsert, &data.Insert, results))

	info, err := store.GetInfoByPrimaryKeyOrGid(ctx, "notes", &models.Record{Gid: "g1"})
	require.NoError(t, err)
	assert.False(t, info.Log.IsConsistent())

	next, _, err := store.GetCloudData(ctx, storage.UploadQuery{Table: "notes"}, "")
	require.NoError(t, err)
	require.Equal(t, 1, next.Update.Len())
	assert.Equal(t, "v2", next.Update.Records[0].Data["text"])
}

func TestStorage_PutCloudSyncData(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	var notified []*models.ChangedData
	store.OnChange(func(device string, data *models.ChangedData) {
		notified = append(notified, data)
	})

	require.NoError(t, store.Put(ctx, "notes", models.Row{"id": 10, "text": "local"}))
	require.NoError(t, store.Put(ctx, "notes", models.Row{"id": 11, "text": "local"}))
	require.NoError(t, store.Put(ctx, "notes", models.Row{"id": 12, "text": "keep"}))

	data := &models.DownloadData{
		Records: []models.Record{
			{Gid: "c1", Version: "1", Device: "remote", CreateTime: 1, ModifyTime: 2, Data: models.Row{"id": 1, "text": "cloud"}},
			{Gid: "c10", Version: "4", Device: "remote", CreateTime: 1, ModifyTime: 3, Data: models.Row{"id": 10, "text": "cloud"}},
			{Gid: "c11", Version: "2", Device: "remote", Data: models.Row{"id": 11}},
			{Gid: "c12", Version: "7", Device: "remote", Data: models.Row{"id": 12}},
		},
		Ops: []models.OpType{models.OpInsert, models.OpUpdate, models.OpDelete, models.OpOnlyUpdateGid},
	}
	require.NoError(t, store.StartTransaction(ctx))
	require.NoError(t, store.PutCloudSyncData(ctx, "notes", data))
	require.NoError(t, store.Commit(ctx))

	row, log, err := store.Get(ctx, "notes", models.Row{"id": 1})
	require.NoError(t, err)
	assert.Equal(t, "cloud", row["text"])
	assert.Equal(t, "c1", log.CloudGid)
	assert.Equal(t, "remote", log.Device)
	assert.True(t, log.IsConsistent())
	assert.Equal(t, int64(2*models.TimestampPerMilli), log.Timestamp)

	row, _, err = store.Get(ctx, "notes", models.Row{"id": 10})
	require.NoError(t, err)
	assert.Equal(t, "cloud", row["text"])

	_, _, err = store.Get(ctx, "notes", models.Row{"id": 11})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	row, log, err = store.Get(ctx, "notes", models.Row{"id": 12})
	require.NoError(t, err)
	assert.Equal(t, "keep", row["text"])
	assert.Equal(t, "c12", log.CloudGid)
	assert.Equal(t, "7", log.Version)
	assert.False(t, log.IsConsistent())

	changed := models.NewChangedData("notes", []string{"id"})
	changed.Add(models.ChangeInsert, []any{1})
	require.NoError(t, store.NotifyChangedData(ctx, "cloud", changed))
	require.Len(t, notified, 1)
	assert.Equal(t, 1, notified[0].Count(models.ChangeInsert))

	err = store.PutCloudSyncData(ctx, "notes", &models.DownloadData{Records: data.Records})
	assert.Error(t, err)
}

func TestStorage_PutCloudSyncData_ForcePushFlags(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "notes", models.Row{"id": 1}))
	uploadAll(t, store, "notes")

	info, err := store.GetInfoByPrimaryKeyOrGid(ctx, "notes", &models.Record{Data: models.Row{"id": 1}})
	require.NoError(t, err)
	gid := info.Log.CloudGid

	apply := func(op models.OpType, rec models.Record) {
		require.NoError(t, store.PutCloudSyncData(ctx, "notes", &models.DownloadData{
			Records: []models.Record{rec},
			Ops:     []models.OpType{op},
		}))
	}

	apply(models.OpSetCloudForcePushFlagZero, models.Record{Gid: gid, Version: "5"})
	info, err = store.GetInfoByPrimaryKeyOrGid(ctx, "notes", &models.Record{Gid: gid})
	require.NoError(t, err)
	assert.False(t, info.Log.IsConsistent())
	assert.Equal(t, "5", info.Log.Version)

	apply(models.OpSetCloudForcePushFlagOne, models.Record{Gid: gid})
	info, err = store.GetInfoByPrimaryKeyOrGid(ctx, "notes", &models.Record{Gid: gid})
	require.NoError(t, err)
	assert.True(t, info.Log.IsConsistent())

	apply(models.OpClearGid, models.Record{Gid: gid, Deleted: true})
	info, err = store.GetInfoByPrimaryKeyOrGid(ctx, "notes", &models.Record{Data: models.Row{"id": 1}})
	require.NoError(t, err)
	assert.Empty(t, info.Log.CloudGid)
	assert.False(t, info.Log.IsConsistent())

	_, err = store.GetInfoByPrimaryKeyOrGid(ctx, "notes", &models.Record{Gid: gid})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStorage_PutCloudSyncData_UpdateTimestamp(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "notes", models.Row{"id": 1}))
	require.NoError(t, store.Put(ctx, "notes", models.Row{"id": 2}))
	uploadAll(t, store, "notes")

	gidOf := func(id int) string {
		info, err := store.GetInfoByPrimaryKeyOrGid(ctx, "notes", &models.Record{Data: models.Row{"id": id}})
		require.NoError(t, err)
		return info.Log.CloudGid
	}
	gid1, gid2 := gidOf(1), gidOf(2)
	apply := func(rec models.Record) {
		require.NoError(t, store.PutCloudSyncData(ctx, "notes", &models.DownloadData{
			Records: []models.Record{rec},
			Ops:     []models.OpType{models.OpUpdateTimestamp},
		}))
	}

	// локальная tombstone совпадает с более поздним удалением в облаке
	require.NoError(t, store.Delete(ctx, "notes", models.Row{"id": 1}))
	count, err := store.GetUploadCount(ctx, storage.UploadQuery{Table: "notes"})
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	apply(models.Record{Gid: gid1, Version: "2", Device: "remote", Deleted: true, ModifyTime: 4102444800000})
	_, err = store.GetInfoByPrimaryKeyOrGid(ctx, "notes", &models.Record{Gid: gid1})
	assert.ErrorIs(t, err, storage.ErrNotFound)
	count, err = store.GetUploadCount(ctx, storage.UploadQuery{Table: "notes"})
	require.NoError(t, err)
	assert.Zero(t, count)

	// живая строка принимает облачный лог
	apply(models.Record{Gid: gid2, Version: "7", Device: "remote", ModifyTime: 4102444800000})
	info, err := store.GetInfoByPrimaryKeyOrGid(ctx, "notes", &models.Record{Gid: gid2})
	require.NoError(t, err)
	assert.Equal(t, "7", info.Log.Version)
	assert.Equal(t, "remote", info.Log.Device)
	assert.True(t, info.Log.IsConsistent())
	assert.Equal(t, int64(4102444800000), info.Log.Millis())
}

func TestStorage_Assets(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	image := models.Asset{Name: "a.png", Hash: "h1", Size: 3}
	rec := models.Record{
		Gid: "g1", Version: "1", Device: "remote", CreateTime: 1, ModifyTime: 1,
		Data: models.Row{"id": 1, "image": image},
	}
	require.NoError(t, store.PutCloudSyncData(ctx, "notes", &models.DownloadData{
		Records: []models.Record{rec},
		Ops:     []models.OpType{models.OpInsert},
	}))

	info, err := store.GetInfoByPrimaryKeyOrGid(ctx, "notes", &models.Record{Gid: "g1"})
	require.NoError(t, err)
	require.Len(t, info.Assets["image"], 1)
	assert.Equal(t, models.AssetDownloading, info.Assets["image"][0].Status)

	downloaded := info.Assets
	downloaded["image"][0].URI = "/tmp/a.png"
	item := &models.DownloadItem{Gid: "g1", Assets: downloaded}
	require.NoError(t, store.FillCloudAssetForDownload(ctx, "notes", item, true))

	info, err = store.GetInfoByPrimaryKeyOrGid(ctx, "notes", &models.Record{Gid: "g1"})
	require.NoError(t, err)
	assert.Equal(t, models.AssetNormal, info.Assets["image"][0].Status)
	assert.Equal(t, "/tmp/a.png", info.Assets["image"][0].URI)

	require.NoError(t, store.FillCloudAssetForDownload(ctx, "notes", item, false))
	info, err = store.GetInfoByPrimaryKeyOrGid(ctx, "notes", &models.Record{Gid: "g1"})
	require.NoError(t, err)
	assert.Equal(t, models.AssetAbnormal, info.Assets["image"][0].Status)

	// неизвестный gid не является ошибкой
	assert.NoError(t, store.FillCloudAssetForDownload(ctx, "notes", &models.DownloadItem{Gid: "nope"}, true))
}

func TestStorage_CleanCloudData(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Put(ctx, "notes", models.Row{"id": i, "text": fmt.Sprint(i)}))
	}
	uploadAll(t, store, "notes")
	require.NoError(t, store.Delete(ctx, "notes", models.Row{"id": 2}))
	require.NoError(t, store.PutLocalWaterMark(ctx, "notes", models.WaterMarkNormal, 99))
	require.NoError(t, store.PutCloudWaterMark(ctx, "", "notes", "0009"))

	require.NoError(t, store.CleanCloudData(ctx, []string{"notes"}))

	count, err := store.GetUploadCount(ctx, storage.UploadQuery{Table: "notes"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	data, _, err := store.GetCloudData(ctx, storage.UploadQuery{Table: "notes"}, "")
	require.NoError(t, err)
	assert.Equal(t, 2, data.Insert.Len())

	mark, err := store.GetLocalWaterMark(ctx, "notes", models.WaterMarkNormal)
	require.NoError(t, err)
	assert.Zero(t, mark)
	cursor, err := store.GetCloudWaterMark(ctx, "", "notes")
	require.NoError(t, err)
	assert.Empty(t, cursor)
}

func TestStorage_LockedRowsAreNotUploaded(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "notes", models.Row{"id": 1}))
	require.NoError(t, store.SetRowLocked(ctx, "notes", models.Row{"id": 1}, true))

	count, err := store.GetUploadCount(ctx, storage.UploadQuery{Table: "notes"})
	require.NoError(t, err)
	assert.Zero(t, count)

	info, err := store.GetInfoByPrimaryKeyOrGid(ctx, "notes", &models.Record{Data: models.Row{"id": 1}})
	require.NoError(t, err)
	assert.True(t, info.Log.IsLocked())

	require.NoError(t, store.SetRowLocked(ctx, "notes", models.Row{"id": 1}, false))
	count, err = store.GetUploadCount(ctx, storage.UploadQuery{Table: "notes"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
