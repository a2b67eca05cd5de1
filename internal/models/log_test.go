package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareLogs(t *testing.T) {
	tests := []struct {
		name string
		a    LogInfo
		b    LogInfo
		want int
	}{
		{
			name: "a newer",
			a:    LogInfo{Timestamp: 20 * TimestampPerMilli, Device: "a"},
			b:    LogInfo{Timestamp: 10 * TimestampPerMilli, Device: "b"},
			want: 1,
		},
		{
			name: "b newer",
			a:    LogInfo{Timestamp: 10 * TimestampPerMilli, Device: "z"},
			b:    LogInfo{Timestamp: 20 * TimestampPerMilli, Device: "a"},
			want: -1,
		},
		{
			name: "same millisecond, device decides",
			a:    LogInfo{Timestamp: 10*TimestampPerMilli + 5, Device: "device-b"},
			b:    LogInfo{Timestamp: 10*TimestampPerMilli + 900, Device: "device-a"},
			want: 1,
		},
		{
			name: "same millisecond, lower device loses",
			a:    LogInfo{Timestamp: 10 * TimestampPerMilli, Device: "device-a"},
			b:    LogInfo{Timestamp: 10 * TimestampPerMilli, Device: "device-b"},
			want: -1,
		},
		{
			name: "indistinguishable",
			a:    LogInfo{Timestamp: 10 * TimestampPerMilli, Device: "x"},
			b:    LogInfo{Timestamp: 10*TimestampPerMilli + 1, Device: "x"},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompareLogs(&tt.a, &tt.b))
		})
	}
}

func TestRecord_LogInfo(t *testing.T) {
	rec := Record{
		Gid:        "gid-1",
		Version:    "3",
		Device:     "dev-1",
		CreateTime: 100,
		ModifyTime: 200,
		Deleted:    true,
	}

	info := rec.LogInfo()

	assert.Equal(t, "gid-1", info.CloudGid)
	assert.Equal(t, "3", info.Version)
	assert.Equal(t, int64(200*TimestampPerMilli), info.Timestamp)
	assert.Equal(t, int64(100*TimestampPerMilli), info.WriteTimestamp)
	assert.True(t, info.IsDeleted())
	assert.Equal(t, int64(200), info.Millis())
}

func TestParseSyncMode(t *testing.T) {
	for m := SyncModePush; m <= SyncModeForcePull; m++ {
		parsed, err := ParseSyncMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
		assert.True(t, m.Valid())
	}

	_, err := ParseSyncMode("sideways")
	assert.Error(t, err)
	assert.False(t, SyncMode(0).Valid())
}

func TestUploadData_MaxTimestamp(t *testing.T) {
	var d UploadData
	d.Insert.Append(Record{}, LogInfo{Timestamp: 5}, nil)
	d.Update.Append(Record{}, LogInfo{Timestamp: 42}, nil)
	d.Delete.Append(Record{}, LogInfo{Timestamp: 7}, nil)

	assert.Equal(t, 3, d.Len())
	assert.Equal(t, int64(42), d.MaxTimestamp())
}

func TestExtractAndApplyAssets(t *testing.T) {
	row := Row{
		"id":     1,
		"avatar": map[string]any{"name": "a.png", "hash": "h1", "size": 3},
		"photos": []any{
			map[string]any{"name": "p1", "hash": "h2"},
			map[string]any{"name": "p2", "hash": "h3"},
		},
	}

	assets, err := ExtractAssets(row, []string{"avatar", "photos", "missing"})
	require.NoError(t, err)
	require.Len(t, assets, 2)
	assert.Equal(t, "a.png", assets["avatar"][0].Name)
	assert.Len(t, assets["photos"], 2)

	updated := SetAssetStatus(assets, AssetDownloading)
	ApplyAssets(row, updated)

	single, ok := row["avatar"].(Asset)
	require.True(t, ok)
	assert.Equal(t, AssetDownloading, single.Status)

	list, ok := row["photos"].(Assets)
	require.True(t, ok)
	assert.Equal(t, AssetDownloading, list[1].Status)
	// исходные значения не меняются
	assert.Equal(t, AssetNormal, assets["photos"][1].Status)
}

func TestChangedData(t *testing.T) {
	c := NewChangedData("t", []string{"id"})
	assert.True(t, c.Empty())

	c.Add(ChangeInsert, []any{1})
	c.Add(ChangeInsert, []any{2})
	c.Add(ChangeDelete, []any{3})

	assert.False(t, c.Empty())
	assert.Equal(t, 2, c.Count(ChangeInsert))
	assert.Equal(t, 1, c.Count(ChangeDelete))
	assert.Equal(t, 0, c.Count(ChangeUpdate))
}
