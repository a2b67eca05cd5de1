package assets

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iudanet/cloudsync/internal/cloud"
	"github.com/iudanet/cloudsync/internal/crypto"
	"github.com/iudanet/cloudsync/internal/models"
)

// memoryBlobs возвращает мок BlobStore, хранящий данные в памяти
func memoryBlobs() *BlobStoreMock {
	var mu sync.Mutex
	blobs := make(map[string][]byte)
	return &BlobStoreMock{
		PutBlobFunc: func(ctx context.Context, hash string, data []byte) error {
			mu.Lock()
			defer mu.Unlock()
			blobs[hash] = append([]byte(nil), data...)
			return nil
		},
		GetBlobFunc: func(ctx context.Context, hash string) ([]byte, error) {
			mu.Lock()
			defer mu.Unlock()
			data, ok := blobs[hash]
			if !ok {
				return nil, cloud.ErrAssetNotFound
			}
			return data, nil
		},
	}
}

func TestLoader_UploadThenDownload(t *testing.T) {
	ctx := context.Background()
	store := memoryBlobs()

	src := filepath.Join(t.TempDir(), "photo.png")
	require.NoError(t, os.WriteFile(src, []byte("png bytes"), 0o600))

	uploader, err := New(store, t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	assets := map[string]models.Assets{
		"image": {{Name: "photo.png", URI: src, Status: models.AssetInsert}},
	}
	require.NoError(t, uploader.Upload(ctx, "notes", assets))
	require.Len(t, store.PutBlobCalls(), 1)

	uploaded := assets["image"][0]
	assert.Equal(t, crypto.HashContent([]byte("png bytes")), uploaded.Hash)
	assert.Equal(t, int64(len("png bytes")), uploaded.Size)

	downloader, err := New(store, t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	remote := map[string]models.Assets{
		"image": {{Name: "photo.png", Hash: uploaded.Hash, Status: models.AssetDownloading}},
	}
	require.NoError(t, downloader.Download(ctx, "notes", "gid-1", remote))

	got := remote["image"][0]
	assert.Equal(t, models.AssetNormal, got.Status)
	assert.Equal(t, filepath.Join(downloader.Dir(), "notes", uploaded.Hash), got.URI)

	content, err := os.ReadFile(got.URI)
	require.NoError(t, err)
	assert.Equal(t, []byte("png bytes"), content)
}

func TestLoader_UploadSkipsRemoteAndDeleted(t *testing.T) {
	store := memoryBlobs()
	loader, err := New(store, t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	assets := map[string]models.Assets{
		"image": {
			{Name: "remote", Hash: "abc"},
			{Name: "gone", URI: "/does/not/matter", Status: models.AssetDelete},
		},
	}
	require.NoError(t, loader.Upload(context.Background(), "notes", assets))
	assert.Empty(t, store.PutBlobCalls())
}

func TestLoader_DownloadErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("missing blob", func(t *testing.T) {
		loader, err := New(memoryBlobs(), t.TempDir(), zap.NewNop())
		require.NoError(t, err)

		err = loader.Download(ctx, "notes", "g", map[string]models.Assets{
			"image": {{Name: "a", Hash: "missing"}},
		})
		assert.ErrorIs(t, err, cloud.ErrAssetNotFound)
	})

	t.Run("corrupted content", func(t *testing.T) {
		store := &BlobStoreMock{
			GetBlobFunc: func(ctx context.Context, hash string) ([]byte, error) {
				return []byte("not what was hashed"), nil
			},
		}
		loader, err := New(store, t.TempDir(), zap.NewNop())
		require.NoError(t, err)

		err = loader.Download(ctx, "notes", "g", map[string]models.Assets{
			"image": {{Name: "a", Hash: crypto.HashContent([]byte("original"))}},
		})
		assert.ErrorIs(t, err, crypto.ErrHashMismatch)
	})

	t.Run("store failure", func(t *testing.T) {
		store := &BlobStoreMock{
			GetBlobFunc: func(ctx context.Context, hash string) ([]byte, error) {
				return nil, errors.New("network down")
			},
		}
		loader, err := New(store, t.TempDir(), zap.NewNop())
		require.NoError(t, err)

		err = loader.Download(ctx, "notes", "g", map[string]models.Assets{
			"image": {{Name: "a", Hash: "h"}},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "network down")
	})
}

func TestLoader_RemoveLocalAssets(t *testing.T) {
	dir := t.TempDir()
	loader, err := New(memoryBlobs(), dir, zap.NewNop())
	require.NoError(t, err)

	inside := filepath.Join(dir, "notes", "h1")
	require.NoError(t, os.MkdirAll(filepath.Dir(inside), 0o700))
	require.NoError(t, os.WriteFile(inside, []byte("x"), 0o600))

	outside := filepath.Join(t.TempDir(), "user-file")
	require.NoError(t, os.WriteFile(outside, []byte("keep"), 0o600))

	err = loader.RemoveLocalAssets(context.Background(), map[string]models.Assets{
		"image": {
			{Name: "inside", URI: inside},
			{Name: "outside", URI: outside},
			{Name: "already gone", URI: filepath.Join(dir, "notes", "h2")},
		},
	})
	require.NoError(t, err)

	_, err = os.Stat(inside)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(outside)
	assert.NoError(t, err)
}
