// Package assets moves attachment content between a blob store and the local asset directory.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/iudanet/cloudsync/internal/cloud"
	"github.com/iudanet/cloudsync/internal/crypto"
	"github.com/iudanet/cloudsync/internal/models"
)

//go:generate moq -out blobstore_mock.go . BlobStore

// BlobStore stores asset content addressed by hash.
type BlobStore interface {
	PutBlob(ctx context.Context, hash string, data []byte) error
	GetBlob(ctx context.Context, hash string) ([]byte, error)
}

// Loader implements cloud.AssetLoader on top of a BlobStore.
// Downloaded assets are written to <dir>/<table>/<hash>.
type Loader struct {
	store  BlobStore
	logger *zap.Logger
	dir    string
}

var _ cloud.AssetLoader = (*Loader)(nil)

// New creates a loader keeping local asset files under dir.
func New(store BlobStore, dir string, logger *zap.Logger) (*Loader, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create asset directory: %w", err)
	}
	return &Loader{
		store:  store,
		dir:    dir,
		logger: logger,
	}, nil
}

// Dir returns the local asset directory.
func (l *Loader) Dir() string {
	return l.dir
}

// Download fetches every asset of the row and fills its local URI.
// Assets are updated in place.
func (l *Loader) Download(ctx context.Context, table, gid string, assets map[string]models.Assets) error {
	tableDir := filepath.Join(l.dir, table)
	if err := os.MkdirAll(tableDir, 0o700); err != nil {
		return fmt.Errorf("failed to create asset directory: %w", err)
	}

	for field, list := range assets {
		for i := range list {
			a := &list[i]
			if a.Status == models.AssetDelete || a.Hash == "" {
				continue
			}

			data, err := l.store.GetBlob(ctx, a.Hash)
			if err != nil {
				return fmt.Errorf("failed to download asset %s of %s: %w", a.Name, gid, err)
			}
			if err := crypto.VerifyContent(data, a.Hash); err != nil {
				return fmt.Errorf("failed to verify asset %s of %s: %w", a.Name, gid, err)
			}

			path := filepath.Join(tableDir, a.Hash)
			if err := os.WriteFile(path, data, 0o600); err != nil {
				return fmt.Errorf("failed to write asset %s: %w", a.Name, err)
			}
			a.URI = path
			a.Size = int64(len(data))
			a.Status = models.AssetNormal

			l.logger.Debug("asset downloaded",
				zap.String("table", table),
				zap.String("gid", gid),
				zap.String("field", field),
				zap.String("hash", a.Hash),
			)
		}
	}
	return nil
}

// Upload sends local asset files to the blob store and fills their hash.
// Assets without a local URI are assumed to be in the cloud already.
func (l *Loader) Upload(ctx context.Context, table string, assets map[string]models.Assets) error {
	for field, list := range assets {
		for i := range list {
			a := &list[i]
			if a.Status == models.AssetDelete || a.URI == "" {
				continue
			}

			data, err := os.ReadFile(a.URI)
			if err != nil {
				return fmt.Errorf("failed to read asset %s: %w", a.Name, err)
			}
			hash := crypto.HashContent(data)
			if err := l.store.PutBlob(ctx, hash, data); err != nil {
				return fmt.Errorf("failed to upload asset %s: %w", a.Name, err)
			}
			a.Hash = hash
			a.Size = int64(len(data))

			l.logger.Debug("asset uploaded",
				zap.String("table", table),
				zap.String("field", field),
				zap.String("hash", hash),
			)
		}
	}
	return nil
}

// RemoveLocalAssets deletes local files of the assets kept inside the asset directory.
func (l *Loader) RemoveLocalAssets(ctx context.Context, assets map[string]models.Assets) error {
	var errs []error
	for _, list := range assets {
		for i := range list {
			uri := list[i].URI
			if uri == "" || !l.owns(uri) {
				continue
			}
			if err := os.Remove(uri); err != nil && !errors.Is(err, fs.ErrNotExist) {
				errs = append(errs, fmt.Errorf("failed to remove asset %s: %w", list[i].Name, err))
			}
		}
	}
	return errors.Join(errs...)
}

func (l *Loader) owns(path string) bool {
	rel, err := filepath.Rel(l.dir, path)
	if err != nil {
		return false
	}
	return rel != "." && !strings.HasPrefix(rel, "..")
}
