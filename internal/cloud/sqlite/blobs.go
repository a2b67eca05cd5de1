package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iudanet/cloudsync/internal/cloud"
)

// PutBlob stores asset content under its hash. Existing content is kept.
func (s *Storage) PutBlob(ctx context.Context, hash string, data []byte) error {
	query := `
		INSERT INTO blobs (hash, data, size, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(hash) DO NOTHING
	`
	if _, err := s.db.ExecContext(ctx, query, hash, data, len(data), s.now().Unix()); err != nil {
		return cloudErr("put blob", err)
	}
	return nil
}

// GetBlob returns asset content by hash or ErrAssetNotFound.
func (s *Storage) GetBlob(ctx context.Context, hash string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM blobs WHERE hash = ?`, hash).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, cloud.ErrAssetNotFound
		}
		return nil, cloudErr("get blob", err)
	}
	return data, nil
}
