package storage

import (
	"context"

	"github.com/iudanet/cloudsync/internal/models"
)

//go:generate moq -out proxy_mock.go . Proxy

// UploadQuery selects local rows that still need to reach the cloud.
type UploadQuery struct {
	Table string
	// Since is the local watermark, only rows modified after it are returned.
	Since int64
	// ForcePush returns every inconsistent row regardless of Since.
	ForcePush bool
	Limit     int
}

// Proxy is the local store as seen by the cloud sync engine.
// Methods are called from a single goroutine; data access between
// StartTransaction and Commit/Rollback runs inside that transaction.
type Proxy interface {
	StartTransaction(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	// CheckSchema returns ErrSchemaMismatch when a table cannot be synced.
	CheckSchema(ctx context.Context, tables []string) error
	// GetPrimaryColNamesWithAssetsFields returns primary key columns and asset columns.
	GetPrimaryColNamesWithAssetsFields(ctx context.Context, table string) ([]string, []string, error)

	GetLocalWaterMark(ctx context.Context, table string, typ models.WaterMarkType) (int64, error)
	PutLocalWaterMark(ctx context.Context, table string, typ models.WaterMarkType, mark int64) error
	GetCloudWaterMark(ctx context.Context, user, table string) (string, error)
	PutCloudWaterMark(ctx context.Context, user, table, mark string) error

	// GetInfoByPrimaryKeyOrGid returns ErrNotFound when no local row matches.
	GetInfoByPrimaryKeyOrGid(ctx context.Context, table string, rec *models.Record) (*models.DataInfoWithLog, error)
	PutCloudSyncData(ctx context.Context, table string, data *models.DownloadData) error
	FillCloudAssetForDownload(ctx context.Context, table string, item *models.DownloadItem, success bool) error

	GetUploadCount(ctx context.Context, q UploadQuery) (int64, error)
	// GetCloudData returns one page of rows to upload ordered by local timestamp
	// and a continuation token, empty when no rows are left.
	GetCloudData(ctx context.Context, q UploadQuery, token string) (*models.UploadData, string, error)
	MarkUploading(ctx context.Context, table string, hashKeys []string) error
	FillCloudLogAndAsset(ctx context.Context, table string, op models.OpType, bucket *models.UploadBucket, results []models.RowResult) error

	// CleanCloudData forgets every cloud identity and watermark of the tables.
	CleanCloudData(ctx context.Context, tables []string) error
	NotifyChangedData(ctx context.Context, device string, data *models.ChangedData) error
}
