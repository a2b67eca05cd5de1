package cloud

import (
	"context"
	"time"

	"github.com/iudanet/cloudsync/internal/models"
)

//go:generate moq -out db_mock.go . DB AssetLoader

// QueryParam selects one page of cloud records after Cursor.
type QueryParam struct {
	User   string
	Table  string
	Cursor string
	Limit  int
}

// QueryResult is one page of cloud records in cursor order.
// Cursor is the position after the last record; End is set on the last page.
type QueryResult struct {
	Cursor  string
	Records []models.Record
	End     bool
}

// BatchRequest is a batched mutation of one table.
type BatchRequest struct {
	User    string
	Table   string
	Records []models.Record
}

// DB is the cloud data source.
//
// Batch methods return one RowResult per record. A non-nil error means the
// whole batch failed: ErrVersionConflict when a record carried a stale
// version, ErrCloudError for transport or backend failures.
type DB interface {
	Query(ctx context.Context, param *QueryParam) (*QueryResult, error)
	BatchInsert(ctx context.Context, req *BatchRequest) ([]models.RowResult, error)
	BatchUpdate(ctx context.Context, req *BatchRequest) ([]models.RowResult, error)
	BatchDelete(ctx context.Context, req *BatchRequest) ([]models.RowResult, error)

	// Lock acquires the cloud lock and returns the lease period.
	Lock(ctx context.Context) (time.Duration, error)
	HeartBeat(ctx context.Context) error
	UnLock(ctx context.Context) error
}

// AssetLoader moves asset content between the cloud and the device.
type AssetLoader interface {
	// Download materializes assets locally and fills their URI.
	Download(ctx context.Context, table, gid string, assets map[string]models.Assets) error
	// Upload sends local asset content to the cloud and fills their hash.
	Upload(ctx context.Context, table string, assets map[string]models.Assets) error
	RemoveLocalAssets(ctx context.Context, assets map[string]models.Assets) error
}
