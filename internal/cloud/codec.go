package cloud

import (
	"errors"
	"fmt"

	"github.com/iudanet/cloudsync/internal/models"
	"github.com/iudanet/cloudsync/pkg/api"
)

// ToAPIRecord converts a record to its wire form.
func ToAPIRecord(r *models.Record) api.Record {
	deleted := r.Deleted
	return api.Record{
		Data:       r.Data,
		Deleted:    &deleted,
		Gid:        r.Gid,
		Version:    r.Version,
		Cursor:     r.Cursor,
		Device:     r.Device,
		Sharing:    r.Sharing,
		CreateTime: r.CreateTime,
		ModifyTime: r.ModifyTime,
	}
}

// FromAPIRecord converts a wire record. The delete flag is mandatory.
func FromAPIRecord(r *api.Record) (models.Record, error) {
	if r.Deleted == nil {
		return models.Record{}, fmt.Errorf("%w: gid %q has no delete flag", ErrInvalidRecord, r.Gid)
	}
	return models.Record{
		Data:       r.Data,
		Deleted:    *r.Deleted,
		Gid:        r.Gid,
		Version:    r.Version,
		Cursor:     r.Cursor,
		Device:     r.Device,
		Sharing:    r.Sharing,
		CreateTime: r.CreateTime,
		ModifyTime: r.ModifyTime,
	}, nil
}

// ToAPIRecords converts a slice of records.
func ToAPIRecords(records []models.Record) []api.Record {
	out := make([]api.Record, 0, len(records))
	for i := range records {
		out = append(out, ToAPIRecord(&records[i]))
	}
	return out
}

// FromAPIRecords converts a slice of wire records.
func FromAPIRecords(records []api.Record) ([]models.Record, error) {
	out := make([]models.Record, 0, len(records))
	for i := range records {
		rec, err := FromAPIRecord(&records[i])
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// ToAPIResults converts per-row results to the wire form.
func ToAPIResults(results []models.RowResult) []api.RowResult {
	out := make([]api.RowResult, 0, len(results))
	for _, r := range results {
		item := api.RowResult{
			Gid:        r.Gid,
			Version:    r.Version,
			Cursor:     r.Cursor,
			CreateTime: r.CreateTime,
			ModifyTime: r.ModifyTime,
		}
		if r.Err != nil {
			item.Error = ErrorCode(r.Err)
		}
		out = append(out, item)
	}
	return out
}

// FromAPIResults converts wire results back, restoring sentinel errors.
func FromAPIResults(results []api.RowResult) []models.RowResult {
	out := make([]models.RowResult, 0, len(results))
	for _, r := range results {
		out = append(out, models.RowResult{
			Err:        ErrorFromCode(r.Error),
			Gid:        r.Gid,
			Version:    r.Version,
			Cursor:     r.Cursor,
			CreateTime: r.CreateTime,
			ModifyTime: r.ModifyTime,
		})
	}
	return out
}

var codeErrors = []struct {
	err  error
	code string
}{
	{ErrVersionConflict, api.CodeVersionConflict},
	{ErrLockConflict, api.CodeLockConflict},
	{ErrLockNotHeld, api.CodeLockNotHeld},
	{ErrRecordNotFound, api.CodeNotFound},
	{ErrAssetNotFound, api.CodeAssetNotFound},
	{ErrInvalidRecord, api.CodeInvalidRequest},
}

// ErrorCode maps a cloud error to its API code.
func ErrorCode(err error) string {
	for _, ce := range codeErrors {
		if errors.Is(err, ce.err) {
			return ce.code
		}
	}
	return api.CodeInternal
}

// ErrorFromCode maps an API code back to a cloud error, nil for an empty code.
func ErrorFromCode(code string) error {
	if code == "" {
		return nil
	}
	for _, ce := range codeErrors {
		if ce.code == code {
			return ce.err
		}
	}
	return fmt.Errorf("%w: %s", ErrCloudError, code)
}
