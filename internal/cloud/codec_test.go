package cloud

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/cloudsync/internal/models"
	"github.com/iudanet/cloudsync/pkg/api"
)

func TestFromAPIRecord_RequiresDeleteFlag(t *testing.T) {
	_, err := FromAPIRecord(&api.Record{Gid: "g1"})
	assert.ErrorIs(t, err, ErrInvalidRecord)

	deleted := true
	rec, err := FromAPIRecord(&api.Record{Gid: "g1", Deleted: &deleted, ModifyTime: 5})
	require.NoError(t, err)
	assert.True(t, rec.Deleted)
	assert.Equal(t, int64(5), rec.ModifyTime)
}

func TestRecordsConversion(t *testing.T) {
	records := []models.Record{
		{Gid: "a", Version: "1", Cursor: "c1", Device: "d", Data: models.Row{"id": 1}},
		{Gid: "b", Deleted: true},
	}

	wire := ToAPIRecords(records)
	require.Len(t, wire, 2)
	require.NotNil(t, wire[1].Deleted)
	assert.True(t, *wire[1].Deleted)

	back, err := FromAPIRecords(wire)
	require.NoError(t, err)
	assert.Equal(t, records, back)

	wire[0].Deleted = nil
	_, err = FromAPIRecords(wire)
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestErrorCodes(t *testing.T) {
	tests := []struct {
		err  error
		code string
	}{
		{ErrVersionConflict, api.CodeVersionConflict},
		{fmt.Errorf("wrapped: %w", ErrLockConflict), api.CodeLockConflict},
		{ErrLockNotHeld, api.CodeLockNotHeld},
		{ErrRecordNotFound, api.CodeNotFound},
		{ErrAssetNotFound, api.CodeAssetNotFound},
		{errors.New("boom"), api.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.code, ErrorCode(tt.err))
		})
	}

	assert.NoError(t, ErrorFromCode(""))
	assert.ErrorIs(t, ErrorFromCode(api.CodeVersionConflict), ErrVersionConflict)
	assert.ErrorIs(t, ErrorFromCode(api.CodeInternal), ErrCloudError)
}

func TestResultsConversion(t *testing.T) {
	results := []models.RowResult{
		{Gid: "g1", Version: "2", Cursor: "0001"},
		{Err: ErrRecordNotFound},
	}

	back := FromAPIResults(ToAPIResults(results))
	require.Len(t, back, 2)
	assert.Equal(t, "g1", back[0].Gid)
	assert.NoError(t, back[0].Err)
	assert.ErrorIs(t, back[1].Err, ErrRecordNotFound)
}
