package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/cloudsync/internal/models"
	"github.com/iudanet/cloudsync/internal/storage"
)

// GetInfoByPrimaryKeyOrGid returns the local row matching a cloud record.
// Tombstones are returned too, with FlagDeleted set in the log.
func (s *Storage) GetInfoByPrimaryKeyOrGid(ctx context.Context, tableName string, rec *models.Record) (*models.DataInfoWithLog, error) {
	var info *models.DataInfoWithLog
	err := s.view(func(tx *bbolt.Tx) error {
		t, err := openTable(tx, tableName)
		if err != nil {
			return err
		}
		e, err := t.lookup(rec)
		if err != nil {
			return err
		}
		if e == nil {
			return storage.ErrNotFound
		}
		assets, err := models.ExtractAssets(e.Data, t.schema.AssetFields())
		if err != nil {
			return err
		}
		info = &models.DataInfoWithLog{
			Log:         e.Log,
			PrimaryKeys: t.primaryKeys(e.Data),
			Assets:      assets,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return info, nil
}

// PutCloudSyncData applies one downloaded page according to the resolved ops.
func (s *Storage) PutCloudSyncData(ctx context.Context, tableName string, data *models.DownloadData) error {
	if len(data.Records) != len(data.Ops) {
		return fmt.Errorf("records and ops length mismatch: %d != %d", len(data.Records), len(data.Ops))
	}

	return s.update(func(tx *bbolt.Tx) error {
		t, err := openTable(tx, tableName)
		if err != nil {
			return err
		}
		for i := range data.Records {
			if err := s.applyCloudRecord(t, &data.Records[i], data.Ops[i]); err != nil {
				return fmt.Errorf("failed to apply %s for gid %s: %w", data.Ops[i], data.Records[i].Gid, err)
			}
		}
		return s.saveClock(tx)
	})
}

func (s *Storage) applyCloudRecord(t *table, rec *models.Record, op models.OpType) error {
	existing, err := t.lookup(rec)
	if err != nil {
		return err
	}

	switch op {
	case models.OpInsert, models.OpUpdate:
		return s.writeCloudRow(t, rec, existing)

	case models.OpDelete:
		if existing == nil {
			return nil
		}
		return t.remove(existing)

	case models.OpUpdateTimestamp:
		if existing == nil {
			return nil
		}
		// облако удалило строку позже, локальная tombstone больше не нужна
		if existing.Log.IsDeleted() {
			return t.remove(existing)
		}
		if err := t.dropGid(existing); err != nil {
			return err
		}
		log := rec.LogInfo()
		log.HashKey = existing.Log.HashKey
		log.Status = existing.Log.Status
		log.Flag = (log.Flag | models.FlagCloudConsistent) &^ models.FlagLocal
		s.clock.Observe(log.Timestamp)
		existing.Log = log
		return t.put(existing)

	case models.OpOnlyUpdateGid, models.OpSetCloudForcePushFlagZero:
		if existing == nil {
			return nil
		}
		if err := t.dropGid(existing); err != nil {
			return err
		}
		existing.Log.CloudGid = rec.Gid
		existing.Log.Version = rec.Version
		if op == models.OpSetCloudForcePushFlagZero {
			existing.Log.Flag = (existing.Log.Flag &^ models.FlagCloudConsistent) | models.FlagLocal
		}
		return t.put(existing)

	case models.OpSetCloudForcePushFlagOne:
		if existing == nil {
			return nil
		}
		existing.Log.Flag = (existing.Log.Flag | models.FlagCloudConsistent) &^ models.FlagLocal
		return t.put(existing)

	case models.OpClearGid:
		if existing == nil {
			return nil
		}
		if existing.Log.IsDeleted() {
			return t.remove(existing)
		}
		if err := t.dropGid(existing); err != nil {
			return err
		}
		existing.Log.CloudGid = ""
		existing.Log.Version = ""
		existing.Log.Flag = (existing.Log.Flag &^ models.FlagCloudConsistent) | models.FlagLocal
		return t.put(existing)

	default:
		// NOT_HANDLE, LOCKED_NOT_HANDLE
		return nil
	}
}

func (s *Storage) writeCloudRow(t *table, rec *models.Record, existing *rowEntry) error {
	hk, err := t.hashKey(rec.Data)
	if err != nil {
		return err
	}
	// первичный ключ строки изменился в облаке - старую запись убираем
	if existing != nil && existing.Log.HashKey != hk {
		if err := t.remove(existing); err != nil {
			return err
		}
		existing = nil
	}
	if existing != nil {
		if err := t.dropGid(existing); err != nil {
			return err
		}
	}

	row := rec.Data.Clone()
	assets, err := models.ExtractAssets(row, t.schema.AssetFields())
	if err != nil {
		return err
	}
	if len(assets) > 0 {
		models.ApplyAssets(row, models.SetAssetStatus(assets, models.AssetDownloading))
	}

	log := rec.LogInfo()
	log.HashKey = hk
	log.Flag = models.FlagCloudConsistent
	if existing != nil {
		log.Status = existing.Log.Status
	}

	s.clock.Observe(log.Timestamp)
	return t.put(&rowEntry{Data: row, Log: log})
}

// FillCloudAssetForDownload records the outcome of an asset download.
func (s *Storage) FillCloudAssetForDownload(ctx context.Context, tableName string, item *models.DownloadItem, success bool) error {
	status := models.AssetAbnormal
	if success {
		status = models.AssetNormal
	}

	return s.update(func(tx *bbolt.Tx) error {
		t, err := openTable(tx, tableName)
		if err != nil {
			return err
		}
		e, err := t.byGid(item.Gid)
		if err != nil {
			return err
		}
		// строку успели удалить - обновлять нечего
		if e == nil || e.Log.IsDeleted() {
			return nil
		}
		models.ApplyAssets(e.Data, models.SetAssetStatus(item.Assets, status))
		return t.put(e)
	})
}
