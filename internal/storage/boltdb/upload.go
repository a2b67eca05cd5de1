package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.etcd.io/bbolt"

	"github.com/iudanet/cloudsync/internal/models"
	"github.com/iudanet/cloudsync/internal/storage"
)

// uploadCandidates returns rows that should be uploaded, ordered by timestamp then hash key.
func uploadCandidates(t *table, q storage.UploadQuery) ([]*rowEntry, error) {
	var out []*rowEntry
	err := t.rows.ForEach(func(_, v []byte) error {
		var e rowEntry
		if err := json.Unmarshal(v, &e); err != nil {
			return fmt.Errorf("failed to unmarshal row: %w", err)
		}
		switch {
		case e.Log.IsConsistent(), e.Log.IsLocked():
			return nil
		case e.Log.IsDeleted() && e.Log.CloudGid == "":
			return nil
		case !q.ForcePush && e.Log.Timestamp <= q.Since:
			return nil
		}
		out = append(out, &e)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Log.Timestamp != out[j].Log.Timestamp {
			return out[i].Log.Timestamp < out[j].Log.Timestamp
		}
		return out[i].Log.HashKey < out[j].Log.HashKey
	})
	return out, nil
}

// GetUploadCount returns the number of rows that still need uploading.
func (s *Storage) GetUploadCount(ctx context.Context, q storage.UploadQuery) (int64, error) {
	var count int64
	err := s.view(func(tx *bbolt.Tx) error {
		t, err := openTable(tx, q.Table)
		if err != nil {
			return err
		}
		rows, err := uploadCandidates(t, q)
		if err != nil {
			return err
		}
		count = int64(len(rows))
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count upload rows: %w", err)
	}
	return count, nil
}

func continueToken(e *rowEntry) string {
	return fmt.Sprintf("%020d/%s", e.Log.Timestamp, e.Log.HashKey)
}

func afterToken(e *rowEntry, token string) (bool, error) {
	if token == "" {
		return true, nil
	}
	tsPart, hk, ok := strings.Cut(token, "/")
	if !ok {
		return false, fmt.Errorf("malformed continue token %q", token)
	}
	ts, err := strconv.ParseInt(tsPart, 10, 64)
	if err != nil {
		return false, fmt.Errorf("malformed continue token %q: %w", token, err)
	}
	if e.Log.Timestamp != ts {
		return e.Log.Timestamp > ts, nil
	}
	return e.Log.HashKey > hk, nil
}

// GetCloudData returns the next page of rows to upload split into buckets.
func (s *Storage) GetCloudData(ctx context.Context, q storage.UploadQuery, token string) (*models.UploadData, string, error) {
	data := &models.UploadData{Table: q.Table}
	var next string

	err := s.view(func(tx *bbolt.Tx) error {
		t, err := openTable(tx, q.Table)
		if err != nil {
			return err
		}
		rows, err := uploadCandidates(t, q)
		if err != nil {
			return err
		}

		assetFields := t.schema.AssetFields()
		var taken int
		for i, e := range rows {
			ok, err := afterToken(e, token)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			if q.Limit > 0 && taken == q.Limit {
				next = continueToken(rows[i-1])
				break
			}

			assets, err := models.ExtractAssets(e.Data, assetFields)
			if err != nil {
				return err
			}
			rec := models.Record{
				Data:       e.Data,
				Gid:        e.Log.CloudGid,
				Version:    e.Log.Version,
				Device:     e.Log.Device,
				Sharing:    e.Log.SharingResource,
				CreateTime: e.Log.WriteTimestamp / models.TimestampPerMilli,
				ModifyTime: e.Log.Timestamp / models.TimestampPerMilli,
				Deleted:    e.Log.IsDeleted(),
			}
			switch {
			case e.Log.IsDeleted():
				data.Delete.Append(rec, e.Log, assets)
			case e.Log.CloudGid == "":
				data.Insert.Append(rec, e.Log, assets)
			default:
				data.Update.Append(rec, e.Log, assets)
			}
			taken++
		}
		return nil
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to read upload rows: %w", err)
	}
	return data, next, nil
}

// MarkUploading flags rows handed over to the cloud.
func (s *Storage) MarkUploading(ctx context.Context, tableName string, hashKeys []string) error {
	return s.update(func(tx *bbolt.Tx) error {
		t, err := openTable(tx, tableName)
		if err != nil {
			return err
		}
		for _, hk := range hashKeys {
			e, err := t.get(hk)
			if err != nil {
				return err
			}
			if e == nil {
				continue
			}
			e.Log.Flag |= models.FlagUploading
			if err := t.put(e); err != nil {
				return err
			}
		}
		return nil
	})
}

// FillCloudLogAndAsset writes cloud identities of uploaded rows back to the local log.
// A row changed locally after it was read for upload keeps its pending state.
func (s *Storage) FillCloudLogAndAsset(ctx context.Context, tableName string, op models.OpType, bucket *models.UploadBucket, results []models.RowResult) error {
	if len(results) != bucket.Len() {
		return fmt.Errorf("results and bucket length mismatch: %d != %d", len(results), bucket.Len())
	}

	return s.update(func(tx *bbolt.Tx) error {
		t, err := openTable(tx, tableName)
		if err != nil {
			return err
		}
		for i := range bucket.Logs {
			sent := bucket.Logs[i]
			e, err := t.get(sent.HashKey)
			if err != nil {
				return err
			}
			if e == nil {
				continue
			}
			e.Log.Flag &^= models.FlagUploading
			res := results[i]
			if res.Err != nil {
				if err := t.put(e); err != nil {
					return err
				}
				continue
			}

			unchanged := e.Log.Timestamp == sent.Timestamp
			if op == models.OpDelete {
				if unchanged {
					if err := t.remove(e); err != nil {
						return err
					}
					continue
				}
				// строку создали заново после удаления - в облаке ее больше нет
				if err := t.dropGid(e); err != nil {
					return err
				}
				e.Log.CloudGid = ""
				e.Log.Version = ""
				if err := t.put(e); err != nil {
					return err
				}
				continue
			}

			if res.Gid != "" && res.Gid != e.Log.CloudGid {
				if err := t.dropGid(e); err != nil {
					return err
				}
				e.Log.CloudGid = res.Gid
			}
			e.Log.Version = res.Version
			if unchanged {
				e.Log.Flag = (e.Log.Flag | models.FlagCloudConsistent) &^ models.FlagLocal
				if i < len(bucket.Assets) && len(bucket.Assets[i]) > 0 {
					models.ApplyAssets(e.Data, models.SetAssetStatus(bucket.Assets[i], models.AssetNormal))
				}
			}
			if err := t.put(e); err != nil {
				return err
			}
		}
		return nil
	})
}

// CleanCloudData forgets gids and watermarks so the tables can be synced from scratch.
func (s *Storage) CleanCloudData(ctx context.Context, tables []string) error {
	return s.update(func(tx *bbolt.Tx) error {
		for _, name := range tables {
			t, err := openTable(tx, name)
			if err != nil {
				return err
			}

			var entries []*rowEntry
			err = t.rows.ForEach(func(_, v []byte) error {
				var e rowEntry
				if err := json.Unmarshal(v, &e); err != nil {
					return fmt.Errorf("failed to unmarshal row: %w", err)
				}
				entries = append(entries, &e)
				return nil
			})
			if err != nil {
				return err
			}

			for _, e := range entries {
				if err := t.remove(e); err != nil {
					return err
				}
				if e.Log.IsDeleted() {
					continue
				}
				e.Log.CloudGid = ""
				e.Log.Version = ""
				e.Log.Flag = (e.Log.Flag &^ (models.FlagCloudConsistent | models.FlagUploading)) | models.FlagLocal
				if err := t.put(e); err != nil {
					return err
				}
			}

			if err := resetWaterMarks(tx, name); err != nil {
				return fmt.Errorf("failed to reset watermarks: %w", err)
			}
		}
		return nil
	})
}

// NotifyChangedData passes a sync change set to registered observers.
func (s *Storage) NotifyChangedData(ctx context.Context, device string, data *models.ChangedData) error {
	s.obsMu.RLock()
	observers := append([]ChangeObserver(nil), s.observers...)
	s.obsMu.RUnlock()

	for _, obs := range observers {
		obs(device, data)
	}
	return nil
}
