package boltdb

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"
	"golang.org/x/crypto/blake2b"

	"github.com/iudanet/cloudsync/internal/models"
	"github.com/iudanet/cloudsync/internal/storage"
)

// rowEntry is the stored value of a row: user data plus its sync log.
type rowEntry struct {
	Data models.Row     `json:"data"`
	Log  models.LogInfo `json:"log"`
}

// table groups buckets of one synced table inside a transaction.
type table struct {
	schema *models.TableSchema
	rows   *bbolt.Bucket
	gids   *bbolt.Bucket
	name   string
}

func openTable(tx *bbolt.Tx, name string) (*table, error) {
	schema, err := loadSchema(tx, bucketSchemas, name)
	if err != nil {
		return nil, fmt.Errorf("%w: table %s: %v", storage.ErrSchemaMismatch, name, err)
	}
	rows := tx.Bucket(bucketRows).Bucket([]byte(name))
	gids := tx.Bucket(bucketGids).Bucket([]byte(name))
	if rows == nil || gids == nil {
		return nil, fmt.Errorf("%w: table %s has no data buckets", storage.ErrSchemaMismatch, name)
	}
	return &table{schema: schema, rows: rows, gids: gids, name: name}, nil
}

// HashKey derives the stable row identity from primary key values.
func HashKey(values []any) (string, error) {
	data, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("failed to encode primary key: %w", err)
	}
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func (t *table) pkValues(row models.Row) ([]any, error) {
	pks := t.schema.PrimaryKeys()
	values := make([]any, 0, len(pks))
	for _, col := range pks {
		v, ok := row[col]
		if !ok || v == nil {
			return nil, fmt.Errorf("%w: missing primary key %s", storage.ErrInvalidRow, col)
		}
		values = append(values, v)
	}
	return values, nil
}

func (t *table) hashKey(row models.Row) (string, error) {
	values, err := t.pkValues(row)
	if err != nil {
		return "", err
	}
	return HashKey(values)
}

func (t *table) primaryKeys(row models.Row) models.Row {
	out := make(models.Row)
	for _, col := range t.schema.PrimaryKeys() {
		out[col] = row[col]
	}
	return out
}

func (t *table) get(hashKey string) (*rowEntry, error) {
	data := t.rows.Get([]byte(hashKey))
	if data == nil {
		return nil, nil
	}
	var e rowEntry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("failed to unmarshal row: %w", err)
	}
	return &e, nil
}

func (t *table) byGid(gid string) (*rowEntry, error) {
	if gid == "" {
		return nil, nil
	}
	hk := t.gids.Get([]byte(gid))
	if hk == nil {
		return nil, nil
	}
	return t.get(string(hk))
}

// lookup ищет строку сначала по gid, затем по первичному ключу.
func (t *table) lookup(rec *models.Record) (*rowEntry, error) {
	e, err := t.byGid(rec.Gid)
	if err != nil || e != nil {
		return e, err
	}
	hk, err := t.hashKey(rec.Data)
	if err != nil {
		// удаленные в облаке записи могут прийти без данных
		return nil, nil
	}
	return t.get(hk)
}

func (t *table) put(e *rowEntry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal row: %w", err)
	}
	if err := t.rows.Put([]byte(e.Log.HashKey), data); err != nil {
		return fmt.Errorf("failed to save row: %w", err)
	}
	if e.Log.CloudGid != "" {
		if err := t.gids.Put([]byte(e.Log.CloudGid), []byte(e.Log.HashKey)); err != nil {
			return fmt.Errorf("failed to save gid index: %w", err)
		}
	}
	return nil
}

func (t *table) remove(e *rowEntry) error {
	if err := t.rows.Delete([]byte(e.Log.HashKey)); err != nil {
		return fmt.Errorf("failed to delete row: %w", err)
	}
	return t.dropGid(e)
}

func (t *table) dropGid(e *rowEntry) error {
	if e.Log.CloudGid == "" {
		return nil
	}
	if err := t.gids.Delete([]byte(e.Log.CloudGid)); err != nil {
		return fmt.Errorf("failed to delete gid index: %w", err)
	}
	return nil
}

func (s *Storage) appUpdate(fn func(tx *bbolt.Tx) error) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}
	return s.db.Update(fn)
}

func (s *Storage) appView(fn func(tx *bbolt.Tx) error) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}
	return s.db.View(fn)
}

// Put inserts or replaces a row written on this device.
func (s *Storage) Put(ctx context.Context, tableName string, row models.Row) error {
	return s.appUpdate(func(tx *bbolt.Tx) error {
		t, err := openTable(tx, tableName)
		if err != nil {
			return err
		}
		hk, err := t.hashKey(row)
		if err != nil {
			return err
		}
		existing, err := t.get(hk)
		if err != nil {
			return err
		}

		ts := s.clock.Now()
		e := &rowEntry{Data: row.Clone()}
		if existing != nil {
			e.Log = existing.Log
		} else {
			e.Log = models.LogInfo{HashKey: hk, WriteTimestamp: ts}
		}
		e.Log.Timestamp = ts
		e.Log.Device = s.deviceID
		e.Log.Flag = (e.Log.Flag &^ (models.FlagDeleted | models.FlagCloudConsistent)) | models.FlagLocal

		if err := t.put(e); err != nil {
			return err
		}
		return s.saveClock(tx)
	})
}

// Delete removes a row. Rows known to the cloud leave a tombstone until the delete is uploaded.
func (s *Storage) Delete(ctx context.Context, tableName string, pk models.Row) error {
	return s.appUpdate(func(tx *bbolt.Tx) error {
		t, err := openTable(tx, tableName)
		if err != nil {
			return err
		}
		hk, err := t.hashKey(pk)
		if err != nil {
			return err
		}
		e, err := t.get(hk)
		if err != nil {
			return err
		}
		if e == nil || e.Log.IsDeleted() {
			return storage.ErrNotFound
		}

		// Строка еще не была в облаке - удаляем сразу
		if e.Log.CloudGid == "" {
			return t.remove(e)
		}

		e.Data = t.primaryKeys(e.Data)
		e.Log.Timestamp = s.clock.Now()
		e.Log.Device = s.deviceID
		e.Log.Flag = (e.Log.Flag &^ models.FlagCloudConsistent) | models.FlagDeleted | models.FlagLocal
		if err := t.put(e); err != nil {
			return err
		}
		return s.saveClock(tx)
	})
}

// Get returns a live row and its log.
func (s *Storage) Get(ctx context.Context, tableName string, pk models.Row) (models.Row, *models.LogInfo, error) {
	var (
		row models.Row
		log models.LogInfo
	)
	err := s.appView(func(tx *bbolt.Tx) error {
		t, err := openTable(tx, tableName)
		if err != nil {
			return err
		}
		hk, err := t.hashKey(pk)
		if err != nil {
			return err
		}
		e, err := t.get(hk)
		if err != nil {
			return err
		}
		if e == nil || e.Log.IsDeleted() {
			return storage.ErrNotFound
		}
		row, log = e.Data, e.Log
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return row, &log, nil
}

// List returns every live row of a table.
func (s *Storage) List(ctx context.Context, tableName string) ([]models.Row, error) {
	var rows []models.Row
	err := s.appView(func(tx *bbolt.Tx) error {
		t, err := openTable(tx, tableName)
		if err != nil {
			return err
		}
		return t.rows.ForEach(func(k, v []byte) error {
			var e rowEntry
			if err := json.Unmarshal(v, &e); err != nil {
				return fmt.Errorf("failed to unmarshal row: %w", err)
			}
			if !e.Log.IsDeleted() {
				rows = append(rows, e.Data)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// SetRowLocked locks or unlocks a row. Sync leaves locked rows untouched.
func (s *Storage) SetRowLocked(ctx context.Context, tableName string, pk models.Row, locked bool) error {
	return s.appUpdate(func(tx *bbolt.Tx) error {
		t, err := openTable(tx, tableName)
		if err != nil {
			return err
		}
		hk, err := t.hashKey(pk)
		if err != nil {
			return err
		}
		e, err := t.get(hk)
		if err != nil {
			return err
		}
		if e == nil {
			return storage.ErrNotFound
		}
		e.Log.Status = models.LockStatusUnlocked
		if locked {
			e.Log.Status = models.LockStatusLocked
		}
		return t.put(e)
	})
}
