package boltdb

import (
	"bytes"
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/cloudsync/internal/models"
)

func localMarkKey(table string, typ models.WaterMarkType) []byte {
	return []byte(fmt.Sprintf("local/%s/%s", typ, table))
}

func cloudMarkKey(user, table string) []byte {
	return []byte(fmt.Sprintf("cloud/%s/%s", user, table))
}

// GetLocalWaterMark returns 0 if nothing was uploaded yet
func (s *Storage) GetLocalWaterMark(ctx context.Context, table string, typ models.WaterMarkType) (int64, error) {
	var mark int64
	err := s.view(func(tx *bbolt.Tx) error {
		mark = decodeInt64(tx.Bucket(bucketWatermarks).Get(localMarkKey(table, typ)))
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to get local watermark: %w", err)
	}
	return mark, nil
}

// PutLocalWaterMark stores mark if it is newer than the stored value.
func (s *Storage) PutLocalWaterMark(ctx context.Context, table string, typ models.WaterMarkType, mark int64) error {
	err := s.update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketWatermarks)
		key := localMarkKey(table, typ)
		// watermark никогда не уменьшается
		if decodeInt64(b.Get(key)) >= mark {
			return nil
		}
		return b.Put(key, encodeInt64(mark))
	})
	if err != nil {
		return fmt.Errorf("failed to save local watermark: %w", err)
	}
	return nil
}

// GetCloudWaterMark returns the cloud cursor, empty if the table was never downloaded.
func (s *Storage) GetCloudWaterMark(ctx context.Context, user, table string) (string, error) {
	var mark string
	err := s.view(func(tx *bbolt.Tx) error {
		mark = string(tx.Bucket(bucketWatermarks).Get(cloudMarkKey(user, table)))
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to get cloud watermark: %w", err)
	}
	return mark, nil
}

// PutCloudWaterMark stores the cloud cursor. Empty cursors are ignored.
func (s *Storage) PutCloudWaterMark(ctx context.Context, user, table, mark string) error {
	if mark == "" {
		return nil
	}
	err := s.update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketWatermarks).Put(cloudMarkKey(user, table), []byte(mark))
	})
	if err != nil {
		return fmt.Errorf("failed to save cloud watermark: %w", err)
	}
	return nil
}

// resetWaterMarks удаляет все watermarks таблицы (для CleanCloudData).
func resetWaterMarks(tx *bbolt.Tx, table string) error {
	b := tx.Bucket(bucketWatermarks)
	suffix := []byte("/" + table)

	var keys [][]byte
	err := b.ForEach(func(k, _ []byte) error {
		if bytes.HasSuffix(k, suffix) {
			keys = append(keys, append([]byte(nil), k...))
		}
		return nil
	})
	if err != nil {
		return err
	}
	for _, k := range keys {
		if err := b.Delete(k); err != nil {
			return err
		}
	}
	return nil
}
