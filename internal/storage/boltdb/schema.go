package boltdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/cloudsync/internal/models"
	"github.com/iudanet/cloudsync/internal/storage"
)

var errNoSchema = errors.New("schema not found")

// CreateTable registers the local schema of a synced table.
func (s *Storage) CreateTable(ctx context.Context, schema models.TableSchema) error {
	if schema.Name == "" {
		return fmt.Errorf("table name cannot be empty")
	}
	if len(schema.PrimaryKeys()) == 0 {
		return fmt.Errorf("table %s has no primary key", schema.Name)
	}

	data, err := json.Marshal(schema)
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}

	return s.update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketSchemas).Put([]byte(schema.Name), data); err != nil {
			return fmt.Errorf("failed to save schema: %w", err)
		}
		if _, err := tx.Bucket(bucketRows).CreateBucketIfNotExists([]byte(schema.Name)); err != nil {
			return fmt.Errorf("failed to create rows bucket: %w", err)
		}
		if _, err := tx.Bucket(bucketGids).CreateBucketIfNotExists([]byte(schema.Name)); err != nil {
			return fmt.Errorf("failed to create gids bucket: %w", err)
		}
		return nil
	})
}

// SetCloudSchema stores the schema the cloud side uses for the given tables.
func (s *Storage) SetCloudSchema(ctx context.Context, schemas ...models.TableSchema) error {
	return s.update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketCloudSchemas)
		for _, schema := range schemas {
			data, err := json.Marshal(schema)
			if err != nil {
				return fmt.Errorf("failed to marshal cloud schema: %w", err)
			}
			if err := b.Put([]byte(schema.Name), data); err != nil {
				return fmt.Errorf("failed to save cloud schema: %w", err)
			}
		}
		return nil
	})
}

// CheckSchema verifies every table exists locally and matches its cloud schema.
func (s *Storage) CheckSchema(ctx context.Context, tables []string) error {
	return s.view(func(tx *bbolt.Tx) error {
		for _, table := range tables {
			local, err := loadSchema(tx, bucketSchemas, table)
			if err != nil {
				return fmt.Errorf("%w: local table %s: %v", storage.ErrSchemaMismatch, table, err)
			}
			cloud, err := loadSchema(tx, bucketCloudSchemas, table)
			if err != nil {
				return fmt.Errorf("%w: cloud table %s: %v", storage.ErrSchemaMismatch, table, err)
			}
			if !local.Compatible(cloud) {
				return fmt.Errorf("%w: table %s differs from cloud schema", storage.ErrSchemaMismatch, table)
			}
		}
		return nil
	})
}

// GetPrimaryColNamesWithAssetsFields returns primary key and asset columns of a table.
func (s *Storage) GetPrimaryColNamesWithAssetsFields(ctx context.Context, table string) ([]string, []string, error) {
	var schema *models.TableSchema
	err := s.view(func(tx *bbolt.Tx) error {
		var err error
		schema, err = loadSchema(tx, bucketSchemas, table)
		return err
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: table %s: %v", storage.ErrSchemaMismatch, table, err)
	}
	return schema.PrimaryKeys(), schema.AssetFields(), nil
}

func loadSchema(tx *bbolt.Tx, bucket []byte, table string) (*models.TableSchema, error) {
	data := tx.Bucket(bucket).Get([]byte(table))
	if data == nil {
		return nil, errNoSchema
	}
	var schema models.TableSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema: %w", err)
	}
	return &schema, nil
}
