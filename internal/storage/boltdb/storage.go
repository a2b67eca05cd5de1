package boltdb

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/cloudsync/internal/clock"
	"github.com/iudanet/cloudsync/internal/models"
	"github.com/iudanet/cloudsync/internal/storage"
)

var (
	// BoltDB bucket names
	bucketMeta         = []byte("meta")
	bucketSchemas      = []byte("schemas")
	bucketCloudSchemas = []byte("cloud_schemas")
	bucketWatermarks   = []byte("watermarks")
	bucketRows         = []byte("rows")
	bucketGids         = []byte("gids")

	keyClock = []byte("clock")
)

// ChangeObserver receives data changes applied by cloud sync.
type ChangeObserver func(device string, data *models.ChangedData)

// Storage is the local store implementing storage.Proxy on top of BoltDB.
//
// Methods of storage.Proxy join the transaction opened by StartTransaction.
// Application methods (Put, Delete, Get, List, LockRow) always run their own
// transactions and must not be called from the goroutine holding a sync transaction.
type Storage struct {
	db        *bbolt.DB
	clock     *clock.Clock
	tx        *bbolt.Tx
	deviceID  string
	observers []ChangeObserver
	txMu      sync.Mutex
	obsMu     sync.RWMutex
}

var _ storage.Proxy = (*Storage)(nil)

// New creates a new BoltDB storage instance
// dbPath is the path to the BoltDB database file, deviceID identifies local writes
func New(ctx context.Context, dbPath, deviceID string) (*Storage, error) {
	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	s := &Storage{
		db:       db,
		clock:    clock.New(),
		deviceID: deviceID,
	}

	if err := s.initBuckets(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	// Восстанавливаем часы, чтобы после перезапуска timestamps не пошли назад
	if err := s.restoreClock(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to restore clock: %w", err)
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}

	s.txMu.Lock()
	if s.tx != nil {
		_ = s.tx.Rollback()
		s.tx = nil
	}
	s.txMu.Unlock()

	err := s.db.Close()
	s.db = nil
	return err
}

// DeviceID returns the identity stamped on local writes.
func (s *Storage) DeviceID() string {
	return s.deviceID
}

// OnChange registers an observer for data changes applied by sync.
func (s *Storage) OnChange(obs ChangeObserver) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	s.observers = append(s.observers, obs)
}

// initBuckets создает необходимые buckets если они не существуют
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketMeta, bucketSchemas, bucketCloudSchemas, bucketWatermarks, bucketRows, bucketGids} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("failed to create %s bucket: %w", name, err)
			}
		}
		return nil
	})
}

func (s *Storage) restoreClock() error {
	return s.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(bucketMeta).Get(keyClock); v != nil {
			s.clock.Restore(int64(binary.BigEndian.Uint64(v)))
		}
		return nil
	})
}

func (s *Storage) saveClock(tx *bbolt.Tx) error {
	return tx.Bucket(bucketMeta).Put(keyClock, encodeInt64(s.clock.Last()))
}

// StartTransaction opens the write transaction used by following sync calls.
func (s *Storage) StartTransaction(ctx context.Context) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	if s.tx != nil {
		return fmt.Errorf("%w: transaction already started", storage.ErrTransaction)
	}

	tx, err := s.db.Begin(true)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	s.tx = tx
	return nil
}

// Commit commits the sync transaction.
func (s *Storage) Commit(ctx context.Context) error {
	s.txMu.Lock()
	tx := s.tx
	s.tx = nil
	s.txMu.Unlock()

	if tx == nil {
		return fmt.Errorf("%w: no transaction to commit", storage.ErrTransaction)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback discards the sync transaction. Rolling back without a transaction is a no-op.
func (s *Storage) Rollback(ctx context.Context) error {
	s.txMu.Lock()
	tx := s.tx
	s.tx = nil
	s.txMu.Unlock()

	if tx == nil {
		return nil
	}
	if err := tx.Rollback(); err != nil {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

// update runs fn inside the open sync transaction or a new write transaction.
func (s *Storage) update(fn func(tx *bbolt.Tx) error) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	s.txMu.Lock()
	tx := s.tx
	s.txMu.Unlock()

	if tx != nil {
		return fn(tx)
	}
	return s.db.Update(fn)
}

// view runs fn inside the open sync transaction or a new read transaction.
func (s *Storage) view(fn func(tx *bbolt.Tx) error) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	s.txMu.Lock()
	tx := s.tx
	s.txMu.Unlock()

	if tx != nil {
		return fn(tx)
	}
	return s.db.View(fn)
}

func encodeInt64(v int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}

func decodeInt64(b []byte) int64 {
	if len(b) != 8 {
		return 0
	}
	return int64(binary.BigEndian.Uint64(b))
}
