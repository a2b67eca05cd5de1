package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

const (
	// DefaultLease is the cloud lock lease granted by Lock.
	DefaultLease = 30 * time.Second
	// DefaultQueryLimit is the page size used when a query does not set one.
	DefaultQueryLimit = 100
)

// Option configures Storage.
type Option func(*Storage)

// WithLease sets the lock lease period.
func WithLease(lease time.Duration) Option {
	return func(s *Storage) {
		s.lease = lease
	}
}

// WithClock sets the time source, used by tests to expire leases.
func WithClock(now func() time.Time) Option {
	return func(s *Storage) {
		s.now = now
	}
}

// Storage is a reference cloud backend on SQLite.
// Records of every user and table share one cursor sequence.
type Storage struct {
	db    *sql.DB
	now   func() time.Time
	lease time.Duration
}

// New creates a new SQLite cloud storage instance
// Use ":memory:" for in-memory database (useful for testing)
func New(ctx context.Context, dbPath string, opts ...Option) (*Storage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// SQLite поддерживает только одного писателя
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA busy_timeout = 5000;",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	s := &Storage{
		db:    db,
		now:   time.Now,
		lease: DefaultLease,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.runMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// runMigrations выполняет миграции из embedded FS
func (s *Storage) runMigrations() error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(s.db, "migrations"); err != nil {
		return fmt.Errorf("goose up failed: %w", err)
	}

	return nil
}

// DB returns the underlying database connection for testing purposes
func (s *Storage) DB() *sql.DB {
	return s.db
}

// Ping checks database availability.
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
