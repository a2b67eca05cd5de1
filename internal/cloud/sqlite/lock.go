package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/cloudsync/internal/cloud"
)

// Lock acquires the cloud lock for owner and returns the lease period.
// The lock is re-entrant for the same owner and can be taken over once expired.
func (s *Storage) Lock(ctx context.Context, owner string) (time.Duration, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, cloudErr("begin transaction", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := s.now().UnixMilli()
	var (
		current   string
		expiresAt int64
	)
	err = tx.QueryRowContext(ctx, `SELECT owner, expires_at FROM cloud_lock WHERE id = 1`).Scan(&current, &expiresAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return 0, cloudErr("read lock", err)
	case current != owner && expiresAt > now:
		return 0, fmt.Errorf("%w: held by %s", cloud.ErrLockConflict, current)
	}

	query := `
		INSERT INTO cloud_lock (id, owner, expires_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET owner = excluded.owner, expires_at = excluded.expires_at
	`
	if _, err := tx.ExecContext(ctx, query, owner, now+s.lease.Milliseconds()); err != nil {
		return 0, cloudErr("write lock", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, cloudErr("commit lock", err)
	}

	return s.lease, nil
}

// HeartBeat extends the lease held by owner.
// Returns ErrLockNotHeld when owner has no valid lease.
func (s *Storage) HeartBeat(ctx context.Context, owner string) error {
	now := s.now().UnixMilli()
	res, err := s.db.ExecContext(ctx,
		`UPDATE cloud_lock SET expires_at = ? WHERE id = 1 AND owner = ? AND expires_at > ?`,
		now+s.lease.Milliseconds(), owner, now,
	)
	if err != nil {
		return cloudErr("extend lock", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return cloudErr("extend lock", err)
	}
	if n == 0 {
		return cloud.ErrLockNotHeld
	}
	return nil
}

// UnLock releases the lock if owner holds it. Releasing a lock that is not held is a no-op.
func (s *Storage) UnLock(ctx context.Context, owner string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM cloud_lock WHERE id = 1 AND owner = ?`, owner); err != nil {
		return cloudErr("release lock", err)
	}
	return nil
}

// Session is the cloud.DB view of Storage for a single lock owner.
type Session struct {
	*Storage
	owner string
}

var _ cloud.DB = (*Session)(nil)

// Session binds the storage to a lock owner, usually a device id.
func (s *Storage) Session(owner string) *Session {
	return &Session{Storage: s, owner: owner}
}

// Owner returns the lock owner of the session.
func (s *Session) Owner() string {
	return s.owner
}

// Lock acquires the cloud lock for the session owner.
func (s *Session) Lock(ctx context.Context) (time.Duration, error) {
	return s.Storage.Lock(ctx, s.owner)
}

// HeartBeat extends the session owner's lease.
func (s *Session) HeartBeat(ctx context.Context) error {
	return s.Storage.HeartBeat(ctx, s.owner)
}

// UnLock releases the session owner's lock.
func (s *Session) UnLock(ctx context.Context) error {
	return s.Storage.UnLock(ctx, s.owner)
}
