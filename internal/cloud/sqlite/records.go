package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/iudanet/cloudsync/internal/cloud"
	"github.com/iudanet/cloudsync/internal/models"
)

// formatCursor pads cursors so that they compare as strings in sequence order.
func formatCursor(v int64) string {
	return fmt.Sprintf("%019d", v)
}

func parseCursor(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed cursor %q", cloud.ErrInvalidRecord, s)
	}
	return v, nil
}

func cloudErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", cloud.ErrCloudError, op, err)
}

// Query returns records of the table with cursor greater than param.Cursor.
func (s *Storage) Query(ctx context.Context, param *cloud.QueryParam) (*cloud.QueryResult, error) {
	after, err := parseCursor(param.Cursor)
	if err != nil {
		return nil, err
	}
	limit := param.Limit
	if limit <= 0 {
		limit = DefaultQueryLimit
	}

	query := `
		SELECT gid, data, version, cursor, device, sharing,
		       create_time, modify_time, deleted
		FROM records
		WHERE user_id = ? AND tbl = ? AND cursor > ?
		ORDER BY cursor
		LIMIT ?
	`

	// лишняя строка нужна только для определения последней страницы
	rows, err := s.db.QueryContext(ctx, query, param.User, param.Table, after, limit+1)
	if err != nil {
		return nil, cloudErr("query records", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := &cloud.QueryResult{Cursor: param.Cursor, End: true}
	for rows.Next() {
		if len(result.Records) == limit {
			result.End = false
			break
		}
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		result.Records = append(result.Records, *rec)
		result.Cursor = rec.Cursor
	}
	if err := rows.Err(); err != nil {
		return nil, cloudErr("iterate records", err)
	}

	return result, nil
}

func scanRecord(rows *sql.Rows) (*models.Record, error) {
	var (
		rec     models.Record
		data    []byte
		version int64
		cursor  int64
		deleted int
	)
	err := rows.Scan(
		&rec.Gid,
		&data,
		&version,
		&cursor,
		&rec.Device,
		&rec.Sharing,
		&rec.CreateTime,
		&rec.ModifyTime,
		&deleted,
	)
	if err != nil {
		return nil, cloudErr("scan record", err)
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &rec.Data); err != nil {
			return nil, cloudErr("decode record data", err)
		}
	}
	rec.Version = strconv.FormatInt(version, 10)
	rec.Cursor = formatCursor(cursor)
	rec.Deleted = deleted != 0

	return &rec, nil
}

type mutation func(ctx context.Context, tx *sql.Tx, req *cloud.BatchRequest, rec *models.Record) (models.RowResult, error)

// BatchInsert creates records with fresh gids.
func (s *Storage) BatchInsert(ctx context.Context, req *cloud.BatchRequest) ([]models.RowResult, error) {
	return s.batch(ctx, req, s.insertRecord)
}

// BatchUpdate overwrites records identified by gid.
// A non-empty stale version fails the whole batch with ErrVersionConflict.
func (s *Storage) BatchUpdate(ctx context.Context, req *cloud.BatchRequest) ([]models.RowResult, error) {
	return s.batch(ctx, req, s.updateRecord)
}

// BatchDelete turns records identified by gid into tombstones.
func (s *Storage) BatchDelete(ctx context.Context, req *cloud.BatchRequest) ([]models.RowResult, error) {
	return s.batch(ctx, req, s.deleteRecord)
}

func (s *Storage) batch(ctx context.Context, req *cloud.BatchRequest, fn mutation) ([]models.RowResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, cloudErr("begin transaction", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	results := make([]models.RowResult, 0, len(req.Records))
	for i := range req.Records {
		res, err := fn(ctx, tx, req, &req.Records[i])
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}

	if err := tx.Commit(); err != nil {
		return nil, cloudErr("commit transaction", err)
	}
	return results, nil
}

func (s *Storage) nextCursor(ctx context.Context, tx *sql.Tx) (int64, error) {
	var v int64
	err := tx.QueryRowContext(ctx, `UPDATE cursor_seq SET value = value + 1 WHERE id = 1 RETURNING value`).Scan(&v)
	if err != nil {
		return 0, cloudErr("advance cursor", err)
	}
	return v, nil
}

func (s *Storage) insertRecord(ctx context.Context, tx *sql.Tx, req *cloud.BatchRequest, rec *models.Record) (models.RowResult, error) {
	data, err := json.Marshal(rec.Data)
	if err != nil {
		return models.RowResult{Err: fmt.Errorf("%w: %v", cloud.ErrInvalidRecord, err)}, nil
	}
	cursor, err := s.nextCursor(ctx, tx)
	if err != nil {
		return models.RowResult{}, err
	}

	now := s.now().UnixMilli()
	createTime, modifyTime := rec.CreateTime, rec.ModifyTime
	if createTime <= 0 {
		createTime = now
	}
	if modifyTime <= 0 {
		modifyTime = now
	}
	gid := uuid.NewString()

	query := `
		INSERT INTO records (
			gid, user_id, tbl, data, version, cursor,
			device, sharing, create_time, modify_time, deleted
		) VALUES (?, ?, ?, ?, 1, ?, ?, ?, ?, ?, 0)
	`
	_, err = tx.ExecContext(ctx, query,
		gid,
		req.User,
		req.Table,
		data,
		cursor,
		rec.Device,
		rec.Sharing,
		createTime,
		modifyTime,
	)
	if err != nil {
		return models.RowResult{}, cloudErr("insert record", err)
	}

	return models.RowResult{
		Gid:        gid,
		Version:    "1",
		Cursor:     formatCursor(cursor),
		CreateTime: createTime,
		ModifyTime: modifyTime,
	}, nil
}

type storedState struct {
	version    int64
	createTime int64
	deleted    bool
}

// lookup returns nil state when the gid is unknown to the user's table.
func lookup(ctx context.Context, tx *sql.Tx, req *cloud.BatchRequest, gid string) (*storedState, error) {
	var (
		st      storedState
		deleted int
	)
	err := tx.QueryRowContext(ctx,
		`SELECT version, create_time, deleted FROM records WHERE gid = ? AND user_id = ? AND tbl = ?`,
		gid, req.User, req.Table,
	).Scan(&st.version, &st.createTime, &deleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, cloudErr("lookup record", err)
	}
	st.deleted = deleted != 0
	return &st, nil
}

func checkVersion(rec *models.Record, st *storedState) error {
	if rec.Version == "" {
		return nil
	}
	if rec.Version != strconv.FormatInt(st.version, 10) {
		return fmt.Errorf("%w: gid %s has version %d, got %s", cloud.ErrVersionConflict, rec.Gid, st.version, rec.Version)
	}
	return nil
}

func (s *Storage) updateRecord(ctx context.Context, tx *sql.Tx, req *cloud.BatchRequest, rec *models.Record) (models.RowResult, error) {
	st, err := lookup(ctx, tx, req, rec.Gid)
	if err != nil {
		return models.RowResult{}, err
	}
	if st == nil {
		return models.RowResult{Gid: rec.Gid, Err: cloud.ErrRecordNotFound}, nil
	}
	if err := checkVersion(rec, st); err != nil {
		return models.RowResult{}, err
	}

	data, err := json.Marshal(rec.Data)
	if err != nil {
		return models.RowResult{Gid: rec.Gid, Err: fmt.Errorf("%w: %v", cloud.ErrInvalidRecord, err)}, nil
	}
	cursor, err := s.nextCursor(ctx, tx)
	if err != nil {
		return models.RowResult{}, err
	}
	modifyTime := rec.ModifyTime
	if modifyTime <= 0 {
		modifyTime = s.now().UnixMilli()
	}
	version := st.version + 1

	query := `
		UPDATE records
		SET data = ?, version = ?, cursor = ?, device = ?, sharing = ?,
		    modify_time = ?, deleted = 0
		WHERE gid = ?
	`
	_, err = tx.ExecContext(ctx, query,
		data,
		version,
		cursor,
		rec.Device,
		rec.Sharing,
		modifyTime,
		rec.Gid,
	)
	if err != nil {
		return models.RowResult{}, cloudErr("update record", err)
	}

	return models.RowResult{
		Gid:        rec.Gid,
		Version:    strconv.FormatInt(version, 10),
		Cursor:     formatCursor(cursor),
		CreateTime: st.createTime,
		ModifyTime: modifyTime,
	}, nil
}

func (s *Storage) deleteRecord(ctx context.Context, tx *sql.Tx, req *cloud.BatchRequest, rec *models.Record) (models.RowResult, error) {
	st, err := lookup(ctx, tx, req, rec.Gid)
	if err != nil {
		return models.RowResult{}, err
	}
	if st == nil {
		return models.RowResult{Gid: rec.Gid, Err: cloud.ErrRecordNotFound}, nil
	}
	if err := checkVersion(rec, st); err != nil {
		return models.RowResult{}, err
	}

	cursor, err := s.nextCursor(ctx, tx)
	if err != nil {
		return models.RowResult{}, err
	}
	modifyTime := rec.ModifyTime
	if modifyTime <= 0 {
		modifyTime = s.now().UnixMilli()
	}
	version := st.version + 1

	query := `
		UPDATE records
		SET data = NULL, version = ?, cursor = ?, device = ?,
		    modify_time = ?, deleted = ?
		WHERE gid = ?
	`
	_, err = tx.ExecContext(ctx, query,
		version,
		cursor,
		rec.Device,
		modifyTime,
		boolToInt(true),
		rec.Gid,
	)
	if err != nil {
		return models.RowResult{}, cloudErr("delete record", err)
	}

	return models.RowResult{
		Gid:        rec.Gid,
		Version:    strconv.FormatInt(version, 10),
		Cursor:     formatCursor(cursor),
		CreateTime: st.createTime,
		ModifyTime: modifyTime,
	}, nil
}
