package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/iudanet/cloudsync/internal/cloud"
	"github.com/iudanet/cloudsync/internal/models"
	"github.com/iudanet/cloudsync/internal/storage"
)

// validateRecord checks mandatory cloud fields of a downloaded record.
func validateRecord(rec *models.Record) error {
	switch {
	case rec.Gid == "":
		return fmt.Errorf("%w: empty gid", cloud.ErrInvalidRecord)
	case rec.Cursor == "":
		return fmt.Errorf("%w: gid %s has no cursor", cloud.ErrInvalidRecord, rec.Gid)
	case rec.CreateTime <= 0 || rec.ModifyTime <= 0:
		return fmt.Errorf("%w: gid %s has no create or modify time", cloud.ErrInvalidRecord, rec.Gid)
	case !rec.Deleted && rec.Data == nil:
		return fmt.Errorf("%w: gid %s has no data", cloud.ErrInvalidRecord, rec.Gid)
	}
	return nil
}

func (r *runner) cloudWaterMark(ctx context.Context, user, table string) (string, error) {
	key := cloudMarkKey(user, table)
	if mark, ok := r.tc.cloudMarks[key]; ok {
		return mark, nil
	}
	mark, err := r.s.store.GetCloudWaterMark(ctx, user, table)
	if err != nil {
		return "", fmt.Errorf("failed to get cloud watermark of %s: %w", table, err)
	}
	r.tc.cloudMarks[key] = mark
	return mark, nil
}

// downloadTable pulls cloud pages of a table from its watermark until the last page.
func (r *runner) downloadTable(ctx context.Context, user, table string) error {
	r.tc.table = table

	// ассеты прерванной загрузки докачиваются до новых страниц
	if err := r.materializeAssets(ctx, table); err != nil {
		return err
	}

	for {
		if err := r.checkInterrupt(ctx); err != nil {
			return err
		}

		mark, err := r.cloudWaterMark(ctx, user, table)
		if err != nil {
			return err
		}
		var res *cloud.QueryResult
		err = r.retryTransport(ctx, "query", func() error {
			var qerr error
			res, qerr = r.s.db.Query(ctx, &cloud.QueryParam{
				User:   user,
				Table:  table,
				Cursor: mark,
				Limit:  r.s.cfg.QueryLimit,
			})
			return qerr
		})
		if err != nil {
			return fmt.Errorf("failed to query cloud table %s: %w", table, err)
		}

		if err := r.saveDownloadBatch(ctx, user, table, mark, res); err != nil {
			return err
		}
		if res.End || len(res.Records) == 0 {
			return nil
		}
	}
}

// saveDownloadBatch tags one page, commits it with the new cloud watermark,
// reports the changes and materializes assets.
func (r *runner) saveDownloadBatch(ctx context.Context, user, table, mark string, res *cloud.QueryResult) error {
	store := r.s.store
	pks := r.tc.primaryKeys[table]

	records := make([]models.Record, 0, len(res.Records))
	var invalid int64
	for i := range res.Records {
		if err := validateRecord(&res.Records[i]); err != nil {
			r.logger.Warn("skipping invalid cloud record", zap.String("table", table), zap.Error(err))
			invalid++
			continue
		}
		records = append(records, res.Records[i])
	}

	if err := store.StartTransaction(ctx); err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		if err := store.Rollback(context.WithoutCancel(ctx)); err != nil {
			r.logger.Error("failed to rollback download batch", zap.Error(err))
		}
		delete(r.tc.cloudMarks, cloudMarkKey(user, table))
	}()

	data := &models.DownloadData{
		User:    user,
		Records: records,
		Ops:     make([]models.OpType, len(records)),
	}
	changed := models.NewChangedData(table, pks)
	var items []models.DownloadItem
	seen := make(map[string]struct{})

	for i := range records {
		rec := &records[i]
		info, err := store.GetInfoByPrimaryKeyOrGid(ctx, table, rec)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			info = nil
		case err != nil:
			return fmt.Errorf("failed to look up local row of gid %s: %w", rec.Gid, err)
		}

		cloudLog := rec.LogInfo()
		var local *models.LogInfo
		if info != nil {
			local = &info.Log
		}
		op := r.tc.strategy.TagSyncDataStatus(local, &cloudLog)
		data.Ops[i] = op

		collectChange(changed, op, rec, info, pks)
		if item, ok := r.downloadItem(table, rec, op, info); ok {
			if item.HashKey != "" {
				if _, dup := seen[item.HashKey]; dup {
					continue
				}
				seen[item.HashKey] = struct{}{}
			}
			items = append(items, item)
		}
	}

	if err := store.PutCloudSyncData(ctx, table, data); err != nil {
		return fmt.Errorf("failed to save cloud data of %s: %w", table, err)
	}
	cursor := res.Cursor
	if cursor == "" {
		cursor = mark
	}
	if err := store.PutCloudWaterMark(ctx, user, table, cursor); err != nil {
		return fmt.Errorf("failed to save cloud watermark of %s: %w", table, err)
	}
	committed = true
	if err := store.Commit(ctx); err != nil {
		delete(r.tc.cloudMarks, cloudMarkKey(user, table))
		return fmt.Errorf("failed to commit download batch: %w", err)
	}
	r.tc.cloudMarks[cloudMarkKey(user, table)] = cursor

	r.s.metrics.batches.WithLabelValues("download").Inc()
	r.s.metrics.rowsDone("download", int64(len(records)), invalid)
	r.tc.notifier.download(table, int64(len(res.Records)), int64(len(records)), invalid)
	r.logger.Debug("download batch committed",
		zap.String("table", table),
		zap.Int("records", len(records)),
		zap.String("cursor", cursor),
	)

	if !changed.Empty() {
		if err := store.NotifyChangedData(ctx, CloudDevice, changed); err != nil {
			r.logger.Warn("failed to notify changed data", zap.String("table", table), zap.Error(err))
		}
	}

	r.tc.downloadList[table] = append(r.tc.downloadList[table], items...)
	return r.materializeAssets(ctx, table)
}

func collectChange(changed *models.ChangedData, op models.OpType, rec *models.Record, info *models.DataInfoWithLog, pks []string) {
	switch op {
	case models.OpInsert:
		changed.Add(models.ChangeInsert, rec.Data.Values(pks))
	case models.OpUpdate:
		changed.Add(models.ChangeUpdate, rec.Data.Values(pks))
	case models.OpDelete:
		if info != nil {
			changed.Add(models.ChangeDelete, info.PrimaryKeys.Values(pks))
		}
	}
}

// downloadItem queues asset work of a tagged record.
func (r *runner) downloadItem(table string, rec *models.Record, op models.OpType, info *models.DataInfoWithLog) (models.DownloadItem, bool) {
	fields := r.tc.assetFields[table]
	if len(fields) == 0 {
		return models.DownloadItem{}, false
	}

	item := models.DownloadItem{
		Gid:       rec.Gid,
		Prefix:    table,
		Op:        op,
		Timestamp: rec.ModifyTime * models.TimestampPerMilli,
	}
	if info != nil {
		item.HashKey = info.Log.HashKey
		item.PrimaryKeys = info.PrimaryKeys
	}

	switch op {
	case models.OpInsert, models.OpUpdate:
		assets, err := models.ExtractAssets(rec.Data, fields)
		if err != nil {
			r.logger.Warn("failed to read assets of cloud record",
				zap.String("table", table),
				zap.String("gid", rec.Gid),
				zap.Error(err),
			)
			return item, false
		}
		if len(assets) == 0 {
			return item, false
		}
		item.Assets = assets
		if item.PrimaryKeys == nil {
			item.PrimaryKeys = pickRow(rec.Data, r.tc.primaryKeys[table])
		}
		return item, true

	case models.OpDelete:
		if info == nil || len(info.Assets) == 0 {
			return item, false
		}
		item.Assets = info.Assets
		return item, true
	}
	return item, false
}

func pickRow(row models.Row, cols []string) models.Row {
	out := make(models.Row, len(cols))
	for _, c := range cols {
		out[c] = row[c]
	}
	return out
}

// materializeAssets runs queued asset work of a table in chunks of AssetWorkers.
// Pending items stay in the task context when the task is interrupted.
func (r *runner) materializeAssets(ctx context.Context, table string) error {
	items := r.tc.downloadList[table]
	for len(items) > 0 {
		if err := r.checkInterrupt(ctx); err != nil {
			r.tc.downloadList[table] = items
			return err
		}

		n := min(r.s.cfg.AssetWorkers, len(items))
		chunk := items[:n]
		results := make([]error, n)

		var wg sync.WaitGroup
		for i := range chunk {
			i := i
			wg.Add(1)
			err := r.s.assetPool.Submit(func() {
				defer wg.Done()
				results[i] = r.fetchAsset(ctx, table, &chunk[i])
			})
			if err != nil {
				wg.Done()
				results[i] = fmt.Errorf("failed to schedule asset download: %w", err)
			}
		}
		wg.Wait()

		var ok, failed int64
		for i := range chunk {
			item := &chunk[i]
			success := results[i] == nil
			if success {
				ok++
			} else {
				failed++
				r.logger.Warn("asset download failed",
					zap.String("table", table),
					zap.String("gid", item.Gid),
					zap.Error(results[i]),
				)
			}
			if item.Op == models.OpDelete {
				continue
			}
			if err := r.s.store.FillCloudAssetForDownload(ctx, table, item, success); err != nil {
				r.tc.downloadList[table] = items[i:]
				return fmt.Errorf("failed to save asset status of gid %s: %w", item.Gid, err)
			}
		}
		r.s.metrics.rowsDone("asset", ok, failed)
		r.tc.notifier.assets(table, ok, failed)
		items = items[n:]
	}
	delete(r.tc.downloadList, table)
	return nil
}

func (r *runner) fetchAsset(ctx context.Context, table string, item *models.DownloadItem) error {
	if item.Op == models.OpDelete {
		return r.s.loader.RemoveLocalAssets(ctx, item.Assets)
	}
	return r.s.loader.Download(ctx, table, item.Gid, item.Assets)
}

// downloadAssetsOnly re-materializes assets of cloud records already present locally.
// Row metadata and watermarks are left untouched.
func (r *runner) downloadAssetsOnly(ctx context.Context, user, table string) error {
	r.tc.table = table
	fields := r.tc.assetFields[table]
	if len(fields) == 0 {
		return nil
	}
	if err := r.materializeAssets(ctx, table); err != nil {
		return err
	}

	key := "assets:" + cloudMarkKey(user, table)
	for {
		if err := r.checkInterrupt(ctx); err != nil {
			return err
		}
		cursor := r.tc.cloudMarks[key]
		var res *cloud.QueryResult
		err := r.retryTransport(ctx, "query", func() error {
			var qerr error
			res, qerr = r.s.db.Query(ctx, &cloud.QueryParam{
				User:   user,
				Table:  table,
				Cursor: cursor,
				Limit:  r.s.cfg.QueryLimit,
			})
			return qerr
		})
		if err != nil {
			return fmt.Errorf("failed to query cloud table %s: %w", table, err)
		}

		for i := range res.Records {
			rec := &res.Records[i]
			if rec.Deleted || rec.Gid == "" {
				continue
			}
			info, err := r.s.store.GetInfoByPrimaryKeyOrGid(ctx, table, rec)
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			if err != nil {
				return fmt.Errorf("failed to look up local row of gid %s: %w", rec.Gid, err)
			}
			if info.Log.IsDeleted() || info.Log.CloudGid != rec.Gid {
				continue
			}
			assets, err := models.ExtractAssets(rec.Data, fields)
			if err != nil || len(assets) == 0 {
				continue
			}
			r.tc.downloadList[table] = append(r.tc.downloadList[table], models.DownloadItem{
				Assets:      assets,
				PrimaryKeys: info.PrimaryKeys,
				Gid:         rec.Gid,
				Prefix:      table,
				HashKey:     info.Log.HashKey,
				Op:          models.OpUpdate,
				Timestamp:   info.Log.Timestamp,
			})
		}
		if res.Cursor != "" {
			r.tc.cloudMarks[key] = res.Cursor
		}

		if err := r.materializeAssets(ctx, table); err != nil {
			return err
		}
		if res.End || len(res.Records) == 0 {
			delete(r.tc.cloudMarks, key)
			return nil
		}
	}
}
