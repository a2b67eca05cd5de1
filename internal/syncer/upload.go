package syncer

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/iudanet/cloudsync/internal/cloud"
	"github.com/iudanet/cloudsync/internal/models"
)

type batchFunc func(ctx context.Context, req *cloud.BatchRequest) ([]models.RowResult, error)

// uploadTable sends local changes of a table page by page.
// The local watermark moves only past pages the cloud fully acknowledged.
func (r *runner) uploadTable(ctx context.Context, user, table string) error {
	r.tc.table = table
	store := r.s.store

	q, err := r.uploadQuery(ctx, table)
	if err != nil {
		return err
	}
	count, err := store.GetUploadCount(ctx, q)
	if err != nil {
		return fmt.Errorf("failed to count upload rows of %s: %w", table, err)
	}
	// после конфликта версий таблица считается заново, итог уже учтен
	if key := cloudMarkKey(user, table); !r.tc.uploadCounted[key] {
		r.tc.uploadCounted[key] = true
		r.tc.notifier.uploadTotal(table, count)
	}
	if count == 0 {
		return nil
	}

	typ := r.s.markType(r.task.opt.Mode)
	mark := q.Since
	token := ""
	for {
		if err := r.checkInterrupt(ctx); err != nil {
			return err
		}

		data, next, err := store.GetCloudData(ctx, q, token)
		if err != nil {
			return fmt.Errorf("failed to read upload rows of %s: %w", table, err)
		}
		if data.Len() == 0 {
			return nil
		}

		acked, err := r.uploadBatch(ctx, user, table, data)
		if err != nil {
			return err
		}
		if !acked {
			r.tc.stalled[table] = true
		}
		if !r.tc.stalled[table] {
			if ts := data.MaxTimestamp(); ts > mark {
				if err := store.PutLocalWaterMark(ctx, table, typ, ts); err != nil {
					return fmt.Errorf("failed to save local watermark of %s: %w", table, err)
				}
				mark = ts
			}
		}

		if next == "" {
			return nil
		}
		token = next
	}
}

// uploadBatch sends one page and reports whether every row was accepted.
func (r *runner) uploadBatch(ctx context.Context, user, table string, data *models.UploadData) (bool, error) {
	store := r.s.store

	hashKeys := make([]string, 0, data.Len())
	for _, b := range []*models.UploadBucket{&data.Insert, &data.Update, &data.Delete} {
		for i := range b.Logs {
			hashKeys = append(hashKeys, b.Logs[i].HashKey)
		}
	}
	if err := store.MarkUploading(ctx, table, hashKeys); err != nil {
		return false, fmt.Errorf("failed to mark rows uploading: %w", err)
	}

	buckets := []struct {
		bucket *models.UploadBucket
		send   batchFunc
		op     models.OpType
	}{
		{bucket: &data.Insert, send: r.s.db.BatchInsert, op: models.OpInsert},
		{bucket: &data.Update, send: r.s.db.BatchUpdate, op: models.OpUpdate},
		{bucket: &data.Delete, send: r.s.db.BatchDelete, op: models.OpDelete},
	}

	acked := true
	for i, b := range buckets {
		if b.bucket.Len() == 0 {
			continue
		}
		ok, err := r.uploadBucket(ctx, user, table, b.op, b.bucket, b.send)
		if err != nil {
			// оставшиеся корзины не отправлялись, снимаем с них флаг загрузки
			for _, rest := range buckets[i+1:] {
				r.releaseBucket(ctx, table, rest.op, rest.bucket, err)
			}
			return false, err
		}
		acked = acked && ok
	}

	r.s.metrics.batches.WithLabelValues("upload").Inc()
	return acked, nil
}

// uploadBucket uploads assets of the rows, sends them to the cloud and writes
// the cloud identities back. Rows whose assets failed are not sent.
func (r *runner) uploadBucket(ctx context.Context, user, table string, op models.OpType, bucket *models.UploadBucket, send batchFunc) (bool, error) {
	results := make([]models.RowResult, bucket.Len())
	req := &cloud.BatchRequest{User: user, Table: table}
	sent := make([]int, 0, bucket.Len())

	for i := range bucket.Records {
		rec := bucket.Records[i]
		if op != models.OpDelete && i < len(bucket.Assets) && len(bucket.Assets[i]) > 0 {
			if err := r.s.loader.Upload(ctx, table, bucket.Assets[i]); err != nil {
				results[i].Err = fmt.Errorf("failed to upload assets: %w", err)
				continue
			}
			rec.Data = rec.Data.Clone()
			models.ApplyAssets(rec.Data, cloudAssets(bucket.Assets[i]))
		}
		req.Records = append(req.Records, rec)
		sent = append(sent, i)
	}

	if len(req.Records) > 0 {
		var res []models.RowResult
		err := r.retryTransport(ctx, "batch "+op.String(), func() error {
			var serr error
			res, serr = send(ctx, req)
			return serr
		})
		if err == nil && len(res) != len(sent) {
			err = fmt.Errorf("%w: cloud returned %d results for %d rows", cloud.ErrCloudError, len(res), len(sent))
		}
		if err != nil {
			r.releaseBucket(ctx, table, op, bucket, err)
			r.tc.notifier.upload(table, 0, int64(bucket.Len()))
			r.s.metrics.rowsDone("upload", 0, int64(bucket.Len()))
			return false, fmt.Errorf("failed to upload %s rows of %s: %w", op, table, err)
		}
		for j, i := range sent {
			results[i] = res[j]
			// строку уже удалили в облаке
			if op == models.OpDelete && errors.Is(res[j].Err, cloud.ErrRecordNotFound) {
				results[i].Err = nil
			}
		}
	}

	if err := r.s.store.FillCloudLogAndAsset(ctx, table, op, bucket, results); err != nil {
		return false, fmt.Errorf("failed to save cloud log of %s: %w", table, err)
	}

	var ok, failed int64
	for i := range results {
		if results[i].Err != nil {
			failed++
			r.logger.Warn("row upload failed",
				zap.String("table", table),
				zap.Stringer("op", op),
				zap.String("hash_key", bucket.Logs[i].HashKey),
				zap.Error(results[i].Err),
			)
			continue
		}
		ok++
	}
	r.tc.notifier.upload(table, ok, failed)
	r.s.metrics.rowsDone("upload", ok, failed)
	return failed == 0, nil
}

// releaseBucket clears the uploading flag of rows that did not reach the cloud.
func (r *runner) releaseBucket(ctx context.Context, table string, op models.OpType, bucket *models.UploadBucket, cause error) {
	if bucket.Len() == 0 {
		return
	}
	results := make([]models.RowResult, bucket.Len())
	for i := range results {
		results[i].Err = cause
	}
	if err := r.s.store.FillCloudLogAndAsset(context.WithoutCancel(ctx), table, op, bucket, results); err != nil {
		r.logger.Error("failed to release uploading rows", zap.String("table", table), zap.Error(err))
	}
}

// cloudAssets returns the cloud view of assets: no local path, normal status.
func cloudAssets(assets map[string]models.Assets) map[string]models.Assets {
	out := models.SetAssetStatus(assets, models.AssetNormal)
	for f := range out {
		for i := range out[f] {
			out[f][i].URI = ""
		}
	}
	return out
}
