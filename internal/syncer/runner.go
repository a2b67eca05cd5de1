package syncer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/iudanet/cloudsync/internal/cloud"
	"github.com/iudanet/cloudsync/internal/models"
	"github.com/iudanet/cloudsync/internal/storage"
)

const (
	// unlockTimeout bounds the unlock call made when a task leaves the cloud.
	unlockTimeout = 10 * time.Second
	// transportRetryDelay is the pause before the first repeated cloud call, it grows linearly.
	transportRetryDelay = 200 * time.Millisecond
)

// runner drives one task through the state machine.
type runner struct {
	s      *Syncer
	task   *CloudTaskInfo
	tc     *TaskContext
	hb     *heartbeat
	cancel context.CancelCauseFunc
	logger *zap.Logger
	state  State
}

func newRunner(s *Syncer, t *CloudTaskInfo, cancel context.CancelCauseFunc) *runner {
	r := &runner{
		s:      s,
		task:   t,
		cancel: cancel,
		state:  StatePrepared,
		logger: s.logger.With(
			zap.Uint64("task_id", uint64(t.id)),
			zap.String("mode", t.opt.Mode.String()),
		),
	}
	if t.resume != nil {
		r.state = StatePaused
		r.tc = t.resume.restore()
		return r
	}

	// режим уже проверен в Submit
	strategy, err := NewStrategy(t.opt.Mode)
	if err != nil {
		strategy = pushStrategy{}
	}
	r.tc = newTaskContext(strategy, newNotifier(t.id, t.opt.Tables, s.observersFor(t)))
	return r
}

// execute runs the task and performs the final transition.
// It returns ErrTaskPaused when the task must be queued again.
func (r *runner) execute(ctx context.Context) error {
	err := r.safeRun(ctx)
	if err != nil {
		if cause := context.Cause(ctx); cause != nil {
			err = cause
		}
	}

	if errors.Is(err, ErrTaskPaused) {
		perr := r.step(ctx, EventPause, nil)
		if perr == nil {
			r.logger.Info("sync task paused",
				zap.String("table", r.tc.table),
				zap.Int("user_index", r.tc.userIndex),
				zap.Int("table_index", r.tc.tableIndex),
			)
			return ErrTaskPaused
		}
		err = perr
	}

	ev := EventFinish
	if err != nil {
		ev = EventFail
	}
	if serr := r.step(ctx, ev, err); serr != nil {
		r.logger.Error("failed to finish sync task", zap.Error(serr))
		r.unlock()
		r.s.complete(r.task, r.tc.notifier.finish(errors.Join(err, serr)))
	}
	return err
}

func (r *runner) safeRun(ctx context.Context) (err error) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("sync task panic", zap.Any("panic", p))
			err = fmt.Errorf("%w: panic: %v", ErrInternal, p)
		}
	}()
	return r.run(ctx)
}

// step moves the task to the next state and performs the transition effects.
func (r *runner) step(ctx context.Context, ev Event, taskErr error) error {
	next, effects, err := Transition(r.state, ev)
	if err != nil {
		return err
	}
	if next != r.state {
		r.logger.Debug("sync task transition",
			zap.Stringer("from", r.state),
			zap.Stringer("to", next),
			zap.Stringer("event", ev),
		)
	}
	r.state = next

	for _, eff := range effects {
		if err := r.apply(ctx, eff, taskErr); err != nil {
			return err
		}
	}
	return nil
}

func (r *runner) apply(ctx context.Context, eff Effect, taskErr error) error {
	switch eff {
	case EffectCheckSchema:
		return r.prepare(ctx)
	case EffectRestoreContext:
		r.task.resume = nil
		r.logger.Info("sync task resumed",
			zap.Int("user_index", r.tc.userIndex),
			zap.Int("table_index", r.tc.tableIndex),
		)
	case EffectLock:
		return r.lock(ctx)
	case EffectUnlock:
		r.unlock()
	case EffectSaveResume:
		r.task.resume = r.tc.saveResume()
	case EffectNotify:
		r.s.complete(r.task, r.tc.notifier.finish(taskErr))
	case EffectCompensate:
		r.s.compensate(r.task, taskErr)
	}
	return nil
}

// prepare checks the schema of every table and caches key and asset columns.
func (r *runner) prepare(ctx context.Context) error {
	tables := r.task.opt.Tables
	if err := r.s.store.CheckSchema(ctx, tables); err != nil {
		return fmt.Errorf("failed to check schema: %w", err)
	}
	for _, table := range tables {
		pks, assetFields, err := r.s.store.GetPrimaryColNamesWithAssetsFields(ctx, table)
		if err != nil {
			return fmt.Errorf("failed to get fields of table %s: %w", table, err)
		}
		r.tc.primaryKeys[table] = pks
		r.tc.assetFields[table] = assetFields
	}
	return nil
}

func (r *runner) lock(ctx context.Context) error {
	lease, err := r.s.db.Lock(ctx)
	if err != nil {
		return fmt.Errorf("failed to lock cloud: %w", err)
	}
	r.tc.locked = true
	r.logger.Debug("cloud locked", zap.Duration("lease", lease))

	if lease > 0 {
		r.hb = newHeartbeat(r.s.db, r.s.pool, lease, r.s.cfg.MaxHeartbeatFailed, r.s.metrics, r.logger, func(err error) {
			r.logger.Error("cloud lock lost", zap.Error(err))
			r.cancel(err)
		})
		r.hb.start(ctx)
	}
	return nil
}

// unlock stops the heartbeat and releases the cloud lock if the task holds it.
func (r *runner) unlock() {
	if r.hb != nil {
		r.hb.close()
		r.hb = nil
	}
	if !r.tc.locked {
		return
	}
	r.tc.locked = false

	ctx, cancel := context.WithTimeout(context.Background(), unlockTimeout)
	defer cancel()
	if err := r.s.db.UnLock(ctx); err != nil {
		r.logger.Warn("failed to unlock cloud", zap.Error(err))
		return
	}
	r.logger.Debug("cloud unlocked")
}

// checkInterrupt reports cancellation and pause requests between batches.
func (r *runner) checkInterrupt(ctx context.Context) error {
	if cause := context.Cause(ctx); cause != nil {
		return cause
	}
	if r.task.pause.Load() {
		return ErrTaskPaused
	}
	return nil
}

func (r *runner) run(ctx context.Context) error {
	if r.state == StatePrepared {
		if err := r.step(ctx, EventProcess, nil); err != nil {
			return err
		}
	}

	users := r.task.opt.users()
	for r.tc.userIndex < len(users) {
		if err := r.syncUser(ctx, users[r.tc.userIndex]); err != nil {
			return err
		}
		r.tc.userIndex++
		r.tc.tableIndex = 0
		r.tc.phase = PhaseFirstDownload
	}
	return r.tc.failure(users, r.task.opt.Tables)
}

func (r *runner) syncUser(ctx context.Context, user string) error {
	tables := r.task.opt.Tables
	strategy := r.tc.strategy

	if r.task.opt.AssetsOnly {
		for ; r.tc.tableIndex < len(tables); r.tc.tableIndex++ {
			table := tables[r.tc.tableIndex]
			if err := r.step(ctx, EventDownload, nil); err != nil {
				return err
			}
			if err := r.downloadAssetsOnly(ctx, user, table); err != nil {
				if err := r.tableFailed(ctx, user, table, err); err != nil {
					return err
				}
				continue
			}
			r.tableDone(user, table)
		}
		return nil
	}

	if r.tc.phase == PhaseFirstDownload {
		if strategy.JudgeDownload() {
			// первый проход идет без блокировки облака
			for ; r.tc.tableIndex < len(tables); r.tc.tableIndex++ {
				table := tables[r.tc.tableIndex]
				if err := r.step(ctx, EventDownload, nil); err != nil {
					return err
				}
				if err := r.downloadTable(ctx, user, table); err != nil {
					if err := r.tableFailed(ctx, user, table, err); err != nil {
						return err
					}
					continue
				}
				if !strategy.JudgeUpload() {
					r.tableDone(user, table)
				}
			}
			if !strategy.JudgeUpload() {
				return nil
			}
			has, err := r.hasUploadData(ctx)
			if err != nil {
				return err
			}
			if !has {
				r.logger.Debug("nothing to upload", zap.String("user", user))
				r.downloadedOnly(user)
				return nil
			}
		}
		r.tc.phase = PhaseSync
		r.tc.tableIndex = 0
	}

	if strategy.NeedLock() && !r.tc.locked {
		if err := r.step(ctx, EventLock, nil); err != nil {
			return err
		}
	}

	for ; r.tc.tableIndex < len(tables); r.tc.tableIndex++ {
		table := tables[r.tc.tableIndex]
		if err := r.syncTable(ctx, user, table); err != nil {
			if err := r.tableFailed(ctx, user, table, err); err != nil {
				return err
			}
			continue
		}
		r.tableDone(user, table)
	}
	return nil
}

// downloadedOnly finishes the tables of a user when nothing is left to upload after the first download pass.
func (r *runner) downloadedOnly(user string) {
	for _, table := range r.task.opt.Tables {
		if _, failed := r.tc.tableErrs[cloudMarkKey(user, table)]; !failed {
			r.tableDone(user, table)
		}
	}
}

// tableDone forgets an earlier failure of the table and reports the table
// finished once the last user of the task is done with it.
func (r *runner) tableDone(user, table string) {
	delete(r.tc.tableErrs, cloudMarkKey(user, table))
	if r.tc.userIndex == len(r.task.opt.users())-1 {
		r.tc.notifier.tableStatus(table, StatusFinished)
	}
}

// syncTable downloads then uploads one table, re-downloading after a version conflict.
func (r *runner) syncTable(ctx context.Context, user, table string) error {
	strategy := r.tc.strategy
	for attempt := 0; ; attempt++ {
		if strategy.JudgeDownload() {
			if err := r.step(ctx, EventDownload, nil); err != nil {
				return err
			}
			if err := r.downloadTable(ctx, user, table); err != nil {
				return err
			}
		}
		if !strategy.JudgeUpload() {
			return nil
		}

		if err := r.step(ctx, EventUpload, nil); err != nil {
			return err
		}
		err := r.uploadTable(ctx, user, table)
		if !errors.Is(err, cloud.ErrVersionConflict) {
			return err
		}
		if !strategy.JudgeDownload() || attempt >= r.s.cfg.VersionConflictRetries {
			return fmt.Errorf("failed to upload table %s after %d attempts: %w", table, attempt+1, err)
		}
		r.logger.Info("cloud version conflict, downloading table again",
			zap.String("table", table),
			zap.Int("attempt", attempt+1),
		)
	}
}

// tableFailed records a recoverable table failure and returns err when the task must stop.
func (r *runner) tableFailed(ctx context.Context, user, table string, err error) error {
	if ierr := r.checkInterrupt(ctx); ierr != nil {
		return ierr
	}
	switch KindOf(err) {
	case KindCloudTransport, KindCloudVersionConflict:
	default:
		return err
	}
	r.logger.Warn("table sync failed, continuing with next table",
		zap.String("table", table),
		zap.Error(err),
	)
	r.tc.tableErrs[cloudMarkKey(user, table)] = err
	return nil
}

// retryTransport repeats call after cloud transport failures up to
// TransportRetries times. Pause, cancel and other errors are returned at once.
func (r *runner) retryTransport(ctx context.Context, what string, call func() error) error {
	for attempt := 0; ; attempt++ {
		err := call()
		if err == nil || KindOf(err) != KindCloudTransport || attempt >= r.s.cfg.TransportRetries {
			return err
		}
		if r.checkInterrupt(ctx) != nil {
			return err
		}

		delay := transportRetryDelay * time.Duration(attempt+1)
		r.logger.Info("cloud call failed, retrying",
			zap.String("call", what),
			zap.Int("attempt", attempt+1),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return err
		}
	}
}

func (r *runner) uploadQuery(ctx context.Context, table string) (storage.UploadQuery, error) {
	q := storage.UploadQuery{
		Table:     table,
		Limit:     r.s.cfg.UploadBatchSize,
		ForcePush: r.task.opt.Mode == models.SyncModeForcePush,
	}
	mark, err := r.s.store.GetLocalWaterMark(ctx, table, r.s.markType(r.task.opt.Mode))
	if err != nil {
		return q, fmt.Errorf("failed to get local watermark of %s: %w", table, err)
	}
	q.Since = mark
	return q, nil
}

func (r *runner) hasUploadData(ctx context.Context) (bool, error) {
	for _, table := range r.task.opt.Tables {
		q, err := r.uploadQuery(ctx, table)
		if err != nil {
			return false, err
		}
		count, err := r.s.store.GetUploadCount(ctx, q)
		if err != nil {
			return false, fmt.Errorf("failed to count upload rows of %s: %w", table, err)
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}
