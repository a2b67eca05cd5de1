package syncer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/iudanet/cloudsync/internal/cloud"
	"github.com/iudanet/cloudsync/internal/models"
	"github.com/iudanet/cloudsync/internal/storage"
)

const (
	// taskPoolSize covers the task body and heartbeats in flight.
	taskPoolSize = 4
	// maxFinishedTasks is the number of finished tasks kept for Wait.
	maxFinishedTasks = 256
)

// Config holds engine limits.
type Config struct {
	// DeviceID is the identity of this device, used in logs only.
	DeviceID               string        `mapstructure:"device_id"`
	QueuedCommonLimit      int           `mapstructure:"queued_common_limit"`
	QueuedPriorityLimit    int           `mapstructure:"queued_priority_limit"`
	UploadBatchSize        int           `mapstructure:"upload_batch_size"`
	QueryLimit             int           `mapstructure:"query_limit"`
	AssetWorkers           int           `mapstructure:"asset_workers"`
	MaxHeartbeatFailed     int           `mapstructure:"max_heartbeat_failed"`
	VersionConflictRetries int           `mapstructure:"version_conflict_retries"`
	TransportRetries       int           `mapstructure:"transport_retries"`
	DefaultTimeout         time.Duration `mapstructure:"default_timeout"`
	CloseWait              time.Duration `mapstructure:"close_wait"`
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		QueuedCommonLimit:      32,
		QueuedPriorityLimit:    32,
		UploadBatchSize:        100,
		QueryLimit:             100,
		AssetWorkers:           4,
		MaxHeartbeatFailed:     2,
		VersionConflictRetries: 3,
		TransportRetries:       2,
		CloseWait:              10 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.QueuedCommonLimit <= 0 {
		c.QueuedCommonLimit = d.QueuedCommonLimit
	}
	if c.QueuedPriorityLimit <= 0 {
		c.QueuedPriorityLimit = d.QueuedPriorityLimit
	}
	if c.UploadBatchSize <= 0 {
		c.UploadBatchSize = d.UploadBatchSize
	}
	if c.QueryLimit <= 0 {
		c.QueryLimit = d.QueryLimit
	}
	if c.AssetWorkers <= 0 {
		c.AssetWorkers = d.AssetWorkers
	}
	if c.MaxHeartbeatFailed <= 0 {
		c.MaxHeartbeatFailed = d.MaxHeartbeatFailed
	}
	if c.VersionConflictRetries < 0 {
		c.VersionConflictRetries = d.VersionConflictRetries
	}
	if c.TransportRetries < 0 {
		c.TransportRetries = d.TransportRetries
	}
	if c.CloseWait <= 0 {
		c.CloseWait = d.CloseWait
	}
	return c
}

// Option configures a Syncer.
type Option func(*Syncer)

// WithRegisterer registers engine metrics on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(s *Syncer) {
		s.registerer = reg
	}
}

// Syncer is the cloud sync engine of one local store.
// Tasks run one at a time in submission order, priority tasks first.
type Syncer struct {
	store      storage.Proxy
	db         cloud.DB
	loader     cloud.AssetLoader
	logger     *zap.Logger
	metrics    *metrics
	registerer prometheus.Registerer
	pool       *ants.Pool
	assetPool  *ants.Pool

	tasks         map[TaskID]*CloudTaskInfo
	finished      map[TaskID]*CloudTaskInfo
	current       *CloudTaskInfo
	finishedOrder []TaskID
	queue         taskQueue
	cfg           Config
	nextID        uint64
	seq           uint64
	wg            sync.WaitGroup
	mu            sync.Mutex
	running       bool
	closed        bool

	// syncMu serializes task bodies against CleanCloudData.
	syncMu sync.Mutex

	subs    map[int]Observer
	nextSub int
	subsMu  sync.RWMutex
}

// New creates the sync engine.
func New(store storage.Proxy, db cloud.DB, loader cloud.AssetLoader, cfg Config, logger *zap.Logger, opts ...Option) (*Syncer, error) {
	if store == nil || db == nil || loader == nil {
		return nil, fmt.Errorf("%w: store, cloud db and asset loader are required", ErrInvalidArgs)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg = cfg.withDefaults()

	s := &Syncer{
		store:    store,
		db:       db,
		loader:   loader,
		cfg:      cfg,
		logger:   logger,
		metrics:  newMetrics(),
		tasks:    make(map[TaskID]*CloudTaskInfo),
		finished: make(map[TaskID]*CloudTaskInfo),
		subs:     make(map[int]Observer),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registerer != nil {
		if err := s.metrics.register(s.registerer); err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	}

	panicHandler := ants.WithPanicHandler(func(p interface{}) {
		logger.Error("sync worker panic", zap.Any("panic", p))
	})
	pool, err := ants.NewPool(taskPoolSize, panicHandler)
	if err != nil {
		return nil, fmt.Errorf("failed to create task pool: %w", err)
	}
	assetPool, err := ants.NewPool(cfg.AssetWorkers, panicHandler)
	if err != nil {
		pool.Release()
		return nil, fmt.Errorf("failed to create asset pool: %w", err)
	}
	s.pool = pool
	s.assetPool = assetPool

	return s, nil
}

// Submit validates and queues a sync task.
func (s *Syncer) Submit(ctx context.Context, opt SyncOption) (TaskID, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := opt.validate(); err != nil {
		return 0, err
	}
	if opt.Timeout == 0 {
		opt.Timeout = s.cfg.DefaultTimeout
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enqueueLocked(opt)
}

func (s *Syncer) enqueueLocked(opt SyncOption) (TaskID, error) {
	if s.closed {
		return 0, ErrClosed
	}

	limit := s.cfg.QueuedCommonLimit
	if opt.Priority {
		limit = s.cfg.QueuedPriorityLimit
	}
	if s.queue.count(opt.Priority) >= limit {
		return 0, fmt.Errorf("%w: %d tasks already queued", ErrBusy, limit)
	}

	s.nextID++
	s.seq++
	t := newTask(TaskID(s.nextID), s.seq, opt)
	s.tasks[t.id] = t
	s.queue.push(t)
	s.metrics.queueDepth(&s.queue)

	s.logger.Info("sync task queued",
		zap.Uint64("task_id", uint64(t.id)),
		zap.String("mode", opt.Mode.String()),
		zap.Strings("tables", opt.Tables),
		zap.Bool("priority", opt.Priority),
		zap.Bool("compensated", opt.Compensated),
	)

	if s.current != nil && t.preempts(s.current) {
		s.logger.Info("pausing running task for priority task",
			zap.Uint64("task_id", uint64(s.current.id)),
			zap.Uint64("priority_task_id", uint64(t.id)),
		)
		s.current.pause.Store(true)
	}

	s.scheduleLocked()
	return t.id, nil
}

// scheduleLocked starts the task loop if it is not running.
func (s *Syncer) scheduleLocked() {
	if s.running || s.queue.len() == 0 {
		return
	}
	s.running = true
	s.wg.Add(1)
	if err := s.pool.Submit(s.runLoop); err != nil {
		s.running = false
		s.wg.Done()
		s.logger.Error("failed to schedule sync task loop", zap.Error(err))
	}
}

func (s *Syncer) runLoop() {
	defer s.wg.Done()

	for {
		s.mu.Lock()
		t := s.queue.pop()
		if t == nil {
			s.running = false
			s.mu.Unlock()
			return
		}
		s.metrics.queueDepth(&s.queue)
		s.current = t
		t.status = StatusProcessing
		t.pause.Store(false)
		if !t.started && t.opt.Timeout > 0 {
			t.deadline = time.Now().Add(t.opt.Timeout)
		}
		t.started = true
		ctx, cancel := context.WithCancelCause(context.Background())
		t.cancel = cancel
		s.mu.Unlock()

		s.metrics.running.Inc()
		err := s.runTask(ctx, t, cancel)
		s.metrics.running.Dec()
		cause := context.Cause(ctx)
		cancel(nil)

		s.settle(t, err, cause)
	}
}

// settle requeues a paused task or fails it when it was canceled or the
// engine closed while it was pausing.
func (s *Syncer) settle(t *CloudTaskInfo, err, cause error) {
	s.mu.Lock()
	s.current = nil
	t.cancel = nil
	if cause == nil {
		// Cancel мог прийти после остановки контекста задачи
		cause = t.canceled
	}
	requeue := errors.Is(err, ErrTaskPaused) && !s.closed && cause == nil
	if requeue {
		t.status = StatusPrepared
		s.queue.push(t)
		s.metrics.queueDepth(&s.queue)
	}
	s.mu.Unlock()

	if errors.Is(err, ErrTaskPaused) && !requeue {
		if cause == nil {
			cause = ErrClosed
		}
		s.abort(t, cause)
	}
}

func (s *Syncer) runTask(ctx context.Context, t *CloudTaskInfo, cancel context.CancelCauseFunc) error {
	s.syncMu.Lock()
	defer s.syncMu.Unlock()

	if !t.deadline.IsZero() {
		var stop context.CancelFunc
		ctx, stop = context.WithDeadlineCause(ctx, t.deadline, ErrTaskTimeout)
		defer stop()
	}

	r := newRunner(s, t, cancel)
	return r.execute(ctx)
}

// complete records the final progress of a task and wakes its waiters.
func (s *Syncer) complete(t *CloudTaskInfo, p SyncProcess) {
	t.finishOnce.Do(func() {
		s.mu.Lock()
		t.status = StatusFinished
		t.result = p
		t.err = p.Err
		t.resume = nil
		delete(s.tasks, t.id)
		s.finished[t.id] = t
		s.finishedOrder = append(s.finishedOrder, t.id)
		if len(s.finishedOrder) > maxFinishedTasks {
			delete(s.finished, s.finishedOrder[0])
			s.finishedOrder = s.finishedOrder[1:]
		}
		s.mu.Unlock()

		s.metrics.tasks.WithLabelValues(t.opt.Mode.String(), KindOf(p.Err).String()).Inc()
		if p.Err != nil {
			s.logger.Warn("sync task failed",
				zap.Uint64("task_id", uint64(t.id)),
				zap.String("kind", KindOf(p.Err).String()),
				zap.Error(p.Err),
			)
		} else {
			s.logger.Info("sync task finished", zap.Uint64("task_id", uint64(t.id)))
		}
		close(t.done)
	})
}

// abort finishes a task that is not running.
func (s *Syncer) abort(t *CloudTaskInfo, err error) {
	var n *notifier
	if t.resume != nil {
		n = t.resume.ctx.notifier
	} else {
		n = newNotifier(t.id, t.opt.Tables, s.observersFor(t))
	}
	s.complete(t, n.finish(err))
}

// compensate queues a follow up task for a failed task unless one is queued already.
func (s *Syncer) compensate(t *CloudTaskInfo, err error) {
	if err == nil || t.opt.Compensated || !retryable(err) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.queue.hasCompensated() {
		return
	}
	opt := SyncOption{
		Tables:      t.opt.Tables,
		Devices:     []string{CloudDevice},
		Users:       t.opt.Users,
		Mode:        t.opt.Mode,
		AssetsOnly:  t.opt.AssetsOnly,
		Timeout:     t.opt.Timeout,
		Compensated: true,
	}
	id, qerr := s.enqueueLocked(opt)
	if qerr != nil {
		s.logger.Warn("failed to queue compensated task",
			zap.Uint64("task_id", uint64(t.id)),
			zap.Error(qerr),
		)
		return
	}
	s.logger.Info("compensated task queued",
		zap.Uint64("task_id", uint64(t.id)),
		zap.Uint64("compensated_task_id", uint64(id)),
	)
}

// Cancel fails a queued or running task. It does not wait for the task to stop.
func (s *Syncer) Cancel(id TaskID) error {
	s.mu.Lock()
	if t := s.queue.remove(id); t != nil {
		s.metrics.queueDepth(&s.queue)
		s.mu.Unlock()
		s.abort(t, ErrTaskCanceled)
		return nil
	}
	if s.current != nil && s.current.id == id {
		s.current.canceled = ErrTaskCanceled
		if s.current.cancel != nil {
			s.current.cancel(ErrTaskCanceled)
		}
		s.mu.Unlock()
		return nil
	}
	_, finished := s.finished[id]
	s.mu.Unlock()

	if finished {
		return nil
	}
	return ErrTaskNotFound
}

// Wait blocks until the task finishes and returns its final progress.
// The task error is reported in SyncProcess.Err.
func (s *Syncer) Wait(ctx context.Context, id TaskID) (SyncProcess, error) {
	s.mu.Lock()
	t, ok := s.tasks[id]
	if !ok {
		t, ok = s.finished[id]
	}
	s.mu.Unlock()
	if !ok {
		return SyncProcess{}, ErrTaskNotFound
	}

	select {
	case <-t.done:
		return t.result.clone(), nil
	case <-ctx.Done():
		return SyncProcess{}, ctx.Err()
	}
}

// Subscribe registers an observer of every task. The returned function unsubscribes it.
func (s *Syncer) Subscribe(o Observer) func() {
	s.subsMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = o
	s.subsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subsMu.Lock()
			delete(s.subs, id)
			s.subsMu.Unlock()
		})
	}
}

func (s *Syncer) observersFor(t *CloudTaskInfo) func() []Observer {
	return func() []Observer {
		s.subsMu.RLock()
		defer s.subsMu.RUnlock()

		ids := make([]int, 0, len(s.subs))
		for id := range s.subs {
			ids = append(ids, id)
		}
		sort.Ints(ids)

		out := make([]Observer, 0, len(ids)+1)
		if t.opt.Observer != nil {
			out = append(out, t.opt.Observer)
		}
		for _, id := range ids {
			out = append(out, s.subs[id])
		}
		return out
	}
}

// CleanCloudData forgets cloud identities and watermarks of the tables.
// It waits for the running task to finish.
func (s *Syncer) CleanCloudData(ctx context.Context, tables []string) error {
	if len(tables) == 0 {
		return fmt.Errorf("%w: no tables", ErrInvalidArgs)
	}
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return ErrClosed
	}

	s.syncMu.Lock()
	defer s.syncMu.Unlock()

	if err := s.store.CleanCloudData(ctx, tables); err != nil {
		return fmt.Errorf("failed to clean cloud data: %w", err)
	}
	s.logger.Info("cloud data cleaned", zap.Strings("tables", tables))
	return nil
}

// Close rejects new tasks, fails queued ones, cancels the running task and
// waits for it to exit. ctx bounds the wait.
func (s *Syncer) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	queued := s.queue.drain()
	s.metrics.queueDepth(&s.queue)
	if s.current != nil && s.current.cancel != nil {
		s.current.cancel(ErrClosed)
	}
	s.mu.Unlock()

	for _, t := range queued {
		s.abort(t, ErrClosed)
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	ticker := time.NewTicker(s.cfg.CloseWait)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			s.pool.Release()
			s.assetPool.Release()
			return nil
		case <-ticker.C:
			// задача не отвечает на отмену, скорее всего зависла в вызове облака
			s.logger.Warn("still waiting for running sync task to exit", zap.Duration("waited", s.cfg.CloseWait))
		case <-ctx.Done():
			return fmt.Errorf("failed to wait for running sync task: %w", ctx.Err())
		}
	}
}

func (s *Syncer) markType(mode models.SyncMode) models.WaterMarkType {
	if mode == models.SyncModeForcePush {
		return models.WaterMarkForcePush
	}
	return models.WaterMarkNormal
}
