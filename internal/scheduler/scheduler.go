// Package scheduler periodically submits sync tasks to the engine on a cron schedule.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/iudanet/cloudsync/internal/models"
	"github.com/iudanet/cloudsync/internal/syncer"
)

//go:generate go tool moq -out engine_mock.go . Engine

// Engine is the part of the sync engine the scheduler drives.
type Engine interface {
	Submit(ctx context.Context, opt syncer.SyncOption) (syncer.TaskID, error)
	Wait(ctx context.Context, id syncer.TaskID) (syncer.SyncProcess, error)
}

// Config describes the periodic sync.
type Config struct {
	// Spec is a cron expression or descriptor like "@every 5m".
	Spec    string   `mapstructure:"spec"`
	Mode    string   `mapstructure:"mode"`
	Tables  []string `mapstructure:"tables"`
	Enabled bool     `mapstructure:"enabled"`
}

// DefaultConfig returns a disabled merge sync every five minutes.
func DefaultConfig() Config {
	return Config{
		Spec: "@every 5m",
		Mode: models.SyncModeMerge.String(),
	}
}

// Scheduler submits one sync task per cron tick and waits for it,
// ticks that fire while the previous task still runs are skipped.
type Scheduler struct {
	engine  Engine
	cron    *cron.Cron
	logger  *zap.Logger
	ctx     context.Context
	cancel  context.CancelFunc
	cfg     Config
	mode    models.SyncMode
	entryID cron.EntryID
	mu      sync.Mutex
	started bool
}

// New validates the configuration and builds a stopped scheduler.
func New(cfg Config, engine Engine, logger *zap.Logger) (*Scheduler, error) {
	mode, err := models.ParseSyncMode(cfg.Mode)
	if err != nil {
		return nil, fmt.Errorf("invalid scheduler mode: %w", err)
	}
	if cfg.Enabled && len(cfg.Tables) == 0 {
		return nil, errors.New("scheduler has no tables")
	}

	cl := cronLogger{logger.Sugar()}
	s := &Scheduler{
		cfg:    cfg,
		mode:   mode,
		engine: engine,
		logger: logger,
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
	}
	return s, nil
}

// Start registers the sync job and starts the cron loop.
// A disabled scheduler does nothing.
func (s *Scheduler) Start(ctx context.Context) error {
	if !s.cfg.Enabled {
		s.logger.Info("scheduler is disabled")
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return errors.New("scheduler already started")
	}

	id, err := s.cron.AddFunc(s.cfg.Spec, s.trigger)
	if err != nil {
		return fmt.Errorf("failed to schedule sync %q: %w", s.cfg.Spec, err)
	}
	s.entryID = id
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.started = true
	s.cron.Start()

	s.logger.Info("scheduler started",
		zap.String("spec", s.cfg.Spec),
		zap.Stringer("mode", s.mode),
		zap.Strings("tables", s.cfg.Tables),
	)
	return nil
}

// Stop stops the cron loop and waits for the running job until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = false
	s.cron.Remove(s.entryID)
	s.mu.Unlock()

	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.cancel()
		s.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		// прерываем ожидание задачи
		s.cancel()
		return fmt.Errorf("failed to stop scheduler: %w", ctx.Err())
	}
}

// trigger submits one task and blocks until it finishes.
func (s *Scheduler) trigger() {
	ctx := s.ctx
	opt := syncer.SyncOption{
		Tables:  s.cfg.Tables,
		Devices: []string{syncer.CloudDevice},
		Mode:    s.mode,
	}

	id, err := s.engine.Submit(ctx, opt)
	if err != nil {
		if errors.Is(err, syncer.ErrBusy) {
			s.logger.Info("sync queue is full, skipping scheduled run")
			return
		}
		s.logger.Error("failed to submit scheduled sync", zap.Error(err))
		return
	}

	p, err := s.engine.Wait(ctx, id)
	if err != nil {
		s.logger.Warn("stopped waiting for scheduled sync", zap.Uint64("task_id", uint64(id)), zap.Error(err))
		return
	}
	if p.Err != nil {
		s.logger.Warn("scheduled sync failed", zap.Uint64("task_id", uint64(id)), zap.Error(p.Err))
		return
	}
	s.logger.Info("scheduled sync finished", zap.Uint64("task_id", uint64(id)))
}

// cronLogger adapts zap to the cron.Logger interface.
type cronLogger struct {
	l *zap.SugaredLogger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debugw(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Errorw(msg, append(keysAndValues, "error", err)...)
}
