package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/iudanet/cloudsync/internal/cloud"
)

// maxHeartbeatInFlight is the number of unanswered heartbeats after which
// the lease is considered lost.
const maxHeartbeatInFlight = 2

// heartbeat renews the cloud lock lease while a task holds it.
type heartbeat struct {
	db        cloud.DB
	pool      *ants.Pool
	logger    *zap.Logger
	metrics   *metrics
	onFail    func(error)
	stop      chan struct{}
	done      chan struct{}
	interval  time.Duration
	maxFailed int
	inFlight  int
	failed    int
	mu        sync.Mutex
	stopped   bool
}

func newHeartbeat(db cloud.DB, pool *ants.Pool, lease time.Duration, maxFailed int, m *metrics, logger *zap.Logger, onFail func(error)) *heartbeat {
	if maxFailed <= 0 {
		maxFailed = 1
	}
	return &heartbeat{
		db:        db,
		pool:      pool,
		logger:    logger,
		metrics:   m,
		onFail:    onFail,
		interval:  lease / 3,
		maxFailed: maxFailed,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

func (h *heartbeat) start(ctx context.Context) {
	go h.loop(ctx)
}

func (h *heartbeat) loop(ctx context.Context) {
	defer close(h.done)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			h.tick(ctx)
		case <-h.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (h *heartbeat) tick(ctx context.Context) {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	if h.inFlight >= maxHeartbeatInFlight {
		h.mu.Unlock()
		h.fail(fmt.Errorf("%w: %d heartbeats without response", ErrHeartbeatFailed, maxHeartbeatInFlight))
		return
	}
	h.inFlight++
	h.mu.Unlock()

	err := h.pool.Submit(func() {
		h.result(h.db.HeartBeat(ctx))
	})
	if err != nil {
		h.result(fmt.Errorf("failed to schedule heartbeat: %w", err))
	}
}

func (h *heartbeat) result(err error) {
	h.mu.Lock()
	h.inFlight--
	if h.stopped {
		h.mu.Unlock()
		return
	}
	if err == nil {
		h.failed = 0
		h.mu.Unlock()
		h.metrics.heartbeats.WithLabelValues("success").Inc()
		return
	}
	h.failed++
	failed := h.failed
	h.mu.Unlock()

	h.metrics.heartbeats.WithLabelValues("fail").Inc()
	h.logger.Warn("cloud lock heartbeat failed",
		zap.Int("consecutive", failed),
		zap.Error(err),
	)
	// аренду уже потеряли, ждать следующих попыток бессмысленно
	if errors.Is(err, cloud.ErrLockNotHeld) || failed >= h.maxFailed {
		h.fail(fmt.Errorf("%w: %w", ErrHeartbeatFailed, err))
	}
}

func (h *heartbeat) fail(err error) {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.stopped = true
	h.mu.Unlock()

	h.onFail(err)
}

// close stops the ticker. Results of heartbeat calls still in flight are ignored.
func (h *heartbeat) close() {
	h.mu.Lock()
	h.stopped = true
	h.mu.Unlock()

	select {
	case <-h.stop:
	default:
		close(h.stop)
	}
	<-h.done
}
