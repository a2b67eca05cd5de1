package syncer

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/iudanet/cloudsync/internal/cloud"
)

func newTestPool(t *testing.T) *ants.Pool {
	t.Helper()
	pool, err := ants.NewPool(4)
	require.NoError(t, err)
	t.Cleanup(pool.Release)
	return pool
}

func TestHeartbeat(t *testing.T) {
	tests := []struct {
		name      string
		heartbeat func(ctx context.Context, calls *atomic.Int32) error
		maxFailed int
		wantFail  bool
		minCalls  int32
	}{
		{
			name: "healthy lease",
			heartbeat: func(ctx context.Context, calls *atomic.Int32) error {
				calls.Add(1)
				return nil
			},
			maxFailed: 2,
			minCalls:  3,
		},
		{
			name: "single failure is tolerated",
			heartbeat: func(ctx context.Context, calls *atomic.Int32) error {
				if calls.Add(1) == 1 {
					return cloud.ErrCloudError
				}
				return nil
			},
			maxFailed: 2,
			minCalls:  3,
		},
		{
			name: "consecutive failures",
			heartbeat: func(ctx context.Context, calls *atomic.Int32) error {
				calls.Add(1)
				return cloud.ErrCloudError
			},
			maxFailed: 2,
			wantFail:  true,
			minCalls:  2,
		},
		{
			name: "lease lost",
			heartbeat: func(ctx context.Context, calls *atomic.Int32) error {
				calls.Add(1)
				return cloud.ErrLockNotHeld
			},
			maxFailed: 5,
			wantFail:  true,
			minCalls:  1,
		},
		{
			name: "no response",
			heartbeat: func(ctx context.Context, calls *atomic.Int32) error {
				calls.Add(1)
				<-ctx.Done()
				return ctx.Err()
			},
			maxFailed: 5,
			wantFail:  true,
			minCalls:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			var calls atomic.Int32
			db := &cloud.DBMock{
				HeartBeatFunc: func(ctx context.Context) error {
					return tt.heartbeat(ctx, &calls)
				},
			}

			failed := make(chan error, 1)
			hb := newHeartbeat(db, newTestPool(t), 30*time.Millisecond, tt.maxFailed, newMetrics(), zaptest.NewLogger(t), func(err error) {
				failed <- err
			})
			hb.start(ctx)

			if tt.wantFail {
				select {
				case err := <-failed:
					assert.ErrorIs(t, err, ErrHeartbeatFailed)
					assert.Equal(t, KindCloudTransport, KindOf(err))
				case <-time.After(2 * time.Second):
					t.Fatal("heartbeat failure was not reported")
				}
			} else {
				require.Eventually(t, func() bool {
					return calls.Load() >= tt.minCalls
				}, 2*time.Second, 5*time.Millisecond)
			}

			hb.close()
			cancel()
			assert.GreaterOrEqual(t, calls.Load(), tt.minCalls)
			assert.Empty(t, failed, "failure reported more than once or after success")
		})
	}
}

func TestHeartbeat_CloseIsIdempotent(t *testing.T) {
	db := &cloud.DBMock{
		HeartBeatFunc: func(ctx context.Context) error { return nil },
	}
	hb := newHeartbeat(db, newTestPool(t), time.Second, 1, newMetrics(), zaptest.NewLogger(t), func(error) {
		t.Error("unexpected failure")
	})
	hb.start(context.Background())

	hb.close()
	hb.close()
}
