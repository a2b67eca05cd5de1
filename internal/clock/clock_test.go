package clock

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClock_Monotonic(t *testing.T) {
	c := New()

	prev := c.Now()
	for i := 0; i < 1000; i++ {
		ts := c.Now()
		assert.Greater(t, ts, prev)
		prev = ts
	}
	assert.Equal(t, prev, c.Last())
}

func TestClock_WallClockGoesBack(t *testing.T) {
	base := time.Unix(1_700_000_000, 0)
	current := base
	c := NewWithSource(func() time.Time { return current })

	first := c.Now()
	assert.Equal(t, base.UnixNano()/100, first)

	// время устройства откатилось на час
	current = base.Add(-time.Hour)
	second := c.Now()
	assert.Equal(t, first+1, second)
}

func TestClock_Observe(t *testing.T) {
	base := time.Unix(1_700_000_000, 0)
	c := NewWithSource(func() time.Time { return base })

	remote := base.Add(time.Minute).UnixNano() / 100
	c.Observe(remote)
	assert.Equal(t, remote+1, c.Now())

	// older remote values are ignored
	c.Observe(10)
	assert.Equal(t, remote+2, c.Now())
}

func TestClock_Restore(t *testing.T) {
	c := NewWithSource(func() time.Time { return time.Unix(0, 0) })

	c.Restore(500)
	assert.Equal(t, int64(501), c.Now())

	c.Restore(100)
	assert.Equal(t, int64(501), c.Last())
}

func TestClock_Concurrent(t *testing.T) {
	c := New()
	const workers = 8
	const perWorker = 200

	var mu sync.Mutex
	seen := make(map[int64]struct{}, workers*perWorker)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				ts := c.Now()
				mu.Lock()
				seen[ts] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker)
}
