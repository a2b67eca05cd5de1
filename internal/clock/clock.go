package clock

import (
	"sync"
	"time"
)

// Clock выдает строго возрастающие локальные timestamps в единицах 100ns.
// Если системное время уходит назад или отстает от времени, пришедшего из облака,
// часы продолжают счет от последнего выданного значения, как часы Лампорта.
type Clock struct {
	now  func() time.Time
	last int64
	mu   sync.Mutex
}

// New creates a clock backed by the system time.
func New() *Clock {
	return &Clock{now: time.Now}
}

// NewWithSource creates a clock backed by the given time source.
// Используется в тестах для моделирования сдвига времени устройства.
func NewWithSource(now func() time.Time) *Clock {
	return &Clock{now: now}
}

// Now returns a timestamp greater than every value returned or observed before.
func (c *Clock) Now() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	wall := c.now().UnixNano() / 100
	if wall <= c.last {
		wall = c.last + 1
	}
	c.last = wall
	return wall
}

// Observe учитывает timestamp, полученный от другого устройства,
// чтобы следующие локальные изменения были упорядочены после него.
func (c *Clock) Observe(remote int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if remote > c.last {
		c.last = remote
	}
}

// Last returns the last issued or observed timestamp.
func (c *Clock) Last() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.last
}

// Restore sets the clock state, used after reopening a store.
func (c *Clock) Restore(ts int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ts > c.last {
		c.last = ts
	}
}
