package clock

import (
	"sync"
	"time"

	"dutch_market/internal/domain/value"
)

// System часы процесса в секундах unix. Никогда не возвращают значение
// меньше уже выданного, даже если системное время перевели назад.
type System struct {
	mu   sync.Mutex
	last value.Timestamp
	now  func() time.Time
}

func NewSystem() *System {
	return &System{now: time.Now}
}

func (c *System) Now() value.Timestamp {
	c.mu.Lock()
	defer c.mu.Unlock()

	ts := value.TimestampFromTime(c.now())
	if ts < c.last {
		return c.last
	}

	c.last = ts

	return ts
}

// Manual часы, которыми управляет вызывающий код.
type Manual struct {
	mu  sync.Mutex
	now value.Timestamp
}

func NewManual(start value.Timestamp) *Manual {
	return &Manual{now: start}
}

func (c *Manual) Now() value.Timestamp {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *Manual) Set(ts value.Timestamp) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = ts
}

func (c *Manual) Advance(d value.Seconds) value.Timestamp {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now += value.Timestamp(d)

	return c.now
}
