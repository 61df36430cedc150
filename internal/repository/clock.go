package repository

import (
	"sync"
	"time"
)

// DefaultHistoryLimit caps ListRecent when the caller passes a non-positive limit.
const DefaultHistoryLimit = 50

// Clock hands out insert timestamps that never go backwards within a process,
// even if the wall clock is stepped. Values are truncated to microseconds,
// the finest precision every store backend keeps.
type Clock struct {
	mu   sync.Mutex
	last time.Time
	now  func() time.Time
}

func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now}
}

// processClock is shared by all stores so ordering holds across backends.
var processClock = NewClock(nil)

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.now().UTC().Truncate(time.Microsecond)
	if t.Before(c.last) {
		t = c.last
	}
	c.last = t
	return t
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultHistoryLimit
	}
	return limit
}
