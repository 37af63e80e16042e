// File: internal/infra/store/timings_memory.go
package store

import (
	"context"
	"sync"
	"time"

	"telegram-prayer-reminder/internal/domain/model"
)

const dayFormat = "2006-01-02"

type memEntry struct {
	day   string
	times model.PrayerTimes
}

// TimingsMemory caches computed prayer times per location key. Entries are
// stamped with the calendar day they were computed on and miss once the day
// rolls over, so stale times are refetched instead of living for the whole
// process lifetime.
type TimingsMemory struct {
	mu      sync.RWMutex
	loc     *time.Location
	now     func() time.Time
	entries map[string]memEntry
}

func NewTimingsMemory(loc *time.Location) *TimingsMemory {
	return &TimingsMemory{
		loc:     loc,
		now:     time.Now,
		entries: make(map[string]memEntry),
	}
}

func (c *TimingsMemory) Get(ctx context.Context, key string) (model.PrayerTimes, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || e.day != c.today() {
		return nil, false
	}
	cp := make(model.PrayerTimes, len(e.times))
	for p, t := range e.times {
		cp[p] = t
	}
	return cp, true
}

func (c *TimingsMemory) Set(ctx context.Context, key string, times model.PrayerTimes) {
	cp := make(model.PrayerTimes, len(times))
	for p, t := range times {
		cp[p] = t
	}
	c.mu.Lock()
	c.entries[key] = memEntry{day: c.today(), times: cp}
	c.mu.Unlock()
}

func (c *TimingsMemory) today() string {
	return c.now().In(c.loc).Format(dayFormat)
}
