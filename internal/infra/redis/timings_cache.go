// File: internal/infra/redis/timings_cache.go
package redis

import (
	"context"
	"encoding/json"
	"time"

	"telegram-prayer-reminder/internal/domain/model"

	"github.com/rs/zerolog"
)

// TimingsCache stores computed prayer times in Redis, one key per normalized
// location, expiring at local midnight so every day gets a fresh timetable.
// Entries survive process restarts, unlike the in-memory cache.
type TimingsCache struct {
	cli RedisClient
	loc *time.Location
	now func() time.Time
	log *zerolog.Logger
}

func NewTimingsCache(cli RedisClient, loc *time.Location, logger *zerolog.Logger) *TimingsCache {
	compLog := logger.With().Str("component", "TimingsCache").Logger()
	return &TimingsCache{cli: cli, loc: loc, now: time.Now, log: &compLog}
}

func (c *TimingsCache) Get(ctx context.Context, key string) (model.PrayerTimes, bool) {
	val, err := c.cli.Get(ctx, cacheKey(key))
	if err != nil {
		if !IsNil(err) {
			c.log.Warn().Err(err).Str("key", key).Msg("redis get failed")
		}
		return nil, false
	}
	var raw map[string]string
	if err := json.Unmarshal([]byte(val), &raw); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("corrupt cache entry; dropping")
		_ = c.cli.Del(ctx, cacheKey(key))
		return nil, false
	}
	times := make(model.PrayerTimes, len(raw))
	for name, clock := range raw {
		p, ok := model.ParsePrayer(name)
		if !ok {
			continue
		}
		t, err := model.ParseClock(clock)
		if err != nil {
			continue
		}
		times[p] = t
	}
	if len(times) == 0 {
		return nil, false
	}
	return times, true
}

func (c *TimingsCache) Set(ctx context.Context, key string, times model.PrayerTimes) {
	raw := make(map[string]string, len(times))
	for p, t := range times {
		raw[p.String()] = t.String()
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return
	}
	if err := c.cli.Set(ctx, cacheKey(key), data, c.untilMidnight()); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("redis set failed")
	}
}

func cacheKey(key string) string { return "timings:" + key }

// untilMidnight returns the TTL to the next local midnight, floored at one
// minute so an entry written in the last seconds of the day still expires.
func (c *TimingsCache) untilMidnight() time.Duration {
	now := c.now().In(c.loc)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, c.loc).AddDate(0, 0, 1)
	ttl := midnight.Sub(now)
	if ttl < time.Minute {
		ttl = time.Minute
	}
	return ttl
}
