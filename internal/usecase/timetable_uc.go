// File: internal/usecase/timetable_uc.go
package usecase

import (
	"context"
	"fmt"

	"telegram-prayer-reminder/internal/domain"
	"telegram-prayer-reminder/internal/domain/model"
	"telegram-prayer-reminder/internal/domain/ports/adapter"
	"telegram-prayer-reminder/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ TimetableUseCase = (*timetableUC)(nil)

// TimingsCache caches computed prayer times per normalized location key.
// Implementations decide retention; both provided ones expire entries daily.
type TimingsCache interface {
	Get(ctx context.Context, key string) (model.PrayerTimes, bool)
	Set(ctx context.Context, key string, times model.PrayerTimes)
}

type TimetableUseCase interface {
	// Timings returns offset-corrected prayer times for the location,
	// fetching from the external timetable at most once per key and day.
	Timings(ctx context.Context, loc model.Location) (model.PrayerTimes, error)
}

type timetableUC struct {
	api   adapter.TimetableAPI
	cache TimingsCache
	log   *zerolog.Logger
}

func NewTimetableUseCase(api adapter.TimetableAPI, cache TimingsCache, logger *zerolog.Logger) *timetableUC {
	compLog := logger.With().Str("component", "TimetableUC").Logger()
	return &timetableUC{api: api, cache: cache, log: &compLog}
}

func (u *timetableUC) Timings(ctx context.Context, loc model.Location) (model.PrayerTimes, error) {
	key := loc.Key()
	if times, ok := u.cache.Get(ctx, key); ok {
		metrics.IncCacheRequest("hit")
		return times, nil
	}
	metrics.IncCacheRequest("miss")

	raw, err := u.api.FetchTimings(ctx, loc.City, loc.Country)
	if err != nil {
		metrics.IncTimetableFetch("error")
		return nil, fmt.Errorf("fetch timings for %s: %w", key, err)
	}
	metrics.IncTimetableFetch("ok")

	times := make(model.PrayerTimes)
	for name, clock := range raw {
		p, ok := model.ParsePrayer(name)
		if !ok {
			continue // Sunrise, Midnight etc. are not schedulable
		}
		t, err := model.ParseClock(clock)
		if err != nil {
			u.log.Warn().Str("prayer", p.String()).Str("value", clock).Msg("unparseable timing, skipping")
			continue
		}
		times[p] = t.Add(p.Offset())
	}
	if len(times) == 0 {
		return nil, fmt.Errorf("no usable timings for %s: %w", key, domain.ErrProviderUnavailable)
	}

	// Only successes are cached; a failed fetch is retried on the next call.
	u.cache.Set(ctx, key, times)
	return times, nil
}
