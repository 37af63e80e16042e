package store

import (
	"context"
	"testing"
	"time"

	"telegram-prayer-reminder/internal/domain/model"
)

func TestTimingsMemory(t *testing.T) {
	ctx := context.Background()
	times := model.PrayerTimes{model.Fajr: {Hour: 4, Minute: 22}}

	t.Run("same-day hit", func(t *testing.T) {
		c := NewTimingsMemory(time.UTC)
		c.Set(ctx, "jakarta,indonesia", times)

		got, ok := c.Get(ctx, "jakarta,indonesia")
		if !ok {
			t.Fatal("expected cache hit")
		}
		if got[model.Fajr] != times[model.Fajr] {
			t.Errorf("got %v", got)
		}
	})

	t.Run("misses for unknown key", func(t *testing.T) {
		c := NewTimingsMemory(time.UTC)
		if _, ok := c.Get(ctx, "nowhere"); ok {
			t.Error("unexpected hit")
		}
	})

	t.Run("entry expires when the day rolls over", func(t *testing.T) {
		c := NewTimingsMemory(time.UTC)
		now := time.Date(2026, 3, 1, 23, 58, 0, 0, time.UTC)
		c.now = func() time.Time { return now }

		c.Set(ctx, "jakarta,indonesia", times)
		if _, ok := c.Get(ctx, "jakarta,indonesia"); !ok {
			t.Fatal("expected hit before midnight")
		}

		now = now.Add(5 * time.Minute) // 00:03 next day
		if _, ok := c.Get(ctx, "jakarta,indonesia"); ok {
			t.Error("expected miss after the day rolled over")
		}
	})

	t.Run("returned map is a copy", func(t *testing.T) {
		c := NewTimingsMemory(time.UTC)
		c.Set(ctx, "k", times)
		got, _ := c.Get(ctx, "k")
		got[model.Fajr] = model.ClockTime{Hour: 0, Minute: 0}

		again, _ := c.Get(ctx, "k")
		if again[model.Fajr] != (model.ClockTime{Hour: 4, Minute: 22}) {
			t.Error("cache entry was mutated through the returned map")
		}
	})
}
