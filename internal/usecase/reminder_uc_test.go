// File: internal/usecase/reminder_uc_test.go
package usecase

import (
	"context"
	"errors"
	"testing"

	"telegram-prayer-reminder/internal/domain"
	"telegram-prayer-reminder/internal/domain/model"
)

const announceChat = "-100200300"

func allPrayers() map[model.Prayer]bool {
	enabled := make(map[model.Prayer]bool)
	for _, p := range model.Prayers() {
		enabled[p] = true
	}
	return enabled
}

func fullTimes() model.PrayerTimes {
	return model.PrayerTimes{
		model.Imsak:   {Hour: 4, Minute: 30},
		model.Fajr:    {Hour: 4, Minute: 40},
		model.Dhuhr:   {Hour: 12, Minute: 0},
		model.Asr:     {Hour: 15, Minute: 14},
		model.Maghrib: {Hour: 18, Minute: 2},
		model.Isha:    {Hour: 19, Minute: 10},
	}
}

func newReminderFixture(timetable TimetableUseCase, enabled map[model.Prayer]bool) (*reminderUC, *memLocationRepo, *fakeRunner, *fakeMessenger) {
	locs := newMemLocationRepo()
	runner := newFakeRunner()
	messenger := &fakeMessenger{}
	uc := NewReminderUseCase(locs, timetable, messenger, runner, echoTranslator{}, ReminderSettings{
		AnnouncementChat: announceChat,
		Enabled:          enabled,
		DefaultLocation:  model.Location{City: "Jakarta", Country: "Indonesia"},
	}, newTestLogger())
	return uc, locs, runner, messenger
}

func TestReminderUseCase(t *testing.T) {
	ctx := context.Background()
	jakarta := model.Location{City: "Jakarta", Country: "Indonesia"}
	bandung := model.Location{City: "Bandung", Country: "Indonesia"}

	t.Run("installs prayer and derived jobs", func(t *testing.T) {
		// --- Arrange ---
		timetable := &fakeTimetableUC{byKey: map[string]model.PrayerTimes{jakarta.Key(): fullTimes()}}
		uc, locs, runner, _ := newReminderFixture(timetable, allPrayers())
		_ = locs.Save(ctx, "111", jakarta)

		// --- Act ---
		uc.RebuildAll(ctx)

		// --- Assert ---
		// 6 prayers + Sahur + BerbukaWarning + BerbukaCelebration
		if runner.live() != 9 {
			t.Errorf("expected 9 live jobs, got %d", runner.live())
		}
		if runner.timesAt(4, 0) != 1 { // Sahur = Imsak 04:30 - 30
			t.Error("missing Sahur trigger at 04:00")
		}
		if runner.timesAt(17, 57) != 1 { // warning = Maghrib 18:02 - 5
			t.Error("missing Berbuka warning trigger at 17:57")
		}
		if runner.timesAt(18, 2) != 2 { // Maghrib itself + celebration
			t.Error("expected Maghrib and celebration triggers at 18:02")
		}
	})

	t.Run("rebuild is idempotent", func(t *testing.T) {
		timetable := &fakeTimetableUC{byKey: map[string]model.PrayerTimes{jakarta.Key(): fullTimes()}}
		uc, locs, runner, _ := newReminderFixture(timetable, allPrayers())
		_ = locs.Save(ctx, "111", jakarta)

		uc.RebuildAll(ctx)
		first := runner.live()
		uc.RebuildAll(ctx)
		second := runner.live()

		if first != second {
			t.Errorf("job count changed across identical rebuilds: %d -> %d", first, second)
		}
	})

	t.Run("partial failure isolation", func(t *testing.T) {
		timetable := &fakeTimetableUC{
			byKey: map[string]model.PrayerTimes{bandung.Key(): fullTimes()},
			errBy: map[string]error{jakarta.Key(): domain.ErrProviderUnavailable},
		}
		uc, locs, runner, _ := newReminderFixture(timetable, allPrayers())
		_ = locs.Save(ctx, "111", jakarta) // provider fails for this one
		_ = locs.Save(ctx, "222", bandung)

		uc.RebuildAll(ctx)

		uc.mu.Lock()
		failedJobs := len(uc.jobs["111"])
		okJobs := len(uc.jobs["222"])
		uc.mu.Unlock()
		if failedJobs != 0 {
			t.Errorf("failed user should have no jobs, got %d", failedJobs)
		}
		if okJobs != 9 {
			t.Errorf("healthy user should have 9 jobs, got %d", okJobs)
		}
		if runner.live() != 9 {
			t.Errorf("expected 9 live jobs total, got %d", runner.live())
		}
	})

	t.Run("allow-list filters prayers and derived events follow parent", func(t *testing.T) {
		enabled := allPrayers()
		delete(enabled, model.Asr)
		delete(enabled, model.Imsak)
		timetable := &fakeTimetableUC{byKey: map[string]model.PrayerTimes{jakarta.Key(): fullTimes()}}
		uc, locs, runner, _ := newReminderFixture(timetable, enabled)
		_ = locs.Save(ctx, "111", jakarta)

		uc.RebuildAll(ctx)

		// 4 enabled prayers + BerbukaWarning + BerbukaCelebration; no Asr, no
		// Imsak and therefore no Sahur.
		if runner.live() != 6 {
			t.Errorf("expected 6 live jobs, got %d", runner.live())
		}
		if runner.timesAt(15, 14) != 0 {
			t.Error("Asr trigger installed despite allow-list")
		}
		if runner.timesAt(4, 0) != 0 {
			t.Error("Sahur trigger installed without its parent Imsak")
		}
	})

	t.Run("empty user ids are skipped", func(t *testing.T) {
		timetable := &fakeTimetableUC{byKey: map[string]model.PrayerTimes{jakarta.Key(): fullTimes()}}
		uc, locs, runner, _ := newReminderFixture(timetable, allPrayers())
		_ = locs.Save(ctx, "  ", jakarta)

		uc.RebuildAll(ctx)

		if runner.live() != 0 {
			t.Errorf("expected no jobs for blank user id, got %d", runner.live())
		}
	})

	t.Run("zero location falls back to process default", func(t *testing.T) {
		timetable := &fakeTimetableUC{byKey: map[string]model.PrayerTimes{jakarta.Key(): fullTimes()}}
		uc, locs, runner, _ := newReminderFixture(timetable, allPrayers())
		_ = locs.Save(ctx, "111", model.Location{})

		uc.RebuildAll(ctx)

		if runner.live() != 9 {
			t.Errorf("expected default-location jobs, got %d", runner.live())
		}
	})

	t.Run("firing routes announcements to the group", func(t *testing.T) {
		timetable := &fakeTimetableUC{byKey: map[string]model.PrayerTimes{jakarta.Key(): fullTimes()}}
		uc, locs, runner, messenger := newReminderFixture(timetable, allPrayers())
		_ = locs.Save(ctx, "111", jakarta)

		uc.RebuildAll(ctx)
		runner.fireAll()

		if got := messenger.sentTo("111"); got != 6 {
			t.Errorf("user should receive 6 prayer reminders, got %d", got)
		}
		if got := messenger.sentTo(announceChat); got != 3 {
			t.Errorf("announcement chat should receive 3 messages, got %d", got)
		}
	})

	t.Run("send failure does not unschedule the trigger", func(t *testing.T) {
		timetable := &fakeTimetableUC{byKey: map[string]model.PrayerTimes{jakarta.Key(): fullTimes()}}
		uc, locs, runner, messenger := newReminderFixture(timetable, allPrayers())
		_ = locs.Save(ctx, "111", jakarta)
		messenger.sendErr = errors.New("transport down")

		uc.RebuildAll(ctx)
		before := runner.live()
		runner.fireAll()

		if runner.live() != before {
			t.Errorf("failing sends changed the live job set: %d -> %d", before, runner.live())
		}
	})

	t.Run("stop cancels everything", func(t *testing.T) {
		timetable := &fakeTimetableUC{byKey: map[string]model.PrayerTimes{jakarta.Key(): fullTimes()}}
		uc, locs, runner, _ := newReminderFixture(timetable, allPrayers())
		_ = locs.Save(ctx, "111", jakarta)

		uc.RebuildAll(ctx)
		if err := uc.ScheduleDailyRefresh(); err != nil {
			t.Fatalf("daily refresh: %v", err)
		}
		uc.Stop()

		if runner.live() != 0 {
			t.Errorf("expected no live jobs after Stop, got %d", runner.live())
		}
	})
}
