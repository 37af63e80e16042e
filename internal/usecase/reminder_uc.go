// File: internal/usecase/reminder_uc.go
package usecase

import (
	"context"
	"strings"
	"sync"

	"telegram-prayer-reminder/internal/domain/model"
	"telegram-prayer-reminder/internal/domain/ports/adapter"
	"telegram-prayer-reminder/internal/domain/ports/repository"
	"telegram-prayer-reminder/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ ReminderUseCase = (*reminderUC)(nil)

// Translator is the slice of the i18n layer the reminder texts need.
type Translator interface {
	T(key string, args ...interface{}) string
}

type ReminderUseCase interface {
	// RebuildAll replaces the live trigger set of every known user with one
	// derived from today's timetable. Best-effort per user: one user's
	// provider failure never blocks the others.
	RebuildAll(ctx context.Context)
	// ScheduleDailyRefresh installs the once-a-day rebuild that rolls
	// triggers over to the new day's times.
	ScheduleDailyRefresh() error
	// Stop cancels every live trigger.
	Stop()
}

// ReminderSettings carries the process-wide reminder configuration.
type ReminderSettings struct {
	AnnouncementChat string
	Enabled          map[model.Prayer]bool
	DefaultLocation  model.Location
}

type reminderUC struct {
	locs      repository.LocationRepository
	timetable TimetableUseCase
	messenger adapter.MessengerAdapter
	runner    adapter.ScheduleRunner
	tr        Translator
	settings  ReminderSettings
	log       *zerolog.Logger

	// mu serializes rebuilds and guards jobs, so a user's cancel+install is
	// one critical section and concurrent rebuilds cannot interleave.
	mu        sync.Mutex
	jobs      map[string]map[model.Event]int
	refreshID int
}

func NewReminderUseCase(
	locs repository.LocationRepository,
	timetable TimetableUseCase,
	messenger adapter.MessengerAdapter,
	runner adapter.ScheduleRunner,
	tr Translator,
	settings ReminderSettings,
	logger *zerolog.Logger,
) *reminderUC {
	compLog := logger.With().Str("component", "ReminderUC").Logger()
	return &reminderUC{
		locs:      locs,
		timetable: timetable,
		messenger: messenger,
		runner:    runner,
		tr:        tr,
		settings:  settings,
		log:       &compLog,
		jobs:      make(map[string]map[model.Event]int),
		refreshID: -1,
	}
}

func (u *reminderUC) RebuildAll(ctx context.Context) {
	u.mu.Lock()
	defer u.mu.Unlock()
	metrics.IncRebuild()

	all, err := u.locs.All(ctx)
	if err != nil {
		u.log.Error().Err(err).Msg("listing locations failed, keeping current schedule")
		return
	}
	for userID, loc := range all {
		if strings.TrimSpace(userID) == "" {
			u.log.Warn().Msg("skipping empty user id")
			continue
		}
		u.rebuildUser(ctx, userID, loc)
	}
}

// rebuildUser cancels the user's old triggers and installs today's. Caller
// holds u.mu.
func (u *reminderUC) rebuildUser(ctx context.Context, userID string, loc model.Location) {
	for _, id := range u.jobs[userID] {
		u.runner.Remove(id)
	}
	u.jobs[userID] = make(map[model.Event]int)

	if loc.IsZero() {
		loc = u.settings.DefaultLocation
	}
	times, err := u.timetable.Timings(ctx, loc)
	if err != nil {
		u.log.Warn().Err(err).Str("user", userID).Stringer("location", loc).Msg("timetable unavailable, user skipped")
		return
	}

	for _, p := range model.Prayers() {
		t, ok := times[p]
		if !ok || !u.settings.Enabled[p] {
			continue
		}
		u.install(userID, p.Event(), loc, t)
		for _, d := range model.DerivedFrom(p) {
			u.install(userID, d.Event, loc, t.Add(d.Offset))
		}
	}
	u.log.Info().Str("user", userID).Stringer("location", loc).Int("jobs", len(u.jobs[userID])).Msg("reminders scheduled")
}

// install registers one daily trigger and records its handle. Caller holds u.mu.
func (u *reminderUC) install(userID string, ev model.Event, loc model.Location, t model.ClockTime) {
	if ev.Announcement() && u.settings.AnnouncementChat == "" {
		u.log.Warn().Stringer("event", ev).Msg("announcement chat not configured, event skipped")
		return
	}
	id, err := u.runner.AddDaily(t.Hour, t.Minute, func() {
		u.fire(userID, ev, loc, t)
	})
	if err != nil {
		u.log.Error().Err(err).Str("user", userID).Stringer("event", ev).Msg("trigger install failed")
		return
	}
	u.jobs[userID][ev] = id
}

// fire sends the reminder for one trigger occurrence. A send failure is
// logged and counted; the trigger stays installed for tomorrow.
func (u *reminderUC) fire(userID string, ev model.Event, loc model.Location, t model.ClockTime) {
	ctx := context.Background()

	recipient := userID
	if ev.Announcement() {
		recipient = u.settings.AnnouncementChat
	}

	var text string
	switch ev {
	case model.EventSahur:
		text = u.tr.T("reminder_sahur", loc.City)
	case model.EventBerbukaWarning:
		text = u.tr.T("reminder_berbuka_warning", loc.City)
	case model.EventBerbukaCelebration:
		text = u.tr.T("reminder_berbuka_celebration", loc.City)
	default:
		text = u.tr.T("reminder_prayer", ev.String(), t.String(), loc.City, ev.String())
	}

	if err := u.messenger.SendMessage(ctx, recipient, text); err != nil {
		metrics.IncReminderSent(ev.String(), "error")
		u.log.Error().Err(err).Str("recipient", recipient).Stringer("event", ev).Msg("reminder send failed")
		return
	}
	metrics.IncReminderSent(ev.String(), "ok")
	u.log.Debug().Str("recipient", recipient).Stringer("event", ev).Msg("reminder sent")
}

func (u *reminderUC) ScheduleDailyRefresh() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.refreshID >= 0 {
		return nil
	}
	// 00:05, after the cache's midnight expiry.
	id, err := u.runner.AddDaily(0, 5, func() {
		u.RebuildAll(context.Background())
	})
	if err != nil {
		return err
	}
	u.refreshID = id
	return nil
}

func (u *reminderUC) Stop() {
	u.mu.Lock()
	defer u.mu.Unlock()
	for userID, events := range u.jobs {
		for _, id := range events {
			u.runner.Remove(id)
		}
		delete(u.jobs, userID)
	}
	if u.refreshID >= 0 {
		u.runner.Remove(u.refreshID)
		u.refreshID = -1
	}
}
