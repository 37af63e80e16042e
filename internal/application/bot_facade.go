// File: internal/application/bot_facade.go
package application

import (
	"context"
	"errors"
	"strings"

	"telegram-prayer-reminder/internal/domain"
	"telegram-prayer-reminder/internal/domain/model"
	"telegram-prayer-reminder/internal/domain/ports/repository"
	"telegram-prayer-reminder/internal/infra/metrics"
	"telegram-prayer-reminder/internal/usecase"

	"github.com/rs/zerolog"
)

const (
	cmdSetLocation = "!setlokasi"
	cmdSchedule    = "!jadwalsholat"
)

// BotFacade parses inbound text commands and drives the location store,
// timetable and reminder scheduler. Methods return the reply string so the
// transport adapter just forwards it to the chat; an empty reply means stay
// silent.
type BotFacade struct {
	locations  repository.LocationRepository
	timetable  usecase.TimetableUseCase
	reminders  usecase.ReminderUseCase
	tr         usecase.Translator
	defaultLoc model.Location
	log        *zerolog.Logger
}

func NewBotFacade(
	locations repository.LocationRepository,
	timetable usecase.TimetableUseCase,
	reminders usecase.ReminderUseCase,
	tr usecase.Translator,
	defaultLoc model.Location,
	logger *zerolog.Logger,
) *BotFacade {
	compLog := logger.With().Str("component", "BotFacade").Logger()
	return &BotFacade{
		locations:  locations,
		timetable:  timetable,
		reminders:  reminders,
		tr:         tr,
		defaultLoc: defaultLoc,
		log:        &compLog,
	}
}

// HandleText routes one inbound message. Unrecognized text yields an empty
// reply and no error.
func (b *BotFacade) HandleText(ctx context.Context, userID, text string) (string, error) {
	text = strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(text, cmdSetLocation+" "):
		return b.handleSetLocation(ctx, userID, strings.TrimPrefix(text, cmdSetLocation+" "))
	case text == cmdSchedule:
		return b.handleSchedule(ctx, userID)
	default:
		return "", nil
	}
}

// handleSetLocation stores "<city>,<country>" for the sender and rebuilds the
// reminder schedule. Anything but exactly two non-empty parts is rejected
// without a write.
func (b *BotFacade) handleSetLocation(ctx context.Context, userID, args string) (string, error) {
	parts := strings.Split(args, ",")
	if len(parts) != 2 {
		metrics.IncCommand(cmdSetLocation, "invalid")
		return b.tr.T("location_usage"), nil
	}
	city := strings.TrimSpace(parts[0])
	country := strings.TrimSpace(parts[1])
	if city == "" || country == "" {
		metrics.IncCommand(cmdSetLocation, "invalid")
		return b.tr.T("location_usage"), nil
	}

	loc := model.Location{City: city, Country: country}
	if err := b.locations.Save(ctx, userID, loc); err != nil {
		metrics.IncCommand(cmdSetLocation, "error")
		b.log.Error().Err(err).Str("user", userID).Msg("location save failed")
		return b.tr.T("error_generic"), err
	}
	b.reminders.RebuildAll(ctx)

	metrics.IncCommand(cmdSetLocation, "ok")
	b.log.Info().Str("user", userID).Stringer("location", loc).Msg("location saved")
	return b.tr.T("location_saved", city, country), nil
}

// handleSchedule replies with today's timetable for the sender's location,
// falling back to the process default when none is registered.
func (b *BotFacade) handleSchedule(ctx context.Context, userID string) (string, error) {
	loc, err := b.locations.Find(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			metrics.IncCommand(cmdSchedule, "error")
			b.log.Error().Err(err).Str("user", userID).Msg("location lookup failed")
			return b.tr.T("error_generic"), err
		}
		loc = b.defaultLoc
	}

	times, err := b.timetable.Timings(ctx, loc)
	if err != nil {
		metrics.IncCommand(cmdSchedule, "error")
		b.log.Warn().Err(err).Str("user", userID).Stringer("location", loc).Msg("timetable unavailable")
		return b.tr.T("schedule_fail"), nil
	}

	sb := strings.Builder{}
	sb.WriteString(b.tr.T("schedule_header", loc.City, loc.Country))
	for _, p := range model.Prayers() {
		t, ok := times[p]
		if !ok {
			continue
		}
		sb.WriteString("\n")
		sb.WriteString(b.tr.T("schedule_row", p.String(), t.String()))
	}
	metrics.IncCommand(cmdSchedule, "ok")
	return sb.String(), nil
}
