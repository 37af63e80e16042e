// File: internal/infra/sched/cron_runner.go
package sched

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"telegram-prayer-reminder/internal/domain/ports/adapter"
)

var _ adapter.ScheduleRunner = (*CronRunner)(nil)

// CronRunner drives daily wall-clock triggers with robfig/cron. Each job gets
// its own "<minute> <hour> * * *" entry, so cancelling one never disturbs the
// others.
type CronRunner struct {
	cron *cron.Cron
	log  *zerolog.Logger
}

func NewCronRunner(timezone string, logger *zerolog.Logger) *CronRunner {
	compLog := logger.With().Str("component", "CronRunner").Logger()
	location, err := time.LoadLocation(timezone)
	if err != nil {
		compLog.Warn().Err(err).Str("timezone", timezone).Msg("timezone load failed, using UTC")
		location = time.UTC
	}
	return &CronRunner{
		cron: cron.New(cron.WithLocation(location)),
		log:  &compLog,
	}
}

func (r *CronRunner) AddDaily(hour, minute int, cmd func()) (int, error) {
	id, err := r.cron.AddFunc(fmt.Sprintf("%d %d * * *", minute, hour), cmd)
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func (r *CronRunner) Remove(id int) {
	r.cron.Remove(cron.EntryID(id))
}

func (r *CronRunner) Start() {
	r.cron.Start()
	r.log.Info().Msg("cron runner started")
}

// Stop halts trigger dispatch; running jobs finish on their own.
func (r *CronRunner) Stop() {
	r.cron.Stop()
	r.log.Info().Msg("cron runner stopped")
}
