// File: internal/infra/metrics/metrics.go
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	remindersSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reminders_sent_total",
			Help: "Reminder trigger firings by event and send outcome.",
		},
		[]string{"event", "status"},
	)

	timetableFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "timetable_fetch_total",
			Help: "External timetable API calls by outcome (ok/error).",
		},
		[]string{"status"},
	)

	timetableCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "timetable_cache_total",
			Help: "Timings cache lookups by outcome (hit/miss).",
		},
		[]string{"status"},
	)

	botCommands = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_commands_total",
			Help: "Inbound bot commands by command and outcome.",
		},
		[]string{"command", "status"},
	)

	reminderRebuilds = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reminder_rebuilds_total",
			Help: "Full reminder-schedule rebuilds.",
		},
	)
)

// MustRegister registers collectors with the default registry (idempotent).
func MustRegister() {
	once.Do(func() {
		prometheus.MustRegister(
			remindersSent, timetableFetches, timetableCache,
			botCommands, reminderRebuilds,
		)
	})
}

func IncReminderSent(event, status string) { remindersSent.WithLabelValues(event, status).Inc() }
func IncTimetableFetch(status string)      { timetableFetches.WithLabelValues(status).Inc() }
func IncCacheRequest(status string)        { timetableCache.WithLabelValues(status).Inc() }
func IncCommand(command, status string)    { botCommands.WithLabelValues(command, status).Inc() }
func IncRebuild()                          { reminderRebuilds.Inc() }
