// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"telegram-prayer-reminder/internal/application"
	"telegram-prayer-reminder/internal/config"
	"telegram-prayer-reminder/internal/domain/model"
	"telegram-prayer-reminder/internal/domain/ports/repository"
	"telegram-prayer-reminder/internal/infra/aladhan"
	pg "telegram-prayer-reminder/internal/infra/db/postgres"
	"telegram-prayer-reminder/internal/infra/i18n"
	"telegram-prayer-reminder/internal/infra/logging"
	"telegram-prayer-reminder/internal/infra/metrics"
	red "telegram-prayer-reminder/internal/infra/redis"
	"telegram-prayer-reminder/internal/infra/sched"
	"telegram-prayer-reminder/internal/infra/store"
	"telegram-prayer-reminder/internal/infra/telegram"
	"telegram-prayer-reminder/internal/infra/web"
	"telegram-prayer-reminder/internal/usecase"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	metrics.MustRegister()

	tz, err := time.LoadLocation(cfg.Timetable.Timezone)
	if err != nil {
		logger.Warn().Err(err).Str("timezone", cfg.Timetable.Timezone).Msg("timezone load failed, using UTC")
		tz = time.UTC
	}

	tr, err := i18n.NewTranslator(i18n.LocalesFS, "id")
	if err != nil {
		logger.Fatal().Err(err).Msg("translator")
	}

	enabled, err := model.ParsePrayerSet(cfg.Reminder.Prayers)
	if err != nil {
		logger.Fatal().Err(err).Msg("reminder.prayers")
	}

	// ---- Location store (Postgres when configured, flat file otherwise) ----
	var locations repository.LocationRepository
	if cfg.Storage.DatabaseURL != "" {
		pool, err := pg.NewPgxPool(ctx, cfg.Storage.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("postgres")
		}
		defer pool.Close()
		repo := pg.NewLocationRepo(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			logger.Fatal().Err(err).Msg("postgres schema")
		}
		locations = repo
		logger.Info().Msg("location store: postgres")
	} else {
		locations = store.NewLocationFile(cfg.Storage.LocationsFile)
		logger.Info().Str("path", cfg.Storage.LocationsFile).Msg("location store: flat file")
	}

	// ---- Timings cache (Redis when configured, in-memory otherwise) ----
	var cache usecase.TimingsCache
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis")
		}
		defer redisClient.Close()
		cache = red.NewTimingsCache(redisClient, tz, logger)
		logger.Info().Msg("timings cache: redis")
	} else {
		cache = store.NewTimingsMemory(tz)
		logger.Info().Msg("timings cache: in-memory")
	}

	// ---- Core ----
	timetableAPI := aladhan.NewClient(cfg.Timetable.BaseURL, cfg.Timetable.Method, logger)
	timetableUC := usecase.NewTimetableUseCase(timetableAPI, cache, logger)

	bot, err := telegram.NewBotAdapter(&cfg.Bot, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("telegram: re-authentication required")
	}
	if err := bot.PrintPairingQR(); err != nil {
		logger.Warn().Err(err).Msg("pairing qr")
	}

	runner := sched.NewCronRunner(cfg.Timetable.Timezone, logger)
	reminderUC := usecase.NewReminderUseCase(locations, timetableUC, bot, runner, tr, usecase.ReminderSettings{
		AnnouncementChat: cfg.Reminder.AnnouncementChat,
		Enabled:          enabled,
		DefaultLocation:  model.Location{City: cfg.Reminder.DefaultCity, Country: cfg.Reminder.DefaultCountry},
	}, logger)

	facade := application.NewBotFacade(locations, timetableUC, reminderUC,
		tr, model.Location{City: cfg.Reminder.DefaultCity, Country: cfg.Reminder.DefaultCountry}, logger)

	// ---- Scheduling ----
	runner.Start()
	if err := reminderUC.ScheduleDailyRefresh(); err != nil {
		logger.Fatal().Err(err).Msg("daily refresh")
	}

	// ---- Admin HTTP server ----
	adminSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Admin.Port),
		Handler: web.NewServer(logger).Router(),
	}
	go func() {
		logger.Info().Int("port", cfg.Admin.Port).Msg("admin server listening")
		if err := adminSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("admin server stopped")
		}
	}()

	// ---- Polling (blocks until shutdown) ----
	if err := bot.StartPolling(ctx, facade, reminderUC.RebuildAll); err != nil && ctx.Err() == nil {
		logger.Error().Err(err).Msg("telegram polling stopped")
	}

	// ---- Teardown ----
	logger.Info().Msg("shutting down")
	reminderUC.Stop()
	runner.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = adminSrv.Shutdown(shutdownCtx)
}
