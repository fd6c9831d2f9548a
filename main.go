package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/example/studydash/internal/bot"
	"github.com/example/studydash/internal/config"
	"github.com/example/studydash/internal/dashboard"
	"github.com/example/studydash/internal/database"
	"github.com/example/studydash/internal/logger"
	"github.com/example/studydash/internal/scheduler"
	"github.com/example/studydash/internal/seed"
	"github.com/example/studydash/internal/server"
)

func main() {
	configPath := flag.String("config", config.GetEnv("CONFIG_PATH", "config.yaml"), "path to a YAML config file")
	summary := flag.Bool("summary", false, "print the dashboard as text and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		bootLogger := logger.New("info", "console")
		bootLogger.Fatal().Err(err).Msg("Failed to load configuration")
	}
	lgr := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	if cfg.Logging.Level == "debug" || cfg.Logging.Level == "trace" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Context cancelled on SIGINT or SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store, err := database.Open(ctx, cfg.Database.Type, cfg.DSN())
	if err != nil {
		lgr.Fatal().Err(err).Str("type", cfg.Database.Type).Msg("Failed to connect to database")
	}
	defer store.Close()
	lgr.Info().Str("type", cfg.Database.Type).Msg("Database connected")

	data, err := seed.Load(cfg, lgr)
	if err != nil {
		lgr.Fatal().Err(err).Msg("Failed to load seed data")
	}

	dash := dashboard.New(data.Student, store, cfg.Targets.GPA, cfg.Targets.ModuleDays)
	if err := seed.Populate(ctx, dash, data, lgr); err != nil {
		lgr.Fatal().Err(err).Msg("Failed to populate dashboard")
	}

	if *summary {
		if err := dash.WriteSummary(os.Stdout); err != nil {
			lgr.Fatal().Err(err).Msg("Failed to write summary")
		}
		return
	}

	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched = scheduler.New(dash, newNotifier(cfg, lgr), scheduler.Options{
			AutosaveInterval:   cfg.Scheduler.AutosaveInterval,
			ReminderInterval:   cfg.Scheduler.ReminderInterval,
			ReminderWindowDays: cfg.Scheduler.ReminderWindowDays,
		}, lgr)
		if err := sched.Start(); err != nil {
			lgr.Fatal().Err(err).Msg("Failed to start scheduler")
		}
	}

	srv, err := server.New(cfg.Addr(), dash, store, lgr)
	if err != nil {
		lgr.Fatal().Err(err).Msg("Failed to create server")
	}
	if err := srv.Run(ctx); err != nil {
		lgr.Error().Err(err).Msg("Server error")
	}

	if sched != nil {
		sched.Stop()
	}

	// Final save before exit, under the same lock as requests
	saveCtx, saveCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer saveCancel()
	dash.Lock()
	if err := dash.SaveAll(saveCtx); err != nil {
		lgr.Error().Err(err).Msg("Failed to save dashboard on shutdown")
	}
	dash.Unlock()

	lgr.Info().Msg("Dashboard stopped")
}

// newNotifier sends reminders to Telegram when a token is configured and
// to the log otherwise
func newNotifier(cfg *config.Config, lgr zerolog.Logger) scheduler.Notifier {
	if cfg.Telegram.Token == "" {
		return scheduler.NewLogNotifier(lgr)
	}
	b, err := bot.New(cfg.Telegram.Token, cfg.Telegram.ChatID, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to create Telegram bot, falling back to log reminders")
		return scheduler.NewLogNotifier(lgr)
	}
	return b
}
