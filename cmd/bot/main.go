package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"keyword_pin_bot/internal/auth"
	"keyword_pin_bot/internal/config"
	"keyword_pin_bot/internal/feature/botadmin"
	"keyword_pin_bot/internal/feature/keyword"
	"keyword_pin_bot/internal/feature/pin"
	"keyword_pin_bot/internal/health"
	"keyword_pin_bot/internal/logging"
	"keyword_pin_bot/internal/store"
	"keyword_pin_bot/internal/telegram"
)

const (
	telegramShutdownTimeout = 10 * time.Second
	healthShutdownTimeout   = 5 * time.Second
)

func main() {
	configOnly := flag.Bool("config-only", false, "load and print configuration then exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.Error("configuration error", logging.Fields{"error": err})
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.Setup(cfg)
	if err != nil {
		logging.Error("logger setup error", logging.Fields{"error": err})
		fmt.Fprintf(os.Stderr, "logger setup error: %v\n", err)
		os.Exit(1)
	}

	if *configOnly {
		logging.Info("configuration check", logging.Fields{"event": "config_only"})
		fmt.Println("configuration check: ok")
		fmt.Println(config.FormatRedacted(cfg))
		return
	}

	logger.WithFields(logging.Fields{
		"event":            "startup",
		"bot_owner":        cfg.BotOwnerID,
		"platform_timeout": cfg.PlatformTimeout.String(),
		"health_port":      cfg.HTTPPort,
	}).Info("configuration loaded")

	state, err := store.NewState()
	if err != nil {
		logger.WithError(err).Error("state setup error")
		fmt.Fprintf(os.Stderr, "state setup error: %v\n", err)
		os.Exit(1)
	}

	checker := auth.NewChecker(state.Admins(), logger)

	botAdmins := botadmin.NewService(state.Admins(), checker, state.Cooldowns(), logger)
	if err := botAdmins.EnsureSeed(cfg.BotOwnerID); err != nil {
		logger.WithError(err).Error("bot admin bootstrap error")
		fmt.Fprintf(os.Stderr, "bot admin bootstrap error: %v\n", err)
		os.Exit(1)
	}

	router := telegram.NewRouter(
		keyword.NewService(state.Keywords(), state.Cooldowns(), checker, logger),
		pin.NewService(state.Keywords(), state.Cooldowns(), checker, logger),
		botAdmins,
		logger,
	)

	tgClient, err := telegram.NewClient(cfg, router, logger)
	if err != nil {
		logger.WithError(err).Error("telegram client setup error")
		fmt.Fprintf(os.Stderr, "telegram client setup error: %v\n", err)
		os.Exit(1)
	}

	logger.WithFields(logging.Fields{
		"event":    "telegram_ready",
		"commands": router.Commands(),
	}).Info("telegram client initialized")

	var healthServer *health.Server
	if cfg.HealthEnabled() {
		healthServer = health.NewServer(cfg.HTTPPort, tgClient, state, logger)
		go func() {
			if err := healthServer.ListenAndServe(); err != nil {
				logger.WithField("event", "health_error").WithError(err).Error("health server failed")
			}
		}()
	}

	signalCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	telegramCtx, cancelTelegram := context.WithCancel(context.Background())
	tgDone := make(chan struct{})

	go func() {
		tgClient.Start(telegramCtx)
		close(tgDone)
	}()

	select {
	case <-signalCtx.Done():
		logger.WithField("event", "shutdown_signal").Info("received termination signal, stopping telegram polling")
	case <-tgDone:
		logger.WithField("event", "telegram_stopped_early").Warn("telegram client stopped before shutdown signal")
	}

	cancelTelegram()

	waitCtx, cancelWait := context.WithTimeout(context.Background(), telegramShutdownTimeout)
	select {
	case <-tgDone:
	case <-waitCtx.Done():
		logger.WithField("event", "telegram_shutdown_timeout").Warn("timed out waiting for in-flight updates to finish")
	}
	cancelWait()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), healthShutdownTimeout)
	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		logger.WithField("event", "health_shutdown_error").WithError(err).Error("health server shutdown error")
	}
	cancelShutdown()

	stats := state.Stats()
	logger.WithFields(logging.Fields{
		"event":      "shutdown_complete",
		"groups":     stats.Groups,
		"pins":       stats.Pins,
		"bot_admins": stats.BotAdmins,
	}).Info("shutdown complete")
}
