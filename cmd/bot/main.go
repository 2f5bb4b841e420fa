package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ivanoskov/smartbalance_bot/internal/app"
	"github.com/ivanoskov/smartbalance_bot/internal/config"
	"github.com/ivanoskov/smartbalance_bot/internal/log"
	"github.com/ivanoskov/smartbalance_bot/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.New(log.DefaultConfig()).Error("failed to load config", log.FieldError, err)
		os.Exit(1)
	}
	logger := app.NewLogger(cfg)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", log.FieldError, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to start", log.FieldOperation, log.OpStartup, log.FieldError, err)
		os.Exit(1)
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error("shutdown error", log.FieldError, err)
		}
	}()

	if cfg.WebhookURL() == "" {
		if err := a.Bot.Start(ctx); err != nil {
			logger.Error("polling stopped", log.FieldError, err)
		}
		return
	}

	if err := a.Bot.SetWebhook(cfg.WebhookURL()); err != nil {
		logger.Error("failed to register webhook", log.FieldError, err)
		return
	}

	srv := server.New(":"+cfg.Port, cfg.TelegramToken, a.Bot, logger)
	go func() {
		<-ctx.Done()
		logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", log.FieldError, err)
		}
	}()

	if err := srv.Start(); err != nil {
		logger.Error("http server failed", log.FieldError, err)
	}
}
