package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"outlay/internal/backend"
	"outlay/internal/cli"
	"outlay/internal/events"
	"outlay/internal/mirror"

	apphttp "outlay/internal/http"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	result, err := backend.NewFactory(logger).Create(backend.Config{
		Type:         backend.Type(cfg.LedgerBackend),
		CSVPath:      cfg.CSVPath,
		SQLiteDBPath: cfg.SQLiteDBPath,
	})
	if err != nil {
		logger.Error("Failed to initialize ledger backend", "backend", cfg.LedgerBackend, "error", err)
		os.Exit(1)
	}

	// The event broker is optional: the dashboard runs fine without
	// one, so a connection failure only logs a warning.
	var eventsClient *events.Client
	if cfg.AMQPURL != "" {
		eventsClient, err = events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Event broker unavailable, continuing without events", "error", err)
			eventsClient = nil
		}
	}
	var publisher mirror.Publisher
	if eventsClient != nil {
		publisher = eventsClient
	}

	srv := apphttp.NewServer(":"+cfg.Port, result.Store, publisher, cfg.Categories)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	_, done := cli.GracefulShutdown(logger, 10*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		if eventsClient != nil {
			if err := eventsClient.Close(); err != nil {
				logger.Error("Event client close error", "error", err)
			}
		}
		if result.Cleanup != nil {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup error", "error", err)
			}
		}
	})

	logger.Info("Starting expense dashboard",
		"port", cfg.Port,
		"backend", cfg.LedgerBackend,
		"events_enabled", publisher != nil)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}

	<-done
	logger.Info("Expense dashboard stopped")
}
