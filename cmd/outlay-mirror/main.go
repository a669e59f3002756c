// The mirror worker keeps a SQLite archive in step with the primary
// ledger. It consumes record-appended events for the live path and
// runs a periodic reconcile pass to pick up anything missed while it
// was down.
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"outlay/internal/cli"
	"outlay/internal/events"
	"outlay/internal/ledger/csvfile"
	"outlay/internal/ledger/sqlite"
	"outlay/internal/mirror"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the mirror worker")
		os.Exit(1)
	}

	archive, err := sqlite.New(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open archive database", "db_path", cfg.SQLiteDBPath, "error", err)
		os.Exit(1)
	}

	source := csvfile.New(cfg.CSVPath)

	client, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to connect to event broker", "error", err)
		os.Exit(1)
	}

	m := mirror.New(archive, source)

	ctx, done := cli.GracefulShutdown(logger, 10*time.Second, func() {
		if err := client.Close(); err != nil {
			logger.Error("Event client close error", "error", err)
		}
		if err := archive.Close(); err != nil {
			logger.Error("Archive close error", "error", err)
		}
	})

	logger.Info("Starting mirror worker",
		"csv_path", cfg.CSVPath,
		"db_path", cfg.SQLiteDBPath,
		"reconcile_interval", cfg.MirrorInterval.String())

	// Catch up before consuming live events.
	if n, err := m.Reconcile(ctx); err != nil {
		logger.Error("Initial reconcile failed", "error", err)
	} else if n > 0 {
		logger.Info("Initial reconcile archived records", "count", n)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return client.ConsumeRecordAppended(gctx, func(msg *events.RecordAppendedMessage) error {
			return m.HandleRecordAppended(gctx, msg)
		})
	})

	g.Go(func() error {
		ticker := time.NewTicker(cfg.MirrorInterval)
		defer ticker.Stop()

		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-ticker.C:
				if _, err := m.Reconcile(gctx); err != nil {
					logger.Error("Reconcile pass failed", "error", err)
				}
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Mirror worker failed", "error", err)
		os.Exit(1)
	}

	<-done
	logger.Info("Mirror worker stopped")
}
