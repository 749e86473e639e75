// ledger-worker consumes transaction events from the merchant screen
// and archives them to SQLite for later bookkeeping.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/paulinadupin/the-dms-merchant-screen/internal/config"
	"github.com/paulinadupin/the-dms-merchant-screen/internal/events"
	applog "github.com/paulinadupin/the-dms-merchant-screen/internal/log"
	"github.com/paulinadupin/the-dms-merchant-screen/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.Config{Component: "ledger-worker"})
	applog.SetDefault(logger)

	logger.Info("Starting ledger-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the ledger worker")
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	amqpClient, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := func(ctx context.Context, ev *events.TransactionEvent) error {
		_, err := repo.ArchiveTransaction(ctx, storage.ArchivedTransaction{
			SessionID:  ev.SessionID,
			Kind:       ev.Kind,
			ItemName:   ev.ItemName,
			Price:      ev.Money(),
			OccurredAt: ev.Timestamp,
		})
		return err
	}

	go func() {
		if err := amqpClient.ConsumeTransactions(ctx, handler); err != nil {
			if err != context.Canceled {
				logger.Error("Transaction consumption failed", "error", err)
			}
			cancel()
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	cancel()

	// Give the consumer a moment to finish the in-flight delivery.
	time.Sleep(2 * time.Second)
	logger.Info("Worker shutdown complete")
}
