// cmd/worker/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/unclebandit/simple-crm/internal/config"
	"github.com/unclebandit/simple-crm/internal/db"
	"github.com/unclebandit/simple-crm/internal/logging"
	"github.com/unclebandit/simple-crm/internal/queue"
	"github.com/unclebandit/simple-crm/internal/repository"
	"github.com/unclebandit/simple-crm/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "worker:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.AMQP.URL == "" {
		return fmt.Errorf("AMQP_URL is required for the worker")
	}

	logger, err := logging.NewLogger(cfg.Logger)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Open(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	worker := service.NewWorker(&repository.ActivityRepository{DB: conn}, logger)

	logger.Info("worker running, waiting for customer events...")
	return queue.ConsumeCustomerEvents(ctx, cfg.AMQP.URL, cfg.AMQP.Queue, worker.Handle, logger)
}
