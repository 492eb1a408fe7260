// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/unclebandit/simple-crm/internal/cache"
	"github.com/unclebandit/simple-crm/internal/config"
	"github.com/unclebandit/simple-crm/internal/controller"
	"github.com/unclebandit/simple-crm/internal/db"
	"github.com/unclebandit/simple-crm/internal/handler"
	"github.com/unclebandit/simple-crm/internal/logging"
	"github.com/unclebandit/simple-crm/internal/observability"
	"github.com/unclebandit/simple-crm/internal/queue"
	"github.com/unclebandit/simple-crm/internal/repository"
	"github.com/unclebandit/simple-crm/internal/server"
	"github.com/unclebandit/simple-crm/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "server:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
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

	customerRepo := &repository.CustomerRepository{DB: conn}
	activityRepo := &repository.ActivityRepository{DB: conn}
	metrics := observability.NewMetrics()

	customerCache := cache.CustomerCache(cache.NopCustomerCache{})
	if cfg.Redis.Addr != "" {
		client, err := cache.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return err
		}
		defer client.Close()
		customerCache = cache.NewRedisCustomerCache(client, cfg.Redis.TTL)
		logger.Info("customer cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	publisher, closePublisher, err := eventPublisher(cfg.AMQP, activityRepo, logger)
	if err != nil {
		return err
	}
	defer closePublisher()

	customerService := &service.CustomerService{
		CustomerRepo: customerRepo,
		ActivityRepo: activityRepo,
		Cache:        customerCache,
		Events:       &server.MeteredPublisher{Next: publisher, Metrics: metrics},
		Logger:       logger,
	}

	router := server.NewRouter(server.RouterConfig{
		App:       cfg.App,
		Logger:    logger,
		Metrics:   metrics,
		Customers: controller.NewCustomerController(customerService, logger),
		Health:    handler.NewHealthHandler(conn, logger),
	})

	srv := &http.Server{
		Addr:              cfg.App.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.App.RequestTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server running", zap.String("addr", cfg.App.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// eventPublisher sends events to RabbitMQ when configured. Otherwise events are
// handled in-process by the activity worker.
func eventPublisher(cfg config.AMQPConfig, activity service.ActivityRecorder, logger *zap.Logger) (queue.Publisher, func(), error) {
	if cfg.URL != "" {
		p, err := queue.DialAMQP(cfg.URL, cfg.Queue)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("publishing customer events to rabbitmq", zap.String("queue", cfg.Queue))
		return p, func() { _ = p.Close() }, nil
	}

	q := queue.NewInMemoryQueue(logger)
	worker := service.NewWorker(activity, logger)
	if err := queue.StartCustomerEventSubscriber(q, worker.Handle, logger); err != nil {
		return nil, nil, err
	}
	return q, q.Wait, nil
}
