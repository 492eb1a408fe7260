// internal/db/db.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.nhat.io/otelsql"
	semconv "go.opentelemetry.io/otel/semconv/v1.7.0"
	"go.uber.org/zap"

	"github.com/unclebandit/simple-crm/internal/config"
)

// Open connects to PostgreSQL through an otelsql-instrumented lib/pq driver and pings it.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*sql.DB, error) {
	driverName, err := otelsql.Register("postgres",
		otelsql.AllowRoot(),
		otelsql.TraceQueryWithoutArgs(),
		otelsql.WithSystem(semconv.DBSystemPostgreSQL),
		otelsql.WithDatabaseName(cfg.Name),
	)
	if err != nil {
		return nil, fmt.Errorf("register instrumented driver: %w", err)
	}

	conn, err := sql.Open(driverName, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if cfg.MaxConns > 0 {
		conn.SetMaxOpenConns(cfg.MaxConns)
		conn.SetMaxIdleConns(cfg.MaxConns)
	}
	conn.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := otelsql.RecordStats(conn, otelsql.WithDatabaseName(cfg.Name)); err != nil {
		logger.Warn("database stats disabled", zap.Error(err))
	}

	logger.Info("connected to database",
		zap.String("host", cfg.Host),
		zap.String("name", cfg.Name),
	)
	return conn, nil
}
