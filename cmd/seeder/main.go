//cmd/seeder/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/unclebandit/simple-crm/internal/config"
	"github.com/unclebandit/simple-crm/internal/db"
	"github.com/unclebandit/simple-crm/internal/logging"
)

func main() {
	dir := flag.String("dir", "seed", "directory holding schema.sql and customers.sql")
	schemaOnly := flag.Bool("schema-only", false, "create tables without sample customers")
	flag.Parse()

	if err := run(*dir, *schemaOnly); err != nil {
		fmt.Fprintln(os.Stderr, "seeder:", err)
		os.Exit(1)
	}
}

func run(dir string, schemaOnly bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := logging.NewLogger(cfg.Logger)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	conn, err := db.Open(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	for _, file := range seedFiles(dir, schemaOnly) {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read %s: %w", file, err)
		}
		if _, err := conn.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("execute %s: %w", file, err)
		}
		logger.Info("seeded", zap.String("file", file))
	}

	logger.Info("database seeding completed successfully")
	return nil
}

func seedFiles(dir string, schemaOnly bool) []string {
	files := []string{filepath.Join(dir, "schema.sql")}
	if !schemaOnly {
		files = append(files, filepath.Join(dir, "customers.sql"))
	}
	return files
}
