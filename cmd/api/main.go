// Package main is the entry point for the books API server.
// It wires together configuration, the database connection, and the HTTP router.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/aoideee/bookshelf/internal/config"
	"github.com/aoideee/bookshelf/internal/data"
	"github.com/aoideee/bookshelf/internal/metrics"
)

// appVersion is the current version of the API, shown in logs and /healthz.
const appVersion = "1.0.0"

// applicationDependencies bundles every shared resource that HTTP handlers need.
// A pointer to this struct is passed as the receiver on all handler and route methods.
type applicationDependencies struct {
	config  *config.Config   // Layered configuration (defaults, file, env)
	logger  *slog.Logger     // Structured logger that writes to stdout
	models  data.Models      // Database model layer for the books table
	metrics *metrics.Manager // Prometheus collectors served on /metrics
}

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file (overrides BOOKS_CONFIG)")
	flag.Parse()

	cfg, err := config.Load(context.Background(), *configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	db, err := data.OpenDB(context.Background(), data.Options{
		Driver:       cfg.DBDriver,
		DSN:          cfg.DBDSN,
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
		MaxIdleTime:  cfg.DBMaxIdleTime,
	})
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	defer db.Close()

	logger.Info("database connection pool established", "driver", cfg.DBDriver)

	app := &applicationDependencies{
		config:  cfg,
		logger:  logger,
		models:  data.NewModels(db, cfg.DBDriver),
		metrics: metrics.New(),
	}

	if err := app.serve(); err != nil {
		logger.Error(err.Error())
		db.Close()
		os.Exit(1)
	}
}
