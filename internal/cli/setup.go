// Package cli wires configuration, persistence adapters, and the
// finance service into subcommands.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"

	"financelite/internal/amqp"
	"financelite/internal/config"
	"financelite/internal/log"
	"financelite/internal/persist"
	"financelite/internal/persist/dirstore"
	"financelite/internal/persist/localdb"
	"financelite/internal/services"
	"financelite/internal/store"
)

// SetupLogger initializes structured logging and sets it as the
// process default.
func SetupLogger() *log.Logger {
	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// OpenService builds the finance service from the environment: it
// validates configuration, opens the configured persistence adapters,
// connects the optional AMQP publisher, and loads the current month.
func OpenService(ctx context.Context) (*services.FinanceService, *config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	adapters, err := buildAdapters(cfg)
	if err != nil {
		return nil, nil, err
	}

	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			slog.WarnContext(ctx, "AMQP unavailable, continuing without publisher", "error", err)
			amqpClient = nil
		}
	}

	svc, err := services.NewFinanceService(store.New(), adapters, amqpClient)
	if err != nil {
		return nil, nil, err
	}

	if err := svc.LoadMonth(ctx, svc.CurrentMonth()); err != nil {
		svc.Close()
		return nil, nil, err
	}
	return svc, cfg, nil
}

// buildAdapters returns the adapters in ascending priority order: the
// SQLite store first, the month-file directory last so it wins merges
// and receives saves when both are configured.
func buildAdapters(cfg *config.Config) ([]persist.Adapter, error) {
	var adapters []persist.Adapter

	if cfg.DataBackend == "local" || cfg.DataBackend == "both" {
		a, err := localdb.New(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("open local database: %w", err)
		}
		adapters = append(adapters, a)
	}

	if cfg.DataBackend == "directory" || cfg.DataBackend == "both" {
		a, err := dirstore.New(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open data directory: %w", err)
		}
		adapters = append(adapters, a)
	}

	return adapters, nil
}
