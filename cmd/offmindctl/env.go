package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/offmind/offmind-backend/internal/adapter/postgres"
	"github.com/offmind/offmind-backend/internal/app"
	"github.com/offmind/offmind-backend/internal/config"
)

// env is what database-backed commands run against.
type env struct {
	cfg       *config.Config
	log       *slog.Logger
	container *app.Container
}

func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return cfg, app.NewLogger(cfg.Log), nil
}

// withEnv connects to the database, builds the container and runs fn.
func withEnv(ctx context.Context, fn func(*env) error) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	c, err := app.NewContainer(cfg, pool, logger)
	if err != nil {
		return fmt.Errorf("build services: %w", err)
	}

	return fn(&env{cfg: cfg, log: logger, container: c})
}
