package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/offmind/offmind-backend/internal/adapter/postgres"
	"github.com/offmind/offmind-backend/internal/config"
	"github.com/offmind/offmind-backend/internal/observability"
	"github.com/offmind/offmind-backend/internal/transport/middleware"
	"github.com/offmind/offmind-backend/internal/transport/rest"
)

// Run is the server entry point. It loads configuration, connects to the
// database, wires the services and serves HTTP until ctx is cancelled, then
// shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.InfoContext(ctx, "starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("auth_provider", cfg.Auth.Provider),
	)

	shutdownTracing, err := observability.InitTracing(ctx, cfg.Tracing, Version)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Error("tracing shutdown", slog.String("error", err.Error()))
		}
	}()

	if cfg.Database.MigrateOnStart {
		if err := Migrate(ctx, cfg.Database.DSN, logger); err != nil {
			return err
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	c, err := NewContainer(cfg, pool, logger)
	if err != nil {
		return err
	}

	metrics := observability.NewCollector()
	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	checks := []rest.Check{{Name: "database", Target: pool, Critical: true}}
	if c.Supabase != nil {
		checks = append(checks, rest.Check{Name: "supabase", Target: c.Supabase})
	}

	handler := rest.NewRouter(rest.RouterDeps{
		Handlers: rest.Handlers{
			Health:       rest.NewHealthHandler(Version, checks...),
			Auth:         rest.NewAuthHandler(c.Services.Auth, metrics, logger),
			Items:        rest.NewItemHandler(c.Services.Items, metrics, logger),
			Destinations: rest.NewDestinationHandler(c.Services.Destinations, logger),
			Contacts:     rest.NewContactHandler(c.Services.Contacts, logger),
			Board:        rest.NewBoardHandler(c.Services.Board, metrics, logger),
			Dashboard:    rest.NewDashboardHandler(c.Services.Dashboard, logger),
			Profile:      rest.NewProfileHandler(c.Services.Profile, logger),
		},
		Tokens:          c.Services.Auth,
		DestinationRepo: c.Repos.Destinations,
		Metrics:         metrics,
		RateLimiter:     limiter,
		RateLimit:       cfg.RateLimit,
		CORS:            cfg.CORS,
		Logger:          logger,
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.InfoContext(gctx, "http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("stopped")
	return nil
}
