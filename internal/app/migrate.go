package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/offmind/offmind-backend/migrations"
)

// withMigrator opens a database/sql handle for dsn, since goose works on
// *sql.DB, and runs fn with a provider over the embedded migrations.
func withMigrator(ctx context.Context, dsn string, fn func(*goose.Provider) error) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	return fn(provider)
}

// Migrate applies all pending migrations.
func Migrate(ctx context.Context, dsn string, logger *slog.Logger) error {
	return withMigrator(ctx, dsn, func(p *goose.Provider) error {
		results, err := p.Up(ctx)
		if err != nil {
			return fmt.Errorf("migrate up: %w", err)
		}
		for _, r := range results {
			logger.InfoContext(ctx, "migration applied",
				slog.Int64("version", r.Source.Version),
				slog.String("file", r.Source.Path),
				slog.Duration("duration", r.Duration),
			)
		}
		if len(results) == 0 {
			logger.InfoContext(ctx, "schema up to date")
		}
		return nil
	})
}

// MigrationState is one row of MigrationStatus.
type MigrationState struct {
	Version int64
	File    string
	Applied bool
}

// MigrationStatus reports every known migration and whether it is applied.
func MigrationStatus(ctx context.Context, dsn string) ([]MigrationState, error) {
	var out []MigrationState
	err := withMigrator(ctx, dsn, func(p *goose.Provider) error {
		statuses, err := p.Status(ctx)
		if err != nil {
			return fmt.Errorf("migrate status: %w", err)
		}
		for _, s := range statuses {
			out = append(out, MigrationState{
				Version: s.Source.Version,
				File:    s.Source.Path,
				Applied: s.State == goose.StateApplied,
			})
		}
		return nil
	})
	return out, err
}
