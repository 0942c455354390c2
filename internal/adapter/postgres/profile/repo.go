// Package profile implements the Profile repository using PostgreSQL.
package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/offmind/offmind-backend/internal/adapter/postgres"
	"github.com/offmind/offmind-backend/internal/domain"
)

const table = "profiles"

var columns = []string{"id", "email", "display_name", "timezone", "preferences", "created_at", "updated_at"}

// Repo provides profile persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new profile repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID          uuid.UUID `db:"id"`
	Email       string    `db:"email"`
	DisplayName *string   `db:"display_name"`
	Timezone    string    `db:"timezone"`
	Preferences []byte    `db:"preferences"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// GetByID returns a profile by id.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, id)
}

// GetByEmail returns a profile by case-insensitive email.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	return r.getOne(ctx, squirrel.Expr("lower(email) = lower(?)", email), uuid.Nil)
}

func (r *Repo) getOne(ctx context.Context, where squirrel.Sqlizer, id uuid.UUID) (*domain.Profile, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get profile: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, query, args...); err != nil {
		return nil, postgres.MapError(err, "profile", id)
	}

	return toDomain(rw)
}

// Create inserts a profile. Returns domain.ErrAlreadyExists if the email is taken.
func (r *Repo) Create(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	prefs, err := json.Marshal(p.Preferences)
	if err != nil {
		return nil, fmt.Errorf("encode preferences: %w", err)
	}

	query, args, err := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(p.ID, p.Email, p.DisplayName, p.Timezone, prefs, p.CreatedAt, p.UpdatedAt).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build create profile: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, query, args...); err != nil {
		return nil, postgres.MapError(err, "profile", p.ID)
	}

	return toDomain(rw)
}

// Update writes display name, timezone and preferences.
func (r *Repo) Update(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	prefs, err := json.Marshal(p.Preferences)
	if err != nil {
		return nil, fmt.Errorf("encode preferences: %w", err)
	}

	query, args, err := postgres.Builder().
		Update(table).
		SetMap(map[string]any{
			"display_name": p.DisplayName,
			"timezone":     p.Timezone,
			"preferences":  prefs,
			"updated_at":   squirrel.Expr("now()"),
		}).
		Where(squirrel.Eq{"id": p.ID}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update profile: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, query, args...); err != nil {
		return nil, postgres.MapError(err, "profile", p.ID)
	}

	return toDomain(rw)
}

func toDomain(rw row) (*domain.Profile, error) {
	prefs := domain.DefaultPreferences()
	if len(rw.Preferences) > 0 {
		if err := json.Unmarshal(rw.Preferences, &prefs); err != nil {
			return nil, fmt.Errorf("profile %s: decode preferences: %w", rw.ID, err)
		}
	}
	if !prefs.ViewMode.IsValid() {
		prefs.ViewMode = domain.ViewModeGrid
	}

	return &domain.Profile{
		ID:          rw.ID,
		Email:       rw.Email,
		DisplayName: rw.DisplayName,
		Timezone:    rw.Timezone,
		Preferences: prefs,
		CreatedAt:   rw.CreatedAt,
		UpdatedAt:   rw.UpdatedAt,
	}, nil
}
