// Package magiclink implements the MagicLink repository using PostgreSQL.
package magiclink

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/offmind/offmind-backend/internal/adapter/postgres"
	"github.com/offmind/offmind-backend/internal/domain"
)

const table = "magic_links"

var columns = []string{"id", "email", "token_hash", "expires_at", "consumed_at", "created_at"}

var returning = strings.Join(columns, ", ")

// Repo provides magic-link persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new magic-link repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID         uuid.UUID  `db:"id"`
	Email      string     `db:"email"`
	TokenHash  string     `db:"token_hash"`
	ExpiresAt  time.Time  `db:"expires_at"`
	ConsumedAt *time.Time `db:"consumed_at"`
	CreatedAt  time.Time  `db:"created_at"`
}

// Create stores a new link for email. The email is lowercased.
func (r *Repo) Create(ctx context.Context, email, tokenHash string, expiresAt time.Time) (*domain.MagicLink, error) {
	query, args, err := postgres.Builder().
		Insert(table).
		Columns("email", "token_hash", "expires_at").
		Values(strings.ToLower(email), tokenHash, expiresAt).
		Suffix("RETURNING " + returning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build create magic link: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, query, args...); err != nil {
		return nil, postgres.MapError(err, "magic_link", uuid.Nil)
	}
	return toDomain(rw), nil
}

// Consume marks the link with tokenHash as used and returns it. A link that
// is unknown, already consumed or expired at now yields domain.ErrNotFound.
// The update is a single statement so two concurrent verifications cannot
// both succeed.
func (r *Repo) Consume(ctx context.Context, tokenHash string, now time.Time) (*domain.MagicLink, error) {
	query, args, err := postgres.Builder().
		Update(table).
		Set("consumed_at", now).
		Where(squirrel.Eq{"token_hash": tokenHash, "consumed_at": nil}).
		Where(squirrel.Gt{"expires_at": now}).
		Suffix("RETURNING " + returning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build consume magic link: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, query, args...); err != nil {
		return nil, postgres.MapError(err, "magic_link", uuid.Nil)
	}
	return toDomain(rw), nil
}

// DeleteExpired removes links that expired before now or were consumed.
func (r *Repo) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	query, args, err := postgres.Builder().
		Delete(table).
		Where(squirrel.Or{
			squirrel.LtOrEq{"expires_at": now},
			squirrel.NotEq{"consumed_at": nil},
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete expired magic links: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "magic_link", uuid.Nil)
	}
	return int(tag.RowsAffected()), nil
}

func toDomain(rw row) *domain.MagicLink {
	return &domain.MagicLink{
		ID:         rw.ID,
		Email:      rw.Email,
		TokenHash:  rw.TokenHash,
		ExpiresAt:  rw.ExpiresAt,
		ConsumedAt: rw.ConsumedAt,
		CreatedAt:  rw.CreatedAt,
	}
}
