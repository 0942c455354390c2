// Package token implements the RefreshToken repository using PostgreSQL.
package token

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

const table = "refresh_tokens"

var columns = []string{"id", "user_id", "token_hash", "expires_at", "created_at", "revoked_at"}

var returning = strings.Join(columns, ", ")

// Repo provides refresh-token persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new token repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID        uuid.UUID  `db:"id"`
	UserID    uuid.UUID  `db:"user_id"`
	TokenHash string     `db:"token_hash"`
	ExpiresAt time.Time  `db:"expires_at"`
	CreatedAt time.Time  `db:"created_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}

// Create inserts a new refresh token and returns the stored row.
func (r *Repo) Create(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) (*domain.RefreshToken, error) {
	query, args, err := postgres.Builder().
		Insert(table).
		Columns("user_id", "token_hash", "expires_at").
		Values(userID, tokenHash, expiresAt).
		Suffix("RETURNING " + returning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build create refresh token: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, query, args...); err != nil {
		return nil, postgres.MapError(err, "refresh_token", uuid.Nil)
	}
	return toDomain(rw), nil
}

// GetByHash returns an active (non-revoked, non-expired) refresh token by its hash.
// Returns domain.ErrNotFound if the token does not exist, is revoked, or is expired.
func (r *Repo) GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"token_hash": tokenHash, "revoked_at": nil}).
		Where("expires_at > now()").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get refresh token: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, query, args...); err != nil {
		return nil, postgres.MapError(err, "refresh_token", uuid.Nil)
	}

	return toDomain(rw), nil
}

// RevokeByID revokes a specific refresh token by setting revoked_at.
// Idempotent: revoking an already-revoked token is not an error.
func (r *Repo) RevokeByID(ctx context.Context, id uuid.UUID) error {
	return r.revoke(ctx, squirrel.Eq{"id": id, "revoked_at": nil}, id)
}

// RevokeAllByUser revokes all active refresh tokens for the given user.
func (r *Repo) RevokeAllByUser(ctx context.Context, userID uuid.UUID) error {
	return r.revoke(ctx, squirrel.Eq{"user_id": userID, "revoked_at": nil}, uuid.Nil)
}

func (r *Repo) revoke(ctx context.Context, where squirrel.Eq, id uuid.UUID) error {
	query, args, err := postgres.Builder().
		Update(table).
		Set("revoked_at", squirrel.Expr("now()")).
		Where(where).
		ToSql()
	if err != nil {
		return fmt.Errorf("build revoke refresh token: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "refresh_token", id)
	}
	return nil
}

// DeleteExpired removes all expired or revoked tokens from the database.
// Returns the count of deleted tokens.
func (r *Repo) DeleteExpired(ctx context.Context) (int, error) {
	query, args, err := postgres.Builder().
		Delete(table).
		Where(squirrel.Or{
			squirrel.Expr("expires_at <= now()"),
			squirrel.NotEq{"revoked_at": nil},
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete expired refresh tokens: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "refresh_token", uuid.Nil)
	}
	return int(tag.RowsAffected()), nil
}

func toDomain(rw row) *domain.RefreshToken {
	return &domain.RefreshToken{
		ID:        rw.ID,
		UserID:    rw.UserID,
		TokenHash: rw.TokenHash,
		ExpiresAt: rw.ExpiresAt,
		CreatedAt: rw.CreatedAt,
		RevokedAt: rw.RevokedAt,
	}
}
