// Package contact implements the Contact repository using PostgreSQL.
package contact

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

const table = "contacts"

var columns = []string{"id", "user_id", "name", "email", "phone", "notes", "created_at", "updated_at"}

// Repo provides contact persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new contact repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Name      string    `db:"name"`
	Email     *string   `db:"email"`
	Phone     *string   `db:"phone"`
	Notes     *string   `db:"notes"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// GetByID returns a contact by primary key regardless of owner.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Contact, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get contact: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, query, args...); err != nil {
		return nil, postgres.MapError(err, "contact", id)
	}

	c := toDomain(rw)
	return &c, nil
}

// ListByUser returns the user's contacts ordered by name.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Contact, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("name", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list contacts: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "contact", uuid.Nil)
	}

	out := make([]domain.Contact, len(rows))
	for i, rw := range rows {
		out[i] = toDomain(rw)
	}
	return out, nil
}

// Create inserts a contact.
func (r *Repo) Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error) {
	query, args, err := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(c.ID, c.UserID, c.Name, c.Email, c.Phone, c.Notes, c.CreatedAt, c.UpdatedAt).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build create contact: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, query, args...); err != nil {
		return nil, postgres.MapError(err, "contact", c.ID)
	}

	out := toDomain(rw)
	return &out, nil
}

// Update writes the mutable columns of c.
func (r *Repo) Update(ctx context.Context, c *domain.Contact) (*domain.Contact, error) {
	query, args, err := postgres.Builder().
		Update(table).
		SetMap(map[string]any{
			"name":       c.Name,
			"email":      c.Email,
			"phone":      c.Phone,
			"notes":      c.Notes,
			"updated_at": squirrel.Expr("now()"),
		}).
		Where(squirrel.Eq{"id": c.ID, "user_id": c.UserID}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update contact: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, query, args...); err != nil {
		return nil, postgres.MapError(err, "contact", c.ID)
	}

	out := toDomain(rw)
	return &out, nil
}

// Delete removes a contact. Returns domain.ErrNotFound if nothing was deleted.
func (r *Repo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query, args, err := postgres.Builder().
		Delete(table).
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete contact: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "contact", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("contact %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func toDomain(rw row) domain.Contact {
	return domain.Contact{
		ID:        rw.ID,
		UserID:    rw.UserID,
		Name:      rw.Name,
		Email:     rw.Email,
		Phone:     rw.Phone,
		Notes:     rw.Notes,
		CreatedAt: rw.CreatedAt,
		UpdatedAt: rw.UpdatedAt,
	}
}
