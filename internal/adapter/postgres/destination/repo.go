// Package destination implements the Destination repository using PostgreSQL.
package destination

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/offmind/offmind-backend/internal/adapter/postgres"
	"github.com/offmind/offmind-backend/internal/domain"
)

const table = "destinations"

var columns = []string{
	"id", "user_id", "slug", "name", "icon", "color", "description", "sort_order", "created_at",
}

// Repo provides destination persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new destination repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID          uuid.UUID `db:"id"`
	UserID      uuid.UUID `db:"user_id"`
	Slug        string    `db:"slug"`
	Name        string    `db:"name"`
	Icon        string    `db:"icon"`
	Color       *string   `db:"color"`
	Description *string   `db:"description"`
	SortOrder   int       `db:"sort_order"`
	CreatedAt   time.Time `db:"created_at"`
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a destination by primary key regardless of owner.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get destination: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, query, args...); err != nil {
		return nil, postgres.MapError(err, "destination", id)
	}

	d := toDomain(rw)
	return &d, nil
}

// GetByIDs returns the destinations with the given ids. Missing ids are skipped.
func (r *Repo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Destination, error) {
	if len(ids) == 0 {
		return []domain.Destination{}, nil
	}

	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get destinations: %w", err)
	}

	return r.selectDestinations(ctx, query, args)
}

// ListByUser returns the user's destinations ordered for display.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Destination, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("sort_order", "created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list destinations: %w", err)
	}

	return r.selectDestinations(ctx, query, args)
}

// CountByUser returns how many destinations the user owns.
func (r *Repo) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	query, args, err := postgres.Builder().
		Select("count(*)").
		From(table).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count destinations: %w", err)
	}

	var n int
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, postgres.MapError(err, "destination", uuid.Nil)
	}
	return n, nil
}

func (r *Repo) selectDestinations(ctx context.Context, query string, args []any) ([]domain.Destination, error) {
	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "destination", uuid.Nil)
	}

	out := make([]domain.Destination, len(rows))
	for i, rw := range rows {
		out[i] = toDomain(rw)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a destination. Returns domain.ErrAlreadyExists when the
// slug is taken for this owner.
func (r *Repo) Create(ctx context.Context, d *domain.Destination) (*domain.Destination, error) {
	query, args, err := insertQuery(d).Suffix("RETURNING " + strings.Join(columns, ", ")).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build create destination: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, query, args...); err != nil {
		return nil, postgres.MapError(err, "destination", d.ID)
	}

	out := toDomain(rw)
	return &out, nil
}

// CreateBatch inserts several destinations in one round trip. Slugs that
// already exist for the owner are skipped, which makes seeding idempotent.
// Returns the number of rows inserted.
func (r *Repo) CreateBatch(ctx context.Context, ds []domain.Destination) (int, error) {
	batch := &pgx.Batch{}
	for i := range ds {
		query, args, err := insertQuery(&ds[i]).Suffix("ON CONFLICT (user_id, slug) DO NOTHING").ToSql()
		if err != nil {
			return 0, fmt.Errorf("build seed destination: %w", err)
		}
		batch.Queue(query, args...)
	}

	results := postgres.QuerierFromCtx(ctx, r.db).SendBatch(ctx, batch)
	defer results.Close()

	inserted := 0
	for i := range ds {
		tag, err := results.Exec()
		if err != nil {
			return inserted, postgres.MapError(err, "destination", ds[i].ID)
		}
		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}

// Update writes the mutable columns of d. Returns domain.ErrNotFound if the
// destination does not exist or belongs to another user.
func (r *Repo) Update(ctx context.Context, d *domain.Destination) (*domain.Destination, error) {
	query, args, err := postgres.Builder().
		Update(table).
		SetMap(map[string]any{
			"slug":        d.Slug,
			"name":        d.Name,
			"icon":        d.Icon,
			"color":       d.Color,
			"description": d.Description,
			"sort_order":  d.SortOrder,
		}).
		Where(squirrel.Eq{"id": d.ID, "user_id": d.UserID}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update destination: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, query, args...); err != nil {
		return nil, postgres.MapError(err, "destination", d.ID)
	}

	out := toDomain(rw)
	return &out, nil
}

// Delete removes a destination. Items referencing it are unrouted by the
// foreign key (ON DELETE SET NULL).
func (r *Repo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query, args, err := postgres.Builder().
		Delete(table).
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete destination: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "destination", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("destination %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func insertQuery(d *domain.Destination) squirrel.InsertBuilder {
	return postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(d.ID, d.UserID, d.Slug, d.Name, d.Icon, d.Color, d.Description, d.SortOrder, d.CreatedAt)
}

func toDomain(rw row) domain.Destination {
	return domain.Destination{
		ID:          rw.ID,
		UserID:      rw.UserID,
		Slug:        rw.Slug,
		Name:        rw.Name,
		Icon:        rw.Icon,
		Color:       rw.Color,
		Description: rw.Description,
		SortOrder:   rw.SortOrder,
		CreatedAt:   rw.CreatedAt,
	}
}
