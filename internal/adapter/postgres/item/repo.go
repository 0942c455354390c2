// Package item implements the Item repository using PostgreSQL.
package item

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

const table = "items"

var columns = []string{
	"id", "user_id", "title", "notes", "layer", "is_completed", "completed_at",
	"scheduled_at", "destination_id", "attachments", "created_at", "updated_at",
}

// Repo provides item persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new item repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// row mirrors the items table.
type row struct {
	ID            uuid.UUID  `db:"id"`
	UserID        uuid.UUID  `db:"user_id"`
	Title         string     `db:"title"`
	Notes         *string    `db:"notes"`
	Layer         string     `db:"layer"`
	IsCompleted   bool       `db:"is_completed"`
	CompletedAt   *time.Time `db:"completed_at"`
	ScheduledAt   *time.Time `db:"scheduled_at"`
	DestinationID *uuid.UUID `db:"destination_id"`
	Attachments   []byte     `db:"attachments"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns an item by primary key regardless of owner.
// Ownership is checked by the caller so that foreign records yield ErrForbidden.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get item: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, query, args...); err != nil {
		return nil, postgres.MapError(err, "item", id)
	}

	return toDomain(rw)
}

// List returns the user's items matching filter, newest first.
func (r *Repo) List(ctx context.Context, userID uuid.UUID, filter domain.ItemFilter) ([]domain.Item, error) {
	sb := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id")

	if filter.Layer != nil {
		sb = sb.Where(squirrel.Eq{"layer": filter.Layer.String()})
	}
	switch {
	case filter.Uncategorized:
		sb = sb.Where(squirrel.Eq{"destination_id": nil})
	case filter.DestinationID != nil:
		sb = sb.Where(squirrel.Eq{"destination_id": *filter.DestinationID})
	}
	if filter.IsCompleted != nil {
		sb = sb.Where(squirrel.Eq{"is_completed": *filter.IsCompleted})
	}
	if filter.ScheduledFrom != nil {
		sb = sb.Where(squirrel.GtOrEq{"scheduled_at": *filter.ScheduledFrom})
	}
	if filter.ScheduledUntil != nil {
		sb = sb.Where(squirrel.Lt{"scheduled_at": *filter.ScheduledUntil})
	}
	if filter.Limit > 0 {
		sb = sb.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		sb = sb.Offset(uint64(filter.Offset))
	}

	return r.selectItems(ctx, sb)
}

// ListAll returns every item of the user. Used for aggregation.
func (r *Repo) ListAll(ctx context.Context, userID uuid.UUID) ([]domain.Item, error) {
	sb := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id")

	return r.selectItems(ctx, sb)
}

func (r *Repo) selectItems(ctx context.Context, sb squirrel.SelectBuilder) ([]domain.Item, error) {
	query, args, err := sb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list items: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "item", uuid.Nil)
	}

	items := make([]domain.Item, 0, len(rows))
	for _, rw := range rows {
		it, err := toDomain(rw)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	return items, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new item and returns the persisted domain.Item.
func (r *Repo) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	attachments, err := encodeAttachments(item.Attachments)
	if err != nil {
		return nil, err
	}

	query, args, err := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(
			item.ID, item.UserID, item.Title, item.Notes, item.Layer.String(), item.IsCompleted,
			item.CompletedAt, item.ScheduledAt, item.DestinationID, attachments, item.CreatedAt, item.UpdatedAt,
		).
		Suffix("RETURNING " + returning()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build create item: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, query, args...); err != nil {
		return nil, postgres.MapError(err, "item", item.ID)
	}

	return toDomain(rw)
}

// Update writes every mutable column of item. Last write wins.
// Returns domain.ErrNotFound if the item does not exist or belongs to another user.
func (r *Repo) Update(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	attachments, err := encodeAttachments(item.Attachments)
	if err != nil {
		return nil, err
	}

	query, args, err := postgres.Builder().
		Update(table).
		SetMap(map[string]any{
			"title":          item.Title,
			"notes":          item.Notes,
			"layer":          item.Layer.String(),
			"is_completed":   item.IsCompleted,
			"completed_at":   item.CompletedAt,
			"scheduled_at":   item.ScheduledAt,
			"destination_id": item.DestinationID,
			"attachments":    attachments,
			"updated_at":     squirrel.Expr("now()"),
		}).
		Where(squirrel.Eq{"id": item.ID, "user_id": item.UserID}).
		Suffix("RETURNING " + returning()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update item: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, query, args...); err != nil {
		return nil, postgres.MapError(err, "item", item.ID)
	}

	return toDomain(rw)
}

// Delete removes an item. Returns domain.ErrNotFound if the item
// does not exist or belongs to another user.
func (r *Repo) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	query, args, err := postgres.Builder().
		Delete(table).
		Where(squirrel.Eq{"id": itemID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete item: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "item", itemID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("item %s: %w", itemID, domain.ErrNotFound)
	}

	return nil
}

// UnrouteByDestination clears the destination of every item routed to
// destinationID and returns how many items changed.
func (r *Repo) UnrouteByDestination(ctx context.Context, userID, destinationID uuid.UUID) (int, error) {
	query, args, err := postgres.Builder().
		Update(table).
		Set("destination_id", nil).
		Set("layer", domain.LayerProcess.String()).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"user_id": userID, "destination_id": destinationID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build unroute items: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "destination", destinationID)
	}

	return int(tag.RowsAffected()), nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func returning() string {
	return strings.Join(columns, ", ")
}

func encodeAttachments(a []domain.Attachment) ([]byte, error) {
	if a == nil {
		a = []domain.Attachment{}
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("encode attachments: %w", err)
	}
	return b, nil
}

func toDomain(rw row) (*domain.Item, error) {
	attachments := []domain.Attachment{}
	if len(rw.Attachments) > 0 {
		if err := json.Unmarshal(rw.Attachments, &attachments); err != nil {
			return nil, fmt.Errorf("item %s: decode attachments: %w", rw.ID, err)
		}
	}

	return &domain.Item{
		ID:            rw.ID,
		UserID:        rw.UserID,
		Title:         rw.Title,
		Notes:         rw.Notes,
		Layer:         domain.Layer(rw.Layer),
		IsCompleted:   rw.IsCompleted,
		CompletedAt:   rw.CompletedAt,
		ScheduledAt:   rw.ScheduledAt,
		DestinationID: rw.DestinationID,
		Attachments:   attachments,
		CreatedAt:     rw.CreatedAt,
		UpdatedAt:     rw.UpdatedAt,
	}, nil
}
