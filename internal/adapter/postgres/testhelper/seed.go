package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/offmind/offmind-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedProfile creates a profile with default preferences.
func SeedProfile(t *testing.T, pool *pgxpool.Pool) domain.Profile {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	p := domain.NewProfile("user-"+uniqueSuffix()+"@example.com", now)

	_, err := pool.Exec(ctx,
		`INSERT INTO profiles (id, email, timezone, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.Email, p.Timezone, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedProfile: %v", err)
	}

	return p
}

// SeedDestination creates a destination with the given slug for userID.
func SeedDestination(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, slug string) domain.Destination {
	t.Helper()
	ctx := context.Background()

	d := domain.Destination{
		ID:        uuid.New(),
		UserID:    userID,
		Slug:      slug,
		Name:      "Destination " + slug,
		Icon:      "inbox",
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO destinations (id, user_id, slug, name, icon, sort_order, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		d.ID, d.UserID, d.Slug, d.Name, d.Icon, d.SortOrder, d.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedDestination: %v", err)
	}

	return d
}

// SeedItem creates a capture-layer item, optionally routed to destinationID.
func SeedItem(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, title string, destinationID *uuid.UUID) domain.Item {
	t.Helper()
	ctx := context.Background()

	it := domain.NewItem(userID, title, nil, time.Now().UTC().Truncate(time.Microsecond))
	it.DestinationID = destinationID

	_, err := pool.Exec(ctx,
		`INSERT INTO items (id, user_id, title, layer, destination_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		it.ID, it.UserID, it.Title, it.Layer.String(), it.DestinationID, it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedItem: %v", err)
	}

	return it
}
