package token_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/offmind/offmind-backend/internal/adapter/postgres/testhelper"
	"github.com/offmind/offmind-backend/internal/adapter/postgres/token"
	"github.com/offmind/offmind-backend/internal/domain"
)

func newRepo(t *testing.T) (*token.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return token.New(pool), pool
}

func uniqueHash(prefix string) string {
	return prefix + "-" + uuid.New().String()[:8]
}

func countByHash(t *testing.T, pool *pgxpool.Pool, hash string) int {
	t.Helper()
	var n int
	if err := pool.QueryRow(context.Background(),
		`SELECT count(*) FROM refresh_tokens WHERE token_hash = $1`, hash,
	).Scan(&n); err != nil {
		t.Fatalf("count query: %v", err)
	}
	return n
}

// ---------------------------------------------------------------------------
// Create + GetByHash
// ---------------------------------------------------------------------------

func TestRepo_CreateAndGetByHash(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	p := testhelper.SeedProfile(t, pool)

	hash := uniqueHash("active")
	expiresAt := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Microsecond)

	created, err := repo.Create(ctx, p.ID, hash, expiresAt)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil || created.UserID != p.ID || !created.ExpiresAt.Equal(expiresAt) {
		t.Errorf("Create returned %+v", created)
	}

	got, err := repo.GetByHash(ctx, hash)
	if err != nil {
		t.Fatalf("GetByHash: %v", err)
	}
	if got.ID != created.ID || got.IsRevoked() {
		t.Errorf("GetByHash returned %+v", got)
	}
}

func TestRepo_Create_UnknownUser(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	_, err := repo.Create(context.Background(), uuid.New(), uniqueHash("orphan"), time.Now().Add(time.Hour))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from FK violation, got %v", err)
	}
}

func TestRepo_GetByHash_ExpiredOrRevoked(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	p := testhelper.SeedProfile(t, pool)

	expired := uniqueHash("expired")
	if _, err := repo.Create(ctx, p.ID, expired, time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("Create expired: %v", err)
	}
	if _, err := repo.GetByHash(ctx, expired); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expired token: expected ErrNotFound, got %v", err)
	}

	revoked := uniqueHash("revoked")
	created, err := repo.Create(ctx, p.ID, revoked, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("Create revoked: %v", err)
	}
	if err := repo.RevokeByID(ctx, created.ID); err != nil {
		t.Fatalf("RevokeByID: %v", err)
	}
	if err := repo.RevokeByID(ctx, created.ID); err != nil {
		t.Fatalf("RevokeByID is not idempotent: %v", err)
	}
	if _, err := repo.GetByHash(ctx, revoked); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("revoked token: expected ErrNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// RevokeAllByUser
// ---------------------------------------------------------------------------

func TestRepo_RevokeAllByUser_DoesNotAffectOtherUsers(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	alice := testhelper.SeedProfile(t, pool)
	bob := testhelper.SeedProfile(t, pool)

	aliceHash, bobHash := uniqueHash("alice"), uniqueHash("bob")
	for _, c := range []struct {
		id   uuid.UUID
		hash string
	}{{alice.ID, aliceHash}, {bob.ID, bobHash}} {
		if _, err := repo.Create(ctx, c.id, c.hash, time.Now().Add(time.Hour)); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	if err := repo.RevokeAllByUser(ctx, alice.ID); err != nil {
		t.Fatalf("RevokeAllByUser: %v", err)
	}

	if _, err := repo.GetByHash(ctx, aliceHash); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("alice token should be revoked, got %v", err)
	}
	if _, err := repo.GetByHash(ctx, bobHash); err != nil {
		t.Errorf("bob token should stay active, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// DeleteExpired
// ---------------------------------------------------------------------------

func TestRepo_DeleteExpired(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	p := testhelper.SeedProfile(t, pool)

	expired, revoked, active := uniqueHash("gc-expired"), uniqueHash("gc-revoked"), uniqueHash("gc-active")
	if _, err := repo.Create(ctx, p.ID, expired, time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("Create expired: %v", err)
	}
	r, err := repo.Create(ctx, p.ID, revoked, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("Create revoked: %v", err)
	}
	if err := repo.RevokeByID(ctx, r.ID); err != nil {
		t.Fatalf("RevokeByID: %v", err)
	}
	if _, err := repo.Create(ctx, p.ID, active, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Create active: %v", err)
	}

	if _, err := repo.DeleteExpired(ctx); err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}

	if n := countByHash(t, pool, expired); n != 0 {
		t.Errorf("expired token rows = %d, want 0", n)
	}
	if n := countByHash(t, pool, revoked); n != 0 {
		t.Errorf("revoked token rows = %d, want 0", n)
	}
	if n := countByHash(t, pool, active); n != 1 {
		t.Errorf("active token rows = %d, want 1", n)
	}
}
