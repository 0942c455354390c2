package destination_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/offmind/offmind-backend/internal/adapter/postgres/destination"
	"github.com/offmind/offmind-backend/internal/adapter/postgres/testhelper"
	"github.com/offmind/offmind-backend/internal/domain"
)

func newRepo(t *testing.T) (*destination.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return destination.New(pool), pool
}

func buildDestination(userID uuid.UUID, slug string, order int) domain.Destination {
	return domain.Destination{
		ID:        uuid.New(),
		UserID:    userID,
		Slug:      slug,
		Name:      slug,
		Icon:      "inbox",
		SortOrder: order,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestRepo_Create_SlugUniquePerOwner(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	alice := testhelper.SeedProfile(t, pool)
	bob := testhelper.SeedProfile(t, pool)

	first := buildDestination(alice.ID, "reading", 0)
	if _, err := repo.Create(ctx, &first); err != nil {
		t.Fatalf("Create: %v", err)
	}

	dup := buildDestination(alice.ID, "reading", 1)
	if _, err := repo.Create(ctx, &dup); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("duplicate slug: expected ErrAlreadyExists, got %v", err)
	}

	other := buildDestination(bob.ID, "reading", 0)
	if _, err := repo.Create(ctx, &other); err != nil {
		t.Fatalf("same slug for another owner: %v", err)
	}
}

func TestRepo_Create_InvalidSlugRejected(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	p := testhelper.SeedProfile(t, pool)

	d := buildDestination(p.ID, "Not A Slug", 0)
	if _, err := repo.Create(context.Background(), &d); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestRepo_CreateBatch_Idempotent(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	p := testhelper.SeedProfile(t, pool)

	seeds := []domain.Destination{
		buildDestination(p.ID, "backlog", 0),
		buildDestination(p.ID, "reference", 1),
	}

	n, err := repo.CreateBatch(ctx, seeds)
	if err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	if n != 2 {
		t.Errorf("CreateBatch inserted %d, want 2", n)
	}

	again := []domain.Destination{
		buildDestination(p.ID, "backlog", 0),
		buildDestination(p.ID, "reference", 1),
	}
	n, err = repo.CreateBatch(ctx, again)
	if err != nil {
		t.Fatalf("second CreateBatch: %v", err)
	}
	if n != 0 {
		t.Errorf("second CreateBatch inserted %d, want 0", n)
	}

	count, err := repo.CountByUser(ctx, p.ID)
	if err != nil {
		t.Fatalf("CountByUser: %v", err)
	}
	if count != 2 {
		t.Errorf("CountByUser = %d, want 2", count)
	}
}

func TestRepo_ListByUser_Ordered(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	p := testhelper.SeedProfile(t, pool)

	for i, slug := range []string{"c", "a", "b"} {
		d := buildDestination(p.ID, slug, 2-i)
		if _, err := repo.Create(ctx, &d); err != nil {
			t.Fatalf("Create %s: %v", slug, err)
		}
	}

	got, err := repo.ListByUser(ctx, p.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	want := []string{"b", "a", "c"}
	for i, d := range got {
		if d.Slug != want[i] {
			t.Errorf("ListByUser[%d] = %q, want %q", i, d.Slug, want[i])
		}
	}
}

func TestRepo_GetByIDs(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	p := testhelper.SeedProfile(t, pool)
	a := testhelper.SeedDestination(t, pool, p.ID, "a")
	b := testhelper.SeedDestination(t, pool, p.ID, "b")

	got, err := repo.GetByIDs(ctx, []uuid.UUID{a.ID, b.ID, uuid.New()})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("GetByIDs len = %d, want 2", len(got))
	}
}

func TestRepo_UpdateAndDelete(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	p := testhelper.SeedProfile(t, pool)
	d := testhelper.SeedDestination(t, pool, p.ID, "old")

	d.Name = "Renamed"
	color := "blue"
	d.Color = &color
	got, err := repo.Update(ctx, &d)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Name != "Renamed" || got.Color == nil || *got.Color != "blue" {
		t.Errorf("Update result = %+v", got)
	}

	if err := repo.Delete(ctx, uuid.New(), d.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Delete by other owner: expected ErrNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, p.ID, d.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}
