package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/offmind/offmind-backend/internal/adapter/postgres"
	"github.com/offmind/offmind-backend/internal/adapter/postgres/testhelper"
)

func profileExists(t *testing.T, pool *pgxpool.Pool, id uuid.UUID) bool {
	t.Helper()
	var exists bool
	if err := pool.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM profiles WHERE id = $1)`, id,
	).Scan(&exists); err != nil {
		t.Fatalf("profileExists query: %v", err)
	}
	return exists
}

func insertProfile(ctx context.Context, pool *pgxpool.Pool, id uuid.UUID) error {
	_, err := postgres.QuerierFromCtx(ctx, pool).Exec(ctx,
		`INSERT INTO profiles (id, email) VALUES ($1, $2)`,
		id, id.String()+"@example.com",
	)
	return err
}

func TestRunInTx_Commit(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	id := uuid.New()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		return insertProfile(ctx, pool, id)
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}
	if !profileExists(t, pool, id) {
		t.Fatal("expected profile to exist after committed transaction")
	}
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	id := uuid.New()
	sentinel := errors.New("business logic error")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertProfile(ctx, pool, id); err != nil {
			t.Fatalf("insert inside tx failed: %v", err)
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}
	if profileExists(t, pool, id) {
		t.Fatal("expected profile NOT to exist after rolled-back transaction")
	}
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	id := uuid.New()

	defer func() {
		if r := recover(); r != "test panic" {
			t.Fatalf("expected panic %q to be re-raised, got %v", "test panic", r)
		}
		if profileExists(t, pool, id) {
			t.Fatal("expected profile NOT to exist after panic")
		}
	}()

	_ = tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertProfile(ctx, pool, id); err != nil {
			t.Fatalf("insert inside tx failed: %v", err)
		}
		panic("test panic")
	})
}

func TestRunInTx_Nested_ReusesOuterTx(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	outer, inner := uuid.New(), uuid.New()
	sentinel := errors.New("outer fails")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertProfile(ctx, pool, outer); err != nil {
			return err
		}
		if err := tm.RunInTx(ctx, func(ctx context.Context) error {
			return insertProfile(ctx, pool, inner)
		}); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}
	if profileExists(t, pool, outer) || profileExists(t, pool, inner) {
		t.Fatal("inner write must roll back with the outer transaction")
	}
}
