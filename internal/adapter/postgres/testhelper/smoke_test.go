package testhelper

import (
	"context"
	"testing"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	p := SeedProfile(t, pool)
	d := SeedDestination(t, pool, p.ID, "backlog")
	it := SeedItem(t, pool, p.ID, "smoke", &d.ID)

	var title string
	err := pool.QueryRow(
		context.Background(),
		`SELECT i.title FROM items i JOIN destinations d ON d.id = i.destination_id WHERE i.id = $1 AND d.user_id = $2`,
		it.ID, p.ID,
	).Scan(&title)
	if err != nil {
		t.Fatalf("expected routed item in DB, got error: %v", err)
	}

	if title != "smoke" {
		t.Fatalf("expected title %q, got %q", "smoke", title)
	}
}
