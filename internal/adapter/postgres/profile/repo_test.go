package profile_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/offmind/offmind-backend/internal/adapter/postgres/profile"
	"github.com/offmind/offmind-backend/internal/adapter/postgres/testhelper"
	"github.com/offmind/offmind-backend/internal/domain"
)

func TestRepo_CreateAndGetByEmail_CaseInsensitive(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := profile.New(pool)
	ctx := context.Background()

	p := domain.NewProfile("Mixed.Case-"+time.Now().Format("150405.000000")+"@Example.com", time.Now().UTC().Truncate(time.Microsecond))
	if _, err := repo.Create(ctx, &p); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByEmail(ctx, strings.ToLower(p.Email))
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got.ID != p.ID {
		t.Errorf("GetByEmail returned %s, want %s", got.ID, p.ID)
	}
	if got.Preferences.ViewMode != domain.ViewModeGrid {
		t.Errorf("ViewMode = %q, want grid", got.Preferences.ViewMode)
	}

	dup := domain.NewProfile(strings.ToUpper(p.Email), time.Now())
	if _, err := repo.Create(ctx, &dup); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("duplicate email: expected ErrAlreadyExists, got %v", err)
	}
}

func TestRepo_Update_Preferences(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := profile.New(pool)
	ctx := context.Background()
	p := testhelper.SeedProfile(t, pool)

	p.Timezone = "Europe/Berlin"
	p.Preferences = domain.Preferences{SidebarCollapsed: true, ViewMode: domain.ViewModeKanban}

	got, err := repo.Update(ctx, &p)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Timezone != "Europe/Berlin" {
		t.Errorf("Timezone = %q", got.Timezone)
	}
	if !got.Preferences.SidebarCollapsed || got.Preferences.ViewMode != domain.ViewModeKanban {
		t.Errorf("Preferences = %+v", got.Preferences)
	}
}
