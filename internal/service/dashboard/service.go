// Package dashboard aggregates the caller's items into dashboard counters.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/offmind/offmind-backend/internal/domain"
	"github.com/offmind/offmind-backend/pkg/ctxutil"
)

type itemRepo interface {
	ListAll(ctx context.Context, userID uuid.UUID) ([]domain.Item, error)
}

type profileRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
}

// Dashboard is the response of GetDashboard.
type Dashboard struct {
	Summary
	Greeting    string
	DisplayName *string
	Timezone    string
}

// Service computes dashboards. It never writes.
type Service struct {
	items    itemRepo
	profiles profileRepo
	log      *slog.Logger
	now      func() time.Time
}

// NewService creates a new dashboard service.
func NewService(log *slog.Logger, items itemRepo, profiles profileRepo) *Service {
	return &Service{
		items:    items,
		profiles: profiles,
		log:      log.With("service", "dashboard"),
		now:      time.Now,
	}
}

// GetDashboard summarizes the caller's items in their profile timezone.
func (s *Service) GetDashboard(ctx context.Context) (Dashboard, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return Dashboard{}, domain.ErrUnauthorized
	}

	loc := time.UTC
	var displayName *string
	profile, err := s.profiles.GetByID(ctx, userID)
	switch {
	case err == nil:
		loc = profile.Location()
		displayName = profile.DisplayName
	case errors.Is(err, domain.ErrNotFound):
		s.log.WarnContext(ctx, "dashboard for user without profile", slog.String("user_id", userID.String()))
	default:
		return Dashboard{}, fmt.Errorf("load profile: %w", err)
	}

	items, err := s.items.ListAll(ctx, userID)
	if err != nil {
		return Dashboard{}, fmt.Errorf("list items: %w", err)
	}

	now := s.now()
	return Dashboard{
		Summary:     Summarize(items, now, loc),
		Greeting:    Greeting(now, loc),
		DisplayName: displayName,
		Timezone:    loc.String(),
	}, nil
}
