package destination

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/offmind/offmind-backend/internal/catalog"
	"github.com/offmind/offmind-backend/internal/domain"
	"github.com/offmind/offmind-backend/pkg/ctxutil"
)

// ListDestinations returns the caller's destinations in display order.
func (s *Service) ListDestinations(ctx context.Context) ([]domain.Destination, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	list, err := s.destinations.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list destinations: %w", err)
	}
	return list, nil
}

// CreateDestination adds a destination at the end of the caller's list.
func (s *Service) CreateDestination(ctx context.Context, input CreateDestinationInput) (*domain.Destination, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	slug := domain.Slugify(name)
	if input.Slug != nil {
		slug = *input.Slug
	}
	if slug == "" {
		return nil, domain.NewValidationError("slug", "cannot be derived from name")
	}

	count, err := s.destinations.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count destinations: %w", err)
	}

	color := input.Color
	if color == nil {
		suggested := string(catalog.SuggestColor(count).Key)
		color = &suggested
	}

	created, err := s.destinations.Create(ctx, &domain.Destination{
		ID:          uuid.New(),
		UserID:      userID,
		Slug:        slug,
		Name:        name,
		Icon:        input.Icon,
		Color:       color,
		Description: trimOrNil(input.Description),
		SortOrder:   count,
		CreatedAt:   s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("create destination: %w", err)
	}

	s.log.InfoContext(ctx, "destination created",
		slog.String("user_id", userID.String()),
		slog.String("destination_id", created.ID.String()),
		slog.String("slug", created.Slug),
	)
	return created, nil
}

// SeedDefaults creates the default destinations for a new owner. Slugs the
// owner already has are skipped. Returns how many were created.
func (s *Service) SeedDefaults(ctx context.Context, userID uuid.UUID) (int, error) {
	now := s.now()
	defaults := catalog.DefaultDestinations()

	ds := make([]domain.Destination, len(defaults))
	for i, d := range defaults {
		color := string(d.Color)
		description := d.Description
		ds[i] = domain.Destination{
			ID:          uuid.New(),
			UserID:      userID,
			Slug:        d.Slug,
			Name:        d.Name,
			Icon:        string(d.Icon),
			Color:       &color,
			Description: &description,
			SortOrder:   i,
			CreatedAt:   now,
		}
	}

	n, err := s.destinations.CreateBatch(ctx, ds)
	if err != nil {
		return n, fmt.Errorf("seed destinations: %w", err)
	}

	s.log.InfoContext(ctx, "default destinations seeded",
		slog.String("user_id", userID.String()),
		slog.Int("created", n),
	)
	return n, nil
}

func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
