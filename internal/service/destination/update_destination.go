package destination

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/offmind/offmind-backend/internal/domain"
	"github.com/offmind/offmind-backend/pkg/ctxutil"
)

// UpdateDestination edits a destination owned by the caller.
func (s *Service) UpdateDestination(ctx context.Context, id uuid.UUID, input UpdateDestinationInput) (*domain.Destination, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	d, err := s.loadOwned(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("update destination: %w", err)
	}

	if input.Name != nil {
		d.Name = strings.TrimSpace(*input.Name)
	}
	if input.Slug != nil {
		d.Slug = *input.Slug
	}
	if input.Icon != nil && *input.Icon != "" {
		d.Icon = *input.Icon
	}
	if input.Color != nil {
		d.Color = trimOrNil(input.Color)
	}
	if input.Description != nil {
		d.Description = trimOrNil(input.Description)
	}
	if input.SortOrder != nil {
		d.SortOrder = *input.SortOrder
	}

	updated, err := s.destinations.Update(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("update destination: %w", err)
	}

	s.log.InfoContext(ctx, "destination updated",
		slog.String("user_id", userID.String()),
		slog.String("destination_id", id.String()),
	)
	return updated, nil
}

// DeleteDestination removes a destination and unroutes its items in one
// transaction. Returns how many items were unrouted.
func (s *Service) DeleteDestination(ctx context.Context, id uuid.UUID) (int, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return 0, domain.ErrUnauthorized
	}

	var unrouted int
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.loadOwned(ctx, userID, id); err != nil {
			return err
		}

		n, err := s.items.UnrouteByDestination(ctx, userID, id)
		if err != nil {
			return fmt.Errorf("unroute items: %w", err)
		}
		unrouted = n

		return s.destinations.Delete(ctx, userID, id)
	})
	if err != nil {
		return 0, fmt.Errorf("delete destination: %w", err)
	}

	s.log.InfoContext(ctx, "destination deleted",
		slog.String("user_id", userID.String()),
		slog.String("destination_id", id.String()),
		slog.Int("unrouted_items", unrouted),
	)
	return unrouted, nil
}

func (s *Service) loadOwned(ctx context.Context, userID, id uuid.UUID) (*domain.Destination, error) {
	d, err := s.destinations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.CheckOwner(d.UserID, userID); err != nil {
		return nil, err
	}
	return d, nil
}
