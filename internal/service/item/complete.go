package item

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/offmind/offmind-backend/internal/domain"
)

// ToggleCompletion flips the completed flag of an item.
func (s *Service) ToggleCompletion(ctx context.Context, itemID uuid.UUID) (*domain.Item, error) {
	item, _, err := s.loadOwned(ctx, itemID)
	if err != nil {
		return nil, wrap("toggle completion", err)
	}

	item.SetCompleted(!item.IsCompleted, s.now())

	updated, err := s.save(ctx, item, "item completion toggled", slog.Bool("completed", item.IsCompleted))
	if err != nil {
		return nil, wrap("toggle completion", err)
	}
	return updated, nil
}
