package item

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// DeleteItem permanently removes an item.
func (s *Service) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	item, userID, err := s.loadOwned(ctx, itemID)
	if err != nil {
		return wrap("delete item", err)
	}

	if err := s.items.Delete(ctx, userID, item.ID); err != nil {
		return wrap("delete item", err)
	}

	s.log.InfoContext(ctx, "item deleted",
		slog.String("user_id", userID.String()),
		slog.String("item_id", item.ID.String()),
	)
	return nil
}
