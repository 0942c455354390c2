package item

import (
	"context"

	"github.com/google/uuid"

	"github.com/offmind/offmind-backend/internal/domain"
	"github.com/offmind/offmind-backend/pkg/ctxutil"
)

// GetItem returns a single item owned by the caller.
func (s *Service) GetItem(ctx context.Context, itemID uuid.UUID) (*domain.Item, error) {
	item, _, err := s.loadOwned(ctx, itemID)
	if err != nil {
		return nil, wrap("get item", err)
	}
	return item, nil
}

// ListItems returns the caller's items, newest first.
func (s *Service) ListItems(ctx context.Context, input ListItemsInput) ([]domain.Item, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(s.maxPageSize()); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = s.defaultPageSize()
	}

	items, err := s.items.List(ctx, userID, domain.ItemFilter{
		Layer:          input.Layer,
		DestinationID:  input.DestinationID,
		Uncategorized:  input.Uncategorized,
		IsCompleted:    input.IsCompleted,
		ScheduledFrom:  input.ScheduledFrom,
		ScheduledUntil: input.ScheduledUntil,
		Limit:          limit,
		Offset:         input.Offset,
	})
	if err != nil {
		return nil, wrap("list items", err)
	}
	return items, nil
}

func (s *Service) defaultPageSize() int {
	if s.cfg.DefaultPageSize > 0 {
		return s.cfg.DefaultPageSize
	}
	return 50
}

func (s *Service) maxPageSize() int {
	if s.cfg.MaxPageSize > 0 {
		return s.cfg.MaxPageSize
	}
	return 200
}
