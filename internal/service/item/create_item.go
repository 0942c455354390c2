package item

import (
	"context"
	"log/slog"
	"strings"

	"github.com/offmind/offmind-backend/internal/domain"
	"github.com/offmind/offmind-backend/pkg/ctxutil"
)

// CreateItem captures a new item in the capture layer.
func (s *Service) CreateItem(ctx context.Context, input CreateItemInput) (*domain.Item, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	item := domain.NewItem(userID, strings.TrimSpace(input.Title), trimOrNil(input.Notes), s.now())

	created, err := s.items.Create(ctx, &item)
	if err != nil {
		return nil, wrap("create item", err)
	}

	s.log.InfoContext(ctx, "item captured",
		slog.String("user_id", userID.String()),
		slog.String("item_id", created.ID.String()),
	)

	return created, nil
}
