// Package item implements capture, triage and routing of items.
package item

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/offmind/offmind-backend/internal/config"
	"github.com/offmind/offmind-backend/internal/domain"
	"github.com/offmind/offmind-backend/pkg/ctxutil"
)

// QuickScheduleHour is the local hour QuickSchedule targets on the next day.
const QuickScheduleHour = 9

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type itemRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	List(ctx context.Context, userID uuid.UUID, filter domain.ItemFilter) ([]domain.Item, error)
	Create(ctx context.Context, item *domain.Item) (*domain.Item, error)
	Update(ctx context.Context, item *domain.Item) (*domain.Item, error)
	Delete(ctx context.Context, userID, itemID uuid.UUID) error
}

type destinationRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error)
}

type profileRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
}

// Service provides item operations.
type Service struct {
	items        itemRepo
	destinations destinationRepo
	profiles     profileRepo
	cfg          config.ItemsConfig
	log          *slog.Logger
	now          func() time.Time
}

// NewService creates a new item service.
func NewService(
	log *slog.Logger,
	items itemRepo,
	destinations destinationRepo,
	profiles profileRepo,
	cfg config.ItemsConfig,
) *Service {
	return &Service{
		items:        items,
		destinations: destinations,
		profiles:     profiles,
		cfg:          cfg,
		log:          log.With("service", "item"),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the time source. Used by tests and the board session.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// loadOwned fetches an item and checks that the caller owns it.
func (s *Service) loadOwned(ctx context.Context, itemID uuid.UUID) (*domain.Item, uuid.UUID, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, uuid.Nil, domain.ErrUnauthorized
	}
	if itemID == uuid.Nil {
		return nil, uuid.Nil, domain.NewValidationError("item_id", "required")
	}

	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, uuid.Nil, err
	}
	if err := domain.CheckOwner(item.UserID, userID); err != nil {
		return nil, uuid.Nil, err
	}
	return item, userID, nil
}

// save persists item and logs the change under msg.
func (s *Service) save(ctx context.Context, item *domain.Item, msg string, attrs ...slog.Attr) (*domain.Item, error) {
	updated, err := s.items.Update(ctx, item)
	if err != nil {
		return nil, err
	}

	attrs = append([]slog.Attr{
		slog.String("user_id", item.UserID.String()),
		slog.String("item_id", item.ID.String()),
	}, attrs...)
	s.log.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)

	return updated, nil
}

// trimOrNil trims whitespace. Returns nil if result is empty.
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

func wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
