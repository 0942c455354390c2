// Package destination manages the buckets items are routed into.
package destination

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/offmind/offmind-backend/internal/domain"
)

type destinationRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Destination, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
	Create(ctx context.Context, d *domain.Destination) (*domain.Destination, error)
	CreateBatch(ctx context.Context, ds []domain.Destination) (int, error)
	Update(ctx context.Context, d *domain.Destination) (*domain.Destination, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type itemRepo interface {
	UnrouteByDestination(ctx context.Context, userID, destinationID uuid.UUID) (int, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides destination operations.
type Service struct {
	destinations destinationRepo
	items        itemRepo
	tx           txManager
	log          *slog.Logger
	now          func() time.Time
}

// NewService creates a new destination service.
func NewService(log *slog.Logger, destinations destinationRepo, items itemRepo, tx txManager) *Service {
	return &Service{
		destinations: destinations,
		items:        items,
		tx:           tx,
		log:          log.With("service", "destination"),
		now:          func() time.Time { return time.Now().UTC() },
	}
}
