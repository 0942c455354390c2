package item

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/offmind/offmind-backend/internal/domain"
)

// RouteToDestination files an item under a destination and commits it.
// Routing to the destination the item is already in is a no-op.
func (s *Service) RouteToDestination(ctx context.Context, itemID, destinationID uuid.UUID) (*domain.Item, error) {
	if destinationID == uuid.Nil {
		return nil, domain.NewValidationError("destination_id", "required")
	}

	item, userID, err := s.loadOwned(ctx, itemID)
	if err != nil {
		return nil, wrap("route item", err)
	}

	dest, err := s.destinations.GetByID(ctx, destinationID)
	if err != nil {
		return nil, wrap("route item", err)
	}
	if err := domain.CheckOwner(dest.UserID, userID); err != nil {
		return nil, wrap("route item", err)
	}

	if item.InDestination(destinationID) {
		return item, nil
	}

	item.DestinationID = &destinationID
	item.Layer = domain.LayerCommit

	updated, err := s.save(ctx, item, "item routed", slog.String("destination_id", destinationID.String()))
	if err != nil {
		return nil, wrap("route item", err)
	}
	return updated, nil
}

// Unroute moves an item back to uncategorized for further processing.
func (s *Service) Unroute(ctx context.Context, itemID uuid.UUID) (*domain.Item, error) {
	item, _, err := s.loadOwned(ctx, itemID)
	if err != nil {
		return nil, wrap("unroute item", err)
	}

	if item.IsUncategorized() {
		return item, nil
	}

	item.DestinationID = nil
	item.Layer = domain.LayerProcess

	updated, err := s.save(ctx, item, "item unrouted")
	if err != nil {
		return nil, wrap("unroute item", err)
	}
	return updated, nil
}

// SetLayer moves an item to another workflow stage. An item that is routed
// or scheduled cannot go back to capture.
func (s *Service) SetLayer(ctx context.Context, itemID uuid.UUID, layer domain.Layer) (*domain.Item, error) {
	if !layer.IsValid() {
		return nil, domain.NewValidationError("layer", "must be capture, process or commit")
	}

	item, _, err := s.loadOwned(ctx, itemID)
	if err != nil {
		return nil, wrap("set layer", err)
	}

	if item.Layer == layer {
		return item, nil
	}
	if layer == domain.LayerCapture && (!item.IsUncategorized() || item.ScheduledAt != nil) {
		return nil, domain.NewValidationError("layer", "routed or scheduled items cannot return to capture")
	}

	from := item.Layer
	item.Layer = layer

	updated, err := s.save(ctx, item, "item layer changed",
		slog.String("from", from.String()),
		slog.String("to", layer.String()),
	)
	if err != nil {
		return nil, wrap("set layer", err)
	}
	return updated, nil
}
