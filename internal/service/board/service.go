// Package board is the server-side entry point for drag-and-drop moves.
package board

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/offmind/offmind-backend/internal/board"
	"github.com/offmind/offmind-backend/internal/domain"
)

type itemService interface {
	GetItem(ctx context.Context, itemID uuid.UUID) (*domain.Item, error)
	RouteToDestination(ctx context.Context, itemID, destinationID uuid.UUID) (*domain.Item, error)
	Unroute(ctx context.Context, itemID uuid.UUID) (*domain.Item, error)
}

// Service resolves drops and persists the resulting move.
type Service struct {
	items itemService
	log   *slog.Logger
}

// NewService creates a new board service.
func NewService(log *slog.Logger, items itemService) *Service {
	return &Service{
		items: items,
		log:   log.With("service", "board"),
	}
}

// DropInput describes a finished drag in transport form.
type DropInput struct {
	ItemID     uuid.UUID
	TargetKind string
	TargetID   string
}

// Drop loads the dragged card (and the card it landed on, if any), decides
// the move and persists it. A failed move is reported in Outcome.Err with
// the card in its original state.
func (s *Service) Drop(ctx context.Context, input DropInput) (board.Outcome, error) {
	if input.ItemID == uuid.Nil {
		return board.Outcome{}, domain.NewValidationError("item_id", "required")
	}

	target, err := board.ParseTarget(input.TargetKind, input.TargetID)
	if err != nil {
		return board.Outcome{}, err
	}

	dragged, err := s.items.GetItem(ctx, input.ItemID)
	if err != nil {
		return board.Outcome{}, fmt.Errorf("drop: %w", err)
	}

	cards := []domain.Item{*dragged}
	if target.Kind == board.TargetItem && target.ItemID != dragged.ID {
		onto, err := s.items.GetItem(ctx, target.ItemID)
		if err != nil {
			return board.Outcome{}, fmt.Errorf("drop target: %w", err)
		}
		target = board.OnItem(onto.ID, onto.DestinationID)
		cards = append(cards, *onto)
	}

	sess := board.NewSession(s.items, cards)
	if err := sess.Start(dragged.ID); err != nil {
		return board.Outcome{}, err
	}
	out := sess.End(ctx, target)

	s.log.InfoContext(ctx, "card dropped",
		slog.String("item_id", dragged.ID.String()),
		slog.String("target", target.Kind.String()),
		slog.String("move", out.Move.Kind.String()),
		slog.Bool("failed", out.Err != nil),
	)
	return out, nil
}
