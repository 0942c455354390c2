package board

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/offmind/offmind-backend/internal/domain"
)

// ErrNoActiveDrag is returned by End when Start was not called.
var ErrNoActiveDrag = errors.New("no active drag")

// Mutator persists routing moves.
type Mutator interface {
	RouteToDestination(ctx context.Context, itemID, destinationID uuid.UUID) (*domain.Item, error)
	Unroute(ctx context.Context, itemID uuid.UUID) (*domain.Item, error)
}

// Outcome reports what a drop did. Card is the card's state after the drop:
// the server version on success, the original on rollback.
type Outcome struct {
	Move Move
	Card domain.Item
	Err  error
}

// Session holds a board's cards and tracks one drag at a time. Every move is
// applied locally first, then persisted; the local card is replaced by the
// server response on success and restored on failure.
type Session struct {
	mutator Mutator

	mu     sync.Mutex
	order  []uuid.UUID
	cards  map[uuid.UUID]domain.Item
	active *uuid.UUID
	hover  DropTarget
}

// NewSession creates a session over cards in display order.
func NewSession(mutator Mutator, cards []domain.Item) *Session {
	s := &Session{
		mutator: mutator,
		cards:   make(map[uuid.UUID]domain.Item, len(cards)),
		order:   make([]uuid.UUID, 0, len(cards)),
	}
	for _, c := range cards {
		if _, dup := s.cards[c.ID]; !dup {
			s.order = append(s.order, c.ID)
		}
		s.cards[c.ID] = c
	}
	return s
}

// Start begins dragging itemID.
func (s *Session) Start(itemID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cards[itemID]; !ok {
		return domain.ErrNotFound
	}
	s.active = &itemID
	s.hover = Nowhere()
	return nil
}

// Over records the target currently under the pointer. It never changes cards.
func (s *Session) Over(target DropTarget) {
	s.mu.Lock()
	s.hover = target
	s.mu.Unlock()
}

// Hover returns the target last passed to Over.
func (s *Session) Hover() DropTarget {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hover
}

// Cancel abandons the current drag without moving anything.
func (s *Session) Cancel() {
	s.mu.Lock()
	s.active = nil
	s.hover = Nowhere()
	s.mu.Unlock()
}

// End finishes the drag on target. The mutator is called exactly once when
// the drop resolves to a move and not at all otherwise.
func (s *Session) End(ctx context.Context, target DropTarget) Outcome {
	s.mu.Lock()
	if s.active == nil {
		s.mu.Unlock()
		return Outcome{Err: ErrNoActiveDrag}
	}
	id := *s.active
	s.active = nil
	s.hover = Nowhere()

	before := s.cards[id]
	move := Decide(before, target)
	if move.Kind == NoMove {
		s.mu.Unlock()
		return Outcome{Move: move, Card: before}
	}

	optimistic := apply(before, move)
	s.cards[id] = optimistic
	s.mu.Unlock()

	saved, err := s.persist(ctx, id, move)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.cards[id] = before
		return Outcome{Move: move, Card: before, Err: err}
	}
	s.cards[id] = *saved
	return Outcome{Move: move, Card: *saved}
}

func (s *Session) persist(ctx context.Context, id uuid.UUID, move Move) (*domain.Item, error) {
	if move.Kind == MoveUnroute {
		return s.mutator.Unroute(ctx, id)
	}
	return s.mutator.RouteToDestination(ctx, id, move.DestinationID)
}

// Card returns the current local state of a card.
func (s *Session) Card(id uuid.UUID) (domain.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cards[id]
	return c, ok
}

// Cards returns all cards in display order.
func (s *Session) Cards() []domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Item, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.cards[id])
	}
	return out
}

// Column returns the cards currently in destinationID, or the uncategorized
// cards when destinationID is nil, in display order.
func (s *Session) Column(destinationID *uuid.UUID) []domain.Item {
	return slices.DeleteFunc(s.Cards(), func(c domain.Item) bool {
		if destinationID == nil {
			return !c.IsUncategorized()
		}
		return !c.InDestination(*destinationID)
	})
}
