package board

import (
	"github.com/google/uuid"

	"github.com/offmind/offmind-backend/internal/domain"
)

// MoveKind is the routing action a drop resolves to.
type MoveKind int

const (
	NoMove MoveKind = iota
	MoveRoute
	MoveUnroute
)

func (k MoveKind) String() string {
	switch k {
	case MoveRoute:
		return "route"
	case MoveUnroute:
		return "unroute"
	default:
		return "none"
	}
}

// Move is the outcome of Decide.
type Move struct {
	Kind          MoveKind
	DestinationID uuid.UUID
}

// Route returns a move to destinationID.
func Route(destinationID uuid.UUID) Move {
	return Move{Kind: MoveRoute, DestinationID: destinationID}
}

// Unroute returns a move to uncategorized.
func Unroute() Move {
	return Move{Kind: MoveUnroute}
}

// Decide resolves a drop. Rules are checked in order and the first match wins:
//
//  1. a column other than the card's current destination routes there;
//  2. the uncategorized column unroutes a routed card;
//  3. another card in a different destination routes to that destination;
//  4. anything else is no move.
func Decide(dragged domain.Item, target DropTarget) Move {
	switch target.Kind {
	case TargetColumn:
		if target.DestinationID != nil && !dragged.InDestination(*target.DestinationID) {
			return Route(*target.DestinationID)
		}
	case TargetUncategorized:
		if !dragged.IsUncategorized() {
			return Unroute()
		}
	case TargetItem:
		if target.ItemID != dragged.ID && target.DestinationID != nil && !dragged.InDestination(*target.DestinationID) {
			return Route(*target.DestinationID)
		}
	}
	return Move{Kind: NoMove}
}

// apply returns card as it will look after m succeeds on the server.
func apply(card domain.Item, m Move) domain.Item {
	switch m.Kind {
	case MoveRoute:
		dest := m.DestinationID
		card.DestinationID = &dest
		card.Layer = domain.LayerCommit
	case MoveUnroute:
		card.DestinationID = nil
		card.Layer = domain.LayerProcess
	}
	return card
}
