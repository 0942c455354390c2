// Package board turns drag-and-drop gestures on the item board into routing
// moves. Drop targets are classified into a closed set of kinds, the move is
// decided by a pure function, and a Session applies it optimistically.
package board

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/offmind/offmind-backend/internal/domain"
)

// TargetKind classifies what an item was dropped on.
type TargetKind int

const (
	TargetNowhere TargetKind = iota
	TargetColumn
	TargetUncategorized
	TargetItem
)

func (k TargetKind) String() string {
	switch k {
	case TargetColumn:
		return "column"
	case TargetUncategorized:
		return "uncategorized"
	case TargetItem:
		return "item"
	default:
		return "nowhere"
	}
}

// DropTarget is where a drag ended.
type DropTarget struct {
	Kind TargetKind
	// DestinationID is the column for TargetColumn and the target item's
	// destination (nil when uncategorized) for TargetItem.
	DestinationID *uuid.UUID
	// ItemID is set for TargetItem.
	ItemID uuid.UUID
}

// Column targets a destination column.
func Column(destinationID uuid.UUID) DropTarget {
	return DropTarget{Kind: TargetColumn, DestinationID: &destinationID}
}

// Uncategorized targets the uncategorized column.
func Uncategorized() DropTarget {
	return DropTarget{Kind: TargetUncategorized}
}

// OnItem targets another card. destinationID is that card's destination.
func OnItem(itemID uuid.UUID, destinationID *uuid.UUID) DropTarget {
	return DropTarget{Kind: TargetItem, ItemID: itemID, DestinationID: destinationID}
}

// Nowhere is a drop outside any target.
func Nowhere() DropTarget {
	return DropTarget{Kind: TargetNowhere}
}

// ParseTarget builds a target from its transport form. kind is one of
// "column", "uncategorized", "item" or "" / "nowhere". For "item" the
// destination is unknown until the target card is loaded.
func ParseTarget(kind, id string) (DropTarget, error) {
	switch kind {
	case "", "nowhere":
		return Nowhere(), nil
	case "uncategorized":
		return Uncategorized(), nil
	case "column", "item":
		parsed, err := uuid.Parse(id)
		if err != nil {
			return DropTarget{}, domain.NewValidationError("target_id", "must be a UUID")
		}
		if kind == "column" {
			return Column(parsed), nil
		}
		return OnItem(parsed, nil), nil
	default:
		return DropTarget{}, domain.NewValidationError("target_kind", fmt.Sprintf("unknown kind %q", kind))
	}
}
