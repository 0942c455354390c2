// Package workspace holds the per-user UI state of the item board: which
// item panel is open, the sidebar, the command palette and the view mode.
// State changes only through Reduce.
package workspace

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/offmind/offmind-backend/internal/domain"
)

// State is the workspace state. SidebarCollapsed and ViewMode are persisted
// in the profile preferences; OpenItemID and PaletteOpen are transient.
type State struct {
	OpenItemID       *uuid.UUID      `json:"open_item_id"`
	SidebarCollapsed bool            `json:"sidebar_collapsed"`
	PaletteOpen      bool            `json:"palette_open"`
	ViewMode         domain.ViewMode `json:"view_mode"`
}

// FromPreferences returns the initial state for a user.
func FromPreferences(p domain.Preferences) State {
	mode := p.ViewMode
	if !mode.IsValid() {
		mode = domain.ViewModeGrid
	}
	return State{SidebarCollapsed: p.SidebarCollapsed, ViewMode: mode}
}

// Preferences returns the persisted part of s.
func (s State) Preferences() domain.Preferences {
	return domain.Preferences{SidebarCollapsed: s.SidebarCollapsed, ViewMode: s.ViewMode}
}

// ActionKind names a state transition.
type ActionKind string

const (
	ActionOpenItem      ActionKind = "open_item"
	ActionCloseItem     ActionKind = "close_item"
	ActionToggleSidebar ActionKind = "toggle_sidebar"
	ActionSetSidebar    ActionKind = "set_sidebar"
	ActionOpenPalette   ActionKind = "open_palette"
	ActionClosePalette  ActionKind = "close_palette"
	ActionTogglePalette ActionKind = "toggle_palette"
	ActionSetViewMode   ActionKind = "set_view_mode"
)

// Action is a requested transition. Only the payload field relevant to
// Kind is read.
type Action struct {
	Kind      ActionKind      `json:"type"`
	ItemID    *uuid.UUID      `json:"item_id,omitempty"`
	Collapsed *bool           `json:"collapsed,omitempty"`
	ViewMode  domain.ViewMode `json:"view_mode,omitempty"`
}

// Reduce applies a to s. It is pure; s is never modified.
func Reduce(s State, a Action) (State, error) {
	switch a.Kind {
	case ActionOpenItem:
		if a.ItemID == nil || *a.ItemID == uuid.Nil {
			return s, domain.NewValidationError("item_id", "required")
		}
		id := *a.ItemID
		s.OpenItemID = &id
	case ActionCloseItem:
		s.OpenItemID = nil
	case ActionToggleSidebar:
		s.SidebarCollapsed = !s.SidebarCollapsed
	case ActionSetSidebar:
		if a.Collapsed == nil {
			return s, domain.NewValidationError("collapsed", "required")
		}
		s.SidebarCollapsed = *a.Collapsed
	case ActionOpenPalette:
		s.PaletteOpen = true
	case ActionClosePalette:
		s.PaletteOpen = false
	case ActionTogglePalette:
		s.PaletteOpen = !s.PaletteOpen
	case ActionSetViewMode:
		if !a.ViewMode.IsValid() {
			return s, domain.NewValidationError("view_mode", "must be grid, compact or kanban")
		}
		s.ViewMode = a.ViewMode
	default:
		return s, domain.NewValidationError("type", fmt.Sprintf("unknown action %q", a.Kind))
	}
	return s, nil
}
