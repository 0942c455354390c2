package domain

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the account record of an authenticated user.
type Profile struct {
	ID          uuid.UUID
	Email       string
	DisplayName *string
	Timezone    string
	Preferences Preferences
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Preferences holds the persisted part of the workspace state.
type Preferences struct {
	SidebarCollapsed bool     `json:"sidebar_collapsed"`
	ViewMode         ViewMode `json:"view_mode"`
}

// DefaultPreferences returns the preferences of a new account.
func DefaultPreferences() Preferences {
	return Preferences{ViewMode: ViewModeGrid}
}

// NewProfile returns a profile with default timezone and preferences.
func NewProfile(email string, now time.Time) Profile {
	return Profile{
		ID:          uuid.New(),
		Email:       email,
		Timezone:    "UTC",
		Preferences: DefaultPreferences(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// RefreshToken represents a hashed refresh token stored in the database.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// IsRevoked returns true if the token has been revoked.
func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

// IsExpired returns true if the token has expired relative to now.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}

// MagicLink is a single-use sign-in token sent by email.
type MagicLink struct {
	ID         uuid.UUID
	Email      string
	TokenHash  string
	ExpiresAt  time.Time
	ConsumedAt *time.Time
	CreatedAt  time.Time
}

// Usable reports whether the link can still be consumed at now.
func (m *MagicLink) Usable(now time.Time) bool {
	return m.ConsumedAt == nil && m.ExpiresAt.After(now)
}
