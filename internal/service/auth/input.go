package auth

import (
	"strings"

	"github.com/offmind/offmind-backend/internal/domain"
)

// MagicLinkInput requests a sign-in link.
type MagicLinkInput struct {
	Email string `json:"email" validate:"required,email,max=320"`
}

// Validate checks all fields and collects all errors.
func (i MagicLinkInput) Validate() error {
	return domain.ValidateStruct(i)
}

func (i MagicLinkInput) normalizedEmail() string {
	return strings.ToLower(strings.TrimSpace(i.Email))
}

// TokenInput carries an opaque token: a magic-link token, a refresh token or
// a Supabase access token.
type TokenInput struct {
	Token string `json:"token" validate:"required,max=4096"`
}

// Validate checks all fields and collects all errors.
func (i TokenInput) Validate() error {
	return domain.ValidateStruct(i)
}
