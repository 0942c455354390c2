package auth

import "github.com/offmind/offmind-backend/internal/domain"

// AuthResult is returned by every operation that signs a user in.
type AuthResult struct {
	AccessToken  string
	RefreshToken string // raw token, NOT hash
	ExpiresIn    int    // access token lifetime in seconds
	Profile      *domain.Profile
	NewProfile   bool
}
