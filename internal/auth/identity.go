package auth

// Identity is a user confirmed by an external identity provider.
type Identity struct {
	ProviderID string
	Email      string
}
