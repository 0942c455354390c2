package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/offmind/offmind-backend/internal/domain"
	"github.com/offmind/offmind-backend/pkg/ctxutil"
)

// Logout revokes all refresh tokens of the authenticated user.
func (s *Service) Logout(ctx context.Context) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.deps.Tokens.RevokeAllByUser(ctx, userID); err != nil {
		return fmt.Errorf("revoke tokens: %w", err)
	}

	s.log.InfoContext(ctx, "user logged out", slog.String("user_id", userID.String()))
	return nil
}

// ValidateToken checks an access token and returns its user ID. Any failure
// is reported as ErrUnauthorized.
func (s *Service) ValidateToken(_ context.Context, token string) (uuid.UUID, error) {
	userID, err := s.deps.JWT.ValidateAccessToken(token)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	return userID, nil
}

// CleanupResult reports how many rows CleanupExpired removed.
type CleanupResult struct {
	RefreshTokens int
	MagicLinks    int
}

// CleanupExpired deletes expired or revoked refresh tokens and expired or
// consumed magic links.
func (s *Service) CleanupExpired(ctx context.Context) (CleanupResult, error) {
	var res CleanupResult

	n, err := s.deps.Tokens.DeleteExpired(ctx)
	if err != nil {
		return res, fmt.Errorf("delete expired tokens: %w", err)
	}
	res.RefreshTokens = n

	n, err = s.deps.MagicLinks.DeleteExpired(ctx, s.now())
	if err != nil {
		return res, fmt.Errorf("delete expired magic links: %w", err)
	}
	res.MagicLinks = n

	s.log.InfoContext(ctx, "expired credentials removed",
		slog.Int("refresh_tokens", res.RefreshTokens),
		slog.Int("magic_links", res.MagicLinks),
	)
	return res, nil
}
