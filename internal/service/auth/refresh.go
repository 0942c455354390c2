package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/offmind/offmind-backend/internal/auth"
	"github.com/offmind/offmind-backend/internal/domain"
)

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued. An unknown, revoked or expired token is ErrUnauthorized.
func (s *Service) Refresh(ctx context.Context, input TokenInput) (*AuthResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	token, err := s.deps.Tokens.GetByHash(ctx, auth.HashToken(input.Token))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.WarnContext(ctx, "refresh token reuse attempted")
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("get refresh token: %w", err)
	}
	if token.IsExpired(s.now()) {
		return nil, domain.ErrUnauthorized
	}

	profile, err := s.deps.Profiles.GetByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.WarnContext(ctx, "refresh for deleted profile",
				slog.String("user_id", token.UserID.String()))
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	var result *AuthResult
	err = s.deps.Tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.deps.Tokens.RevokeByID(ctx, token.ID); err != nil {
			return fmt.Errorf("revoke token: %w", err)
		}
		var err error
		result, err = s.issueTokens(ctx, profile)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}
	return result, nil
}
