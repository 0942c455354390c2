package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/offmind/offmind-backend/internal/auth"
	"github.com/offmind/offmind-backend/internal/domain"
)

// RequestMagicLink sends a sign-in link to input.Email. With the built-in
// provider a single-use token is stored and the link carries it; with
// Supabase the hosted service sends its own OTP email.
func (s *Service) RequestMagicLink(ctx context.Context, input MagicLinkInput) error {
	input.Email = input.normalizedEmail()
	if err := input.Validate(); err != nil {
		return err
	}

	if s.cfg.UsesSupabase() {
		if err := s.deps.Sender.SendMagicLink(ctx, input.Email, ""); err != nil {
			return fmt.Errorf("send magic link: %w", err)
		}
		return nil
	}

	raw, hash, err := s.newToken()
	if err != nil {
		return fmt.Errorf("generate magic link: %w", err)
	}

	if _, err := s.deps.MagicLinks.Create(ctx, input.Email, hash, s.now().Add(s.cfg.MagicLinkTTL)); err != nil {
		return fmt.Errorf("store magic link: %w", err)
	}

	if err := s.deps.Sender.SendMagicLink(ctx, input.Email, s.link(raw)); err != nil {
		return fmt.Errorf("send magic link: %w", err)
	}

	s.log.InfoContext(ctx, "magic link requested", slog.String("email", input.Email))
	return nil
}

// VerifyMagicLink consumes a built-in magic-link token and signs the user
// in, creating the profile on first sign-in.
func (s *Service) VerifyMagicLink(ctx context.Context, input TokenInput) (*AuthResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if s.cfg.UsesSupabase() {
		return nil, domain.NewValidationError("token", "magic links are handled by the identity provider")
	}

	link, err := s.deps.MagicLinks.Consume(ctx, auth.HashToken(input.Token), s.now())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.WarnContext(ctx, "invalid or reused magic link")
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("consume magic link: %w", err)
	}

	return s.signIn(ctx, link.Email)
}

// ExchangeSupabaseToken validates a Supabase access token with the hosted
// service and signs the user in with local tokens.
func (s *Service) ExchangeSupabaseToken(ctx context.Context, input TokenInput) (*AuthResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if s.deps.Identity == nil {
		return nil, domain.NewValidationError("token", "supabase sign-in is not configured")
	}

	identity, err := s.deps.Identity.Identify(ctx, input.Token)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("identify: %w", err)
	}

	return s.signIn(ctx, identity.Email)
}

func (s *Service) link(raw string) string {
	return s.linkBase + "?token=" + url.QueryEscape(raw)
}
