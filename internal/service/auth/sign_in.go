package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/offmind/offmind-backend/internal/domain"
)

// signIn loads or creates the profile for email and issues tokens.
func (s *Service) signIn(ctx context.Context, email string) (*AuthResult, error) {
	profile, err := s.deps.Profiles.GetByEmail(ctx, email)
	if err == nil {
		return s.issueTokens(ctx, profile)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	profile, err = s.register(ctx, email)
	if errors.Is(err, domain.ErrAlreadyExists) {
		// Lost a race with a concurrent first sign-in.
		profile, err = s.deps.Profiles.GetByEmail(ctx, email)
	}
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	result, err := s.issueTokens(ctx, profile)
	if err != nil {
		return nil, err
	}
	result.NewProfile = true
	return result, nil
}

// register creates a profile with the default destinations in one transaction.
func (s *Service) register(ctx context.Context, email string) (*domain.Profile, error) {
	var created *domain.Profile
	err := s.deps.Tx.RunInTx(ctx, func(ctx context.Context) error {
		p := domain.NewProfile(email, s.now())
		var err error
		created, err = s.deps.Profiles.Create(ctx, &p)
		if err != nil {
			return err
		}
		_, err = s.deps.Destinations.SeedDefaults(ctx, created.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "profile registered",
		slog.String("user_id", created.ID.String()),
		slog.String("email", email),
	)
	return created, nil
}
