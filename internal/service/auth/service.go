// Package auth implements passwordless sign-in: magic links (built in or
// delegated to Supabase), rotating refresh tokens and access-token checks.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/offmind/offmind-backend/internal/auth"
	"github.com/offmind/offmind-backend/internal/config"
	"github.com/offmind/offmind-backend/internal/domain"
)

type profileRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)
	Create(ctx context.Context, p *domain.Profile) (*domain.Profile, error)
}

type tokenRepo interface {
	Create(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) (*domain.RefreshToken, error)
	GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	RevokeByID(ctx context.Context, id uuid.UUID) error
	RevokeAllByUser(ctx context.Context, userID uuid.UUID) error
	DeleteExpired(ctx context.Context) (int, error)
}

type magicLinkRepo interface {
	Create(ctx context.Context, email, tokenHash string, expiresAt time.Time) (*domain.MagicLink, error)
	Consume(ctx context.Context, tokenHash string, now time.Time) (*domain.MagicLink, error)
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

type destinationSeeder interface {
	SeedDefaults(ctx context.Context, userID uuid.UUID) (int, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type jwtManager interface {
	GenerateAccessToken(userID uuid.UUID) (string, error)
	ValidateAccessToken(token string) (uuid.UUID, error)
}

// linkSender delivers a sign-in link. The Supabase sender ignores link and
// lets the hosted service compose the email.
type linkSender interface {
	SendMagicLink(ctx context.Context, email, link string) error
}

type identityProvider interface {
	Identify(ctx context.Context, accessToken string) (*auth.Identity, error)
}

// Deps groups the collaborators of Service.
type Deps struct {
	Profiles     profileRepo
	Tokens       tokenRepo
	MagicLinks   magicLinkRepo
	Destinations destinationSeeder
	Tx           txManager
	JWT          jwtManager
	Sender       linkSender
	// Identity is nil unless the Supabase provider is configured.
	Identity identityProvider
}

// Service implements auth operations.
type Service struct {
	log      *slog.Logger
	deps     Deps
	cfg      config.AuthConfig
	linkBase string
	now      func() time.Time
	newToken func() (raw, hash string, err error)
}

// NewService creates a new auth service. linkBase is the absolute URL the
// magic-link token is appended to.
func NewService(logger *slog.Logger, deps Deps, cfg config.AuthConfig, linkBase string) *Service {
	return &Service{
		log:      logger.With("service", "auth"),
		deps:     deps,
		cfg:      cfg,
		linkBase: linkBase,
		now:      func() time.Time { return time.Now().UTC() },
		newToken: auth.GenerateOpaqueToken,
	}
}

// issueTokens creates an access token and stores a new refresh token for p.
func (s *Service) issueTokens(ctx context.Context, p *domain.Profile) (*AuthResult, error) {
	accessToken, err := s.deps.JWT.GenerateAccessToken(p.ID)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	rawRefresh, hashRefresh, err := s.newToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if _, err := s.deps.Tokens.Create(ctx, p.ID, hashRefresh, s.now().Add(s.cfg.RefreshTokenTTL)); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &AuthResult{
		AccessToken:  accessToken,
		RefreshToken: rawRefresh,
		ExpiresIn:    int(s.cfg.AccessTokenTTL.Seconds()),
		Profile:      p,
	}, nil
}
