// Package supabase delegates magic-link sign-in to a hosted Supabase GoTrue
// instance. Calls go through a circuit breaker; while it is open the
// provider fails fast with domain.ErrUnavailable.
package supabase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sony/gobreaker"
	"github.com/supabase-community/gotrue-go/types"
	supa "github.com/supabase-community/supabase-go"

	"github.com/offmind/offmind-backend/internal/auth"
	"github.com/offmind/offmind-backend/internal/config"
	"github.com/offmind/offmind-backend/internal/domain"
)

// identityAPI is the subset of GoTrue the provider needs.
type identityAPI interface {
	SendOTP(email string) error
	UserForToken(accessToken string) (*types.User, error)
}

// Provider sends OTP emails and resolves GoTrue access tokens to identities.
type Provider struct {
	api     identityAPI
	breaker *gobreaker.CircuitBreaker
	log     *slog.Logger
}

// New connects to the Supabase project described by cfg.
func New(cfg config.SupabaseConfig, logger *slog.Logger) (*Provider, error) {
	client, err := supa.NewClient(cfg.URL, cfg.AnonKey, nil)
	if err != nil {
		return nil, fmt.Errorf("supabase client: %w", err)
	}
	return newProvider(&clientAPI{client: client}, cfg, logger), nil
}

func newProvider(api identityAPI, cfg config.SupabaseConfig, logger *slog.Logger) *Provider {
	log := logger.With("adapter", "supabase")
	maxFailures := cfg.MaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "supabase-auth",
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			// A rejected token is a client problem, not an outage.
			return err == nil || errors.Is(err, domain.ErrUnauthorized)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	return &Provider{api: api, breaker: breaker, log: log}
}

// SendMagicLink asks GoTrue to email a one-time sign-in link to email.
func (p *Provider) SendMagicLink(ctx context.Context, email, _ string) error {
	_, err := p.breaker.Execute(func() (any, error) {
		return nil, p.api.SendOTP(email)
	})
	if err != nil {
		return p.mapError(ctx, "send otp", err)
	}
	p.log.DebugContext(ctx, "otp requested", slog.String("email", email))
	return nil
}

// Identify resolves a GoTrue access token to the user it was issued for.
func (p *Provider) Identify(ctx context.Context, accessToken string) (*auth.Identity, error) {
	res, err := p.breaker.Execute(func() (any, error) {
		user, err := p.api.UserForToken(accessToken)
		if err != nil {
			if isAuthError(err) {
				return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
			}
			return nil, err
		}
		return user, nil
	})
	if err != nil {
		return nil, p.mapError(ctx, "get user", err)
	}

	user := res.(*types.User)
	if user.Email == "" {
		return nil, fmt.Errorf("supabase: user %s has no email: %w", user.ID, domain.ErrUnauthorized)
	}
	return &auth.Identity{ProviderID: user.ID.String(), Email: strings.ToLower(user.Email)}, nil
}

func (p *Provider) mapError(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return fmt.Errorf("supabase %s: %w", op, err)
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return fmt.Errorf("supabase %s: circuit open: %w", op, domain.ErrUnavailable)
	default:
		p.log.ErrorContext(ctx, "supabase call failed", slog.String("op", op), slog.String("error", err.Error()))
		return fmt.Errorf("supabase %s: %w: %v", op, domain.ErrUnavailable, err)
	}
}

// GoTrue reports rejected tokens as HTTP errors with these statuses in the message.
func isAuthError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "401") || strings.Contains(msg, "403")
}

type clientAPI struct {
	client *supa.Client
}

func (c *clientAPI) SendOTP(email string) error {
	return c.client.Auth.OTP(types.OTPRequest{Email: email, CreateUser: true})
}

func (c *clientAPI) UserForToken(accessToken string) (*types.User, error) {
	resp, err := c.client.Auth.WithToken(accessToken).GetUser()
	if err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Ping reports ErrUnavailable while the circuit breaker is open.
func (p *Provider) Ping(_ context.Context) error {
	if p.breaker.State() == gobreaker.StateOpen {
		return fmt.Errorf("supabase: %w", domain.ErrUnavailable)
	}
	return nil
}
