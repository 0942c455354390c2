package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/offmind/offmind-backend/internal/service/auth"
)

type authService interface {
	RequestMagicLink(ctx context.Context, input auth.MagicLinkInput) error
	VerifyMagicLink(ctx context.Context, input auth.TokenInput) (*auth.AuthResult, error)
	ExchangeSupabaseToken(ctx context.Context, input auth.TokenInput) (*auth.AuthResult, error)
	Refresh(ctx context.Context, input auth.TokenInput) (*auth.AuthResult, error)
	Logout(ctx context.Context) error
}

type magicLinkObserver interface {
	ObserveMagicLink(err error)
}

// AuthHandler serves auth REST endpoints.
type AuthHandler struct {
	svc     authService
	metrics magicLinkObserver
	log     *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc authService, metrics magicLinkObserver, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, metrics: metrics, log: logger.With("handler", "auth")}
}

type magicLinkRequest struct {
	Email string `json:"email"`
}

type verifyRequest struct {
	Token string `json:"token"`
}

type exchangeRequest struct {
	AccessToken string `json:"access_token"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type authResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"`
	NewProfile   bool            `json:"new_profile"`
	Profile      profileResponse `json:"profile"`
}

// RequestMagicLink handles POST /auth/magic-link. The response does not
// reveal whether the address has an account.
func (h *AuthHandler) RequestMagicLink(w http.ResponseWriter, r *http.Request) {
	var req magicLinkRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	err := h.svc.RequestMagicLink(r.Context(), auth.MagicLinkInput{Email: req.Email})
	h.metrics.ObserveMagicLink(err)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "sent"})
}

// Verify handles POST /auth/verify.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	h.respondAuth(w, r, func(ctx context.Context) (*auth.AuthResult, error) {
		return h.svc.VerifyMagicLink(ctx, auth.TokenInput{Token: req.Token})
	})
}

// Exchange handles POST /auth/exchange.
func (h *AuthHandler) Exchange(w http.ResponseWriter, r *http.Request) {
	var req exchangeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	h.respondAuth(w, r, func(ctx context.Context) (*auth.AuthResult, error) {
		return h.svc.ExchangeSupabaseToken(ctx, auth.TokenInput{Token: req.AccessToken})
	})
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	h.respondAuth(w, r, func(ctx context.Context) (*auth.AuthResult, error) {
		return h.svc.Refresh(ctx, auth.TokenInput{Token: req.RefreshToken})
	})
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Logout(r.Context()); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) respondAuth(w http.ResponseWriter, r *http.Request, fn func(context.Context) (*auth.AuthResult, error)) {
	result, err := fn(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	status := http.StatusOK
	if result.NewProfile {
		status = http.StatusCreated
	}
	writeJSON(w, status, authResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    result.ExpiresIn,
		NewProfile:   result.NewProfile,
		Profile:      toProfileResponse(result.Profile),
	})
}
