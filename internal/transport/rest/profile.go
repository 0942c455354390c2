package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/offmind/offmind-backend/internal/domain"
	"github.com/offmind/offmind-backend/internal/service/profile"
	"github.com/offmind/offmind-backend/internal/workspace"
)

type profileService interface {
	GetProfile(ctx context.Context) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, input profile.UpdateProfileInput) (*domain.Profile, error)
	GetWorkspace(ctx context.Context) (workspace.State, error)
	DispatchWorkspace(ctx context.Context, action workspace.Action) (workspace.State, error)
}

// ProfileHandler serves profile and workspace endpoints.
type ProfileHandler struct {
	svc profileService
	log *slog.Logger
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(svc profileService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{svc: svc, log: logger.With("handler", "profile")}
}

// Get handles GET /profile.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetProfile(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileResponse(p))
}

// Update handles PATCH /profile.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input profile.UpdateProfileInput
	if err := decodeJSON(w, r, &input); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	p, err := h.svc.UpdateProfile(r.Context(), input)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileResponse(p))
}

// Workspace handles GET /workspace.
func (h *ProfileHandler) Workspace(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.GetWorkspace(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// Dispatch handles POST /workspace/actions.
func (h *ProfileHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	var action workspace.Action
	if err := decodeJSON(w, r, &action); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	s, err := h.svc.DispatchWorkspace(r.Context(), action)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}
