package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/offmind/offmind-backend/internal/domain"
	"github.com/offmind/offmind-backend/internal/service/destination"
)

type destinationService interface {
	ListDestinations(ctx context.Context) ([]domain.Destination, error)
	CreateDestination(ctx context.Context, input destination.CreateDestinationInput) (*domain.Destination, error)
	UpdateDestination(ctx context.Context, id uuid.UUID, input destination.UpdateDestinationInput) (*domain.Destination, error)
	DeleteDestination(ctx context.Context, id uuid.UUID) (int, error)
}

// DestinationHandler serves destination REST endpoints.
type DestinationHandler struct {
	svc destinationService
	log *slog.Logger
}

// NewDestinationHandler creates a DestinationHandler.
func NewDestinationHandler(svc destinationService, logger *slog.Logger) *DestinationHandler {
	return &DestinationHandler{svc: svc, log: logger.With("handler", "destination")}
}

// List handles GET /destinations.
func (h *DestinationHandler) List(w http.ResponseWriter, r *http.Request) {
	dests, err := h.svc.ListDestinations(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"destinations": mapSlice(dests, toDestinationResponse)})
}

// Create handles POST /destinations.
func (h *DestinationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input destination.CreateDestinationInput
	if err := decodeJSON(w, r, &input); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	d, err := h.svc.CreateDestination(r.Context(), input)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDestinationResponse(d))
}

// Update handles PATCH /destinations/{id}.
func (h *DestinationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	var input destination.UpdateDestinationInput
	if err := decodeJSON(w, r, &input); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	d, err := h.svc.UpdateDestination(r.Context(), id, input)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toDestinationResponse(d))
}

// Delete handles DELETE /destinations/{id}. Items routed to the destination
// become uncategorized; their count is returned.
func (h *DestinationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	n, err := h.svc.DeleteDestination(r.Context(), id)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"unrouted_items": n})
}
