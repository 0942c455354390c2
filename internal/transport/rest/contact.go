package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/offmind/offmind-backend/internal/domain"
	"github.com/offmind/offmind-backend/internal/service/contact"
)

type contactService interface {
	ListContacts(ctx context.Context) ([]domain.Contact, error)
	GetContact(ctx context.Context, id uuid.UUID) (*domain.Contact, error)
	CreateContact(ctx context.Context, input contact.ContactInput) (*domain.Contact, error)
	UpdateContact(ctx context.Context, id uuid.UUID, input contact.ContactInput) (*domain.Contact, error)
	DeleteContact(ctx context.Context, id uuid.UUID) error
}

// ContactHandler serves contact REST endpoints.
type ContactHandler struct {
	svc contactService
	log *slog.Logger
}

// NewContactHandler creates a ContactHandler.
func NewContactHandler(svc contactService, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{svc: svc, log: logger.With("handler", "contact")}
}

// List handles GET /contacts.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.svc.ListContacts(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"contacts": mapSlice(contacts, toContactResponse)})
}

// Create handles POST /contacts.
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input contact.ContactInput
	if err := decodeJSON(w, r, &input); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	c, err := h.svc.CreateContact(r.Context(), input)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toContactResponse(c))
}

// Get handles GET /contacts/{id}.
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	c, err := h.svc.GetContact(r.Context(), id)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toContactResponse(c))
}

// Update handles PATCH /contacts/{id}.
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	var input contact.ContactInput
	if err := decodeJSON(w, r, &input); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	c, err := h.svc.UpdateContact(r.Context(), id, input)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toContactResponse(c))
}

// Delete handles DELETE /contacts/{id}.
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	if err := h.svc.DeleteContact(r.Context(), id); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
