package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/offmind/offmind-backend/internal/domain"
	"github.com/offmind/offmind-backend/internal/service/item"
	"github.com/offmind/offmind-backend/internal/transport/dataloader"
)

type itemService interface {
	CreateItem(ctx context.Context, input item.CreateItemInput) (*domain.Item, error)
	GetItem(ctx context.Context, itemID uuid.UUID) (*domain.Item, error)
	ListItems(ctx context.Context, input item.ListItemsInput) ([]domain.Item, error)
	UpdateItem(ctx context.Context, itemID uuid.UUID, input item.UpdateItemInput) (*domain.Item, error)
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
	RouteToDestination(ctx context.Context, itemID, destinationID uuid.UUID) (*domain.Item, error)
	Unroute(ctx context.Context, itemID uuid.UUID) (*domain.Item, error)
	SetLayer(ctx context.Context, itemID uuid.UUID, layer domain.Layer) (*domain.Item, error)
	Schedule(ctx context.Context, itemID uuid.UUID, at *time.Time) (*domain.Item, error)
	QuickSchedule(ctx context.Context, itemID uuid.UUID) (*domain.Item, error)
	ToggleCompletion(ctx context.Context, itemID uuid.UUID) (*domain.Item, error)
}

type captureObserver interface {
	ObserveCapture()
}

// ItemHandler serves item REST endpoints.
type ItemHandler struct {
	svc     itemService
	metrics captureObserver
	log     *slog.Logger
}

// NewItemHandler creates an ItemHandler.
func NewItemHandler(svc itemService, metrics captureObserver, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{svc: svc, metrics: metrics, log: logger.With("handler", "item")}
}

type createItemRequest struct {
	Title string  `json:"title"`
	Notes *string `json:"notes"`
}

type attachmentRequest struct {
	ID       uuid.UUID             `json:"id"`
	Kind     domain.AttachmentKind `json:"type"`
	URL      string                `json:"url"`
	Filename string                `json:"filename"`
	Size     int64                 `json:"size"`
	Duration *float64              `json:"duration"`
}

type updateItemRequest struct {
	Title       *string              `json:"title"`
	Notes       *string              `json:"notes"`
	Attachments *[]attachmentRequest `json:"attachments"`
}

type routeRequest struct {
	DestinationID uuid.UUID `json:"destination_id"`
}

type layerRequest struct {
	Layer domain.Layer `json:"layer"`
}

type scheduleRequest struct {
	ScheduledAt *time.Time `json:"scheduled_at"`
}

// List handles GET /items.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	q := queryParser{r: r}
	input := item.ListItemsInput{
		DestinationID:  q.uuid("destination_id"),
		IsCompleted:    q.bool("completed"),
		ScheduledFrom:  q.time("scheduled_from"),
		ScheduledUntil: q.time("scheduled_until"),
		Limit:          q.int("limit"),
		Offset:         q.int("offset"),
	}
	if raw := r.URL.Query().Get("layer"); raw != "" {
		layer := domain.Layer(raw)
		input.Layer = &layer
	}
	if u := q.bool("uncategorized"); u != nil {
		input.Uncategorized = *u
	}
	if err := q.err(); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	items, err := h.svc.ListItems(r.Context(), input)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	resp, err := h.render(r, items)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": resp})
}

// Create handles POST /items.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	it, err := h.svc.CreateItem(r.Context(), item.CreateItemInput{Title: req.Title, Notes: req.Notes})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	h.metrics.ObserveCapture()

	writeJSON(w, http.StatusCreated, toItemResponse(it))
}

// Get handles GET /items/{id}.
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.withItem(w, r, func(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
		return h.svc.GetItem(ctx, id)
	})
}

// Update handles PATCH /items/{id}.
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	input := item.UpdateItemInput{Title: req.Title, Notes: req.Notes}
	if req.Attachments != nil {
		list := make([]item.AttachmentInput, len(*req.Attachments))
		for i, a := range *req.Attachments {
			list[i] = item.AttachmentInput{
				ID:       a.ID,
				Kind:     a.Kind,
				URL:      a.URL,
				Filename: a.Filename,
				Size:     a.Size,
				Duration: a.Duration,
			}
		}
		input.Attachments = &list
	}

	h.withItem(w, r, func(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
		return h.svc.UpdateItem(ctx, id, input)
	})
}

// Delete handles DELETE /items/{id}.
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	if err := h.svc.DeleteItem(r.Context(), id); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Route handles POST /items/{id}/route.
func (h *ItemHandler) Route(w http.ResponseWriter, r *http.Request) {
	var req routeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	if req.DestinationID == uuid.Nil {
		respondError(w, r, h.log, domain.NewValidationError("destination_id", "required"))
		return
	}
	h.withItem(w, r, func(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
		return h.svc.RouteToDestination(ctx, id, req.DestinationID)
	})
}

// Unroute handles POST /items/{id}/unroute.
func (h *ItemHandler) Unroute(w http.ResponseWriter, r *http.Request) {
	h.withItem(w, r, h.svc.Unroute)
}

// SetLayer handles POST /items/{id}/layer.
func (h *ItemHandler) SetLayer(w http.ResponseWriter, r *http.Request) {
	var req layerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	h.withItem(w, r, func(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
		return h.svc.SetLayer(ctx, id, req.Layer)
	})
}

// Schedule handles POST /items/{id}/schedule. A null scheduled_at clears
// the schedule.
func (h *ItemHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	h.withItem(w, r, func(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
		return h.svc.Schedule(ctx, id, req.ScheduledAt)
	})
}

// QuickSchedule handles POST /items/{id}/quick-schedule.
func (h *ItemHandler) QuickSchedule(w http.ResponseWriter, r *http.Request) {
	h.withItem(w, r, h.svc.QuickSchedule)
}

// ToggleComplete handles POST /items/{id}/toggle-complete.
func (h *ItemHandler) ToggleComplete(w http.ResponseWriter, r *http.Request) {
	h.withItem(w, r, h.svc.ToggleCompletion)
}

// withItem parses {id}, runs fn and renders the resulting item.
func (h *ItemHandler) withItem(w http.ResponseWriter, r *http.Request, fn func(context.Context, uuid.UUID) (*domain.Item, error)) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	it, err := fn(r.Context(), id)
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	resp, err := h.render(r, []domain.Item{*it})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, resp[0])
}

// render converts items, embedding destinations when ?expand=destination.
func (h *ItemHandler) render(r *http.Request, items []domain.Item) ([]itemResponse, error) {
	resp := mapSlice(items, toItemResponse)
	if r.URL.Query().Get("expand") != "destination" {
		return resp, nil
	}

	dests, err := dataloader.LoadDestinations(r.Context(), items)
	if err != nil {
		return nil, err
	}
	for i := range resp {
		if resp[i].DestinationID == nil {
			continue
		}
		if d, ok := dests[*resp[i].DestinationID]; ok {
			dr := toDestinationResponse(d)
			resp[i].Destination = &dr
		}
	}
	return resp, nil
}
