package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/offmind/offmind-backend/internal/service/dashboard"
)

type dashboardService interface {
	GetDashboard(ctx context.Context) (dashboard.Dashboard, error)
}

// DashboardHandler serves the dashboard endpoint.
type DashboardHandler struct {
	svc dashboardService
	log *slog.Logger
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(svc dashboardService, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{svc: svc, log: logger.With("handler", "dashboard")}
}

type dashboardResponse struct {
	Greeting            string         `json:"greeting"`
	DisplayName         *string        `json:"display_name"`
	Timezone            string         `json:"timezone"`
	InboxCount          int            `json:"inbox_count"`
	ProcessingCount     int            `json:"processing_count"`
	TodayCount          int            `json:"today_count"`
	CompletedTodayCount int            `json:"completed_today_count"`
	TotalItems          int            `json:"total_items"`
	TotalCompleted      int            `json:"total_completed"`
	ByDestination       map[string]int `json:"by_destination"`
	Uncategorized       int            `json:"uncategorized"`
}

// Get handles GET /dashboard.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.GetDashboard(r.Context())
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	byDest := make(map[string]int, len(d.ByDestination))
	for id, n := range d.ByDestination {
		byDest[id.String()] = n
	}

	writeJSON(w, http.StatusOK, dashboardResponse{
		Greeting:            d.Greeting,
		DisplayName:         d.DisplayName,
		Timezone:            d.Timezone,
		InboxCount:          d.InboxCount,
		ProcessingCount:     d.ProcessingCount,
		TodayCount:          d.TodayCount,
		CompletedTodayCount: d.CompletedTodayCount,
		TotalItems:          d.TotalItems,
		TotalCompleted:      d.TotalCompleted,
		ByDestination:       byDest,
		Uncategorized:       d.Uncategorized,
	})
}
