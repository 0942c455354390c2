package rest

import (
	"context"
	"net/http"
	"time"
)

// pinger is anything whose reachability can be checked.
type pinger interface {
	Ping(ctx context.Context) error
}

// Check is a named dependency probe. A failing critical check makes the
// service not ready; a failing optional check only degrades it.
type Check struct {
	Name     string
	Target   pinger
	Critical bool
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	checks  []Check
	version string
	timeout time.Duration
	now     func() time.Time
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(version string, checks ...Check) *HealthHandler {
	return &HealthHandler{
		checks:  checks,
		version: version,
		timeout: 3 * time.Second,
		now:     time.Now,
	}
}

// HealthResponse is the JSON response for /live, /ready and /health.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: h.now()})
}

// Ready is the readiness probe: 200 when every critical check passes,
// 503 otherwise.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	status, _ := h.run(r.Context(), true)
	writeJSON(w, httpStatus(status), HealthResponse{Status: status, Timestamp: h.now()})
}

// Health runs every check with latency measurement and includes the version.
// Overall status is "ok", "degraded" (an optional check failed) or "down".
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status, components := h.run(r.Context(), false)
	writeJSON(w, httpStatus(status), HealthResponse{
		Status:     status,
		Version:    h.version,
		Components: components,
		Timestamp:  h.now(),
	})
}

func (h *HealthHandler) run(ctx context.Context, criticalOnly bool) (string, map[string]CompStatus) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	overall := "ok"
	components := make(map[string]CompStatus, len(h.checks))
	for _, c := range h.checks {
		if criticalOnly && !c.Critical {
			continue
		}

		start := time.Now()
		err := c.Target.Ping(ctx)
		latency := time.Since(start)

		if err == nil {
			components[c.Name] = CompStatus{Status: "ok", Latency: latency.String()}
			continue
		}
		components[c.Name] = CompStatus{Status: "down"}
		switch {
		case c.Critical:
			overall = "down"
		case overall == "ok":
			overall = "degraded"
		}
	}
	return overall, components
}

func httpStatus(status string) int {
	if status == "down" {
		return http.StatusServiceUnavailable
	}
	return http.StatusOK
}
