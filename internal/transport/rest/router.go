package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/offmind/offmind-backend/internal/config"
	"github.com/offmind/offmind-backend/internal/domain"
	"github.com/offmind/offmind-backend/internal/observability"
	"github.com/offmind/offmind-backend/internal/transport/dataloader"
	"github.com/offmind/offmind-backend/internal/transport/middleware"
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (uuid.UUID, error)
}

type destinationLoader interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Destination, error)
}

// Handlers groups the endpoint handlers mounted by NewRouter.
type Handlers struct {
	Health       *HealthHandler
	Auth         *AuthHandler
	Items        *ItemHandler
	Destinations *DestinationHandler
	Contacts     *ContactHandler
	Board        *BoardHandler
	Dashboard    *DashboardHandler
	Profile      *ProfileHandler
}

// RouterDeps holds everything NewRouter wires together.
type RouterDeps struct {
	Handlers
	Tokens          tokenValidator
	DestinationRepo destinationLoader
	Metrics         *observability.Collector
	RateLimiter     *middleware.RateLimiter
	RateLimit       config.RateLimitConfig
	CORS            config.CORSConfig
	Logger          *slog.Logger
}

// NewRouter builds the HTTP handler: operational endpoints at the root and
// the JSON API under /api/v1.
func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Tracing)
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.Metrics(d.Metrics))
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.CORS(d.CORS))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, d.Logger, domain.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: errorBody{Code: "method_not_allowed", Message: "method not allowed"}})
	})

	r.Get("/live", d.Health.Live)
	r.Get("/ready", d.Health.Ready)
	r.Get("/health", d.Health.Health)
	r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(d.Tokens))

		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(d.RateLimiter.Limit("auth", d.RateLimit.AuthPerMinute))
				r.Post("/magic-link", d.Auth.RequestMagicLink)
				r.Post("/verify", d.Auth.Verify)
				r.Post("/exchange", d.Auth.Exchange)
				r.Post("/refresh", d.Auth.Refresh)
			})
			r.With(middleware.RequireUser).Post("/logout", d.Auth.Logout)
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/icons", Icons)
			r.Get("/colors", Colors)
			r.Get("/defaults", Defaults)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser)
			r.Use(dataloader.Middleware(d.DestinationRepo))

			r.Route("/items", func(r chi.Router) {
				r.Get("/", d.Items.List)
				r.Post("/", d.Items.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", d.Items.Get)
					r.Patch("/", d.Items.Update)
					r.Delete("/", d.Items.Delete)
					r.Post("/route", d.Items.Route)
					r.Post("/unroute", d.Items.Unroute)
					r.Post("/layer", d.Items.SetLayer)
					r.Post("/schedule", d.Items.Schedule)
					r.Post("/quick-schedule", d.Items.QuickSchedule)
					r.Post("/toggle-complete", d.Items.ToggleComplete)
				})
			})

			r.Route("/destinations", func(r chi.Router) {
				r.Get("/", d.Destinations.List)
				r.Post("/", d.Destinations.Create)
				r.Patch("/{id}", d.Destinations.Update)
				r.Delete("/{id}", d.Destinations.Delete)
			})

			r.Route("/contacts", func(r chi.Router) {
				r.Get("/", d.Contacts.List)
				r.Post("/", d.Contacts.Create)
				r.Get("/{id}", d.Contacts.Get)
				r.Patch("/{id}", d.Contacts.Update)
				r.Delete("/{id}", d.Contacts.Delete)
			})

			r.Post("/board/drop", d.Board.Drop)
			r.Get("/dashboard", d.Dashboard.Get)

			r.Get("/profile", d.Profile.Get)
			r.Patch("/profile", d.Profile.Update)
			r.Get("/workspace", d.Profile.Workspace)
			r.Post("/workspace/actions", d.Profile.Dispatch)
		})
	})

	return r
}
