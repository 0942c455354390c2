//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/offmind/offmind-backend/internal/adapter/postgres"
	contactrepo "github.com/offmind/offmind-backend/internal/adapter/postgres/contact"
	destinationrepo "github.com/offmind/offmind-backend/internal/adapter/postgres/destination"
	itemrepo "github.com/offmind/offmind-backend/internal/adapter/postgres/item"
	magiclinkrepo "github.com/offmind/offmind-backend/internal/adapter/postgres/magiclink"
	profilerepo "github.com/offmind/offmind-backend/internal/adapter/postgres/profile"
	"github.com/offmind/offmind-backend/internal/adapter/postgres/testhelper"
	tokenrepo "github.com/offmind/offmind-backend/internal/adapter/postgres/token"
	authpkg "github.com/offmind/offmind-backend/internal/auth"
	"github.com/offmind/offmind-backend/internal/config"
	"github.com/offmind/offmind-backend/internal/observability"
	authsvc "github.com/offmind/offmind-backend/internal/service/auth"
	boardsvc "github.com/offmind/offmind-backend/internal/service/board"
	"github.com/offmind/offmind-backend/internal/service/contact"
	"github.com/offmind/offmind-backend/internal/service/dashboard"
	"github.com/offmind/offmind-backend/internal/service/destination"
	"github.com/offmind/offmind-backend/internal/service/item"
	"github.com/offmind/offmind-backend/internal/service/profile"
	"github.com/offmind/offmind-backend/internal/transport/middleware"
	"github.com/offmind/offmind-backend/internal/transport/rest"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	links  *capturingSender
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// capturingSender records the last magic link per email instead of mailing it.
type capturingSender struct {
	mu    sync.Mutex
	links map[string]string
}

func (s *capturingSender) SendMagicLink(_ context.Context, email, link string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.links[email] = link
	return nil
}

func (s *capturingSender) token(t *testing.T, email string) string {
	t.Helper()
	s.mu.Lock()
	link, ok := s.links[email]
	s.mu.Unlock()
	require.True(t, ok, "no magic link sent to %s", email)

	u, err := url.Parse(link)
	require.NoError(t, err)
	tok := u.Query().Get("token")
	require.NotEmpty(t, tok)
	return tok
}

// setupTestServer bootstraps the full application stack backed by
// a real PostgreSQL container (shared via testhelper).
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	txm := postgres.NewTxManager(pool)

	profiles := profilerepo.New(pool)
	destinations := destinationrepo.New(pool)
	items := itemrepo.New(pool)

	authCfg := config.AuthConfig{
		Provider:        config.AuthProviderBuiltin,
		JWTSecret:       "test-secret-at-least-32-chars-long!!",
		JWTIssuer:       "test-issuer",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 720 * time.Hour,
		MagicLinkTTL:    15 * time.Minute,
		MagicLinkPath:   "/auth/callback",
	}

	destinationService := destination.NewService(logger, destinations, items, txm)
	itemService := item.NewService(logger, items, destinations, profiles, config.ItemsConfig{DefaultPageSize: 50, MaxPageSize: 200})
	sender := &capturingSender{links: map[string]string{}}
	authService := authsvc.NewService(logger, authsvc.Deps{
		Profiles:     profiles,
		Tokens:       tokenrepo.New(pool),
		MagicLinks:   magiclinkrepo.New(pool),
		Destinations: destinationService,
		Tx:           txm,
		JWT:          authpkg.NewJWTManager(authCfg.JWTSecret, authCfg.JWTIssuer, authCfg.AccessTokenTTL),
		Sender:       sender,
	}, authCfg, "http://app.test/auth/callback")

	metrics := observability.NewCollector()
	limiter := middleware.NewRateLimiter(time.Minute)
	t.Cleanup(limiter.Stop)

	handler := rest.NewRouter(rest.RouterDeps{
		Handlers: rest.Handlers{
			Health:       rest.NewHealthHandler("e2e", rest.Check{Name: "database", Target: pool, Critical: true}),
			Auth:         rest.NewAuthHandler(authService, metrics, logger),
			Items:        rest.NewItemHandler(itemService, metrics, logger),
			Destinations: rest.NewDestinationHandler(destinationService, logger),
			Contacts:     rest.NewContactHandler(contact.NewService(logger, contactrepo.New(pool)), logger),
			Board:        rest.NewBoardHandler(boardsvc.NewService(logger, itemService), metrics, logger),
			Dashboard:    rest.NewDashboardHandler(dashboard.NewService(logger, items, profiles), logger),
			Profile:      rest.NewProfileHandler(profile.NewService(logger, profiles), logger),
		},
		Tokens:          authService,
		DestinationRepo: destinations,
		Metrics:         metrics,
		RateLimiter:     limiter,
		RateLimit:       config.RateLimitConfig{AuthPerMinute: 1000},
		CORS:            config.CORSConfig{AllowedOrigins: "*", AllowedMethods: "GET,POST,PATCH,DELETE", AllowedHeaders: "Authorization,Content-Type"},
		Logger:          logger,
	})

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{URL: srv.URL, Client: srv.Client(), Pool: pool, links: sender}
}

// ---------------------------------------------------------------------------
// Request helpers
// ---------------------------------------------------------------------------

// do sends a JSON request and decodes a JSON object response (if any).
func (ts *testServer) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, ts.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return resp.StatusCode, nil
	}
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

// signIn runs the magic-link flow for email and returns the auth response.
func (ts *testServer) signIn(t *testing.T, email string) (int, map[string]any) {
	t.Helper()

	status, _ := ts.do(t, http.MethodPost, "/api/v1/auth/magic-link", "", map[string]string{"email": email})
	require.Equal(t, http.StatusAccepted, status)

	return ts.do(t, http.MethodPost, "/api/v1/auth/verify", "", map[string]string{"token": ts.links.token(t, email)})
}

// newUser signs in a fresh account and returns its access token.
func (ts *testServer) newUser(t *testing.T) string {
	t.Helper()
	status, body := ts.signIn(t, "user-"+randSuffix()+"@example.com")
	require.Equal(t, http.StatusCreated, status)
	return body["access_token"].(string)
}

func randSuffix() string {
	return uuid.NewString()[:8]
}

func idOf(t *testing.T, m map[string]any) string {
	t.Helper()
	id, ok := m["id"].(string)
	require.True(t, ok, "expected id in %v", m)
	return id
}

func errorCode(t *testing.T, m map[string]any) string {
	t.Helper()
	e, ok := m["error"].(map[string]any)
	require.True(t, ok, "expected error envelope in %v", m)
	return e["code"].(string)
}
