// Package profile manages the caller's profile and workspace preferences.
package profile

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/offmind/offmind-backend/internal/domain"
	"github.com/offmind/offmind-backend/internal/workspace"
	"github.com/offmind/offmind-backend/pkg/ctxutil"
)

type profileRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	Update(ctx context.Context, p *domain.Profile) (*domain.Profile, error)
}

// workspaceIdleTTL is how long an untouched workspace stays in memory.
// An evicted workspace is reloaded from the profile preferences, so only
// the open item and palette are lost.
const workspaceIdleTTL = 30 * time.Minute

type workspaceEntry struct {
	store    *workspace.Store
	lastUsed time.Time
}

// Service provides profile and workspace operations. Transient workspace
// state lives in memory per user; preferences are written through to the
// profile.
type Service struct {
	profiles profileRepo
	log      *slog.Logger
	now      func() time.Time

	mu        sync.Mutex
	stores    map[uuid.UUID]*workspaceEntry
	lastSweep time.Time
}

// NewService creates a new profile service.
func NewService(log *slog.Logger, profiles profileRepo) *Service {
	return &Service{
		profiles: profiles,
		log:      log.With("service", "profile"),
		now:      time.Now,
		stores:   make(map[uuid.UUID]*workspaceEntry),
	}
}

// UpdateProfileInput holds a partial profile update.
type UpdateProfileInput struct {
	DisplayName *string `json:"display_name" validate:"omitempty,max=100"`
	Timezone    *string `json:"timezone"     validate:"omitempty,timezone"`
}

// GetProfile returns the caller's profile.
func (s *Service) GetProfile(ctx context.Context) (*domain.Profile, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	p, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// UpdateProfile changes the display name or timezone. An empty display
// name clears it.
func (s *Service) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*domain.Profile, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := domain.ValidateStruct(input); err != nil {
		return nil, err
	}

	p, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	if input.DisplayName != nil {
		name := strings.TrimSpace(*input.DisplayName)
		p.DisplayName = &name
		if name == "" {
			p.DisplayName = nil
		}
	}
	if input.Timezone != nil {
		p.Timezone = *input.Timezone
	}

	updated, err := s.profiles.Update(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	s.log.InfoContext(ctx, "profile updated",
		slog.String("user_id", userID.String()),
		slog.String("timezone", updated.Timezone),
	)
	return updated, nil
}

// GetWorkspace returns the caller's current workspace state.
func (s *Service) GetWorkspace(ctx context.Context) (workspace.State, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return workspace.State{}, domain.ErrUnauthorized
	}
	store, err := s.store(ctx, userID)
	if err != nil {
		return workspace.State{}, err
	}
	return store.State(), nil
}

// DispatchWorkspace applies an action to the caller's workspace. When the
// action changes the sidebar or view mode the preferences are saved; if
// saving fails that preference change is reverted.
func (s *Service) DispatchWorkspace(ctx context.Context, action workspace.Action) (workspace.State, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return workspace.State{}, domain.ErrUnauthorized
	}
	store, err := s.store(ctx, userID)
	if err != nil {
		return workspace.State{}, err
	}

	prev, next, err := store.Apply(action)
	if err != nil {
		return prev, err
	}

	if next.Preferences() == prev.Preferences() {
		return next, nil
	}

	if err := s.savePreferences(ctx, userID, next.Preferences()); err != nil {
		return store.RevertPreferences(prev, next), fmt.Errorf("save preferences: %w", err)
	}
	return next, nil
}

func (s *Service) savePreferences(ctx context.Context, userID uuid.UUID, prefs domain.Preferences) error {
	p, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	p.Preferences = prefs
	if _, err := s.profiles.Update(ctx, p); err != nil {
		return err
	}

	s.log.DebugContext(ctx, "workspace preferences saved",
		slog.String("user_id", userID.String()),
		slog.Bool("sidebar_collapsed", prefs.SidebarCollapsed),
		slog.String("view_mode", prefs.ViewMode.String()),
	)
	return nil
}

// store returns the user's workspace store, seeding it from the profile on first use.
func (s *Service) store(ctx context.Context, userID uuid.UUID) (*workspace.Store, error) {
	if store, ok := s.lookup(userID); ok {
		return store, nil
	}

	p, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load workspace: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if e, ok := s.stores[userID]; ok {
		e.lastUsed = now
		return e.store, nil
	}
	store := workspace.NewStore(workspace.FromPreferences(p.Preferences))
	s.stores[userID] = &workspaceEntry{store: store, lastUsed: now}
	return store, nil
}

// lookup returns a cached store and evicts idle ones at most once per TTL.
func (s *Service) lookup(userID uuid.UUID) (*workspace.Store, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= workspaceIdleTTL {
		for id, e := range s.stores {
			if now.Sub(e.lastUsed) >= workspaceIdleTTL {
				delete(s.stores, id)
			}
		}
		s.lastSweep = now
	}

	e, ok := s.stores[userID]
	if !ok {
		return nil, false
	}
	e.lastUsed = now
	return e.store, true
}
