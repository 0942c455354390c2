package dataloader_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offmind/offmind-backend/internal/domain"
	dl "github.com/offmind/offmind-backend/internal/transport/dataloader"
	"github.com/offmind/offmind-backend/pkg/ctxutil"
)

type mockDestinationRepo struct {
	mu     sync.Mutex
	result []domain.Destination
	err    error
	calls  [][]uuid.UUID
}

func (m *mockDestinationRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]domain.Destination, error) {
	m.mu.Lock()
	m.calls = append(m.calls, ids)
	m.mu.Unlock()
	return m.result, m.err
}

func withLoaders(userID uuid.UUID, repo *mockDestinationRepo) context.Context {
	ctx := ctxutil.WithUserID(context.Background(), userID)
	return dl.WithLoaders(ctx, dl.NewLoaders(repo))
}

func TestLoadDestinations_BatchesAndDeduplicates(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	d1 := domain.Destination{ID: uuid.New(), UserID: userID, Name: "Work"}
	d2 := domain.Destination{ID: uuid.New(), UserID: userID, Name: "Home"}
	repo := &mockDestinationRepo{result: []domain.Destination{d1, d2}}

	items := []domain.Item{
		{ID: uuid.New(), DestinationID: &d1.ID},
		{ID: uuid.New(), DestinationID: &d2.ID},
		{ID: uuid.New(), DestinationID: &d1.ID},
		{ID: uuid.New()},
	}

	got, err := dl.LoadDestinations(withLoaders(userID, repo), items)
	require.NoError(t, err)

	require.Len(t, repo.calls, 1)
	assert.Len(t, repo.calls[0], 2)
	assert.Equal(t, "Work", got[d1.ID].Name)
	assert.Equal(t, "Home", got[d2.ID].Name)
}

func TestLoadDestinations_HidesForeignRows(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	foreign := domain.Destination{ID: uuid.New(), UserID: uuid.New(), Name: "Other"}
	repo := &mockDestinationRepo{result: []domain.Destination{foreign}}

	got, err := dl.LoadDestinations(withLoaders(userID, repo), []domain.Item{{DestinationID: &foreign.ID}})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadDestinations_NoKeysSkipsRepo(t *testing.T) {
	t.Parallel()

	repo := &mockDestinationRepo{}
	got, err := dl.LoadDestinations(withLoaders(uuid.New(), repo), []domain.Item{{ID: uuid.New()}})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, repo.calls)
}

func TestLoadDestinations_RepoError(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	repo := &mockDestinationRepo{err: errors.New("db down")}

	_, err := dl.LoadDestinations(withLoaders(uuid.New(), repo), []domain.Item{{DestinationID: &id}})
	assert.EqualError(t, err, "db down")
}

func TestMiddleware_InjectsLoaders(t *testing.T) {
	t.Parallel()

	var found bool
	h := dl.Middleware(&mockDestinationRepo{})(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		found = dl.FromContext(r.Context()) != nil
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, found)
}

func TestFromContext_PanicsWithoutMiddleware(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { dl.FromContext(context.Background()) })
}
