package contact

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offmind/offmind-backend/internal/domain"
	"github.com/offmind/offmind-backend/pkg/ctxutil"
)

// mockContactRepo is an in-memory contactRepo.
type mockContactRepo struct {
	rows    map[uuid.UUID]domain.Contact
	updates int
}

func newMockRepo(seed ...domain.Contact) *mockContactRepo {
	m := &mockContactRepo{rows: map[uuid.UUID]domain.Contact{}}
	for _, c := range seed {
		m.rows[c.ID] = c
	}
	return m
}

func (m *mockContactRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Contact, error) {
	c, ok := m.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (m *mockContactRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]domain.Contact, error) {
	var out []domain.Contact
	for _, c := range m.rows {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockContactRepo) Create(_ context.Context, c *domain.Contact) (*domain.Contact, error) {
	m.rows[c.ID] = *c
	out := *c
	return &out, nil
}

func (m *mockContactRepo) Update(_ context.Context, c *domain.Contact) (*domain.Contact, error) {
	m.updates++
	m.rows[c.ID] = *c
	out := *c
	return &out, nil
}

func (m *mockContactRepo) Delete(_ context.Context, _ uuid.UUID, id uuid.UUID) error {
	if _, ok := m.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func ptr[T any](v T) *T { return &v }

func newTestService(repo *mockContactRepo) *Service {
	return NewService(slog.New(slog.NewTextHandler(io.Discard, nil)), repo)
}

func TestCreateContact(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	repo := newMockRepo()
	svc := newTestService(repo)
	ctx := ctxutil.WithUserID(context.Background(), userID)

	got, err := svc.CreateContact(ctx, ContactInput{
		Name:  ptr("  Ada Lovelace "),
		Email: ptr("ada@example.com"),
		Phone: ptr(" "),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", got.Name)
	assert.Equal(t, ptr("ada@example.com"), got.Email)
	assert.Nil(t, got.Phone)
	assert.Equal(t, userID, got.UserID)
	assert.Len(t, repo.rows, 1)
}

func TestCreateContact_Validation(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMockRepo())
	ctx := ctxutil.WithUserID(context.Background(), uuid.New())

	for name, in := range map[string]ContactInput{
		"missing name": {Email: ptr("a@example.com")},
		"blank name":   {Name: ptr("  ")},
		"bad email":    {Name: ptr("Bob"), Email: ptr("bob-at-example")},
	} {
		_, err := svc.CreateContact(ctx, in)
		assert.ErrorIs(t, err, domain.ErrValidation, name)
	}
}

func TestUpdateContact_ClearsEmptyFields(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	existing := domain.Contact{ID: uuid.New(), UserID: userID, Name: "Bob", Email: ptr("bob@example.com")}
	repo := newMockRepo(existing)
	svc := newTestService(repo)
	ctx := ctxutil.WithUserID(context.Background(), userID)

	got, err := svc.UpdateContact(ctx, existing.ID, ContactInput{Email: ptr(""), Notes: ptr("met at conf")})
	require.NoError(t, err)
	assert.Equal(t, "Bob", got.Name)
	assert.Nil(t, got.Email)
	assert.Equal(t, ptr("met at conf"), got.Notes)
}

func TestCreateContact_BlankAndPaddedEmail(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMockRepo())
	ctx := ctxutil.WithUserID(context.Background(), uuid.New())

	got, err := svc.CreateContact(ctx, ContactInput{Name: ptr("Bob"), Email: ptr("")})
	require.NoError(t, err)
	assert.Nil(t, got.Email)

	got, err = svc.CreateContact(ctx, ContactInput{Name: ptr("Bob"), Email: ptr(" bob@example.com ")})
	require.NoError(t, err)
	assert.Equal(t, ptr("bob@example.com"), got.Email)
}

func TestContact_OtherOwnerForbidden(t *testing.T) {
	t.Parallel()

	existing := domain.Contact{ID: uuid.New(), UserID: uuid.New(), Name: "Eve"}
	repo := newMockRepo(existing)
	svc := newTestService(repo)
	ctx := ctxutil.WithUserID(context.Background(), uuid.New())

	_, err := svc.GetContact(ctx, existing.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.UpdateContact(ctx, existing.ID, ContactInput{Name: ptr("Mallory")})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Zero(t, repo.updates)

	assert.ErrorIs(t, svc.DeleteContact(ctx, existing.ID), domain.ErrForbidden)
	assert.Len(t, repo.rows, 1)
}

func TestDeleteContact(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	existing := domain.Contact{ID: uuid.New(), UserID: userID, Name: "Bob"}
	repo := newMockRepo(existing)
	svc := newTestService(repo)
	ctx := ctxutil.WithUserID(context.Background(), userID)

	require.NoError(t, svc.DeleteContact(ctx, existing.ID))
	assert.Empty(t, repo.rows)
	assert.ErrorIs(t, svc.DeleteContact(ctx, existing.ID), domain.ErrNotFound)
}

func TestListContacts_Unauthorized(t *testing.T) {
	t.Parallel()

	_, err := newTestService(newMockRepo()).ListContacts(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
