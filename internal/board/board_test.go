package board

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offmind/offmind-backend/internal/domain"
)

func card(dest *uuid.UUID) domain.Item {
	it := domain.NewItem(uuid.New(), "card", nil, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	it.DestinationID = dest
	if dest != nil {
		it.Layer = domain.LayerCommit
	}
	return it
}

func TestParseTarget(t *testing.T) {
	t.Parallel()
	id := uuid.New()

	tests := []struct {
		kind, id string
		want     DropTarget
		wantErr  bool
	}{
		{"column", id.String(), Column(id), false},
		{"uncategorized", "", Uncategorized(), false},
		{"item", id.String(), OnItem(id, nil), false},
		{"", "", Nowhere(), false},
		{"nowhere", "ignored", Nowhere(), false},
		{"column", "not-a-uuid", DropTarget{}, true},
		{"shelf", id.String(), DropTarget{}, true},
	}

	for _, tt := range tests {
		got, err := ParseTarget(tt.kind, tt.id)
		if tt.wantErr {
			assert.ErrorIs(t, err, domain.ErrValidation, "%s/%s", tt.kind, tt.id)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestDecide(t *testing.T) {
	t.Parallel()

	a, b := uuid.New(), uuid.New()
	routedA := card(&a)
	loose := card(nil)

	tests := []struct {
		name    string
		dragged domain.Item
		target  DropTarget
		want    Move
	}{
		{"column differs", routedA, Column(b), Route(b)},
		{"column same", routedA, Column(a), Move{}},
		{"loose to column", loose, Column(a), Route(a)},
		{"uncategorized from routed", routedA, Uncategorized(), Unroute()},
		{"uncategorized from loose", loose, Uncategorized(), Move{}},
		{"onto item elsewhere", routedA, OnItem(uuid.New(), &b), Route(b)},
		{"onto item same column", routedA, OnItem(uuid.New(), &a), Move{}},
		{"onto uncategorized item", routedA, OnItem(uuid.New(), nil), Move{}},
		{"loose onto routed item", loose, OnItem(uuid.New(), &a), Route(a)},
		{"onto itself", routedA, OnItem(routedA.ID, &b), Move{}},
		{"nowhere", routedA, Nowhere(), Move{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Decide(tt.dragged, tt.target))
		})
	}
}

// ---------------------------------------------------------------------------
// Session
// ---------------------------------------------------------------------------

type mockMutator struct {
	RouteFunc   func(ctx context.Context, itemID, destinationID uuid.UUID) (*domain.Item, error)
	UnrouteFunc func(ctx context.Context, itemID uuid.UUID) (*domain.Item, error)
	calls       int
}

func (m *mockMutator) RouteToDestination(ctx context.Context, itemID, destinationID uuid.UUID) (*domain.Item, error) {
	m.calls++
	return m.RouteFunc(ctx, itemID, destinationID)
}

func (m *mockMutator) Unroute(ctx context.Context, itemID uuid.UUID) (*domain.Item, error) {
	m.calls++
	return m.UnrouteFunc(ctx, itemID)
}

func TestSession_OptimisticThenReconcile(t *testing.T) {
	t.Parallel()

	dest := uuid.New()
	c := card(nil)
	serverTime := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	var sess *Session
	m := &mockMutator{
		RouteFunc: func(_ context.Context, itemID, destinationID uuid.UUID) (*domain.Item, error) {
			// The optimistic state is visible while the request is in flight.
			local, _ := sess.Card(itemID)
			assert.True(t, local.InDestination(destinationID))
			assert.Equal(t, domain.LayerCommit, local.Layer)

			saved := local
			saved.UpdatedAt = serverTime
			return &saved, nil
		},
	}
	sess = NewSession(m, []domain.Item{c})

	require.NoError(t, sess.Start(c.ID))
	out := sess.End(context.Background(), Column(dest))

	require.NoError(t, out.Err)
	assert.Equal(t, Route(dest), out.Move)
	assert.Equal(t, serverTime, out.Card.UpdatedAt)
	assert.Equal(t, 1, m.calls)

	got, _ := sess.Card(c.ID)
	assert.Equal(t, serverTime, got.UpdatedAt)
	assert.Len(t, sess.Column(&dest), 1)
	assert.Empty(t, sess.Column(nil))
}

func TestSession_RollbackOnFailure(t *testing.T) {
	t.Parallel()

	dest := uuid.New()
	c := card(&dest)
	failure := errors.New("network down")
	m := &mockMutator{
		UnrouteFunc: func(context.Context, uuid.UUID) (*domain.Item, error) { return nil, failure },
	}
	sess := NewSession(m, []domain.Item{c})

	require.NoError(t, sess.Start(c.ID))
	out := sess.End(context.Background(), Uncategorized())

	assert.ErrorIs(t, out.Err, failure)
	assert.Equal(t, Unroute(), out.Move)
	assert.Equal(t, c, out.Card)

	got, _ := sess.Card(c.ID)
	assert.Equal(t, c, got)
	assert.Equal(t, 1, m.calls)
}

func TestSession_NoMoveSkipsMutator(t *testing.T) {
	t.Parallel()

	dest := uuid.New()
	c := card(&dest)
	m := &mockMutator{}
	sess := NewSession(m, []domain.Item{c})

	require.NoError(t, sess.Start(c.ID))
	out := sess.End(context.Background(), Column(dest))

	require.NoError(t, out.Err)
	assert.Equal(t, NoMove, out.Move.Kind)
	assert.Zero(t, m.calls)
}

func TestSession_OverDoesNotMutate(t *testing.T) {
	t.Parallel()

	c := card(nil)
	sess := NewSession(&mockMutator{}, []domain.Item{c})
	require.NoError(t, sess.Start(c.ID))

	target := Column(uuid.New())
	sess.Over(target)

	assert.Equal(t, target, sess.Hover())
	got, _ := sess.Card(c.ID)
	assert.Equal(t, c, got)

	sess.Cancel()
	assert.Equal(t, Nowhere(), sess.Hover())
	assert.ErrorIs(t, sess.End(context.Background(), target).Err, ErrNoActiveDrag)
}

func TestSession_StartUnknownCard(t *testing.T) {
	t.Parallel()

	sess := NewSession(&mockMutator{}, nil)
	assert.ErrorIs(t, sess.Start(uuid.New()), domain.ErrNotFound)
}

func TestSession_CardsKeepOrder(t *testing.T) {
	t.Parallel()

	a, b, c := card(nil), card(nil), card(nil)
	sess := NewSession(&mockMutator{}, []domain.Item{a, b, c, a})

	got := sess.Cards()
	require.Len(t, got, 3)
	assert.Equal(t, []uuid.UUID{a.ID, b.ID, c.ID}, []uuid.UUID{got[0].ID, got[1].ID, got[2].ID})
}
