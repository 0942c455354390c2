package item

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/offmind/offmind-backend/internal/domain"
)

// ===========================================================================
// Manual mocks (moq-style with func fields)
// ===========================================================================

type mockItemRepo struct {
	mu sync.Mutex

	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	ListFunc    func(ctx context.Context, userID uuid.UUID, filter domain.ItemFilter) ([]domain.Item, error)
	CreateFunc  func(ctx context.Context, item *domain.Item) (*domain.Item, error)
	UpdateFunc  func(ctx context.Context, item *domain.Item) (*domain.Item, error)
	DeleteFunc  func(ctx context.Context, userID, itemID uuid.UUID) error

	updateCalls []domain.Item
	deleteCalls []uuid.UUID
	listCalls   []domain.ItemFilter
}

func (m *mockItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockItemRepo) List(ctx context.Context, userID uuid.UUID, filter domain.ItemFilter) ([]domain.Item, error) {
	m.mu.Lock()
	m.listCalls = append(m.listCalls, filter)
	m.mu.Unlock()
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID, filter)
	}
	return nil, nil
}

func (m *mockItemRepo) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, item)
	}
	out := *item
	return &out, nil
}

func (m *mockItemRepo) Update(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	m.mu.Lock()
	m.updateCalls = append(m.updateCalls, *item)
	m.mu.Unlock()
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, item)
	}
	out := *item
	return &out, nil
}

func (m *mockItemRepo) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	m.mu.Lock()
	m.deleteCalls = append(m.deleteCalls, itemID)
	m.mu.Unlock()
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, itemID)
	}
	return nil
}

func (m *mockItemRepo) UpdateCalls() []domain.Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updateCalls
}

type mockDestinationRepo struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Destination, error)
}

func (m *mockDestinationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

type mockProfileRepo struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
}

func (m *mockProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}
