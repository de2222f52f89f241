package menu

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/appetiteclub/dinein/internal/apperr"
)

// MockMenuItemRepo is an in-memory MenuItemRepo for testing
type MockMenuItemRepo struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*MenuItem
}

func NewMockMenuItemRepo() *MockMenuItemRepo {
	return &MockMenuItemRepo{items: make(map[uuid.UUID]*MenuItem)}
}

func (m *MockMenuItemRepo) Create(ctx context.Context, item *MenuItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[item.ID] = item
	return nil
}

func (m *MockMenuItemRepo) Get(ctx context.Context, id uuid.UUID) (*MenuItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.items[id], nil
}

func (m *MockMenuItemRepo) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*MenuItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*MenuItem
	for _, item := range m.items {
		if item.RestaurantID == restaurantID {
			result = append(result, item)
		}
	}
	return result, nil
}

func (m *MockMenuItemRepo) Save(ctx context.Context, item *MenuItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[item.ID] = item
	return nil
}

func (m *MockMenuItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

// MockStaff allows the listed callers for every restaurant.
type MockStaff struct {
	allowed map[string]bool
}

func NewMockStaff(callers ...string) *MockStaff {
	m := &MockStaff{allowed: make(map[string]bool)}
	for _, c := range callers {
		m.allowed[c] = true
	}
	return m
}

func (m *MockStaff) RequireStaff(ctx context.Context, restaurantID uuid.UUID, callerID string) error {
	if !m.allowed[callerID] {
		return apperr.PermissionDeniedf("not staff")
	}
	return nil
}
