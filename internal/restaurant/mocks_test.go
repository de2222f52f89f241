package restaurant

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MockRestaurantRepo is an in-memory RestaurantRepo for testing
type MockRestaurantRepo struct {
	mu          sync.RWMutex
	restaurants map[uuid.UUID]*Restaurant
	CreateFunc  func(ctx context.Context, r *Restaurant) error
	GetFunc     func(ctx context.Context, id uuid.UUID) (*Restaurant, error)
}

func NewMockRestaurantRepo() *MockRestaurantRepo {
	return &MockRestaurantRepo{restaurants: make(map[uuid.UUID]*Restaurant)}
}

func (m *MockRestaurantRepo) Create(ctx context.Context, r *Restaurant) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, r)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.restaurants[r.ID] = r
	return nil
}

func (m *MockRestaurantRepo) Get(ctx context.Context, id uuid.UUID) (*Restaurant, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.restaurants[id], nil
}

func (m *MockRestaurantRepo) GetByNumber(ctx context.Context, number string) (*Restaurant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.restaurants {
		if r.Number == number {
			return r, nil
		}
	}
	return nil, nil
}

func (m *MockRestaurantRepo) List(ctx context.Context) ([]*Restaurant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*Restaurant
	for _, r := range m.restaurants {
		result = append(result, r)
	}
	return result, nil
}

func (m *MockRestaurantRepo) Save(ctx context.Context, r *Restaurant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.restaurants[r.ID]; !ok {
		return fmt.Errorf("restaurant not found")
	}
	m.restaurants[r.ID] = r
	return nil
}

func (m *MockRestaurantRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.restaurants, id)
	return nil
}

// MockEmployeeRepo is an in-memory EmployeeRepo for testing
type MockEmployeeRepo struct {
	mu        sync.RWMutex
	employees map[uuid.UUID]*Employee
}

func NewMockEmployeeRepo() *MockEmployeeRepo {
	return &MockEmployeeRepo{employees: make(map[uuid.UUID]*Employee)}
}

func (m *MockEmployeeRepo) Create(ctx context.Context, e *Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.employees[e.ID] = e
	return nil
}

func (m *MockEmployeeRepo) Get(ctx context.Context, id uuid.UUID) (*Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.employees[id], nil
}

func (m *MockEmployeeRepo) GetByUser(ctx context.Context, restaurantID uuid.UUID, userID string) (*Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.employees {
		if e.RestaurantID == restaurantID && e.UserID == userID {
			return e, nil
		}
	}
	return nil, nil
}

func (m *MockEmployeeRepo) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*Employee
	for _, e := range m.employees {
		if e.RestaurantID == restaurantID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *MockEmployeeRepo) Save(ctx context.Context, e *Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.employees[e.ID] = e
	return nil
}

func (m *MockEmployeeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.employees, id)
	return nil
}
