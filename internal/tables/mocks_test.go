package tables

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/appetiteclub/dinein/internal/apperr"
)

// MockTableRepo is an in-memory TableRepo for testing
type MockTableRepo struct {
	mu       sync.RWMutex
	tables   map[uuid.UUID]*Table
	SaveFunc func(ctx context.Context, table *Table) error
}

func NewMockTableRepo() *MockTableRepo {
	return &MockTableRepo{tables: make(map[uuid.UUID]*Table)}
}

func (m *MockTableRepo) CreateMany(ctx context.Context, tables []*Table) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range tables {
		m.tables[t.ID] = t
	}
	return nil
}

func (m *MockTableRepo) Get(ctx context.Context, id uuid.UUID) (*Table, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tables[id], nil
}

func (m *MockTableRepo) GetByName(ctx context.Context, restaurantID uuid.UUID, name string) (*Table, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.tables {
		if t.RestaurantID == restaurantID && t.Name == name {
			return t, nil
		}
	}
	return nil, nil
}

func (m *MockTableRepo) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*Table, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*Table
	for _, t := range m.tables {
		if t.RestaurantID == restaurantID {
			result = append(result, t)
		}
	}
	return result, nil
}

func (m *MockTableRepo) Save(ctx context.Context, table *Table) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, table)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[table.ID] = table
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

type publishedMessage struct {
	Topic string
	Data  []byte
}

// MockPublisher records published messages.
type MockPublisher struct {
	mu       sync.Mutex
	messages []publishedMessage
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, msg []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, publishedMessage{Topic: topic, Data: msg})
	return nil
}

func (m *MockPublisher) Decoded(t *testing.T, i int, v any) {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if i >= len(m.messages) {
		t.Fatalf("no message at %d, have %d", i, len(m.messages))
	}
	if err := json.Unmarshal(m.messages[i].Data, v); err != nil {
		t.Fatalf("cannot decode message: %v", err)
	}
}

func (m *MockPublisher) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages)
}
