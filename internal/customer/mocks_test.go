package customer

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MockPIPRepo is an in-memory PIPRepo for testing
type MockPIPRepo struct {
	mu         sync.RWMutex
	pips       map[uuid.UUID]*PIP
	CreateFunc func(ctx context.Context, p *PIP) error
}

func NewMockPIPRepo() *MockPIPRepo {
	return &MockPIPRepo{pips: make(map[uuid.UUID]*PIP)}
}

func (m *MockPIPRepo) Create(ctx context.Context, p *PIP) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pips[p.ID] = p
	return nil
}

func (m *MockPIPRepo) Get(ctx context.Context, id uuid.UUID) (*PIP, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pips[id], nil
}

func (m *MockPIPRepo) ListByCustomer(ctx context.Context, customerID string) ([]*PIP, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*PIP
	for _, p := range m.pips {
		if p.CustomerID == customerID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *MockPIPRepo) Save(ctx context.Context, p *PIP) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pips[p.ID] = p
	return nil
}

func (m *MockPIPRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pips, id)
	return nil
}
