package order

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/appetiteclub/dinein/internal/apperr"
	"github.com/appetiteclub/dinein/internal/restaurant"
)

// MockOrderRepo is an in-memory OrderRepo for testing
type MockOrderRepo struct {
	mu         sync.RWMutex
	orders     map[uuid.UUID]*Order
	CreateFunc func(ctx context.Context, o *Order) error
}

func NewMockOrderRepo() *MockOrderRepo {
	return &MockOrderRepo{orders: make(map[uuid.UUID]*Order)}
}

func (m *MockOrderRepo) Create(ctx context.Context, o *Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, o)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.orders[o.ID]; exists {
		return errors.New("order already exists")
	}
	clone := *o
	m.orders[o.ID] = &clone
	return nil
}

func (m *MockOrderRepo) LastBetween(ctx context.Context, restaurantID uuid.UUID, from, to time.Time) (*Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var last *Order
	for _, o := range m.orders {
		if o.RestaurantID != restaurantID || o.Timestamp.Before(from) || !o.Timestamp.Before(to) {
			continue
		}
		if last == nil || o.Timestamp.After(last.Timestamp) {
			last = o
		}
	}
	if last == nil {
		return nil, nil
	}
	clone := *last
	return &clone, nil
}

func (m *MockOrderRepo) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*Order, error) {
	return m.filter(func(o *Order) bool { return o.RestaurantID == restaurantID }), nil
}

func (m *MockOrderRepo) ListByCustomer(ctx context.Context, customerID string, restaurantID uuid.UUID) ([]*Order, error) {
	return m.filter(func(o *Order) bool {
		return o.CustomerID == customerID && (restaurantID == uuid.Nil || o.RestaurantID == restaurantID)
	}), nil
}

func (m *MockOrderRepo) filter(keep func(*Order) bool) []*Order {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*Order
	for _, o := range m.orders {
		if keep(o) {
			clone := *o
			result = append(result, &clone)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Timestamp.After(result[j].Timestamp) })
	return result
}

func (m *MockOrderRepo) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.orders)
}

// MockCounterRepo mimics the $max then $inc upsert.
type MockCounterRepo struct {
	mu       sync.Mutex
	counters map[string]int
}

func NewMockCounterRepo() *MockCounterRepo {
	return &MockCounterRepo{counters: make(map[string]int)}
}

func (m *MockCounterRepo) Next(ctx context.Context, key string, floor int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counters[key] < floor {
		m.counters[key] = floor
	}
	m.counters[key]++
	return m.counters[key], nil
}

// MockRestaurants knows a fixed set of restaurants.
type MockRestaurants struct {
	restaurants map[uuid.UUID]*restaurant.Restaurant
}

func NewMockRestaurants(rs ...*restaurant.Restaurant) *MockRestaurants {
	m := &MockRestaurants{restaurants: make(map[uuid.UUID]*restaurant.Restaurant)}
	for _, r := range rs {
		m.restaurants[r.ID] = r
	}
	return m
}

func (m *MockRestaurants) Get(ctx context.Context, id uuid.UUID) (*restaurant.Restaurant, error) {
	r, ok := m.restaurants[id]
	if !ok {
		return nil, apperr.NotFoundf("restaurant not found")
	}
	return r, nil
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

func (m *MockPublisher) Topics() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	topics := make([]string, 0, len(m.messages))
	for _, msg := range m.messages {
		topics = append(topics, msg.Topic)
	}
	return topics
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
