package checkin

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/appetiteclub/dinein/internal/apperr"
	"github.com/appetiteclub/dinein/internal/restaurant"
)

// MockCheckInRepo is an in-memory CheckInRepo for testing
type MockCheckInRepo struct {
	mu            sync.RWMutex
	checkIns      map[uuid.UUID]*CheckIn
	notifications map[uuid.UUID]*Notification
	writes        int
	RespondFunc   func(ctx context.Context, c *CheckIn) error
}

func NewMockCheckInRepo() *MockCheckInRepo {
	return &MockCheckInRepo{
		checkIns:      make(map[uuid.UUID]*CheckIn),
		notifications: make(map[uuid.UUID]*Notification),
	}
}

func (m *MockCheckInRepo) Get(ctx context.Context, id uuid.UUID) (*CheckIn, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.checkIns[id]
	if !ok {
		return nil, nil
	}
	clone := *c
	return &clone, nil
}

func (m *MockCheckInRepo) FindByStatus(ctx context.Context, customerID string, restaurantID uuid.UUID, statuses []string) (*CheckIn, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var matches []*CheckIn
	for _, c := range m.checkIns {
		if c.CustomerID != customerID || c.RestaurantID != restaurantID {
			continue
		}
		for _, s := range statuses {
			if c.Status == s {
				matches = append(matches, c)
				break
			}
		}
	}
	if len(matches) == 0 {
		return nil, nil
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].CreatedAt.After(matches[j].CreatedAt) })
	clone := *matches[0]
	return &clone, nil
}

func (m *MockCheckInRepo) CreateWithNotification(ctx context.Context, c *CheckIn, n *Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	cc, nn := *c, *n
	m.checkIns[c.ID] = &cc
	m.notifications[n.ID] = &nn
	return nil
}

func (m *MockCheckInRepo) DeleteWithNotification(ctx context.Context, c *CheckIn) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	delete(m.checkIns, c.ID)
	m.deleteNotificationsLocked(c.ID)
	return nil
}

func (m *MockCheckInRepo) Respond(ctx context.Context, c *CheckIn) error {
	if m.RespondFunc != nil {
		return m.RespondFunc(ctx, c)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	clone := *c
	m.checkIns[c.ID] = &clone
	m.deleteNotificationsLocked(c.ID)
	return nil
}

func (m *MockCheckInRepo) ListNotifications(ctx context.Context, restaurantID uuid.UUID) ([]*Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*Notification
	for _, n := range m.notifications {
		if n.RestaurantID == restaurantID {
			clone := *n
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (m *MockCheckInRepo) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}

func (m *MockCheckInRepo) NotificationCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.notifications)
}

func (m *MockCheckInRepo) deleteNotificationsLocked(checkInID uuid.UUID) {
	for id, n := range m.notifications {
		if n.CheckInID == checkInID {
			delete(m.notifications, id)
		}
	}
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

// MockSeater records seated tables.
type MockSeater struct {
	mu     sync.Mutex
	seated []string
}

func (m *MockSeater) MarkOccupied(ctx context.Context, restaurantID uuid.UUID, tableName, by string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seated = append(m.seated, tableName)
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
