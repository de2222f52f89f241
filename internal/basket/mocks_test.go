package basket

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/appetiteclub/dinein/internal/apperr"
	"github.com/appetiteclub/dinein/internal/menu"
	"github.com/appetiteclub/dinein/pkg"
	"github.com/appetiteclub/dinein/pkg/enums/itemstatus"
)

// MockBasketRepo is an in-memory BasketRepo for testing. Apply works on a
// copy and only commits when every op succeeds.
type MockBasketRepo struct {
	mu        sync.RWMutex
	items     map[uuid.UUID]*BasketItem
	ApplyFunc func(ctx context.Context, batch *Batch) error
}

func NewMockBasketRepo() *MockBasketRepo {
	return &MockBasketRepo{items: make(map[uuid.UUID]*BasketItem)}
}

func (m *MockBasketRepo) Get(ctx context.Context, id uuid.UUID) (*BasketItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	item, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	clone := *item
	return &clone, nil
}

func (m *MockBasketRepo) ListUnsent(ctx context.Context, userID string, restaurantID uuid.UUID) ([]*BasketItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*BasketItem
	for _, item := range m.items {
		if item.BelongsTo(userID, restaurantID) && !item.SentToChefQ {
			clone := *item
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (m *MockBasketRepo) ListQueued(ctx context.Context, restaurantID uuid.UUID) ([]*BasketItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*BasketItem
	for _, item := range m.items {
		if item.RestaurantID == restaurantID && item.SentToChefQ && item.ItemStatus != itemstatus.Statuses.Completed.Code() {
			clone := *item
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (m *MockBasketRepo) Decrement(ctx context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	if !ok || item.SentToChefQ || item.Quantity <= 1 {
		return false, nil
	}
	item.Quantity--
	return true, nil
}

func (m *MockBasketRepo) Save(ctx context.Context, item *BasketItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *item
	m.items[item.ID] = &clone
	return nil
}

func (m *MockBasketRepo) Apply(ctx context.Context, batch *Batch) error {
	if m.ApplyFunc != nil {
		return m.ApplyFunc(ctx, batch)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	next := make(map[uuid.UUID]*BasketItem, len(m.items))
	for id, item := range m.items {
		clone := *item
		next[id] = &clone
	}

	for _, op := range batch.Ops() {
		switch op.Kind {
		case OpMerge:
			if existing := findMergeTarget(next, op.Item); existing != nil {
				existing.Quantity++
				continue
			}
			clone := *op.Item
			clone.Quantity = 1
			next[clone.ID] = &clone
		case OpSetQuantity:
			if item, ok := next[op.ID]; ok && !item.SentToChefQ {
				item.Quantity = op.Quantity
			}
		case OpDelete:
			if item, ok := next[op.ID]; ok && !item.SentToChefQ {
				delete(next, op.ID)
			}
		case OpMarkSent:
			item, ok := next[op.ID]
			if !ok {
				return apperr.NotFoundf("basket item not found")
			}
			if item.SentToChefQ {
				continue
			}
			at := op.At
			item.SentToChefQ = true
			item.ItemStatus = itemstatus.Statuses.Pending.Code()
			item.TableNumber = op.TableNumber
			item.SentAt = &at
		}
	}

	m.items = next
	return nil
}

func (m *MockBasketRepo) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

func findMergeTarget(items map[uuid.UUID]*BasketItem, probe *BasketItem) *BasketItem {
	for _, item := range items {
		if !item.SentToChefQ &&
			item.BelongsTo(probe.UserID, probe.RestaurantID) &&
			item.Dish.ID == probe.Dish.ID &&
			item.PIP.ID == probe.PIP.ID {
			return item
		}
	}
	return nil
}

// MockMenu serves a fixed set of menu items.
type MockMenu struct {
	items map[uuid.UUID]*menu.MenuItem
}

func NewMockMenu(items ...*menu.MenuItem) *MockMenu {
	m := &MockMenu{items: make(map[uuid.UUID]*menu.MenuItem)}
	for _, item := range items {
		m.items[item.ID] = item
	}
	return m
}

func (m *MockMenu) Lookup(ctx context.Context, restaurantID, dishID uuid.UUID) (*menu.MenuItem, error) {
	item, ok := m.items[dishID]
	if !ok || item.RestaurantID != restaurantID {
		return nil, nil
	}
	return item, nil
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

// MockSubscriber keeps handlers so tests can deliver messages.
type MockSubscriber struct {
	mu       sync.Mutex
	handlers map[string]pkg.HandlerFunc
}

func (m *MockSubscriber) Subscribe(ctx context.Context, topic string, handler pkg.HandlerFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.handlers == nil {
		m.handlers = make(map[string]pkg.HandlerFunc)
	}
	m.handlers[topic] = handler
	return nil
}

func (m *MockSubscriber) Deliver(ctx context.Context, topic string, msg []byte) error {
	m.mu.Lock()
	h := m.handlers[topic]
	m.mu.Unlock()
	if h == nil {
		return nil
	}
	return h(ctx, msg)
}
