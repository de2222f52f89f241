package payment

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/appetiteclub/dinein/internal/apperr"
	"github.com/appetiteclub/dinein/internal/restaurant"
)

// MockProcessor records calls and returns canned identifiers.
type MockProcessor struct {
	mu                      sync.Mutex
	Intents                 []IntentInput
	Customers               int
	Accounts                []AccountInput
	AccountLinks            []string
	Statuses                map[string]*AccountStatus
	CreatePaymentIntentFunc func(ctx context.Context, in IntentInput) (*Intent, error)
}

func NewMockProcessor() *MockProcessor {
	return &MockProcessor{Statuses: make(map[string]*AccountStatus)}
}

func (m *MockProcessor) CreatePaymentIntent(ctx context.Context, in IntentInput) (*Intent, error) {
	if m.CreatePaymentIntentFunc != nil {
		return m.CreatePaymentIntentFunc(ctx, in)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Intents = append(m.Intents, in)
	return &Intent{ID: "pi_1", ClientSecret: "pi_1_secret"}, nil
}

func (m *MockProcessor) CreateCustomer(ctx context.Context, email, name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Customers++
	return "cus_new", nil
}

func (m *MockProcessor) CreateSetupIntent(ctx context.Context, customerID string) (*Intent, error) {
	return &Intent{ID: "seti_1", ClientSecret: "seti_1_secret_" + customerID}, nil
}

func (m *MockProcessor) CreateEphemeralKey(ctx context.Context, customerID, apiVersion string) (string, error) {
	return "ek_" + customerID, nil
}

func (m *MockProcessor) CreateAccount(ctx context.Context, in AccountInput) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Accounts = append(m.Accounts, in)
	return "acct_new", nil
}

func (m *MockProcessor) CreateAccountLink(ctx context.Context, accountID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AccountLinks = append(m.AccountLinks, accountID)
	return "https://connect.example/onboard/" + accountID, nil
}

func (m *MockProcessor) CreateLoginLink(ctx context.Context, accountID string) (string, error) {
	return "https://connect.example/login/" + accountID, nil
}

func (m *MockProcessor) GetAccount(ctx context.Context, accountID string) (*AccountStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.Statuses[accountID]
	if !ok {
		return nil, apperr.InvalidArgumentf("no such account")
	}
	clone := *s
	return &clone, nil
}

// MockRestaurants keeps restaurants in memory; owners and staff are fixed.
type MockRestaurants struct {
	mu          sync.Mutex
	restaurants map[uuid.UUID]*restaurant.Restaurant
	staff       map[string]bool
}

func NewMockRestaurants(staff []string, rs ...*restaurant.Restaurant) *MockRestaurants {
	m := &MockRestaurants{
		restaurants: make(map[uuid.UUID]*restaurant.Restaurant),
		staff:       make(map[string]bool),
	}
	for _, r := range rs {
		clone := *r
		m.restaurants[r.ID] = &clone
	}
	for _, s := range staff {
		m.staff[s] = true
	}
	return m
}

func (m *MockRestaurants) Get(ctx context.Context, id uuid.UUID) (*restaurant.Restaurant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.restaurants[id]
	if !ok {
		return nil, apperr.NotFoundf("restaurant not found")
	}
	clone := *r
	return &clone, nil
}

func (m *MockRestaurants) RequireStaff(ctx context.Context, restaurantID uuid.UUID, callerID string) error {
	r, err := m.Get(ctx, restaurantID)
	if err != nil {
		return err
	}
	if r.OwnerID != callerID && !m.staff[callerID] {
		return apperr.PermissionDeniedf("not staff")
	}
	return nil
}

func (m *MockRestaurants) RequireOwner(ctx context.Context, restaurantID uuid.UUID, callerID string) (*restaurant.Restaurant, error) {
	r, err := m.Get(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if r.OwnerID != callerID {
		return nil, apperr.PermissionDeniedf("not the owner")
	}
	return r, nil
}

func (m *MockRestaurants) SetConnectedAccount(ctx context.Context, restaurantID uuid.UUID, accountID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.restaurants[restaurantID]
	if !ok {
		return apperr.NotFoundf("restaurant not found")
	}
	r.StripeAccountID = accountID
	return nil
}
