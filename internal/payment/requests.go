package payment

import "github.com/google/uuid"

// CreatePaymentIntentRequest amounts are minor currency units (cents).
type CreatePaymentIntentRequest struct {
	RestaurantID   uuid.UUID `json:"restaurantId" validate:"required"`
	Amount         int64     `json:"amount" validate:"min=1"`
	Fee            int64     `json:"fee" validate:"min=0"`
	Tax            int64     `json:"tax" validate:"min=0"`
	Gratuity       int64     `json:"gratuity" validate:"min=0"`
	Subtotal       int64     `json:"subtotal" validate:"min=0"`
	TableNumber    string    `json:"tableNumber" validate:"max=40"`
	CustomerID     string    `json:"customerId,omitempty" validate:"max=255"`
	IdempotencyKey string    `json:"idempotencyKey,omitempty" validate:"max=255"`
}

type PaymentIntentResult struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
}

type CreateSetupIntentRequest struct {
	CustomerID string `json:"customerId,omitempty" validate:"max=255"`
	Email      string `json:"email,omitempty" validate:"omitempty,email"`
	Name       string `json:"name,omitempty" validate:"max=120"`
}

type SetupIntentResult struct {
	ClientSecret string `json:"clientSecret"`
	CustomerID   string `json:"customerId"`
}

type CreateEphemeralKeyRequest struct {
	CustomerID string `json:"customerId" validate:"notblank"`
	APIVersion string `json:"apiVersion,omitempty" validate:"max=40"`
}

type EphemeralKeyResult struct {
	Secret string `json:"secret"`
}

type CreateConnectedAccountRequest struct {
	RestaurantID uuid.UUID `json:"restaurantId" validate:"required"`
	Email        string    `json:"email" validate:"required,email"`
	Country      string    `json:"country,omitempty" validate:"omitempty,len=2"`
}

type ConnectedAccountResult struct {
	AccountID     string `json:"accountId"`
	OnboardingURL string `json:"onboardingUrl"`
}

type RestaurantAccountRequest struct {
	RestaurantID uuid.UUID `json:"restaurantId" validate:"required"`
}

type LoginLinkResult struct {
	URL string `json:"url"`
}

type OnboardingStatusResult struct {
	AccountStatus
	Onboarded bool `json:"onboarded"`
}
