// Package payment forwards restaurant payments and Connect onboarding to the
// payment processor.
package payment

import "context"

// Processor is the subset of the payment provider used by the service.
// Implementations classify provider failures with apperr.
type Processor interface {
	CreatePaymentIntent(ctx context.Context, in IntentInput) (*Intent, error)
	CreateCustomer(ctx context.Context, email, name string) (string, error)
	CreateSetupIntent(ctx context.Context, customerID string) (*Intent, error)
	CreateEphemeralKey(ctx context.Context, customerID, apiVersion string) (string, error)
	CreateAccount(ctx context.Context, in AccountInput) (string, error)
	CreateAccountLink(ctx context.Context, accountID string) (string, error)
	CreateLoginLink(ctx context.Context, accountID string) (string, error)
	GetAccount(ctx context.Context, accountID string) (*AccountStatus, error)
}

// IntentInput amounts are in minor currency units.
type IntentInput struct {
	Amount         int64
	ApplicationFee int64
	Currency       string
	Destination    string
	CustomerID     string
	IdempotencyKey string
	Metadata       map[string]string
}

type Intent struct {
	ID           string
	ClientSecret string
}

type AccountInput struct {
	Email        string
	Country      string
	RestaurantID string
}

type AccountStatus struct {
	ID               string `json:"accountId"`
	ChargesEnabled   bool   `json:"chargesEnabled"`
	DetailsSubmitted bool   `json:"detailsSubmitted"`
	PayoutsEnabled   bool   `json:"payoutsEnabled"`
}

// Onboarded reports whether the account can take charges and receive payouts.
func (s AccountStatus) Onboarded() bool {
	return s.ChargesEnabled && s.DetailsSubmitted && s.PayoutsEnabled
}
