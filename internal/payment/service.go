package payment

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/appetiteclub/dinein/internal/apperr"
	"github.com/appetiteclub/dinein/internal/logger"
	"github.com/appetiteclub/dinein/internal/restaurant"
	"github.com/appetiteclub/dinein/internal/validation"
)

// RestaurantAccounts resolves restaurants and their connected accounts.
type RestaurantAccounts interface {
	Get(ctx context.Context, id uuid.UUID) (*restaurant.Restaurant, error)
	RequireStaff(ctx context.Context, restaurantID uuid.UUID, callerID string) error
	RequireOwner(ctx context.Context, restaurantID uuid.UUID, callerID string) (*restaurant.Restaurant, error)
	SetConnectedAccount(ctx context.Context, restaurantID uuid.UUID, accountID string) error
}

type ServiceDeps struct {
	Processor      Processor
	Restaurants    RestaurantAccounts
	Logger         logger.Logger
	Currency       string
	DefaultCountry string
}

type Service struct {
	processor      Processor
	restaurants    RestaurantAccounts
	logger         logger.Logger
	currency       string
	defaultCountry string
}

func NewService(deps ServiceDeps) *Service {
	if deps.Logger == nil {
		deps.Logger = logger.NewNoopLogger()
	}
	if deps.Currency == "" {
		deps.Currency = "usd"
	}
	if deps.DefaultCountry == "" {
		deps.DefaultCountry = "US"
	}
	return &Service{
		processor:      deps.Processor,
		restaurants:    deps.Restaurants,
		logger:         deps.Logger,
		currency:       strings.ToLower(deps.Currency),
		defaultCountry: strings.ToUpper(deps.DefaultCountry),
	}
}

// CreatePaymentIntent charges amount+fee to the diner and routes the funds to
// the restaurant's connected account, keeping fee as the application fee.
func (s *Service) CreatePaymentIntent(ctx context.Context, callerID string, req CreatePaymentIntentRequest) (*PaymentIntentResult, error) {
	if err := s.ready(callerID); err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	r, err := s.restaurants.Get(ctx, req.RestaurantID)
	if err != nil {
		return nil, err
	}
	if !r.HasConnectedAccount() {
		return nil, apperr.FailedPreconditionf("restaurant has not set up payments")
	}

	intent, err := s.processor.CreatePaymentIntent(ctx, IntentInput{
		Amount:         req.Amount + req.Fee,
		ApplicationFee: req.Fee,
		Currency:       s.currency,
		Destination:    r.StripeAccountID,
		CustomerID:     req.CustomerID,
		IdempotencyKey: req.IdempotencyKey,
		Metadata: map[string]string{
			"restaurant_id": r.ID.String(),
			"user_id":       callerID,
			"table_number":  req.TableNumber,
			"tax":           strconv.FormatInt(req.Tax, 10),
			"gratuity":      strconv.FormatInt(req.Gratuity, 10),
			"fee":           strconv.FormatInt(req.Fee, 10),
			"subtotal":      strconv.FormatInt(req.Subtotal, 10),
		},
	})
	if err != nil {
		s.logger.Error("payment intent failed", "error", err, "restaurant_id", r.ID.String())
		return nil, err
	}

	s.logger.Info("payment intent created", "payment_intent_id", intent.ID, "restaurant_id", r.ID.String(), "amount", req.Amount+req.Fee)
	return &PaymentIntentResult{ClientSecret: intent.ClientSecret, PaymentIntentID: intent.ID}, nil
}

// CreateSetupIntent creates a processor customer first when none is given.
func (s *Service) CreateSetupIntent(ctx context.Context, callerID string, req CreateSetupIntentRequest) (*SetupIntentResult, error) {
	if err := s.ready(callerID); err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	customerID := strings.TrimSpace(req.CustomerID)
	if customerID == "" {
		id, err := s.processor.CreateCustomer(ctx, req.Email, strings.TrimSpace(req.Name))
		if err != nil {
			return nil, err
		}
		customerID = id
	}

	intent, err := s.processor.CreateSetupIntent(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return &SetupIntentResult{ClientSecret: intent.ClientSecret, CustomerID: customerID}, nil
}

func (s *Service) CreateEphemeralKey(ctx context.Context, callerID string, req CreateEphemeralKeyRequest) (*EphemeralKeyResult, error) {
	if err := s.ready(callerID); err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	secret, err := s.processor.CreateEphemeralKey(ctx, req.CustomerID, req.APIVersion)
	if err != nil {
		return nil, err
	}
	return &EphemeralKeyResult{Secret: secret}, nil
}

// CreateConnectedAccount starts onboarding for the owner's restaurant. An
// existing account only gets a fresh onboarding link.
func (s *Service) CreateConnectedAccount(ctx context.Context, callerID string, req CreateConnectedAccountRequest) (*ConnectedAccountResult, error) {
	if err := s.ready(callerID); err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	r, err := s.restaurants.RequireOwner(ctx, req.RestaurantID, callerID)
	if err != nil {
		return nil, err
	}

	accountID := r.StripeAccountID
	if accountID == "" {
		country := strings.ToUpper(req.Country)
		if country == "" {
			country = s.defaultCountry
		}
		accountID, err = s.processor.CreateAccount(ctx, AccountInput{
			Email:        req.Email,
			Country:      country,
			RestaurantID: r.ID.String(),
		})
		if err != nil {
			return nil, err
		}
		if err := s.restaurants.SetConnectedAccount(ctx, r.ID, accountID); err != nil {
			return nil, err
		}
		s.logger.Info("connected account created", "restaurant_id", r.ID.String(), "account_id", accountID)
	}

	url, err := s.processor.CreateAccountLink(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return &ConnectedAccountResult{AccountID: accountID, OnboardingURL: url}, nil
}

func (s *Service) CreateLoginLink(ctx context.Context, callerID string, req RestaurantAccountRequest) (*LoginLinkResult, error) {
	if err := s.ready(callerID); err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	r, err := s.restaurants.RequireOwner(ctx, req.RestaurantID, callerID)
	if err != nil {
		return nil, err
	}
	if !r.HasConnectedAccount() {
		return nil, apperr.FailedPreconditionf("restaurant has no connected account")
	}

	url, err := s.processor.CreateLoginLink(ctx, r.StripeAccountID)
	if err != nil {
		return nil, err
	}
	return &LoginLinkResult{URL: url}, nil
}

// OnboardingStatus reports the connected account's capabilities. A restaurant
// without an account is reported as not onboarded.
func (s *Service) OnboardingStatus(ctx context.Context, callerID string, req RestaurantAccountRequest) (*OnboardingStatusResult, error) {
	if err := s.ready(callerID); err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if err := s.restaurants.RequireStaff(ctx, req.RestaurantID, callerID); err != nil {
		return nil, err
	}

	r, err := s.restaurants.Get(ctx, req.RestaurantID)
	if err != nil {
		return nil, err
	}
	if !r.HasConnectedAccount() {
		return &OnboardingStatusResult{}, nil
	}

	status, err := s.processor.GetAccount(ctx, r.StripeAccountID)
	if err != nil {
		return nil, err
	}
	return &OnboardingStatusResult{AccountStatus: *status, Onboarded: status.Onboarded()}, nil
}

func (s *Service) ready(callerID string) error {
	if callerID == "" {
		return apperr.Unauthenticatedf("sign in required")
	}
	if s.processor == nil {
		return apperr.FailedPreconditionf("payments are not configured")
	}
	return nil
}
