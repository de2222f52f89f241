package payment

import (
	"context"
	"errors"
	"net/http"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"

	"github.com/appetiteclub/dinein/internal/apperr"
)

type StripeConfig struct {
	SecretKey  string
	APIVersion string
	RefreshURL string
	ReturnURL  string
	// Backends overrides the HTTP backends, mainly for tests.
	Backends *stripe.Backends
}

type StripeProcessor struct {
	api *client.API
	cfg StripeConfig
}

func NewStripeProcessor(cfg StripeConfig) *StripeProcessor {
	if cfg.APIVersion == "" {
		cfg.APIVersion = stripe.APIVersion
	}
	return &StripeProcessor{api: client.New(cfg.SecretKey, cfg.Backends), cfg: cfg}
}

func (p *StripeProcessor) CreatePaymentIntent(ctx context.Context, in IntentInput) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:               stripe.Int64(in.Amount),
		Currency:             stripe.String(in.Currency),
		ApplicationFeeAmount: stripe.Int64(in.ApplicationFee),
		TransferData: &stripe.PaymentIntentTransferDataParams{
			Destination: stripe.String(in.Destination),
		},
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	if in.CustomerID != "" {
		params.Customer = stripe.String(in.CustomerID)
	}
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}
	if in.IdempotencyKey != "" {
		params.SetIdempotencyKey(in.IdempotencyKey)
	}
	params.Context = ctx

	pi, err := p.api.PaymentIntents.New(params)
	if err != nil {
		return nil, classify("cannot create payment intent", err)
	}
	return &Intent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

func (p *StripeProcessor) CreateCustomer(ctx context.Context, email, name string) (string, error) {
	params := &stripe.CustomerParams{}
	if email != "" {
		params.Email = stripe.String(email)
	}
	if name != "" {
		params.Name = stripe.String(name)
	}
	params.Context = ctx

	c, err := p.api.Customers.New(params)
	if err != nil {
		return "", classify("cannot create customer", err)
	}
	return c.ID, nil
}

func (p *StripeProcessor) CreateSetupIntent(ctx context.Context, customerID string) (*Intent, error) {
	params := &stripe.SetupIntentParams{
		Customer: stripe.String(customerID),
		AutomaticPaymentMethods: &stripe.SetupIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx

	si, err := p.api.SetupIntents.New(params)
	if err != nil {
		return nil, classify("cannot create setup intent", err)
	}
	return &Intent{ID: si.ID, ClientSecret: si.ClientSecret}, nil
}

func (p *StripeProcessor) CreateEphemeralKey(ctx context.Context, customerID, apiVersion string) (string, error) {
	if apiVersion == "" {
		apiVersion = p.cfg.APIVersion
	}
	params := &stripe.EphemeralKeyParams{
		Customer:      stripe.String(customerID),
		StripeVersion: stripe.String(apiVersion),
	}
	params.Context = ctx

	key, err := p.api.EphemeralKeys.New(params)
	if err != nil {
		return "", classify("cannot create ephemeral key", err)
	}
	return key.Secret, nil
}

func (p *StripeProcessor) CreateAccount(ctx context.Context, in AccountInput) (string, error) {
	params := &stripe.AccountParams{
		Type:    stripe.String(string(stripe.AccountTypeExpress)),
		Email:   stripe.String(in.Email),
		Country: stripe.String(in.Country),
		Capabilities: &stripe.AccountCapabilitiesParams{
			CardPayments: &stripe.AccountCapabilitiesCardPaymentsParams{Requested: stripe.Bool(true)},
			Transfers:    &stripe.AccountCapabilitiesTransfersParams{Requested: stripe.Bool(true)},
		},
	}
	params.AddMetadata("restaurant_id", in.RestaurantID)
	params.Context = ctx

	acct, err := p.api.Accounts.New(params)
	if err != nil {
		return "", classify("cannot create connected account", err)
	}
	return acct.ID, nil
}

func (p *StripeProcessor) CreateAccountLink(ctx context.Context, accountID string) (string, error) {
	params := &stripe.AccountLinkParams{
		Account:    stripe.String(accountID),
		RefreshURL: stripe.String(p.cfg.RefreshURL),
		ReturnURL:  stripe.String(p.cfg.ReturnURL),
		Type:       stripe.String(string(stripe.AccountLinkTypeAccountOnboarding)),
	}
	params.Context = ctx

	link, err := p.api.AccountLinks.New(params)
	if err != nil {
		return "", classify("cannot create onboarding link", err)
	}
	return link.URL, nil
}

func (p *StripeProcessor) CreateLoginLink(ctx context.Context, accountID string) (string, error) {
	params := &stripe.LoginLinkParams{Account: stripe.String(accountID)}
	params.Context = ctx

	link, err := p.api.LoginLinks.New(params)
	if err != nil {
		return "", classify("cannot create login link", err)
	}
	return link.URL, nil
}

func (p *StripeProcessor) GetAccount(ctx context.Context, accountID string) (*AccountStatus, error) {
	params := &stripe.AccountParams{}
	params.Context = ctx

	acct, err := p.api.Accounts.GetByID(accountID, params)
	if err != nil {
		return nil, classify("cannot retrieve connected account", err)
	}
	return &AccountStatus{
		ID:               acct.ID,
		ChargesEnabled:   acct.ChargesEnabled,
		DetailsSubmitted: acct.DetailsSubmitted,
		PayoutsEnabled:   acct.PayoutsEnabled,
	}, nil
}

// classify maps card and request errors to invalid-argument and everything
// else to internal.
func classify(msg string, err error) error {
	var se *stripe.Error
	if errors.As(err, &se) {
		switch {
		case se.Type == stripe.ErrorTypeCard, se.Type == stripe.ErrorTypeInvalidRequest:
			return apperr.Wrap(apperr.InvalidArgument, msg+": "+se.Msg, err)
		case se.HTTPStatusCode >= http.StatusBadRequest && se.HTTPStatusCode < http.StatusInternalServerError &&
			se.HTTPStatusCode != http.StatusUnauthorized && se.HTTPStatusCode != http.StatusTooManyRequests:
			return apperr.Wrap(apperr.InvalidArgument, msg+": "+se.Msg, err)
		}
	}
	return apperr.Wrap(apperr.Internal, msg, err)
}
