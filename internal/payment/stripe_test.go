package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v81"

	"github.com/appetiteclub/dinein/internal/apperr"
)

func newTestStripe(t *testing.T, handler http.HandlerFunc) *StripeProcessor {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(srv.URL),
		HTTPClient:        srv.Client(),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
		MaxNetworkRetries: stripe.Int64(0),
	})

	return NewStripeProcessor(StripeConfig{
		SecretKey:  "sk_test_123",
		RefreshURL: "https://dinein.example/refresh",
		ReturnURL:  "https://dinein.example/return",
		Backends:   &stripe.Backends{API: backend, Connect: backend, Uploads: backend},
	})
}

func TestStripeCreatePaymentIntent(t *testing.T) {
	p := newTestStripe(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payment_intents", r.URL.Path)
		assert.NoError(t, r.ParseForm())

		assert.Equal(t, "2575", r.PostForm.Get("amount"))
		assert.Equal(t, "75", r.PostForm.Get("application_fee_amount"))
		assert.Equal(t, "usd", r.PostForm.Get("currency"))
		assert.Equal(t, "acct_live", r.PostForm.Get("transfer_data[destination]"))
		assert.Equal(t, "Table 4", r.PostForm.Get("metadata[table_number]"))
		assert.Equal(t, "order-1", r.Header.Get("Idempotency-Key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"pi_123","object":"payment_intent","client_secret":"pi_123_secret_abc"}`))
	})

	intent, err := p.CreatePaymentIntent(context.Background(), IntentInput{
		Amount:         2575,
		ApplicationFee: 75,
		Currency:       "usd",
		Destination:    "acct_live",
		IdempotencyKey: "order-1",
		Metadata:       map[string]string{"table_number": "Table 4"},
	})

	require.NoError(t, err)
	assert.Equal(t, "pi_123", intent.ID)
	assert.Equal(t, "pi_123_secret_abc", intent.ClientSecret)
}

func TestStripeErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   apperr.Code
	}{
		{
			name:   "cardDeclined",
			status: http.StatusPaymentRequired,
			body:   `{"error":{"type":"card_error","code":"card_declined","message":"Your card was declined."}}`,
			want:   apperr.InvalidArgument,
		},
		{
			name:   "badParameter",
			status: http.StatusBadRequest,
			body:   `{"error":{"type":"invalid_request_error","param":"amount","message":"Invalid integer"}}`,
			want:   apperr.InvalidArgument,
		},
		{
			name:   "providerOutage",
			status: http.StatusInternalServerError,
			body:   `{"error":{"type":"api_error","message":"Something went wrong"}}`,
			want:   apperr.Internal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestStripe(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := p.CreatePaymentIntent(context.Background(), IntentInput{Amount: 100, Currency: "usd", Destination: "acct_x"})
			assert.Equal(t, tt.want, apperr.CodeOf(err))
		})
	}
}

func TestStripeGetAccount(t *testing.T) {
	p := newTestStripe(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/accounts/acct_live", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"acct_live","object":"account","charges_enabled":true,"details_submitted":true,"payouts_enabled":false}`))
	})

	status, err := p.GetAccount(context.Background(), "acct_live")

	require.NoError(t, err)
	assert.True(t, status.ChargesEnabled)
	assert.False(t, status.Onboarded())
}

func TestStripeCreateAccountLink(t *testing.T) {
	p := newTestStripe(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/account_links", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "account_onboarding", r.PostForm.Get("type"))
		assert.Equal(t, "https://dinein.example/return", r.PostForm.Get("return_url"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"account_link","url":"https://connect.stripe.com/setup/e/acct_live/abc"}`))
	})

	url, err := p.CreateAccountLink(context.Background(), "acct_live")

	require.NoError(t, err)
	assert.Equal(t, "https://connect.stripe.com/setup/e/acct_live/abc", url)
}
