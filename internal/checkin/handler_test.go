package checkin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/appetiteclub/dinein/internal/auth"
)

func TestHandlerCancelCheckInSoftFailure(t *testing.T) {
	f := newFixture()
	r := chi.NewRouter()
	NewHandler(f.svc, nil).RegisterRoutes(r)

	body := `{"data":{"userId":"cust-1","restaurantId":"` + testRestaurant.ID.String() + `"}}`
	req := httptest.NewRequest(http.MethodPost, "/cancelCheckIn", strings.NewReader(body))
	req = req.WithContext(auth.WithCaller(req.Context(), auth.Caller{ID: customer}))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		Result struct {
			Success bool   `json:"success"`
			Error   string `json:"error"`
		} `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Result.Success || resp.Result.Error != nothingToCancel {
		t.Errorf("result = %+v", resp.Result)
	}
}

func TestHandlerAcceptWithoutTable(t *testing.T) {
	f := newFixture()
	c := f.request(t)
	r := chi.NewRouter()
	NewHandler(f.svc, nil).RegisterRoutes(r)

	body := `{"data":{"checkInId":"` + c.ID.String() + `","action":"accept"}}`
	req := httptest.NewRequest(http.MethodPost, "/handleCheckInResponse", strings.NewReader(body))
	req = req.WithContext(auth.WithCaller(req.Context(), auth.Caller{ID: "host-1"}))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (%s)", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"invalid-argument"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}
