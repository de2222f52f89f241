package callable

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appetiteclub/dinein/internal/apperr"
	"github.com/appetiteclub/dinein/internal/logger"
)

type sample struct {
	UserID   string `json:"userId"`
	Quantity int    `json:"newQuantity"`
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantOK   bool
		wantUser string
	}{
		{name: "validEnvelope", body: `{"data":{"userId":"u1","newQuantity":2}}`, wantOK: true, wantUser: "u1"},
		{name: "emptyBody", body: ``, wantOK: true},
		{name: "nullData", body: `{"data":null}`, wantOK: true},
		{name: "invalidJSON", body: `{"data":`, wantOK: false},
		{name: "wrongFieldType", body: `{"data":{"newQuantity":"two"}}`, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/callable/x", strings.NewReader(tt.body))

			var got sample
			ok := Decode(rec, req, &got, logger.NewNoopLogger())

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantUser, got.UserID)
				return
			}
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp map[string]map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "invalid-argument", resp["error"]["code"])
			assert.Equal(t, "INVALID_ARGUMENT", resp["error"]["status"])
		})
	}
}

func TestDecodeBodyTooLarge(t *testing.T) {
	big := `{"data":{"userId":"` + strings.Repeat("a", MaxBodyBytes) + `"}}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/callable/x", strings.NewReader(big))

	var got sample
	assert.False(t, Decode(rec, req, &got, logger.NewNoopLogger()))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRespond(t *testing.T) {
	rec := httptest.NewRecorder()
	Respond(rec, OK())

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"result":{"success":true}}`, rec.Body.String())
}

func TestRespondSoftFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	Respond(rec, SoftFailure("No pending check-in found"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"result":{"success":false,"error":"No pending check-in found"}}`, rec.Body.String())
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{name: "notFound", err: apperr.NotFoundf("basket item not found"), wantStatus: http.StatusNotFound, wantCode: "not-found", wantMsg: "basket item not found"},
		{name: "failedPrecondition", err: apperr.FailedPreconditionf("no connected account"), wantStatus: http.StatusPreconditionFailed, wantCode: "failed-precondition", wantMsg: "no connected account"},
		{name: "unclassifiedHidesDetail", err: errors.New("mongo: connection refused"), wantStatus: http.StatusInternalServerError, wantCode: "internal", wantMsg: "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RespondError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, string(resp.Error.Code))
			assert.Equal(t, tt.wantMsg, resp.Error.Message)
		})
	}
}

func TestFailIncludesValidationDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	err := &apperr.Error{
		Code:    apperr.InvalidArgument,
		Message: "dish.id is required",
		Details: []apperr.FieldError{{Field: "dish.id", Message: "is required"}},
	}

	Fail(rec, logger.NewNoopLogger(), nil, "addItemToBasket", err)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "dish.id", resp.Error.Details[0].Field)
}
