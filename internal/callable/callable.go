// Package callable implements the named remote-procedure transport: POST
// /callable/{name} with a {"data": ...} body answered by {"result": ...} or
// {"error": {...}}.
package callable

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/appetiteclub/dinein/internal/apperr"
	"github.com/appetiteclub/dinein/internal/auth"
	"github.com/appetiteclub/dinein/internal/logger"
	"github.com/appetiteclub/dinein/internal/telemetry"
)

const MaxBodyBytes = 1 << 20

type request struct {
	Data json.RawMessage `json:"data"`
}

type response struct {
	Result any `json:"result"`
}

type errorBody struct {
	Status  string              `json:"status"`
	Code    apperr.Code         `json:"code"`
	Message string              `json:"message"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// Result is the {success, error?} shape shared by mutating calls.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func OK() Result {
	return Result{Success: true}
}

// SoftFailure reports an expected negative outcome without raising an error.
func SoftFailure(msg string) Result {
	return Result{Success: false, Error: msg}
}

// Decode reads the envelope into dst. On failure it writes an
// invalid-argument response and returns false.
func Decode(w http.ResponseWriter, r *http.Request, dst any, log logger.Logger) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Debug("error reading request body", "error", err)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			RespondError(w, apperr.InvalidArgumentf("request body too large"))
			return false
		}
		RespondError(w, apperr.InvalidArgumentf("could not read request body"))
		return false
	}

	var env request
	if len(body) > 0 {
		if err := json.Unmarshal(body, &env); err != nil {
			log.Debug("error decoding JSON", "error", err)
			RespondError(w, apperr.InvalidArgumentf("invalid JSON in request body"))
			return false
		}
	}

	if len(env.Data) == 0 || string(env.Data) == "null" {
		env.Data = []byte("{}")
	}

	if err := json.Unmarshal(env.Data, dst); err != nil {
		log.Debug("error decoding request data", "error", err)
		RespondError(w, apperr.Wrap(apperr.InvalidArgument, "malformed request data", err))
		return false
	}

	return true
}

func Respond(w http.ResponseWriter, result any) {
	writeJSON(w, http.StatusOK, response{Result: result})
}

// RespondError writes err's classified form. Unclassified errors become a
// generic internal error so driver details never leak.
func RespondError(w http.ResponseWriter, err error) {
	e, ok := apperr.As(err)
	if !ok {
		e = apperr.New(apperr.Internal, "internal error")
	}

	msg := e.Message
	if e.Code == apperr.Internal && msg == "" {
		msg = "internal error"
	}

	writeJSON(w, e.Code.HTTPStatus(), errorResponse{Error: errorBody{
		Status:  e.Code.Status(),
		Code:    e.Code,
		Message: msg,
		Details: e.Details,
	}})
}

// Fail logs err at a level matching its class, counts it and responds.
func Fail(w http.ResponseWriter, log logger.Logger, tlm *telemetry.HTTP, operation string, err error) {
	code := apperr.CodeOf(err)
	if code == apperr.Internal {
		log.Error("cannot complete "+operation, "error", err)
	} else {
		log.Debug(operation+" rejected", "code", string(code), "error", err)
	}
	tlm.Failure(operation, string(code))
	RespondError(w, err)
}

// RequestLogger scopes base to the request id and caller.
func RequestLogger(base logger.Logger, r *http.Request) logger.Logger {
	return base.With(
		"request_id", middleware.GetReqID(r.Context()),
		"caller", auth.CallerID(r.Context()),
	)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
