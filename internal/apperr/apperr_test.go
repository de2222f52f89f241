package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{name: "classified", err: NotFoundf("item %s", "x"), want: NotFound},
		{name: "wrappedClassified", err: fmt.Errorf("outer: %w", InvalidArgumentf("bad")), want: InvalidArgument},
		{name: "plainError", err: errors.New("boom"), want: Internal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCodeHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{Unauthenticated, http.StatusUnauthorized},
		{PermissionDenied, http.StatusForbidden},
		{InvalidArgument, http.StatusBadRequest},
		{NotFound, http.StatusNotFound},
		{FailedPrecondition, http.StatusPreconditionFailed},
		{Internal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := tt.code.HTTPStatus(); got != tt.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCodeStatus(t *testing.T) {
	if got := FailedPrecondition.Status(); got != "FAILED_PRECONDITION" {
		t.Errorf("Status() = %q", got)
	}
}

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("driver down")
	err := Wrap(Internal, "cannot save", cause)

	if !errors.Is(err, cause) {
		t.Error("wrapped error should unwrap to cause")
	}
	if !Is(err, Internal) {
		t.Error("Is(err, Internal) = false")
	}
	if Is(nil, Internal) {
		t.Error("Is(nil, Internal) = true")
	}
}
