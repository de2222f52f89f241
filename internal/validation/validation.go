// Package validation checks request structs before any service logic runs.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/appetiteclub/dinein/internal/apperr"
	"github.com/appetiteclub/dinein/pkg/enums/itemstatus"
	"github.com/appetiteclub/dinein/pkg/enums/tablestatus"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})

		_ = v.RegisterValidation("checkinaction", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s == "accept" || s == "decline"
		})
		_ = v.RegisterValidation("itemstatus", func(fl validator.FieldLevel) bool {
			return itemstatus.ByName(fl.Field().String()) != nil
		})
		_ = v.RegisterValidation("tablestatus", func(fl validator.FieldLevel) bool {
			return tablestatus.ByName(fl.Field().String()) != nil
		})
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})

		validate = v
	})
	return validate
}

// Struct validates v and returns an invalid-argument error listing every
// failing field, or nil.
func Struct(v any) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Wrap(apperr.InvalidArgument, "invalid request", err)
	}

	details := make([]apperr.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, apperr.FieldError{
			Field:   fieldPath(fe),
			Message: message(fe),
		})
	}

	return &apperr.Error{
		Code:    apperr.InvalidArgument,
		Message: summary(details),
		Details: details,
	}
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if", "notblank":
		return "is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s element(s)", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "email":
		return "must be a valid email address"
	case "checkinaction":
		return "must be accept or decline"
	case "itemstatus":
		return "must be pending, preparing or completed"
	case "tablestatus":
		return "must be available, occupied or checkedOut"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

func summary(details []apperr.FieldError) string {
	parts := make([]string, 0, len(details))
	for _, d := range details {
		parts = append(parts, d.Field+" "+d.Message)
	}
	return strings.Join(parts, "; ")
}
