package menu

import (
	"github.com/appetiteclub/dinein/internal/apperr"
	"github.com/appetiteclub/dinein/internal/validation"
)

// ValidateCreateMenuItem checks struct constraints and the price amount.
func ValidateCreateMenuItem(req CreateMenuItemRequest) error {
	if err := validation.Struct(req); err != nil {
		return err
	}
	return validatePrice(&req.Price)
}

func ValidateUpdateMenuItem(req UpdateMenuItemRequest) error {
	if err := validation.Struct(req); err != nil {
		return err
	}
	return validatePrice(req.Price)
}

func validatePrice(p *Price) error {
	if p == nil || p.Valid() {
		return nil
	}
	return &apperr.Error{
		Code:    apperr.InvalidArgument,
		Message: "price must be a non-negative number",
		Details: []apperr.FieldError{{Field: "price", Message: "must be a non-negative number"}},
	}
}
