package menu

import "github.com/google/uuid"

type CreateMenuItemRequest struct {
	RestaurantID   uuid.UUID `json:"restaurantId" validate:"required"`
	Name           string    `json:"name" validate:"notblank,max=120"`
	Price          Price     `json:"price"`
	Category       string    `json:"category" validate:"notblank,max=60"`
	Description    string    `json:"description,omitempty" validate:"max=1000"`
	ImageURI       string    `json:"imageUri,omitempty" validate:"omitempty,uri"`
	IsDailySpecial bool      `json:"isDailySpecial,omitempty"`
}

// UpdateMenuItemRequest applies only the fields that are present.
type UpdateMenuItemRequest struct {
	MenuItemID     uuid.UUID `json:"menuItemId" validate:"required"`
	Name           *string   `json:"name,omitempty" validate:"omitempty,notblank,max=120"`
	Price          *Price    `json:"price,omitempty"`
	Category       *string   `json:"category,omitempty" validate:"omitempty,notblank,max=60"`
	Description    *string   `json:"description,omitempty" validate:"omitempty,max=1000"`
	ImageURI       *string   `json:"imageUri,omitempty" validate:"omitempty,uri"`
	IsDailySpecial *bool     `json:"isDailySpecial,omitempty"`
}

type DeleteMenuItemRequest struct {
	MenuItemID uuid.UUID `json:"menuItemId" validate:"required"`
}

type SetDailySpecialRequest struct {
	MenuItemID     uuid.UUID `json:"menuItemId" validate:"required"`
	IsDailySpecial bool      `json:"isDailySpecial"`
}

type ListMenuRequest struct {
	RestaurantID uuid.UUID `json:"restaurantId" validate:"required"`
	Category     string    `json:"category,omitempty"`
}
