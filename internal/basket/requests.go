package basket

import "github.com/google/uuid"

type AddItemRequest struct {
	UserID              string    `json:"userId" validate:"notblank"`
	RestaurantID        uuid.UUID `json:"restaurantId" validate:"required"`
	Dish                Dish      `json:"dish"`
	SelectedPIPs        []PIPRef  `json:"selectedPIPs" validate:"required,min=1,dive"`
	SpecialInstructions string    `json:"specialInstructions,omitempty" validate:"max=500"`
	TableNumber         string    `json:"tableNumber,omitempty" validate:"max=40"`
}

type RemoveItemRequest struct {
	UserID       string    `json:"userId" validate:"notblank"`
	RestaurantID uuid.UUID `json:"restaurantId" validate:"required"`
	BasketItemID uuid.UUID `json:"basketItemId" validate:"required"`
}

type UpdateQuantityRequest struct {
	UserID       string    `json:"userId" validate:"notblank"`
	BasketItemID uuid.UUID `json:"basketItemId" validate:"required"`
	NewQuantity  *int      `json:"newQuantity"`
}

type ClearBasketRequest struct {
	UserID       string    `json:"userId" validate:"notblank"`
	RestaurantID uuid.UUID `json:"restaurantId" validate:"required"`
}

type ItemRef struct {
	ID uuid.UUID `json:"id" validate:"required"`
}

type SendToKitchenRequest struct {
	UserID       string    `json:"userId" validate:"notblank"`
	RestaurantID uuid.UUID `json:"restaurantId" validate:"required"`
	Items        []ItemRef `json:"items" validate:"required,min=1,dive"`
	TableNumber  string    `json:"tableNumber,omitempty" validate:"max=40"`
}

type ListBasketRequest struct {
	UserID       string    `json:"userId" validate:"notblank"`
	RestaurantID uuid.UUID `json:"restaurantId" validate:"required"`
}

type ChefsQueueRequest struct {
	RestaurantID uuid.UUID `json:"restaurantId" validate:"required"`
}

type UpdateItemStatusRequest struct {
	BasketItemID uuid.UUID `json:"basketItemId" validate:"required"`
	ItemStatus   string    `json:"itemStatus" validate:"itemstatus"`
}

type ApplyDiscountRequest struct {
	BasketItemID uuid.UUID `json:"basketItemId" validate:"required"`
	Discount     float64   `json:"discount" validate:"min=0"`
}

// TableQueue is one table's group in the chef's queue.
type TableQueue struct {
	TableNumber string        `json:"tableNumber"`
	Items       []*BasketItem `json:"items"`
}
