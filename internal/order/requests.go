package order

import "github.com/google/uuid"

type CreateOrderRequest struct {
	UserID       string      `json:"userId" validate:"notblank"`
	RestaurantID uuid.UUID   `json:"restaurantId" validate:"required"`
	TableNumber  string      `json:"tableNumber" validate:"max=40"`
	Items        []OrderItem `json:"items" validate:"required,min=1,dive"`
	TotalPrice   float64     `json:"totalPrice" validate:"min=0"`
}

type CreateOrderResult struct {
	Success bool      `json:"success"`
	OrderID string    `json:"orderId"`
	ID      uuid.UUID `json:"id"`
}

// ListMyOrdersRequest filters by restaurant when RestaurantID is set.
type ListMyOrdersRequest struct {
	RestaurantID uuid.UUID `json:"restaurantId"`
}
