package tables

import "github.com/google/uuid"

type GenerateTablesRequest struct {
	RestaurantID uuid.UUID `json:"restaurantId" validate:"required"`
	Count        int       `json:"count" validate:"min=1,max=200"`
	Capacity     int       `json:"capacity" validate:"omitempty,min=1,max=50"`
}

type ListTablesRequest struct {
	RestaurantID uuid.UUID `json:"restaurantId" validate:"required"`
}

type UpdateTableStatusRequest struct {
	TableID uuid.UUID `json:"tableId" validate:"required"`
	Status  string    `json:"status" validate:"tablestatus"`
}

type ClearTableRequest struct {
	TableID uuid.UUID `json:"tableId" validate:"required"`
}
