package restaurant

import "github.com/google/uuid"

type RegisterRequest struct {
	Name     string `json:"name" validate:"notblank,max=120"`
	Number   string `json:"restaurantNumber" validate:"notblank,alphanum,max=16"`
	Address  string `json:"address,omitempty" validate:"max=240"`
	Timezone string `json:"timezone,omitempty" validate:"omitempty,timezone"`
}

type GetRequest struct {
	RestaurantID uuid.UUID `json:"restaurantId" validate:"required"`
}

type AddEmployeeRequest struct {
	RestaurantID uuid.UUID `json:"restaurantId" validate:"required"`
	UserID       string    `json:"userId" validate:"notblank"`
	Name         string    `json:"name" validate:"notblank,max=120"`
	Role         string    `json:"role" validate:"oneof=manager server chef host"`
}

type UpdateEmployeeRequest struct {
	EmployeeID uuid.UUID `json:"employeeId" validate:"required"`
	Name       string    `json:"name,omitempty" validate:"max=120"`
	Role       string    `json:"role,omitempty" validate:"omitempty,oneof=manager server chef host"`
}

type RemoveEmployeeRequest struct {
	EmployeeID uuid.UUID `json:"employeeId" validate:"required"`
}

type ListEmployeesRequest struct {
	RestaurantID uuid.UUID `json:"restaurantId" validate:"required"`
}
