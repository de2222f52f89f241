package checkin

import "github.com/google/uuid"

const (
	ActionAccept  = "accept"
	ActionDecline = "decline"
)

type RequestCheckInRequest struct {
	RestaurantID   uuid.UUID `json:"restaurantId" validate:"required"`
	NumberOfPeople int       `json:"numberOfPeople" validate:"min=1,max=50"`
	CustomerName   string    `json:"customerName" validate:"notblank,max=80"`
}

type CancelCheckInRequest struct {
	UserID       string    `json:"userId" validate:"notblank"`
	RestaurantID uuid.UUID `json:"restaurantId" validate:"required"`
}

type RespondRequest struct {
	CheckInID    uuid.UUID `json:"checkInId" validate:"required"`
	Action       string    `json:"action" validate:"checkinaction"`
	TableNumber  string    `json:"tableNumber,omitempty" validate:"max=40"`
	EmployeeName string    `json:"employeeName,omitempty" validate:"max=80"`
	ServerID     string    `json:"serverId,omitempty" validate:"max=80"`
}

type ListNotificationsRequest struct {
	RestaurantID uuid.UUID `json:"restaurantId" validate:"required"`
}

type MyCheckInRequest struct {
	RestaurantID uuid.UUID `json:"restaurantId" validate:"required"`
}
