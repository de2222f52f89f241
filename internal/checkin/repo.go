package checkin

import (
	"context"

	"github.com/google/uuid"

	"github.com/appetiteclub/dinein/internal/restaurant"
)

// CheckInRepo stores check-ins together with their notifications. Every
// method that touches both documents applies the writes atomically.
type CheckInRepo interface {
	Get(ctx context.Context, id uuid.UUID) (*CheckIn, error)
	// FindByStatus returns the customer's newest check-in at the restaurant
	// whose status is one of statuses, or nil.
	FindByStatus(ctx context.Context, customerID string, restaurantID uuid.UUID, statuses []string) (*CheckIn, error)
	CreateWithNotification(ctx context.Context, c *CheckIn, n *Notification) error
	// DeleteWithNotification removes the check-in and its notification.
	DeleteWithNotification(ctx context.Context, c *CheckIn) error
	// Respond saves the answered check-in and removes its notification.
	Respond(ctx context.Context, c *CheckIn) error
	ListNotifications(ctx context.Context, restaurantID uuid.UUID) ([]*Notification, error)
}

type RestaurantFinder interface {
	Get(ctx context.Context, id uuid.UUID) (*restaurant.Restaurant, error)
}

// StaffAuthorizer decides whether a caller may act for a restaurant.
type StaffAuthorizer interface {
	RequireStaff(ctx context.Context, restaurantID uuid.UUID, callerID string) error
}

// TableSeater marks the table assigned on acceptance as occupied.
type TableSeater interface {
	MarkOccupied(ctx context.Context, restaurantID uuid.UUID, tableName, by string) error
}
