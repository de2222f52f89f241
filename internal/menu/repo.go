package menu

import (
	"context"

	"github.com/google/uuid"
)

type MenuItemRepo interface {
	Create(ctx context.Context, item *MenuItem) error
	Get(ctx context.Context, id uuid.UUID) (*MenuItem, error)
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*MenuItem, error)
	Save(ctx context.Context, item *MenuItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// StaffAuthorizer decides whether a caller may act for a restaurant.
type StaffAuthorizer interface {
	RequireStaff(ctx context.Context, restaurantID uuid.UUID, callerID string) error
}
