package tables

import (
	"context"

	"github.com/google/uuid"
)

type TableRepo interface {
	CreateMany(ctx context.Context, tables []*Table) error
	Get(ctx context.Context, id uuid.UUID) (*Table, error)
	GetByName(ctx context.Context, restaurantID uuid.UUID, name string) (*Table, error)
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*Table, error)
	Save(ctx context.Context, table *Table) error
}

// StaffAuthorizer decides whether a caller may act for a restaurant.
type StaffAuthorizer interface {
	RequireStaff(ctx context.Context, restaurantID uuid.UUID, callerID string) error
}
