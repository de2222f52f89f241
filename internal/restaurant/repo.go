package restaurant

import (
	"context"

	"github.com/google/uuid"
)

// Get methods return (nil, nil) when nothing matches.
type RestaurantRepo interface {
	Create(ctx context.Context, r *Restaurant) error
	Get(ctx context.Context, id uuid.UUID) (*Restaurant, error)
	GetByNumber(ctx context.Context, number string) (*Restaurant, error)
	List(ctx context.Context) ([]*Restaurant, error)
	Save(ctx context.Context, r *Restaurant) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type EmployeeRepo interface {
	Create(ctx context.Context, e *Employee) error
	Get(ctx context.Context, id uuid.UUID) (*Employee, error)
	GetByUser(ctx context.Context, restaurantID uuid.UUID, userID string) (*Employee, error)
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*Employee, error)
	Save(ctx context.Context, e *Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
}
