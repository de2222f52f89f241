package order

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/appetiteclub/dinein/internal/restaurant"
)

type OrderRepo interface {
	Create(ctx context.Context, o *Order) error
	// LastBetween returns the newest order with from <= timestamp < to, or nil.
	LastBetween(ctx context.Context, restaurantID uuid.UUID, from, to time.Time) (*Order, error)
	// ListByRestaurant returns orders newest first.
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*Order, error)
	// ListByCustomer returns orders newest first. uuid.Nil matches every restaurant.
	ListByCustomer(ctx context.Context, customerID string, restaurantID uuid.UUID) ([]*Order, error)
}

// CounterRepo hands out per-day order sequences.
type CounterRepo interface {
	// Next atomically increments the counter for key, first raising it to
	// floor when it is lower, and returns the new value.
	Next(ctx context.Context, key string, floor int) (int, error)
}

type RestaurantFinder interface {
	Get(ctx context.Context, id uuid.UUID) (*restaurant.Restaurant, error)
}
