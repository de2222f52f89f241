package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/appetiteclub/dinein/internal/logger"
	"github.com/appetiteclub/dinein/internal/order"
	"github.com/appetiteclub/dinein/internal/restaurant"
	"github.com/appetiteclub/dinein/internal/validation"
)

type OrderLister interface {
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*order.Order, error)
}

type RestaurantFinder interface {
	Get(ctx context.Context, id uuid.UUID) (*restaurant.Restaurant, error)
}

type StaffAuthorizer interface {
	RequireStaff(ctx context.Context, restaurantID uuid.UUID, callerID string) error
}

type DailySalesRequest struct {
	RestaurantID uuid.UUID `json:"restaurantId" validate:"required"`
}

type ServiceDeps struct {
	Orders      OrderLister
	Restaurants RestaurantFinder
	Staff       StaffAuthorizer
	Logger      logger.Logger
	Location    *time.Location
	TopItems    int
}

type Service struct {
	orders      OrderLister
	restaurants RestaurantFinder
	staff       StaffAuthorizer
	logger      logger.Logger
	location    *time.Location
	topItems    int
}

func NewService(deps ServiceDeps) *Service {
	if deps.Logger == nil {
		deps.Logger = logger.NewNoopLogger()
	}
	if deps.TopItems <= 0 {
		deps.TopItems = DefaultTopItems
	}
	return &Service{
		orders:      deps.Orders,
		restaurants: deps.Restaurants,
		staff:       deps.Staff,
		logger:      deps.Logger,
		location:    deps.Location,
		topItems:    deps.TopItems,
	}
}

// DailySales aggregates every order of the restaurant by local day.
func (s *Service) DailySales(ctx context.Context, callerID string, req DailySalesRequest) ([]DailySales, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if s.staff != nil {
		if err := s.staff.RequireStaff(ctx, req.RestaurantID, callerID); err != nil {
			return nil, err
		}
	}

	r, err := s.restaurants.Get(ctx, req.RestaurantID)
	if err != nil {
		return nil, err
	}

	orders, err := s.orders.ListByRestaurant(ctx, req.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("cannot list orders: %w", err)
	}

	return Aggregate(orders, r.Location(s.location), s.topItems, s.logger), nil
}
