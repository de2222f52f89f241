package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/appetiteclub/dinein/internal/apperr"
	"github.com/appetiteclub/dinein/internal/logger"
	"github.com/appetiteclub/dinein/internal/validation"
	"github.com/appetiteclub/dinein/pkg"
	"github.com/appetiteclub/dinein/pkg/event"
)

type ServiceDeps struct {
	Orders      OrderRepo
	Counters    CounterRepo
	Restaurants RestaurantFinder
	Publisher   pkg.Publisher
	Logger      logger.Logger
	// Location is used for restaurants without a timezone.
	Location *time.Location
}

type Service struct {
	orders    OrderRepo
	ids       *IDGenerator
	publisher pkg.Publisher
	logger    logger.Logger
	now       func() time.Time
}

func NewService(deps ServiceDeps) *Service {
	if deps.Logger == nil {
		deps.Logger = logger.NewNoopLogger()
	}
	return &Service{
		orders:    deps.Orders,
		ids:       NewIDGenerator(deps.Orders, deps.Counters, deps.Restaurants, deps.Location),
		publisher: deps.Publisher,
		logger:    deps.Logger,
		now:       time.Now,
	}
}

// Create persists a pending, unpaid order under a freshly generated order id.
func (s *Service) Create(ctx context.Context, callerID string, req CreateOrderRequest) (*Order, error) {
	if callerID == "" || callerID != req.UserID {
		return nil, apperr.Unauthenticatedf("caller does not match userId")
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	orderID, err := s.ids.Next(ctx, req.RestaurantID)
	if err != nil {
		return nil, err
	}

	o := NewOrder()
	o.OrderID = orderID
	o.CustomerID = req.UserID
	o.RestaurantID = req.RestaurantID
	o.TableNumber = strings.TrimSpace(req.TableNumber)
	o.Items = normalize(req.Items)
	o.TotalPrice = req.TotalPrice
	o.Timestamp = s.now().UTC()
	o.BeforeCreate()

	if err := s.orders.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("cannot create order: %w", err)
	}

	s.publishCreated(ctx, o)
	s.logger.Info("order created", "order_id", o.OrderID, "restaurant_id", o.RestaurantID.String(), "items", len(o.Items))
	return o, nil
}

// ListMine returns the caller's orders, newest first.
func (s *Service) ListMine(ctx context.Context, callerID string, req ListMyOrdersRequest) ([]*Order, error) {
	if callerID == "" {
		return nil, apperr.Unauthenticatedf("sign in required")
	}

	list, err := s.orders.ListByCustomer(ctx, callerID, req.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("cannot list orders: %w", err)
	}
	if list == nil {
		list = []*Order{}
	}
	return list, nil
}

func (s *Service) publishCreated(ctx context.Context, o *Order) {
	e := event.OrderCreatedEvent{
		EventType:    event.EventOrderCreated,
		OccurredAt:   s.now().UTC(),
		ID:           o.ID.String(),
		OrderID:      o.OrderID,
		RestaurantID: o.RestaurantID.String(),
		CustomerID:   o.CustomerID,
		TableNumber:  o.TableNumber,
		ItemCount:    len(o.Items),
		TotalPrice:   o.TotalPrice,
	}
	if err := pkg.PublishJSON(ctx, s.publisher, event.OrdersCreatedTopic, e); err != nil {
		s.logger.Error("cannot publish order event", "error", err, "order_id", o.OrderID)
	}
}

func normalize(items []OrderItem) []OrderItem {
	out := make([]OrderItem, len(items))
	for i, it := range items {
		it.Name = strings.TrimSpace(it.Name)
		it.PIPName = strings.TrimSpace(it.PIPName)
		it.SpecialInstructions = strings.TrimSpace(it.SpecialInstructions)
		out[i] = it
	}
	return out
}
