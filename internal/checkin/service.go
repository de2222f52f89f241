package checkin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/appetiteclub/dinein/internal/apperr"
	"github.com/appetiteclub/dinein/internal/logger"
	"github.com/appetiteclub/dinein/internal/validation"
	"github.com/appetiteclub/dinein/pkg"
	"github.com/appetiteclub/dinein/pkg/enums/checkinstatus"
	"github.com/appetiteclub/dinein/pkg/event"
)

type ServiceDeps struct {
	CheckIns    CheckInRepo
	Restaurants RestaurantFinder
	Staff       StaffAuthorizer
	Tables      TableSeater
	Publisher   pkg.Publisher
	Logger      logger.Logger
}

type Service struct {
	checkIns    CheckInRepo
	restaurants RestaurantFinder
	staff       StaffAuthorizer
	tables      TableSeater
	publisher   pkg.Publisher
	logger      logger.Logger
	now         func() time.Time
}

func NewService(deps ServiceDeps) *Service {
	if deps.Logger == nil {
		deps.Logger = logger.NewNoopLogger()
	}
	return &Service{
		checkIns:    deps.CheckIns,
		restaurants: deps.Restaurants,
		staff:       deps.Staff,
		tables:      deps.Tables,
		publisher:   deps.Publisher,
		logger:      deps.Logger,
		now:         time.Now,
	}
}

// Request asks the restaurant for a seat on behalf of the caller.
func (s *Service) Request(ctx context.Context, callerID string, req RequestCheckInRequest) (*CheckIn, error) {
	if callerID == "" {
		return nil, apperr.Unauthenticatedf("sign in to check in")
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	if _, err := s.restaurants.Get(ctx, req.RestaurantID); err != nil {
		return nil, err
	}

	active, err := s.checkIns.FindByStatus(ctx, callerID, req.RestaurantID, checkinstatus.Active)
	if err != nil {
		return nil, fmt.Errorf("cannot look up check-in: %w", err)
	}
	if active != nil {
		return nil, apperr.FailedPreconditionf("an active check-in already exists for this restaurant")
	}

	c := NewCheckIn()
	c.RestaurantID = req.RestaurantID
	c.CustomerID = callerID
	c.CustomerName = strings.TrimSpace(req.CustomerName)
	c.NumberOfPeople = req.NumberOfPeople
	c.BeforeCreate()
	n := NewNotification(c)

	if err := s.checkIns.CreateWithNotification(ctx, c, n); err != nil {
		return nil, fmt.Errorf("cannot create check-in: %w", err)
	}

	e := s.checkInEvent(c, event.CheckInRequestedTopic)
	e.NotificationID = n.ID.String()
	s.publish(ctx, event.CheckInRequestedTopic, e)

	s.logger.Info("check-in requested", "check_in_id", c.ID.String(), "restaurant_id", c.RestaurantID.String())
	return c, nil
}

// Cancel withdraws the caller's pending check-in. It reports false when there
// was nothing to cancel.
func (s *Service) Cancel(ctx context.Context, callerID string, req CancelCheckInRequest) (bool, error) {
	if callerID == "" || callerID != req.UserID {
		return false, apperr.Unauthenticatedf("caller does not match userId")
	}
	if err := validation.Struct(req); err != nil {
		return false, err
	}

	c, err := s.checkIns.FindByStatus(ctx, req.UserID, req.RestaurantID, checkinstatus.Cancellable)
	if err != nil {
		return false, fmt.Errorf("cannot look up check-in: %w", err)
	}
	if c == nil {
		return false, nil
	}

	if err := s.checkIns.DeleteWithNotification(ctx, c); err != nil {
		return false, fmt.Errorf("cannot delete check-in: %w", err)
	}

	s.publish(ctx, event.CheckInCancelledTopic, s.checkInEvent(c, event.CheckInCancelledTopic))
	return true, nil
}

// Respond accepts or declines a requested check-in.
func (s *Service) Respond(ctx context.Context, callerID string, req RespondRequest) (*CheckIn, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	tableNumber := strings.TrimSpace(req.TableNumber)
	if req.Action == ActionAccept && tableNumber == "" {
		return nil, apperr.InvalidArgumentf("tableNumber is required to accept a check-in")
	}

	c, err := s.checkIns.Get(ctx, req.CheckInID)
	if err != nil {
		return nil, fmt.Errorf("cannot get check-in: %w", err)
	}
	if c == nil {
		return nil, apperr.NotFoundf("check-in not found")
	}
	if s.staff != nil {
		if err := s.staff.RequireStaff(ctx, c.RestaurantID, callerID); err != nil {
			return nil, err
		}
	}
	if !c.Answerable() {
		return nil, apperr.FailedPreconditionf("check-in was already answered (%s)", c.Status)
	}

	now := s.now().UTC()
	employeeName := strings.TrimSpace(req.EmployeeName)
	if req.Action == ActionAccept {
		c.Accept(tableNumber, employeeName, req.ServerID, now)
	} else {
		c.Decline(employeeName, req.ServerID, now)
	}

	if err := s.checkIns.Respond(ctx, c); err != nil {
		return nil, fmt.Errorf("cannot save check-in response: %w", err)
	}

	if req.Action == ActionAccept && s.tables != nil {
		if err := s.tables.MarkOccupied(ctx, c.RestaurantID, tableNumber, callerID); err != nil {
			s.logger.Error("cannot mark table occupied", "error", err, "check_in_id", c.ID.String(), "table", tableNumber)
		}
	}

	s.publish(ctx, event.CheckInRespondedTopic, s.checkInEvent(c, event.CheckInRespondedTopic))
	s.logger.Info("check-in answered", "check_in_id", c.ID.String(), "status", c.Status)
	return c, nil
}

// Notifications lists the restaurant's pending check-in notifications.
func (s *Service) Notifications(ctx context.Context, callerID string, req ListNotificationsRequest) ([]*Notification, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if s.staff != nil {
		if err := s.staff.RequireStaff(ctx, req.RestaurantID, callerID); err != nil {
			return nil, err
		}
	}

	list, err := s.checkIns.ListNotifications(ctx, req.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("cannot list notifications: %w", err)
	}
	return list, nil
}

// Mine returns the caller's active check-in at the restaurant, or nil.
func (s *Service) Mine(ctx context.Context, callerID string, req MyCheckInRequest) (*CheckIn, error) {
	if callerID == "" {
		return nil, apperr.Unauthenticatedf("sign in required")
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	c, err := s.checkIns.FindByStatus(ctx, callerID, req.RestaurantID, checkinstatus.Active)
	if err != nil {
		return nil, fmt.Errorf("cannot look up check-in: %w", err)
	}
	return c, nil
}

func (s *Service) checkInEvent(c *CheckIn, eventType string) event.CheckInEvent {
	return event.CheckInEvent{
		EventType:      eventType,
		OccurredAt:     s.now().UTC(),
		CheckInID:      c.ID.String(),
		RestaurantID:   c.RestaurantID.String(),
		CustomerID:     c.CustomerID,
		CustomerName:   c.CustomerName,
		NumberOfPeople: c.NumberOfPeople,
		Status:         c.Status,
		TableNumber:    c.TableNumber,
		EmployeeName:   c.EmployeeName,
	}
}

func (s *Service) publish(ctx context.Context, topic string, e event.CheckInEvent) {
	if err := pkg.PublishJSON(ctx, s.publisher, topic, e); err != nil {
		s.logger.Error("cannot publish check-in event", "error", err, "topic", topic, "check_in_id", e.CheckInID)
	}
}
