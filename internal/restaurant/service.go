package restaurant

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/appetiteclub/dinein/internal/apperr"
	"github.com/appetiteclub/dinein/internal/logger"
	"github.com/appetiteclub/dinein/internal/validation"
)

type ServiceDeps struct {
	Restaurants RestaurantRepo
	Employees   EmployeeRepo
	// StaffChecks enables the owner/employee check on staff-facing calls.
	StaffChecks bool
	Logger      logger.Logger
}

type Service struct {
	restaurants RestaurantRepo
	employees   EmployeeRepo
	staffChecks bool
	logger      logger.Logger
}

func NewService(deps ServiceDeps) *Service {
	if deps.Logger == nil {
		deps.Logger = logger.NewNoopLogger()
	}
	return &Service{
		restaurants: deps.Restaurants,
		employees:   deps.Employees,
		staffChecks: deps.StaffChecks,
		logger:      deps.Logger,
	}
}

func (s *Service) Register(ctx context.Context, callerID string, req RegisterRequest) (*Restaurant, error) {
	if callerID == "" {
		return nil, apperr.Unauthenticatedf("sign in to register a restaurant")
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	number := strings.ToUpper(strings.TrimSpace(req.Number))
	existing, err := s.restaurants.GetByNumber(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("cannot check restaurant number: %w", err)
	}
	if existing != nil {
		return nil, apperr.FailedPreconditionf("restaurant number %s is already taken", number)
	}

	r := NewRestaurant()
	r.Name = strings.TrimSpace(req.Name)
	r.Number = number
	r.OwnerID = callerID
	r.Address = strings.TrimSpace(req.Address)
	r.Timezone = req.Timezone
	r.BeforeCreate()

	if err := s.restaurants.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("cannot create restaurant: %w", err)
	}

	s.logger.Info("restaurant registered", "restaurant_id", r.ID.String(), "number", r.Number)
	return r, nil
}

// Get returns the restaurant or a not-found error.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Restaurant, error) {
	if id == uuid.Nil {
		return nil, apperr.InvalidArgumentf("restaurantId is required")
	}

	r, err := s.restaurants.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("cannot get restaurant: %w", err)
	}
	if r == nil {
		return nil, apperr.NotFoundf("restaurant not found")
	}
	return r, nil
}

func (s *Service) List(ctx context.Context) ([]*Restaurant, error) {
	list, err := s.restaurants.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot list restaurants: %w", err)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// RequireStaff passes for the owner or any employee. With staff checks
// disabled every caller is trusted.
func (s *Service) RequireStaff(ctx context.Context, restaurantID uuid.UUID, callerID string) error {
	if !s.staffChecks {
		return nil
	}
	_, err := s.staffMember(ctx, restaurantID, callerID, false)
	return err
}

// RequireManager passes for the owner or an employee with the manager role.
func (s *Service) RequireManager(ctx context.Context, restaurantID uuid.UUID, callerID string) error {
	if !s.staffChecks {
		return nil
	}
	_, err := s.staffMember(ctx, restaurantID, callerID, true)
	return err
}

// RequireOwner always applies; connected payment accounts belong to owners.
func (s *Service) RequireOwner(ctx context.Context, restaurantID uuid.UUID, callerID string) (*Restaurant, error) {
	if callerID == "" {
		return nil, apperr.Unauthenticatedf("sign in required")
	}
	r, err := s.Get(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if r.OwnerID != callerID {
		return nil, apperr.PermissionDeniedf("only the restaurant owner can do this")
	}
	return r, nil
}

func (s *Service) staffMember(ctx context.Context, restaurantID uuid.UUID, callerID string, managerOnly bool) (*Restaurant, error) {
	if callerID == "" {
		return nil, apperr.Unauthenticatedf("sign in required")
	}

	r, err := s.Get(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if r.OwnerID == callerID {
		return r, nil
	}

	e, err := s.employees.GetByUser(ctx, restaurantID, callerID)
	if err != nil {
		return nil, fmt.Errorf("cannot look up employee: %w", err)
	}
	if e == nil || (managerOnly && !e.IsManager()) {
		return nil, apperr.PermissionDeniedf("caller is not staff of this restaurant")
	}
	return r, nil
}

func (s *Service) AddEmployee(ctx context.Context, callerID string, req AddEmployeeRequest) (*Employee, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if err := s.RequireManager(ctx, req.RestaurantID, callerID); err != nil {
		return nil, err
	}

	existing, err := s.employees.GetByUser(ctx, req.RestaurantID, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("cannot look up employee: %w", err)
	}
	if existing != nil {
		return nil, apperr.FailedPreconditionf("user is already an employee")
	}

	e := NewEmployee()
	e.RestaurantID = req.RestaurantID
	e.UserID = req.UserID
	e.Name = strings.TrimSpace(req.Name)
	e.Role = req.Role
	e.BeforeCreate()

	if err := s.employees.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("cannot create employee: %w", err)
	}
	return e, nil
}

func (s *Service) UpdateEmployee(ctx context.Context, callerID string, req UpdateEmployeeRequest) (*Employee, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	e, err := s.employee(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	if err := s.RequireManager(ctx, e.RestaurantID, callerID); err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		e.Name = name
	}
	if req.Role != "" {
		e.Role = req.Role
	}
	e.BeforeUpdate()

	if err := s.employees.Save(ctx, e); err != nil {
		return nil, fmt.Errorf("cannot save employee: %w", err)
	}
	return e, nil
}

func (s *Service) RemoveEmployee(ctx context.Context, callerID string, req RemoveEmployeeRequest) error {
	if err := validation.Struct(req); err != nil {
		return err
	}

	e, err := s.employee(ctx, req.EmployeeID)
	if err != nil {
		return err
	}
	if err := s.RequireManager(ctx, e.RestaurantID, callerID); err != nil {
		return err
	}

	if err := s.employees.Delete(ctx, e.ID); err != nil {
		return fmt.Errorf("cannot delete employee: %w", err)
	}
	return nil
}

func (s *Service) ListEmployees(ctx context.Context, callerID string, req ListEmployeesRequest) ([]*Employee, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if err := s.RequireStaff(ctx, req.RestaurantID, callerID); err != nil {
		return nil, err
	}

	list, err := s.employees.ListByRestaurant(ctx, req.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("cannot list employees: %w", err)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// SetConnectedAccount records the payment processor account of a restaurant.
func (s *Service) SetConnectedAccount(ctx context.Context, restaurantID uuid.UUID, accountID string) error {
	r, err := s.Get(ctx, restaurantID)
	if err != nil {
		return err
	}
	r.StripeAccountID = accountID
	r.BeforeUpdate()

	if err := s.restaurants.Save(ctx, r); err != nil {
		return fmt.Errorf("cannot save restaurant: %w", err)
	}
	return nil
}

func (s *Service) employee(ctx context.Context, id uuid.UUID) (*Employee, error) {
	e, err := s.employees.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("cannot get employee: %w", err)
	}
	if e == nil {
		return nil, apperr.NotFoundf("employee not found")
	}
	return e, nil
}
