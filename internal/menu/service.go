package menu

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

type Service struct {
	items  MenuItemRepo
	staff  StaffAuthorizer
	logger logger.Logger
}

func NewService(items MenuItemRepo, staff StaffAuthorizer, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewNoopLogger()
	}
	return &Service{items: items, staff: staff, logger: log}
}

func (s *Service) Create(ctx context.Context, callerID string, req CreateMenuItemRequest) (*MenuItem, error) {
	if err := ValidateCreateMenuItem(req); err != nil {
		return nil, err
	}
	if err := s.requireStaff(ctx, req.RestaurantID, callerID); err != nil {
		return nil, err
	}

	item := NewMenuItem()
	item.RestaurantID = req.RestaurantID
	item.Name = strings.TrimSpace(req.Name)
	item.Price = req.Price.Rounded()
	item.Category = strings.TrimSpace(req.Category)
	item.Description = strings.TrimSpace(req.Description)
	item.ImageURI = req.ImageURI
	item.IsDailySpecial = req.IsDailySpecial
	item.CreatedBy = callerID
	item.UpdatedBy = callerID
	item.BeforeCreate()

	if err := s.items.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("cannot create menu item: %w", err)
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, callerID string, req UpdateMenuItemRequest) (*MenuItem, error) {
	if err := ValidateUpdateMenuItem(req); err != nil {
		return nil, err
	}

	item, err := s.get(ctx, req.MenuItemID)
	if err != nil {
		return nil, err
	}
	if err := s.requireStaff(ctx, item.RestaurantID, callerID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = strings.TrimSpace(*req.Name)
	}
	if req.Price != nil {
		item.Price = req.Price.Rounded()
	}
	if req.Category != nil {
		item.Category = strings.TrimSpace(*req.Category)
	}
	if req.Description != nil {
		item.Description = strings.TrimSpace(*req.Description)
	}
	if req.ImageURI != nil {
		item.ImageURI = *req.ImageURI
	}
	if req.IsDailySpecial != nil {
		item.IsDailySpecial = *req.IsDailySpecial
	}
	item.UpdatedBy = callerID
	item.BeforeUpdate()

	if err := s.items.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("cannot save menu item: %w", err)
	}
	return item, nil
}

func (s *Service) SetDailySpecial(ctx context.Context, callerID string, req SetDailySpecialRequest) (*MenuItem, error) {
	special := req.IsDailySpecial
	return s.Update(ctx, callerID, UpdateMenuItemRequest{MenuItemID: req.MenuItemID, IsDailySpecial: &special})
}

func (s *Service) Delete(ctx context.Context, callerID string, req DeleteMenuItemRequest) error {
	if err := validation.Struct(req); err != nil {
		return err
	}

	item, err := s.get(ctx, req.MenuItemID)
	if err != nil {
		return err
	}
	if err := s.requireStaff(ctx, item.RestaurantID, callerID); err != nil {
		return err
	}

	if err := s.items.Delete(ctx, item.ID); err != nil {
		return fmt.Errorf("cannot delete menu item: %w", err)
	}
	return nil
}

// List returns the menu ordered by category then name.
func (s *Service) List(ctx context.Context, req ListMenuRequest) ([]*MenuItem, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	all, err := s.items.ListByRestaurant(ctx, req.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("cannot list menu: %w", err)
	}

	category := strings.TrimSpace(req.Category)
	items := make([]*MenuItem, 0, len(all))
	for _, item := range all {
		if category != "" && !strings.EqualFold(item.Category, category) {
			continue
		}
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Category != items[j].Category {
			return items[i].Category < items[j].Category
		}
		return items[i].Name < items[j].Name
	})
	return items, nil
}

// Lookup returns the menu item when it belongs to restaurantID, or nil.
func (s *Service) Lookup(ctx context.Context, restaurantID, dishID uuid.UUID) (*MenuItem, error) {
	item, err := s.items.Get(ctx, dishID)
	if err != nil {
		return nil, fmt.Errorf("cannot get menu item: %w", err)
	}
	if item == nil || item.RestaurantID != restaurantID {
		return nil, nil
	}
	return item, nil
}

func (s *Service) get(ctx context.Context, id uuid.UUID) (*MenuItem, error) {
	item, err := s.items.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("cannot get menu item: %w", err)
	}
	if item == nil {
		return nil, apperr.NotFoundf("menu item not found")
	}
	return item, nil
}

func (s *Service) requireStaff(ctx context.Context, restaurantID uuid.UUID, callerID string) error {
	if s.staff == nil {
		return nil
	}
	return s.staff.RequireStaff(ctx, restaurantID, callerID)
}
