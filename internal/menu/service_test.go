package menu

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/appetiteclub/dinein/internal/apperr"
)

var restaurantID = uuid.MustParse("550e8400-e29b-41d4-a716-446655440100")

func newTestService() (*Service, *MockMenuItemRepo) {
	repo := NewMockMenuItemRepo()
	return NewService(repo, NewMockStaff("chef-1"), nil), repo
}

func TestServiceCreate(t *testing.T) {
	tests := []struct {
		name     string
		caller   string
		req      CreateMenuItemRequest
		wantCode apperr.Code
	}{
		{
			name:   "created",
			caller: "chef-1",
			req:    CreateMenuItemRequest{RestaurantID: restaurantID, Name: "Margherita", Price: 12.99, Category: "Pizza"},
		},
		{
			name:     "negativePrice",
			caller:   "chef-1",
			req:      CreateMenuItemRequest{RestaurantID: restaurantID, Name: "Margherita", Price: -1, Category: "Pizza"},
			wantCode: apperr.InvalidArgument,
		},
		{
			name:     "missingCategory",
			caller:   "chef-1",
			req:      CreateMenuItemRequest{RestaurantID: restaurantID, Name: "Margherita", Price: 12.99},
			wantCode: apperr.InvalidArgument,
		},
		{
			name:     "notStaff",
			caller:   "customer-1",
			req:      CreateMenuItemRequest{RestaurantID: restaurantID, Name: "Margherita", Price: 12.99, Category: "Pizza"},
			wantCode: apperr.PermissionDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService()

			item, err := svc.Create(context.Background(), tt.caller, tt.req)
			if tt.wantCode != "" {
				if got := apperr.CodeOf(err); got != tt.wantCode {
					t.Fatalf("Create() code = %v, want %v", got, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if item.Price != 12.99 || item.CreatedBy != tt.caller {
				t.Errorf("Create() = %+v", item)
			}
		})
	}
}

func TestServiceUpdatePartial(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	item, err := svc.Create(ctx, "chef-1", CreateMenuItemRequest{RestaurantID: restaurantID, Name: "Margherita", Price: 12.99, Category: "Pizza"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	price := Price(13.5)
	updated, err := svc.Update(ctx, "chef-1", UpdateMenuItemRequest{MenuItemID: item.ID, Price: &price})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Price != 13.5 || updated.Name != "Margherita" {
		t.Errorf("Update() = %+v", updated)
	}

	special, err := svc.SetDailySpecial(ctx, "chef-1", SetDailySpecialRequest{MenuItemID: item.ID, IsDailySpecial: true})
	if err != nil || !special.IsDailySpecial {
		t.Errorf("SetDailySpecial() = %+v, %v", special, err)
	}

	_, err = svc.Update(ctx, "chef-1", UpdateMenuItemRequest{MenuItemID: uuid.New()})
	if apperr.CodeOf(err) != apperr.NotFound {
		t.Errorf("Update(unknown) code = %v, want not-found", apperr.CodeOf(err))
	}
}

func TestServiceListSortsAndFilters(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	for _, req := range []CreateMenuItemRequest{
		{RestaurantID: restaurantID, Name: "Tiramisu", Price: 7, Category: "Dessert"},
		{RestaurantID: restaurantID, Name: "Margherita", Price: 12.99, Category: "Pizza"},
		{RestaurantID: restaurantID, Name: "Diavola", Price: 14, Category: "Pizza"},
		{RestaurantID: uuid.New(), Name: "Elsewhere", Price: 1, Category: "Pizza"},
	} {
		if _, err := svc.Create(ctx, "chef-1", req); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	all, err := svc.List(ctx, ListMenuRequest{RestaurantID: restaurantID})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []string{"Tiramisu", "Diavola", "Margherita"}
	if len(all) != len(want) {
		t.Fatalf("List() len = %d, want %d", len(all), len(want))
	}
	for i, name := range want {
		if all[i].Name != name {
			t.Errorf("List()[%d] = %s, want %s", i, all[i].Name, name)
		}
	}

	pizzas, _ := svc.List(ctx, ListMenuRequest{RestaurantID: restaurantID, Category: "pizza"})
	if len(pizzas) != 2 {
		t.Errorf("List(pizza) len = %d, want 2", len(pizzas))
	}
}

func TestServiceLookup(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	item, _ := svc.Create(ctx, "chef-1", CreateMenuItemRequest{RestaurantID: restaurantID, Name: "Margherita", Price: 12.99, Category: "Pizza"})

	got, err := svc.Lookup(ctx, restaurantID, item.ID)
	if err != nil || got == nil {
		t.Fatalf("Lookup() = %v, %v", got, err)
	}

	other, err := svc.Lookup(ctx, uuid.New(), item.ID)
	if err != nil || other != nil {
		t.Errorf("Lookup(other restaurant) = %v, %v, want nil", other, err)
	}
}

func TestServiceDelete(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	item, _ := svc.Create(ctx, "chef-1", CreateMenuItemRequest{RestaurantID: restaurantID, Name: "Margherita", Price: 12.99, Category: "Pizza"})

	if err := svc.Delete(ctx, "customer-1", DeleteMenuItemRequest{MenuItemID: item.ID}); apperr.CodeOf(err) != apperr.PermissionDenied {
		t.Errorf("Delete() by customer code = %v", apperr.CodeOf(err))
	}
	if err := svc.Delete(ctx, "chef-1", DeleteMenuItemRequest{MenuItemID: item.ID}); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if got, _ := repo.Get(ctx, item.ID); got != nil {
		t.Error("item still present after Delete()")
	}
}
