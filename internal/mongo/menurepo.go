package mongo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/appetiteclub/dinein/internal/customer"
	"github.com/appetiteclub/dinein/internal/menu"
)

type MenuItemRepo struct {
	collection *mongo.Collection
}

func NewMenuItemRepo(s *Store) *MenuItemRepo {
	return &MenuItemRepo{collection: s.collection(menuItemsCollection)}
}

func (r *MenuItemRepo) Create(ctx context.Context, item *menu.MenuItem) error {
	if item == nil {
		return fmt.Errorf("menu item is nil")
	}
	if _, err := r.collection.InsertOne(ctx, item); err != nil {
		return fmt.Errorf("cannot create menu item: %w", err)
	}
	return nil
}

func (r *MenuItemRepo) Get(ctx context.Context, id uuid.UUID) (*menu.MenuItem, error) {
	item, err := findOne[menu.MenuItem](ctx, r.collection, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("cannot get menu item: %w", err)
	}
	return item, nil
}

func (r *MenuItemRepo) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*menu.MenuItem, error) {
	list, err := findMany[menu.MenuItem](ctx, r.collection, bson.M{"restaurant_id": restaurantID})
	if err != nil {
		return nil, fmt.Errorf("cannot list menu items: %w", err)
	}
	return list, nil
}

func (r *MenuItemRepo) Save(ctx context.Context, item *menu.MenuItem) error {
	if item == nil {
		return fmt.Errorf("menu item is nil")
	}
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": item.ID}, item)
	if err != nil {
		return fmt.Errorf("cannot update menu item: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("menu item not found")
	}
	return nil
}

func (r *MenuItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("cannot delete menu item: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("menu item not found")
	}
	return nil
}

type PIPRepo struct {
	collection *mongo.Collection
}

func NewPIPRepo(s *Store) *PIPRepo {
	return &PIPRepo{collection: s.collection(pipsCollection)}
}

func (r *PIPRepo) Create(ctx context.Context, p *customer.PIP) error {
	if p == nil {
		return fmt.Errorf("pip is nil")
	}
	if _, err := r.collection.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("cannot create pip: %w", err)
	}
	return nil
}

func (r *PIPRepo) Get(ctx context.Context, id uuid.UUID) (*customer.PIP, error) {
	p, err := findOne[customer.PIP](ctx, r.collection, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("cannot get pip: %w", err)
	}
	return p, nil
}

func (r *PIPRepo) ListByCustomer(ctx context.Context, customerID string) ([]*customer.PIP, error) {
	list, err := findMany[customer.PIP](ctx, r.collection, bson.M{"customer_id": customerID})
	if err != nil {
		return nil, fmt.Errorf("cannot list pips: %w", err)
	}
	return list, nil
}

func (r *PIPRepo) Save(ctx context.Context, p *customer.PIP) error {
	if p == nil {
		return fmt.Errorf("pip is nil")
	}
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return fmt.Errorf("cannot update pip: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("pip not found")
	}
	return nil
}

func (r *PIPRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("cannot delete pip: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("pip not found")
	}
	return nil
}
