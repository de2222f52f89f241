package mongo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/appetiteclub/dinein/internal/restaurant"
)

type RestaurantRepo struct {
	collection *mongo.Collection
}

func NewRestaurantRepo(s *Store) *RestaurantRepo {
	return &RestaurantRepo{collection: s.collection(restaurantsCollection)}
}

func (r *RestaurantRepo) Create(ctx context.Context, rest *restaurant.Restaurant) error {
	if rest == nil {
		return fmt.Errorf("restaurant is nil")
	}
	if _, err := r.collection.InsertOne(ctx, rest); err != nil {
		return fmt.Errorf("cannot create restaurant: %w", err)
	}
	return nil
}

func (r *RestaurantRepo) Get(ctx context.Context, id uuid.UUID) (*restaurant.Restaurant, error) {
	rest, err := findOne[restaurant.Restaurant](ctx, r.collection, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("cannot get restaurant: %w", err)
	}
	return rest, nil
}

func (r *RestaurantRepo) GetByNumber(ctx context.Context, number string) (*restaurant.Restaurant, error) {
	rest, err := findOne[restaurant.Restaurant](ctx, r.collection, bson.M{"restaurant_number": number})
	if err != nil {
		return nil, fmt.Errorf("cannot get restaurant by number: %w", err)
	}
	return rest, nil
}

func (r *RestaurantRepo) List(ctx context.Context) ([]*restaurant.Restaurant, error) {
	list, err := findMany[restaurant.Restaurant](ctx, r.collection, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("cannot list restaurants: %w", err)
	}
	return list, nil
}

func (r *RestaurantRepo) Save(ctx context.Context, rest *restaurant.Restaurant) error {
	if rest == nil {
		return fmt.Errorf("restaurant is nil")
	}
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": rest.ID}, rest)
	if err != nil {
		return fmt.Errorf("cannot update restaurant: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("restaurant not found")
	}
	return nil
}

func (r *RestaurantRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("cannot delete restaurant: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("restaurant not found")
	}
	return nil
}

type EmployeeRepo struct {
	collection *mongo.Collection
}

func NewEmployeeRepo(s *Store) *EmployeeRepo {
	return &EmployeeRepo{collection: s.collection(employeesCollection)}
}

func (r *EmployeeRepo) Create(ctx context.Context, e *restaurant.Employee) error {
	if e == nil {
		return fmt.Errorf("employee is nil")
	}
	if _, err := r.collection.InsertOne(ctx, e); err != nil {
		return fmt.Errorf("cannot create employee: %w", err)
	}
	return nil
}

func (r *EmployeeRepo) Get(ctx context.Context, id uuid.UUID) (*restaurant.Employee, error) {
	e, err := findOne[restaurant.Employee](ctx, r.collection, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("cannot get employee: %w", err)
	}
	return e, nil
}

func (r *EmployeeRepo) GetByUser(ctx context.Context, restaurantID uuid.UUID, userID string) (*restaurant.Employee, error) {
	e, err := findOne[restaurant.Employee](ctx, r.collection, bson.M{"restaurant_id": restaurantID, "user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("cannot get employee by user: %w", err)
	}
	return e, nil
}

func (r *EmployeeRepo) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*restaurant.Employee, error) {
	list, err := findMany[restaurant.Employee](ctx, r.collection, bson.M{"restaurant_id": restaurantID})
	if err != nil {
		return nil, fmt.Errorf("cannot list employees: %w", err)
	}
	return list, nil
}

func (r *EmployeeRepo) Save(ctx context.Context, e *restaurant.Employee) error {
	if e == nil {
		return fmt.Errorf("employee is nil")
	}
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": e.ID}, e)
	if err != nil {
		return fmt.Errorf("cannot update employee: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("employee not found")
	}
	return nil
}

func (r *EmployeeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("cannot delete employee: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("employee not found")
	}
	return nil
}
