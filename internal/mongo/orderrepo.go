package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/appetiteclub/dinein/internal/order"
)

var newestFirst = bson.D{{Key: "timestamp", Value: -1}}

type OrderRepo struct {
	collection *mongo.Collection
}

func NewOrderRepo(s *Store) *OrderRepo {
	return &OrderRepo{collection: s.collection(ordersCollection)}
}

func (r *OrderRepo) Create(ctx context.Context, o *order.Order) error {
	if o == nil {
		return fmt.Errorf("order is nil")
	}
	if _, err := r.collection.InsertOne(ctx, o); err != nil {
		return fmt.Errorf("cannot create order: %w", err)
	}
	return nil
}

func (r *OrderRepo) LastBetween(ctx context.Context, restaurantID uuid.UUID, from, to time.Time) (*order.Order, error) {
	filter := bson.M{
		"restaurant_id": restaurantID,
		"timestamp":     bson.M{"$gte": from, "$lt": to},
	}
	o, err := findOne[order.Order](ctx, r.collection, filter, options.FindOne().SetSort(newestFirst))
	if err != nil {
		return nil, fmt.Errorf("cannot get last order: %w", err)
	}
	return o, nil
}

func (r *OrderRepo) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*order.Order, error) {
	list, err := findMany[order.Order](ctx, r.collection, bson.M{"restaurant_id": restaurantID}, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, fmt.Errorf("cannot list orders: %w", err)
	}
	return list, nil
}

func (r *OrderRepo) ListByCustomer(ctx context.Context, customerID string, restaurantID uuid.UUID) ([]*order.Order, error) {
	filter := bson.M{"customer_id": customerID}
	if restaurantID != uuid.Nil {
		filter["restaurant_id"] = restaurantID
	}
	list, err := findMany[order.Order](ctx, r.collection, filter, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, fmt.Errorf("cannot list customer orders: %w", err)
	}
	return list, nil
}

// CounterRepo stores one sequence document per key.
type CounterRepo struct {
	collection *mongo.Collection
	now        func() time.Time
}

func NewCounterRepo(s *Store) *CounterRepo {
	return &CounterRepo{collection: s.collection(countersCollection), now: time.Now}
}

type counter struct {
	Key string `bson:"_id"`
	Seq int    `bson:"seq"`
}

func (r *CounterRepo) Next(ctx context.Context, key string, floor int) (int, error) {
	filter := bson.M{"_id": key}

	if floor > 0 {
		raise := bson.M{"$max": bson.M{"seq": floor}}
		if _, err := r.collection.UpdateOne(ctx, filter, raise, options.Update().SetUpsert(true)); err != nil {
			return 0, fmt.Errorf("cannot floor counter %s: %w", key, err)
		}
	}

	update := bson.M{
		"$inc": bson.M{"seq": 1},
		"$set": bson.M{"updated_at": r.now()},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var c counter
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&c); err != nil {
		return 0, fmt.Errorf("cannot increment counter %s: %w", key, err)
	}
	return c.Seq, nil
}
