package mongo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/appetiteclub/dinein/internal/checkin"
)

// CheckInRepo keeps a check-in and its notification in step. The pair is
// written in one transaction when the store supports it.
type CheckInRepo struct {
	store         *Store
	checkIns      *mongo.Collection
	notifications *mongo.Collection
}

func NewCheckInRepo(s *Store) *CheckInRepo {
	return &CheckInRepo{
		store:         s,
		checkIns:      s.collection(checkInsCollection),
		notifications: s.collection(notificationsCollection),
	}
}

func (r *CheckInRepo) Get(ctx context.Context, id uuid.UUID) (*checkin.CheckIn, error) {
	c, err := findOne[checkin.CheckIn](ctx, r.checkIns, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("cannot get check-in: %w", err)
	}
	return c, nil
}

func (r *CheckInRepo) FindByStatus(ctx context.Context, customerID string, restaurantID uuid.UUID, statuses []string) (*checkin.CheckIn, error) {
	filter := bson.M{
		"customer_id":   customerID,
		"restaurant_id": restaurantID,
		"status":        bson.M{"$in": statuses},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	c, err := findOne[checkin.CheckIn](ctx, r.checkIns, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("cannot find check-in: %w", err)
	}
	return c, nil
}

func (r *CheckInRepo) CreateWithNotification(ctx context.Context, c *checkin.CheckIn, n *checkin.Notification) error {
	if c == nil || n == nil {
		return fmt.Errorf("check-in and notification are required")
	}
	err := r.store.withTransaction(ctx, func(ctx context.Context) error {
		if _, err := r.checkIns.InsertOne(ctx, c); err != nil {
			return err
		}
		if _, err := r.notifications.InsertOne(ctx, n); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("cannot create check-in: %w", err)
	}
	return nil
}

func (r *CheckInRepo) DeleteWithNotification(ctx context.Context, c *checkin.CheckIn) error {
	err := r.store.withTransaction(ctx, func(ctx context.Context) error {
		if _, err := r.notifications.DeleteMany(ctx, bson.M{"check_in_id": c.ID}); err != nil {
			return err
		}
		_, err := r.checkIns.DeleteOne(ctx, bson.M{"_id": c.ID})
		return err
	})
	if err != nil {
		return fmt.Errorf("cannot delete check-in: %w", err)
	}
	return nil
}

func (r *CheckInRepo) Respond(ctx context.Context, c *checkin.CheckIn) error {
	err := r.store.withTransaction(ctx, func(ctx context.Context) error {
		result, err := r.checkIns.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
		if err != nil {
			return err
		}
		if result.MatchedCount == 0 {
			return fmt.Errorf("check-in not found")
		}
		_, err = r.notifications.DeleteMany(ctx, bson.M{"check_in_id": c.ID})
		return err
	})
	if err != nil {
		return fmt.Errorf("cannot save check-in response: %w", err)
	}
	return nil
}

func (r *CheckInRepo) ListNotifications(ctx context.Context, restaurantID uuid.UUID) ([]*checkin.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	list, err := findMany[checkin.Notification](ctx, r.notifications, bson.M{"restaurant_id": restaurantID}, opts)
	if err != nil {
		return nil, fmt.Errorf("cannot list notifications: %w", err)
	}
	return list, nil
}
