package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

const seedsCollection = "_seeds"

// SeedApplied reports whether the seed tracker holds id.
func (s *Store) SeedApplied(ctx context.Context, id string) (bool, error) {
	n, err := s.collection(seedsCollection).CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("cannot check seed status: %w", err)
	}
	return n > 0, nil
}

func (s *Store) MarkSeed(ctx context.Context, id, description string, ref uuid.UUID) error {
	_, err := s.collection(seedsCollection).InsertOne(ctx, bson.M{
		"_id":         id,
		"description": description,
		"ref":         ref,
		"applied_at":  time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("cannot mark seed: %w", err)
	}
	return nil
}

type seedDoc struct {
	Ref uuid.UUID `bson:"ref"`
}

// SeedRef returns the id recorded with a seed, or uuid.Nil when absent.
func (s *Store) SeedRef(ctx context.Context, id string) (uuid.UUID, error) {
	doc, err := findOne[seedDoc](ctx, s.collection(seedsCollection), bson.M{"_id": id})
	if err != nil {
		return uuid.Nil, fmt.Errorf("cannot read seed: %w", err)
	}
	if doc == nil {
		return uuid.Nil, nil
	}
	return doc.Ref, nil
}

func (s *Store) ClearSeed(ctx context.Context, id string) error {
	if _, err := s.collection(seedsCollection).DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("cannot clear seed: %w", err)
	}
	return nil
}

// PurgeRestaurant deletes a restaurant and every document scoped to it,
// including its order counters. It returns the deleted count per collection.
func (s *Store) PurgeRestaurant(ctx context.Context, restaurantID uuid.UUID) (map[string]int64, error) {
	deleted := make(map[string]int64)

	scoped := []string{
		employeesCollection,
		menuItemsCollection,
		tablesCollection,
		basketItemsCollection,
		checkInsCollection,
		notificationsCollection,
		ordersCollection,
	}

	err := s.withTransaction(ctx, func(ctx context.Context) error {
		for _, name := range scoped {
			res, err := s.collection(name).DeleteMany(ctx, bson.M{"restaurant_id": restaurantID})
			if err != nil {
				return fmt.Errorf("cannot purge %s: %w", name, err)
			}
			deleted[name] = res.DeletedCount
		}

		prefix := "^order:" + restaurantID.String() + ":"
		res, err := s.collection(countersCollection).DeleteMany(ctx, bson.M{"_id": bson.M{"$regex": prefix}})
		if err != nil {
			return fmt.Errorf("cannot purge counters: %w", err)
		}
		deleted[countersCollection] = res.DeletedCount

		res, err = s.collection(restaurantsCollection).DeleteOne(ctx, bson.M{"_id": restaurantID})
		if err != nil {
			return fmt.Errorf("cannot purge restaurant: %w", err)
		}
		deleted[restaurantsCollection] = res.DeletedCount
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// DeletePIPs removes every PIP profile owned by the given customers.
func (s *Store) DeletePIPs(ctx context.Context, customerIDs []string) (int64, error) {
	res, err := s.collection(pipsCollection).DeleteMany(ctx, bson.M{"customer_id": bson.M{"$in": customerIDs}})
	if err != nil {
		return 0, fmt.Errorf("cannot delete pips: %w", err)
	}
	return res.DeletedCount, nil
}
