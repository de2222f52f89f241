package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// basketMergeIndex makes concurrent merges of the same unsent line collapse
// into one document.
const basketMergeIndex = "unsent_merge_key"

func indexModels() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		restaurantsCollection: {
			{Keys: bson.D{{Key: "restaurant_number", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		},
		employeesCollection: {
			{Keys: bson.D{{Key: "restaurant_id", Value: 1}, {Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		pipsCollection: {
			{Keys: bson.D{{Key: "customer_id", Value: 1}}},
		},
		menuItemsCollection: {
			{Keys: bson.D{{Key: "restaurant_id", Value: 1}, {Key: "category", Value: 1}}},
		},
		tablesCollection: {
			{Keys: bson.D{{Key: "restaurant_id", Value: 1}, {Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		basketItemsCollection: {
			{
				Keys: bson.D{
					{Key: "user_id", Value: 1},
					{Key: "restaurant_id", Value: 1},
					{Key: "dish.id", Value: 1},
					{Key: "pip.id", Value: 1},
				},
				Options: options.Index().
					SetName(basketMergeIndex).
					SetUnique(true).
					SetPartialFilterExpression(bson.M{"sent_to_chef_q": false}),
			},
			{Keys: bson.D{{Key: "restaurant_id", Value: 1}, {Key: "sent_to_chef_q", Value: 1}, {Key: "item_status", Value: 1}}},
		},
		checkInsCollection: {
			{Keys: bson.D{{Key: "customer_id", Value: 1}, {Key: "restaurant_id", Value: 1}, {Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		notificationsCollection: {
			{Keys: bson.D{{Key: "restaurant_id", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "check_in_id", Value: 1}}},
		},
		ordersCollection: {
			{Keys: bson.D{{Key: "restaurant_id", Value: 1}, {Key: "order_id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "restaurant_id", Value: 1}, {Key: "timestamp", Value: -1}}},
			{Keys: bson.D{{Key: "customer_id", Value: 1}, {Key: "timestamp", Value: -1}}},
		},
	}
}

func (s *Store) EnsureIndexes(ctx context.Context) error {
	for name, models := range indexModels() {
		if _, err := s.collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("cannot create indexes on %s: %w", name, err)
		}
	}
	return nil
}
