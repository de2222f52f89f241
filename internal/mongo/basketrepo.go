package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/appetiteclub/dinein/internal/basket"
	"github.com/appetiteclub/dinein/pkg/enums/itemstatus"
)

type BasketRepo struct {
	store      *Store
	collection *mongo.Collection
	now        func() time.Time
}

func NewBasketRepo(s *Store) *BasketRepo {
	return &BasketRepo{store: s, collection: s.collection(basketItemsCollection), now: time.Now}
}

func (r *BasketRepo) Get(ctx context.Context, id uuid.UUID) (*basket.BasketItem, error) {
	item, err := findOne[basket.BasketItem](ctx, r.collection, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("cannot get basket item: %w", err)
	}
	return item, nil
}

func (r *BasketRepo) ListUnsent(ctx context.Context, userID string, restaurantID uuid.UUID) ([]*basket.BasketItem, error) {
	filter := bson.M{"user_id": userID, "restaurant_id": restaurantID, "sent_to_chef_q": false}
	list, err := findMany[basket.BasketItem](ctx, r.collection, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("cannot list basket: %w", err)
	}
	return list, nil
}

func (r *BasketRepo) ListQueued(ctx context.Context, restaurantID uuid.UUID) ([]*basket.BasketItem, error) {
	filter := bson.M{
		"restaurant_id":  restaurantID,
		"sent_to_chef_q": true,
		"item_status":    bson.M{"$ne": itemstatus.Statuses.Completed.Code()},
	}
	list, err := findMany[basket.BasketItem](ctx, r.collection, filter, options.Find().SetSort(bson.D{{Key: "sent_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("cannot list chef queue: %w", err)
	}
	return list, nil
}

func (r *BasketRepo) Decrement(ctx context.Context, id uuid.UUID) (bool, error) {
	filter := bson.M{"_id": id, "sent_to_chef_q": false, "quantity": bson.M{"$gt": 1}}
	update := bson.M{
		"$inc": bson.M{"quantity": -1},
		"$set": bson.M{"updated_at": r.now()},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("cannot decrement basket item: %w", err)
	}
	return result.ModifiedCount == 1, nil
}

func (r *BasketRepo) Save(ctx context.Context, item *basket.BasketItem) error {
	if item == nil {
		return fmt.Errorf("basket item is nil")
	}
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": item.ID}, item)
	if err != nil {
		return fmt.Errorf("cannot update basket item: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("basket item not found")
	}
	return nil
}

// mergeRetries bounds how often Apply re-runs a merge that lost an insert
// race on the merge index.
const mergeRetries = 3

// Apply writes the batch as one ordered bulk write, inside a transaction
// when the store has them enabled. A merge that collides with a concurrent
// insert of the same line is retried and then increments that line.
func (r *BasketRepo) Apply(ctx context.Context, batch *basket.Batch) error {
	if batch == nil || batch.Len() == 0 {
		return nil
	}

	models := WriteModels(batch, r.now())
	var err error
	for attempt := 0; ; attempt++ {
		pending := models
		err = r.store.withTransaction(ctx, func(ctx context.Context) error {
			_, err := r.collection.BulkWrite(ctx, pending, options.BulkWrite().SetOrdered(true))
			return err
		})
		if err == nil {
			return nil
		}

		next, ok := retryMergeRace(err, models, r.store.transactions)
		if !ok || attempt >= mergeRetries {
			break
		}
		r.store.logger.Debug("retrying basket merge after insert race", "attempt", attempt+1, "remaining", len(next))
		models = next
	}
	return fmt.Errorf("cannot apply basket batch: %w", err)
}

// retryMergeRace reports whether err is a merge upsert that lost an insert
// race on the merge index, and returns the models to run again. Inside a
// transaction the whole batch was rolled back; otherwise the writes before
// the failed one are already applied and only the tail is returned.
func retryMergeRace(err error, models []mongo.WriteModel, transactional bool) ([]mongo.WriteModel, bool) {
	var bwe mongo.BulkWriteException
	if !errors.As(err, &bwe) || bwe.WriteConcernError != nil || len(bwe.WriteErrors) != 1 {
		return nil, false
	}

	we := bwe.WriteErrors[0]
	if !mongo.IsDuplicateKeyError(we.WriteError) || we.Index < 0 || we.Index >= len(models) {
		return nil, false
	}
	if !isMerge(models[we.Index]) {
		return nil, false
	}

	if transactional {
		return models, true
	}
	return models[we.Index:], true
}

func isMerge(m mongo.WriteModel) bool {
	u, ok := m.(*mongo.UpdateOneModel)
	return ok && u.Upsert != nil && *u.Upsert
}

// WriteModels translates batch ops into bulk write models. Every model is
// restricted to unsent lines.
func WriteModels(batch *basket.Batch, now time.Time) []mongo.WriteModel {
	models := make([]mongo.WriteModel, 0, batch.Len())
	for _, op := range batch.Ops() {
		switch op.Kind {
		case basket.OpMerge:
			models = append(models, mergeModel(op.Item, now))
		case basket.OpSetQuantity:
			models = append(models, mongo.NewUpdateOneModel().
				SetFilter(bson.M{"_id": op.ID, "sent_to_chef_q": false}).
				SetUpdate(bson.M{"$set": bson.M{"quantity": op.Quantity, "updated_at": now}}))
		case basket.OpDelete:
			models = append(models, mongo.NewDeleteOneModel().
				SetFilter(bson.M{"_id": op.ID, "sent_to_chef_q": false}))
		case basket.OpMarkSent:
			models = append(models, mongo.NewUpdateOneModel().
				SetFilter(bson.M{"_id": op.ID, "sent_to_chef_q": false}).
				SetUpdate(bson.M{"$set": bson.M{
					"sent_to_chef_q": true,
					"item_status":    itemstatus.Statuses.Pending.Code(),
					"table_number":   op.TableNumber,
					"sent_at":        op.At,
					"updated_at":     now,
				}}))
		}
	}
	return models
}

// mergeModel increments the unsent line with the same merge key or inserts
// the item with quantity 1. Filter fields seed the inserted document.
func mergeModel(item *basket.BasketItem, now time.Time) mongo.WriteModel {
	createdAt := item.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	filter := bson.M{
		"user_id":        item.UserID,
		"restaurant_id":  item.RestaurantID,
		"dish.id":        item.Dish.ID,
		"pip.id":         item.PIP.ID,
		"sent_to_chef_q": false,
	}

	onInsert := bson.M{
		"_id":        item.ID,
		"dish.name":  item.Dish.Name,
		"dish.price": item.Dish.Price,
		"pip.name":   item.PIP.Name,
		"created_at": createdAt,
	}
	if item.SpecialInstructions != "" {
		onInsert["special_instructions"] = item.SpecialInstructions
	}
	if item.TableNumber != "" {
		onInsert["table_number"] = item.TableNumber
	}

	return mongo.NewUpdateOneModel().
		SetFilter(filter).
		SetUpdate(bson.M{
			"$inc":         bson.M{"quantity": 1},
			"$set":         bson.M{"updated_at": now},
			"$setOnInsert": onInsert,
		}).
		SetUpsert(true)
}
