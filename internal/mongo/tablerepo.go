package mongo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/appetiteclub/dinein/internal/tables"
)

type TableRepo struct {
	collection *mongo.Collection
}

func NewTableRepo(s *Store) *TableRepo {
	return &TableRepo{collection: s.collection(tablesCollection)}
}

func (r *TableRepo) CreateMany(ctx context.Context, list []*tables.Table) error {
	if len(list) == 0 {
		return nil
	}
	docs := make([]any, 0, len(list))
	for _, t := range list {
		docs = append(docs, t)
	}
	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("cannot create tables: %w", err)
	}
	return nil
}

func (r *TableRepo) Get(ctx context.Context, id uuid.UUID) (*tables.Table, error) {
	t, err := findOne[tables.Table](ctx, r.collection, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("cannot get table: %w", err)
	}
	return t, nil
}

func (r *TableRepo) GetByName(ctx context.Context, restaurantID uuid.UUID, name string) (*tables.Table, error) {
	t, err := findOne[tables.Table](ctx, r.collection, bson.M{"restaurant_id": restaurantID, "name": name})
	if err != nil {
		return nil, fmt.Errorf("cannot get table by name: %w", err)
	}
	return t, nil
}

func (r *TableRepo) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*tables.Table, error) {
	list, err := findMany[tables.Table](ctx, r.collection, bson.M{"restaurant_id": restaurantID})
	if err != nil {
		return nil, fmt.Errorf("cannot list tables: %w", err)
	}
	return list, nil
}

func (r *TableRepo) Save(ctx context.Context, t *tables.Table) error {
	if t == nil {
		return fmt.Errorf("table is nil")
	}
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": t.ID}, t)
	if err != nil {
		return fmt.Errorf("cannot update table: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("table not found")
	}
	return nil
}
