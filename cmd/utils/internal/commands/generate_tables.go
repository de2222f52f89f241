package commands

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/appetiteclub/dinein/internal/config"
	"github.com/appetiteclub/dinein/internal/logger"
	"github.com/appetiteclub/dinein/internal/mongo"
	"github.com/appetiteclub/dinein/internal/tables"
)

// GenerateTables runs the one-time table generation for a restaurant as the
// operator, bypassing the staff check.
func GenerateTables(ctx context.Context, cfg *config.Config, log logger.Logger, restaurantID string, count, capacity int) error {
	id, err := uuid.Parse(restaurantID)
	if err != nil {
		return fmt.Errorf("invalid restaurant id %q: %w", restaurantID, err)
	}

	store, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.Stop(ctx)

	svc := tables.NewService(mongo.NewTableRepo(store), nil, nil, log)
	created, err := svc.Generate(ctx, "operator", tables.GenerateTablesRequest{
		RestaurantID: id,
		Count:        count,
		Capacity:     capacity,
	})
	if err != nil {
		return err
	}

	for _, t := range created {
		fmt.Printf("%s\t%s\tcapacity=%d\n", t.ID, t.Name, t.Capacity)
	}
	return nil
}
