package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/appetiteclub/dinein/cmd/utils/internal/seeding"
	"github.com/appetiteclub/dinein/internal/config"
	"github.com/appetiteclub/dinein/internal/logger"
	"github.com/appetiteclub/dinein/internal/mongo"
)

// ClearDemo removes the demo restaurant, everything scoped to it and the
// demo customer's PIPs.
func ClearDemo(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	store, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.Stop(ctx)

	restaurantID, err := store.SeedRef(ctx, seeding.DemoSeedID)
	if err != nil {
		return err
	}

	if restaurantID == uuid.Nil {
		existing, err := mongo.NewRestaurantRepo(store).GetByNumber(ctx, seeding.DemoNumber)
		if err != nil {
			return err
		}
		if existing != nil {
			restaurantID = existing.ID
		}
	}

	if restaurantID == uuid.Nil {
		log.Info("no demo restaurant found")
	} else {
		deleted, err := store.PurgeRestaurant(ctx, restaurantID)
		if err != nil {
			return err
		}
		for collection, n := range deleted {
			log.Info("demo documents deleted", "collection", collection, "count", n)
		}
	}

	n, err := store.DeletePIPs(ctx, []string{seeding.DemoCustomerID})
	if err != nil {
		return err
	}
	log.Info("demo pips deleted", "count", n)

	return store.ClearSeed(ctx, seeding.DemoSeedID)
}
