package commands

import (
	"context"
	"fmt"

	"github.com/appetiteclub/dinein/cmd/utils/internal/seeding"
	"github.com/appetiteclub/dinein/internal/config"
	"github.com/appetiteclub/dinein/internal/customer"
	"github.com/appetiteclub/dinein/internal/logger"
	"github.com/appetiteclub/dinein/internal/menu"
	"github.com/appetiteclub/dinein/internal/mongo"
	"github.com/appetiteclub/dinein/internal/order"
	"github.com/appetiteclub/dinein/internal/restaurant"
	"github.com/appetiteclub/dinein/internal/tables"
)

func openStore(ctx context.Context, cfg *config.Config, log logger.Logger) (*mongo.Store, error) {
	store := mongo.NewStore(cfg, log)
	if err := store.Start(ctx); err != nil {
		return nil, fmt.Errorf("cannot open store: %w", err)
	}
	return store, nil
}

// services builds the domain services without an event publisher; operator
// writes are not announced on the bus.
func services(cfg *config.Config, store *mongo.Store, log logger.Logger) seeding.Services {
	restaurants := restaurant.NewService(restaurant.ServiceDeps{
		Restaurants: mongo.NewRestaurantRepo(store),
		Employees:   mongo.NewEmployeeRepo(store),
		StaffChecks: true,
		Logger:      log,
	})

	return seeding.Services{
		Restaurants: restaurants,
		Menu:        menu.NewService(mongo.NewMenuItemRepo(store), restaurants, log),
		Tables:      tables.NewService(mongo.NewTableRepo(store), restaurants, nil, log),
		PIPs:        customer.NewService(mongo.NewPIPRepo(store), log),
		Orders: order.NewService(order.ServiceDeps{
			Orders:      mongo.NewOrderRepo(store),
			Counters:    mongo.NewCounterRepo(store),
			Restaurants: restaurants,
			Logger:      log,
			Location:    cfg.Location("orders.timezone"),
		}),
	}
}
