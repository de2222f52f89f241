package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/appetiteclub/dinein/internal/apperr"
	"github.com/appetiteclub/dinein/internal/auth"
	"github.com/appetiteclub/dinein/internal/basket"
	"github.com/appetiteclub/dinein/internal/callable"
	"github.com/appetiteclub/dinein/internal/checkin"
	"github.com/appetiteclub/dinein/internal/config"
	"github.com/appetiteclub/dinein/internal/customer"
	"github.com/appetiteclub/dinein/internal/logger"
	"github.com/appetiteclub/dinein/internal/menu"
	"github.com/appetiteclub/dinein/internal/mongo"
	"github.com/appetiteclub/dinein/internal/order"
	"github.com/appetiteclub/dinein/internal/payment"
	"github.com/appetiteclub/dinein/internal/report"
	"github.com/appetiteclub/dinein/internal/restaurant"
	"github.com/appetiteclub/dinein/internal/server"
	"github.com/appetiteclub/dinein/internal/tables"
)

const (
	Namespace = "DINEIN"
	Name      = "dinein"
)

// Version is overridden at link time.
var Version = "0.1.0"

// App holds the started store, the event bus and the HTTP server.
type App struct {
	config *config.Config
	logger logger.Logger
	store  *mongo.Store
	bus    *Bus
	server *server.Server
}

// New connects the store and the event bus and wires every service behind
// the HTTP server. Run serves until ctx is done.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	store := mongo.NewStore(cfg, log)
	if err := store.Start(ctx); err != nil {
		return nil, err
	}

	bus, err := ConnectBus(ctx, cfg, log)
	if err != nil {
		_ = store.Stop(context.Background())
		return nil, err
	}

	a := &App{config: cfg, logger: log, store: store, bus: bus}
	a.server = a.wire()
	return a, nil
}

func (a *App) wire() *server.Server {
	cfg, log := a.config, a.logger
	location := cfg.Location("orders.timezone")

	restaurants := restaurant.NewService(restaurant.ServiceDeps{
		Restaurants: mongo.NewRestaurantRepo(a.store),
		Employees:   mongo.NewEmployeeRepo(a.store),
		StaffChecks: cfg.GetBool("auth.staff_checks"),
		Logger:      log,
	})

	pips := customer.NewService(mongo.NewPIPRepo(a.store), log)
	menus := menu.NewService(mongo.NewMenuItemRepo(a.store), restaurants, log)
	tableService := tables.NewService(mongo.NewTableRepo(a.store), restaurants, a.bus.Publisher(), log)

	baskets := basket.NewService(basket.ServiceDeps{
		Items:     mongo.NewBasketRepo(a.store),
		Menu:      menus,
		Staff:     restaurants,
		Publisher: a.bus.KitchenPublisher(),
		Logger:    log,
	})
	feed := basket.NewFeed(a.bus.Subscriber(), a.bus.Stream(), log)

	checkIns := checkin.NewService(checkin.ServiceDeps{
		CheckIns:    mongo.NewCheckInRepo(a.store),
		Restaurants: restaurants,
		Staff:       restaurants,
		Tables:      tableService,
		Publisher:   a.bus.Publisher(),
		Logger:      log,
	})

	orderRepo := mongo.NewOrderRepo(a.store)
	orders := order.NewService(order.ServiceDeps{
		Orders:      orderRepo,
		Counters:    mongo.NewCounterRepo(a.store),
		Restaurants: restaurants,
		Publisher:   a.bus.Publisher(),
		Logger:      log,
		Location:    location,
	})

	reports := report.NewService(report.ServiceDeps{
		Orders:      orderRepo,
		Restaurants: restaurants,
		Staff:       restaurants,
		Logger:      log,
		Location:    location,
		TopItems:    cfg.GetIntOrDef("report.top_items", report.DefaultTopItems),
	})

	payments := payment.NewService(payment.ServiceDeps{
		Processor:      NewProcessor(cfg, log),
		Restaurants:    restaurants,
		Logger:         log,
		Currency:       cfg.GetStringOrDef("payment.currency", "usd"),
		DefaultCountry: cfg.GetStringOrDef("payment.default_country", "US"),
	})

	verifier := auth.NewVerifier(
		cfg.GetStringOrDef("auth.jwt.secret", ""),
		cfg.GetStringOrDef("auth.jwt.issuer", ""),
	)

	srv := server.New(cfg, log, verifier.Middleware(rejectToken(log)))
	srv.MountCallables(
		restaurant.NewHandler(restaurants, log),
		customer.NewHandler(pips, log),
		menu.NewHandler(menus, log),
		tables.NewHandler(tableService, log),
		basket.NewHandler(baskets, log),
		checkin.NewHandler(checkIns, log),
		order.NewHandler(orders, log),
		report.NewHandler(reports, log),
		payment.NewHandler(payments, log),
	)
	srv.Mount(basket.NewFeedHandler(feed, restaurants, log))

	srv.AddLifecycle(
		server.LifecycleHooks{Name: "mongo", OnStop: a.store.Stop},
		server.LifecycleHooks{Name: "events", OnStop: a.bus.Close},
		server.LifecycleHooks{Name: "kitchen feed", OnStart: feed.Start, OnStop: feed.Stop},
	)

	return srv
}

// Handler exposes the wired router, mainly for tests.
func (a *App) Handler() http.Handler {
	return a.server.Handler()
}

func (a *App) Run(ctx context.Context) error {
	a.logger.Infof("starting %s(%s)", Name, Version)
	if err := a.server.Run(ctx); err != nil {
		return fmt.Errorf("%s stopped: %w", Name, err)
	}
	a.logger.Infof("%s(%s) stopped", Name, Version)
	return nil
}

// NewProcessor returns the Stripe processor, or nil when no secret key is
// configured so payment calls fail with failed-precondition.
func NewProcessor(cfg *config.Config, log logger.Logger) payment.Processor {
	key := cfg.GetStringOrDef("payment.stripe.secret_key", "")
	if key == "" {
		log.Info("stripe secret key not set, payments disabled")
		return nil
	}
	return payment.NewStripeProcessor(payment.StripeConfig{
		SecretKey:  key,
		APIVersion: cfg.GetStringOrDef("payment.stripe.api_version", ""),
		RefreshURL: cfg.GetStringOrDef("payment.onboarding.refresh_url", ""),
		ReturnURL:  cfg.GetStringOrDef("payment.onboarding.return_url", ""),
	})
}

func rejectToken(log logger.Logger) func(w http.ResponseWriter, r *http.Request, err error) {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		callable.RequestLogger(log, r).Debug("bearer token rejected", "error", err)
		callable.RespondError(w, apperr.Unauthenticatedf("invalid bearer token"))
	}
}
