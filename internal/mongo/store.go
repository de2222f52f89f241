package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/appetiteclub/dinein/internal/config"
	"github.com/appetiteclub/dinein/internal/logger"
)

const (
	restaurantsCollection   = "restaurants"
	employeesCollection     = "employees"
	pipsCollection          = "pips"
	menuItemsCollection     = "menu_items"
	tablesCollection        = "tables"
	basketItemsCollection   = "basket_items"
	checkInsCollection      = "check_ins"
	notificationsCollection = "notifications"
	ordersCollection        = "orders"
	countersCollection      = "counters"
)

// Store owns the client and database shared by every repository.
type Store struct {
	client       *mongo.Client
	db           *mongo.Database
	logger       logger.Logger
	config       *config.Config
	transactions bool
}

func NewStore(cfg *config.Config, log logger.Logger) *Store {
	if log == nil {
		log = logger.NewNoopLogger()
	}
	return &Store{
		logger:       log,
		config:       cfg,
		transactions: cfg.GetBool("db.mongo.transactions"),
	}
}

func (s *Store) Start(ctx context.Context) error {
	connString := s.config.GetStringOrDef("db.mongo.url", "mongodb://localhost:27017")
	dbName := s.config.GetStringOrDef("db.mongo.name", "dinein")

	clientOptions := options.Client().ApplyURI(connString).
		SetRegistry(Registry()).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("cannot connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return fmt.Errorf("cannot ping MongoDB: %w", err)
	}

	s.client = client
	s.db = client.Database(dbName)

	if err := s.EnsureIndexes(ctx); err != nil {
		return err
	}

	s.logger.Info("connected to MongoDB", "database", dbName, "transactions", s.transactions)
	s.warnNonAtomic()
	return nil
}

func (s *Store) warnNonAtomic() {
	if s.transactions {
		return
	}
	s.logger.Warn("mongo transactions disabled, a failing basket batch may be applied partially",
		"setting", "db.mongo.transactions")
}

func (s *Store) Stop(ctx context.Context) error {
	if s.client != nil {
		if err := s.client.Disconnect(ctx); err != nil {
			return fmt.Errorf("cannot disconnect from MongoDB: %w", err)
		}
		s.logger.Info("disconnected from MongoDB")
	}
	return nil
}

func (s *Store) Database() *mongo.Database {
	return s.db
}

func (s *Store) collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// Drop removes every collection owned by the store.
func (s *Store) Drop(ctx context.Context) error {
	for _, name := range collections() {
		if err := s.db.Collection(name).Drop(ctx); err != nil {
			return fmt.Errorf("cannot drop %s: %w", name, err)
		}
	}
	return nil
}

// withTransaction runs fn inside a multi-document transaction when
// db.mongo.transactions is on (replica sets only); otherwise fn runs as is.
func (s *Store) withTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !s.transactions {
		return fn(ctx)
	}

	session, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("cannot start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	return err
}

func collections() []string {
	return []string{
		restaurantsCollection,
		employeesCollection,
		pipsCollection,
		menuItemsCollection,
		tablesCollection,
		basketItemsCollection,
		checkInsCollection,
		notificationsCollection,
		ordersCollection,
		countersCollection,
		seedsCollection,
	}
}

func findOne[T any](ctx context.Context, c *mongo.Collection, filter any, opts ...*options.FindOneOptions) (*T, error) {
	var v T
	if err := c.FindOne(ctx, filter, opts...).Decode(&v); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func findMany[T any](ctx context.Context, c *mongo.Collection, filter any, opts ...*options.FindOptions) ([]*T, error) {
	cursor, err := c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var result []*T
	if err := cursor.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}
