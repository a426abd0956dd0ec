package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrBelowMinimum      = errors.New("quantity below minimum selling quantity")
	ErrDuplicateUser     = errors.New("user already exists")
)

type Store struct {
	db         *mongo.Database
	products   *mongo.Collection
	categories *mongo.Collection
	carts      *mongo.Collection
	orders     *mongo.Collection
	users      *mongo.Collection
}

func Connect(ctx context.Context, uri, database string) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(100).
		SetMinPoolSize(10)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client.Database(database), nil
}

func New(db *mongo.Database) *Store {
	return &Store{
		db:         db,
		products:   db.Collection("products"),
		categories: db.Collection("categories"),
		carts:      db.Collection("carts"),
		orders:     db.Collection("orders"),
		users:      db.Collection("users"),
	}
}

func (s *Store) EnsureIndexes(ctx context.Context) error {
	byCollection := map[*mongo.Collection][]mongo.IndexModel{
		s.products: {
			{Keys: bson.D{{Key: "category", Value: 1}}},
			{Keys: bson.D{{Key: "owner_email", Value: 1}}},
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
		s.carts: {
			{Keys: bson.D{{Key: "email", Value: 1}}},
			{Keys: bson.D{{Key: "product_id", Value: 1}}},
		},
		s.orders: {
			{Keys: bson.D{{Key: "email", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		s.users: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}

	for coll, indexes := range byCollection {
		if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", coll.Name(), err)
		}
	}

	return nil
}

// withTransaction runs fn inside a single multi-document transaction so
// compound writes are atomic-or-fully-rolled-back.
func (s *Store) withTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	session, err := s.db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
