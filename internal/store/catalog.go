package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wholesaleworks/marketplace/internal/models"
)

func (s *Store) Categories(ctx context.Context, limit int64) ([]models.Category, error) {
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cur, err := s.categories.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := []models.Category{}
	if err := cur.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return categories, nil
}

func (s *Store) ProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	if err := s.products.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

func (s *Store) ProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return s.findProducts(ctx, bson.M{"category": category}, nil)
}

func (s *Store) AllProducts(ctx context.Context) ([]models.Product, error) {
	return s.findProducts(ctx, bson.M{}, nil)
}

func (s *Store) ProductsByOwner(ctx context.Context, email string) ([]models.Product, error) {
	return s.findProducts(ctx, bson.M{"owner_email": email}, nil)
}

func (s *Store) LatestProducts(ctx context.Context, limit int64) ([]models.Product, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	return s.findProducts(ctx, bson.M{}, opts)
}

func (s *Store) findProducts(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Product, error) {
	var cur *mongo.Cursor
	var err error
	if opts != nil {
		cur, err = s.products.Find(ctx, filter, opts)
	} else {
		cur, err = s.products.Find(ctx, filter)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}
