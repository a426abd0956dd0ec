package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/wholesaleworks/marketplace/internal/models"
)

func (s *Store) CreateProduct(ctx context.Context, product *models.Product) error {
	product.CreatedAt = time.Now()

	res, err := s.products.InsertOne(ctx, product)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		product.ID = id
	}
	return nil
}

// UpdateProduct merges only the provided fields into the stored record.
func (s *Store) UpdateProduct(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	if len(fields) == 0 {
		return nil
	}

	res, err := s.products.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProduct removes the product and cascades to every cart entry
// referencing it, in one transaction.
func (s *Store) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	return s.withTransaction(ctx, func(sc mongo.SessionContext) error {
		res, err := s.products.DeleteOne(sc, bson.M{"_id": id})
		if err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		if res.DeletedCount == 0 {
			return ErrNotFound
		}

		if _, err := s.carts.DeleteMany(sc, bson.M{"product_id": id}); err != nil {
			return fmt.Errorf("failed to cascade cart entries: %w", err)
		}
		return nil
	})
}
