package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wholesaleworks/marketplace/internal/models"
)

// AddToCart inserts the entry and reserves stock in one transaction.
// The decrement filter requires enough stock, so oversell aborts the
// whole operation instead of driving quantity negative.
func (s *Store) AddToCart(ctx context.Context, entry *models.CartEntry) error {
	var product models.Product
	if err := s.products.FindOne(ctx, bson.M{"_id": entry.ProductID}).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load product: %w", err)
	}
	if entry.Quantity < product.MinimumSellingQuantity {
		return ErrBelowMinimum
	}

	entry.AddedAt = time.Now()

	return s.withTransaction(ctx, func(sc mongo.SessionContext) error {
		res, err := s.products.UpdateOne(sc,
			bson.M{"_id": entry.ProductID, "quantity": bson.M{"$gte": entry.Quantity}},
			bson.M{"$inc": bson.M{"quantity": -entry.Quantity}},
		)
		if err != nil {
			return fmt.Errorf("failed to reserve stock: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrInsufficientStock
		}

		ins, err := s.carts.InsertOne(sc, entry)
		if err != nil {
			return fmt.Errorf("failed to insert cart entry: %w", err)
		}
		if id, ok := ins.InsertedID.(primitive.ObjectID); ok {
			entry.ID = id
		}
		return nil
	})
}

// RemoveFromCart deletes the entry and restores the reserved stock
// atomically, returning the removed entry.
func (s *Store) RemoveFromCart(ctx context.Context, id primitive.ObjectID) (*models.CartEntry, error) {
	var entry models.CartEntry

	err := s.withTransaction(ctx, func(sc mongo.SessionContext) error {
		if err := s.carts.FindOneAndDelete(sc, bson.M{"_id": id}).Decode(&entry); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to delete cart entry: %w", err)
		}

		if _, err := s.products.UpdateOne(sc,
			bson.M{"_id": entry.ProductID},
			bson.M{"$inc": bson.M{"quantity": entry.Quantity}},
		); err != nil {
			return fmt.Errorf("failed to restore stock: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

func (s *Store) CartByEmail(ctx context.Context, email string) ([]models.CartEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "added_at", Value: -1}})
	cur, err := s.carts.Find(ctx, bson.M{"email": email}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart: %w", err)
	}

	entries := []models.CartEntry{}
	if err := cur.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}

	for i := range entries {
		s.attachProduct(ctx, &entries[i].Product, entries[i].ProductID)
	}
	return entries, nil
}

func (s *Store) CartEntryByID(ctx context.Context, id primitive.ObjectID) (*models.CartEntry, error) {
	var entry models.CartEntry
	if err := s.carts.FindOne(ctx, bson.M{"_id": id}).Decode(&entry); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get cart entry: %w", err)
	}

	s.attachProduct(ctx, &entry.Product, entry.ProductID)
	return &entry, nil
}

// attachProduct copies the live product onto the record; a product that
// no longer exists is skipped silently.
func (s *Store) attachProduct(ctx context.Context, dst **models.Product, id primitive.ObjectID) {
	var product models.Product
	if err := s.products.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		return
	}
	*dst = &product
}
