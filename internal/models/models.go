package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty"            json:"_id,omitempty"`
	Name                   string             `bson:"name"                     json:"name"`
	Brand                  string             `bson:"brand"                    json:"brand"`
	Category               string             `bson:"category"                 json:"category"`
	Description            string             `bson:"description"              json:"description"`
	Image                  string             `bson:"image"                    json:"image"`
	Price                  float64            `bson:"price"                    json:"price"`
	Quantity               int64              `bson:"quantity"                 json:"quantity"`
	MinimumSellingQuantity int64              `bson:"minimum_selling_quantity" json:"minimum_selling_quantity"`
	Rating                 int                `bson:"rating"                   json:"rating"`
	OwnerEmail             string             `bson:"owner_email"              json:"owner_email"`
	CreatedAt              time.Time          `bson:"created_at"               json:"created_at"`
}

type Category struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name        string             `bson:"name"          json:"name"`
	Image       string             `bson:"image"         json:"image"`
	Description string             `bson:"description"   json:"description"`
}

// Product is filled at read time from the live product record and is
// never persisted with the entry.
type CartEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ProductID primitive.ObjectID `bson:"product_id"    json:"product_id"`
	Email     string             `bson:"email"         json:"email"`
	Quantity  int64              `bson:"quantity"      json:"quantity"`
	AddedAt   time.Time          `bson:"added_at"      json:"added_at"`
	Product   *Product           `bson:"-"             json:"product,omitempty"`
}

type Order struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email     string             `bson:"email"         json:"email"`
	ProductID primitive.ObjectID `bson:"product_id"    json:"product_id"`
	Quantity  int64              `bson:"quantity"      json:"quantity"`
	UnitPrice float64            `bson:"unit_price"    json:"unit_price"`
	Total     float64            `bson:"total"         json:"total"`
	CreatedAt time.Time          `bson:"created_at"    json:"created_at"`
	Product   *Product           `bson:"-"             json:"product,omitempty"`
}

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"           json:"_id,omitempty"`
	Email        string             `bson:"email"                   json:"email"`
	Name         string             `bson:"name"                    json:"name"`
	Photo        string             `bson:"photo"                   json:"photo"`
	Role         string             `bson:"role"                    json:"role"`
	PasswordHash string             `bson:"password_hash,omitempty" json:"-"`
	CreatedAt    time.Time          `bson:"created_at"              json:"created_at"`
}
