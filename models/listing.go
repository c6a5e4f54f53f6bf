package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CollectionListings = "listings"
)

type Listing struct {
	Id            *primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ListingID     int64               `bson:"listing_id" json:"listing_id"`
	TokenID       int64               `bson:"token_id" json:"token_id"`
	Seller        string              `bson:"seller" json:"seller"`
	Amount        int64               `bson:"amount" json:"amount"`
	PricePerToken string              `bson:"price_per_token" json:"price_per_token"`
	Active        bool                `bson:"active" json:"active"`
	CreatedAt     time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time           `bson:"updated_at" json:"updated_at"`
}
