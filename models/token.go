package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CollectionTokens   = "tokens"
	CollectionHoldings = "holdings"
)

type TokenStatus string

// types of token minting status
const (
	TokenStatusOpen            TokenStatus = "open"
	TokenStatusCountdownActive TokenStatus = "countdown_active"
	TokenStatusClosed          TokenStatus = "closed"
)

type Token struct {
	Id                  *primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	TokenID             int64               `bson:"token_id" json:"token_id"`
	Creator             string              `bson:"creator" json:"creator"`
	FirstMinter         string              `bson:"first_minter" json:"first_minter"`
	MintPrice           string              `bson:"mint_price" json:"mint_price"`
	IsCustomPrice       bool                `bson:"is_custom_price" json:"is_custom_price"`
	MintEndTime         time.Time           `bson:"mint_end_time" json:"mint_end_time"`
	TotalMinted         int64               `bson:"total_minted" json:"total_minted"`
	FinalCountdownStart time.Time           `bson:"final_countdown_start" json:"final_countdown_start"`
	Status              TokenStatus         `bson:"status" json:"status"`
	Referrer            string              `bson:"referrer" json:"referrer"`
	TokenURI            string              `bson:"token_uri" json:"token_uri"`
	CreatedAt           time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt           time.Time           `bson:"updated_at" json:"updated_at"`
}

// Holding is the per-owner unit balance of a token id
type Holding struct {
	Id        *primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	TokenID   int64               `bson:"token_id" json:"token_id"`
	Owner     string              `bson:"owner" json:"owner"`
	Amount    int64               `bson:"amount" json:"amount"`
	UpdatedAt time.Time           `bson:"updated_at" json:"updated_at"`
}
