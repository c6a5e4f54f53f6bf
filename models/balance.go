package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CollectionBalances  = "balances"
	CollectionPayouts   = "payouts"
	CollectionFreeMints = "freemints"
)

// PlatformBalanceAddress keys the platform's accumulated fees in the
// balances collection, separate from any user address.
const PlatformBalanceAddress = "platform"

type Balance struct {
	Id        *primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Address   string              `bson:"address" json:"address"`
	Amount    string              `bson:"amount" json:"amount"`
	UpdatedAt time.Time           `bson:"updated_at" json:"updated_at"`
}

// FreeMint records that an address has used its one-time free creator mint.
type FreeMint struct {
	Id        *primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Address   string              `bson:"address" json:"address"`
	TokenID   int64               `bson:"token_id" json:"token_id"`
	CreatedAt time.Time           `bson:"created_at" json:"created_at"`
}

// types of payout status
const (
	PayoutStatusPending = "pending"
	PayoutStatusSent    = "sent"
	PayoutStatusSuccess = "success"
	PayoutStatusFailed  = "failed"
)

type Payout struct {
	Id        *primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Recipient string              `bson:"recipient" json:"recipient"`
	Amount    string              `bson:"amount" json:"amount"`
	Status    string              `bson:"status" json:"status"`
	TxHash    string              `bson:"tx_hash" json:"tx_hash"`
	CreatedAt time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time           `bson:"updated_at" json:"updated_at"`
}
