package models

import "time"

const (
	CollectionSettings = "settings"
)

// settings keys
const (
	SettingFeeRecipient = "platform_fee_recipient"
	SettingPaused       = "paused"
)

type Setting struct {
	Key       string    `bson:"key" json:"key"`
	Value     string    `bson:"value" json:"value"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
