package engine

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	log "github.com/sirupsen/logrus"

	"github.com/zoriumlabs/zorium-ledger/app"
)

const (
	// DefaultMintPriceWei is the platform-wide default mint price,
	// 0.000111 ether.
	DefaultMintPriceWei = "111000000000000"

	DefaultTriggerSupply          int64 = 1000
	DefaultFinalCountdownDuration       = 48 * time.Hour
	DefaultMintDuration                 = 30 * 24 * time.Hour
)

type Params struct {
	DefaultMintPrice       *big.Int
	TriggerSupply          int64
	FinalCountdownDuration time.Duration
	DefaultMintDuration    time.Duration
	Admin                  common.Address
	FeeRecipient           common.Address
}

func DefaultParams() Params {
	price, _ := new(big.Int).SetString(DefaultMintPriceWei, 10)
	return Params{
		DefaultMintPrice:       price,
		TriggerSupply:          DefaultTriggerSupply,
		FinalCountdownDuration: DefaultFinalCountdownDuration,
		DefaultMintDuration:    DefaultMintDuration,
	}
}

// ParamsFromConfig builds engine parameters from the global config,
// falling back to the platform defaults for unset values.
func ParamsFromConfig() Params {
	params := DefaultParams()
	cfg := app.Config.Ledger

	if cfg.AdminAddress == "" {
		log.Fatal("[LEDGER] Ledger.AdminAddress is required")
	}
	if !common.IsHexAddress(cfg.AdminAddress) {
		log.Fatal("[LEDGER] Ledger.AdminAddress is not a valid address: ", cfg.AdminAddress)
	}
	params.Admin = common.HexToAddress(cfg.AdminAddress)

	if cfg.PlatformFeeRecipient == "" {
		log.Fatal("[LEDGER] Ledger.PlatformFeeRecipient is required")
	}
	if !common.IsHexAddress(cfg.PlatformFeeRecipient) {
		log.Fatal("[LEDGER] Ledger.PlatformFeeRecipient is not a valid address: ", cfg.PlatformFeeRecipient)
	}
	params.FeeRecipient = common.HexToAddress(cfg.PlatformFeeRecipient)

	if cfg.DefaultMintPriceWei != "" {
		price, ok := new(big.Int).SetString(cfg.DefaultMintPriceWei, 10)
		if !ok || price.Sign() <= 0 {
			log.Fatal("[LEDGER] Invalid Ledger.DefaultMintPriceWei: ", cfg.DefaultMintPriceWei)
		}
		params.DefaultMintPrice = price
	}
	if cfg.TriggerSupply > 0 {
		params.TriggerSupply = cfg.TriggerSupply
	}
	if cfg.FinalCountdownHours > 0 {
		params.FinalCountdownDuration = time.Duration(cfg.FinalCountdownHours) * time.Hour
	}
	if cfg.DefaultMintDurationHours > 0 {
		params.DefaultMintDuration = time.Duration(cfg.DefaultMintDurationHours) * time.Hour
	}

	return params
}
