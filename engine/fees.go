package engine

import (
	"math/big"
)

// Fee shares are fixed-point basis points out of 10000. The platform share
// is always computed as the remainder after the other shares, so the parts
// sum exactly to the price and integer-division truncation lands on the
// platform, never gets lost.
const (
	BasisPoints = 10000

	// default-price mint split
	DefaultCreatorShareBps     = 5000
	DefaultFirstMinterShareBps = 1000
	DefaultReferralShareBps    = 2000

	// custom-price mint split
	CustomCreatorShareBps = 9500

	// resale split
	SaleRoyaltyBps        = 250
	SaleMarketplaceFeeBps = 250
	SaleSellerShareBps    = BasisPoints - SaleRoyaltyBps - SaleMarketplaceFeeBps
)

type MintFees struct {
	Creator     *big.Int
	FirstMinter *big.Int
	Referral    *big.Int
	Platform    *big.Int
}

type SaleFees struct {
	Royalty     *big.Int
	Marketplace *big.Int
	Seller      *big.Int
}

func bpsShare(price *big.Int, bps int64) *big.Int {
	share := new(big.Int).Mul(price, big.NewInt(bps))
	return share.Div(share, big.NewInt(BasisPoints))
}

// CalculateMintFees splits a mint price four ways. Custom-price tokens pay
// no first-minter or referral incentives; without a referrer the referral
// share is absorbed by the platform.
func CalculateMintFees(price *big.Int, hasReferrer bool, isCustomPrice bool) MintFees {
	fees := MintFees{
		Creator:     big.NewInt(0),
		FirstMinter: big.NewInt(0),
		Referral:    big.NewInt(0),
		Platform:    big.NewInt(0),
	}
	if price == nil || price.Sign() <= 0 {
		return fees
	}

	if isCustomPrice {
		fees.Creator = bpsShare(price, CustomCreatorShareBps)
	} else {
		fees.Creator = bpsShare(price, DefaultCreatorShareBps)
		fees.FirstMinter = bpsShare(price, DefaultFirstMinterShareBps)
		if hasReferrer {
			fees.Referral = bpsShare(price, DefaultReferralShareBps)
		}
	}

	fees.Platform = new(big.Int).Set(price)
	fees.Platform.Sub(fees.Platform, fees.Creator)
	fees.Platform.Sub(fees.Platform, fees.FirstMinter)
	fees.Platform.Sub(fees.Platform, fees.Referral)

	return fees
}

// CalculateSaleFees splits a resale price into royalty, marketplace fee and
// seller proceeds. The marketplace (platform) share takes the remainder.
func CalculateSaleFees(price *big.Int) SaleFees {
	fees := SaleFees{
		Royalty:     big.NewInt(0),
		Marketplace: big.NewInt(0),
		Seller:      big.NewInt(0),
	}
	if price == nil || price.Sign() <= 0 {
		return fees
	}

	fees.Royalty = bpsShare(price, SaleRoyaltyBps)
	fees.Seller = bpsShare(price, SaleSellerShareBps)

	fees.Marketplace = new(big.Int).Set(price)
	fees.Marketplace.Sub(fees.Marketplace, fees.Royalty)
	fees.Marketplace.Sub(fees.Marketplace, fees.Seller)

	return fees
}
