package engine

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

type holdingKey struct {
	TokenID int64
	Owner   common.Address
}

// Ledger is the single mutable state shared by the fee engine, the token
// lifecycle and the marketplace. It is owned by the engine's command loop
// and never touched from outside it.
type Ledger struct {
	Tokens        map[int64]*Token
	Holdings      map[holdingKey]int64
	Listings      map[int64]*Listing
	Fees          map[common.Address]*big.Int
	PlatformFees  *big.Int
	HasMintedFree map[common.Address]bool
	NextTokenID   int64
	NextListingID int64
	FeeRecipient  common.Address
	Paused        bool
}

func NewLedger(feeRecipient common.Address) *Ledger {
	return &Ledger{
		Tokens:        make(map[int64]*Token),
		Holdings:      make(map[holdingKey]int64),
		Listings:      make(map[int64]*Listing),
		Fees:          make(map[common.Address]*big.Int),
		PlatformFees:  big.NewInt(0),
		HasMintedFree: make(map[common.Address]bool),
		NextTokenID:   1,
		NextListingID: 1,
		FeeRecipient:  feeRecipient,
	}
}

func (l *Ledger) creditFees(addr common.Address, amount *big.Int) {
	if amount == nil || amount.Sign() <= 0 {
		return
	}
	balance, ok := l.Fees[addr]
	if !ok {
		balance = big.NewInt(0)
		l.Fees[addr] = balance
	}
	balance.Add(balance, amount)
}

func (l *Ledger) creditPlatform(amount *big.Int) {
	if amount == nil || amount.Sign() <= 0 {
		return
	}
	l.PlatformFees.Add(l.PlatformFees, amount)
}

func (l *Ledger) feesOf(addr common.Address) *big.Int {
	if balance, ok := l.Fees[addr]; ok {
		return balance
	}
	return big.NewInt(0)
}

func (l *Ledger) holdingOf(tokenID int64, owner common.Address) int64 {
	return l.Holdings[holdingKey{TokenID: tokenID, Owner: owner}]
}

func (l *Ledger) addHolding(tokenID int64, owner common.Address, delta int64) int64 {
	key := holdingKey{TokenID: tokenID, Owner: owner}
	l.Holdings[key] += delta
	return l.Holdings[key]
}
