package engine

import (
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/zoriumlabs/zorium-ledger/models"
)

// Token is the in-memory record for one token id. Created at the canonical
// mint, mutated only by later mints of the same id and by the countdown
// latch, never deleted.
type Token struct {
	ID                  int64
	Creator             common.Address
	FirstMinter         common.Address
	MintPrice           *big.Int
	IsCustomPrice       bool
	MintEndTime         time.Time
	TotalMinted         int64
	FinalCountdownStart time.Time
	Referrer            common.Address
	TokenURI            string

	// status last written to the mongo mirror, not part of the record
	mirroredStatus models.TokenStatus
}

type Listing struct {
	ID            int64
	TokenID       int64
	Seller        common.Address
	Amount        int64
	PricePerToken *big.Int
	Active        bool
}

// TokenInfo is the read-view projection of a token, with the derived status
// at the time of the query.
type TokenInfo struct {
	TokenID             int64
	Creator             common.Address
	FirstMinter         common.Address
	MintPrice           *big.Int
	IsCustomPrice       bool
	MintEndTime         time.Time
	TotalMinted         int64
	FinalCountdownStart time.Time
	Status              string
	Referrer            common.Address
	TokenURI            string
}

// ValidTokenURI reports whether uri looks like an IPFS pointer: the
// "ipfs://" prefix followed by at least one character that is not just "/".
func ValidTokenURI(uri string) bool {
	const prefix = "ipfs://"
	if !strings.HasPrefix(uri, prefix) {
		return false
	}
	rest := strings.TrimPrefix(uri, prefix)
	if rest == "" || rest == "/" {
		return false
	}
	return true
}
