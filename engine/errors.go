package engine

import "errors"

// Every command that returns one of these errors leaves the ledger untouched.
var (
	ErrInsufficientPayment = errors.New("insufficient payment")
	ErrInvalidTokenURI     = errors.New("invalid token uri")
	ErrInvalidRecipient    = errors.New("invalid recipient")
	ErrInvalidPrice        = errors.New("invalid price")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrMintingClosed       = errors.New("minting closed")
	ErrTokenNotFound       = errors.New("token not found")
	ErrNotTokenOwner       = errors.New("not token owner")
	ErrCannotBuyOwnListing = errors.New("cannot buy own listing")
	ErrListingInactive     = errors.New("listing inactive")
	ErrNoFeesToWithdraw    = errors.New("no fees to withdraw")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrContractPaused      = errors.New("ledger paused")
	ErrEngineStopped       = errors.New("engine stopped")
)
