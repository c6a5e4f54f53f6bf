package engine

import (
	"math/big"
	"strconv"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	log "github.com/sirupsen/logrus"

	"github.com/zoriumlabs/zorium-ledger/models"
)

const (
	LedgerEngineName = "ledger engine"
)

// Engine is the single-writer command processor over the ledger. Every
// operation, reads included, is submitted to one goroutine and runs to
// completion before the next is admitted, so a command sees a consistent
// ledger and a failed precondition never leaves partial state behind.
type Engine struct {
	wg     *sync.WaitGroup
	stop   chan bool
	done   chan struct{}
	cmds   chan func()
	params Params
	ledger *Ledger
	now    func() time.Time

	healthMu        sync.RWMutex
	seq             int64
	lastCommandTime time.Time
}

func NewEngine(wg *sync.WaitGroup, params Params) *Engine {
	return &Engine{
		wg:     wg,
		stop:   make(chan bool, 1),
		done:   make(chan struct{}),
		cmds:   make(chan func()),
		params: params,
		ledger: NewLedger(params.FeeRecipient),
		now:    time.Now,
	}
}

func (e *Engine) Start() {
	log.Info("[LEDGER] Starting engine")
	stop := false
	for !stop {
		select {
		case cmd := <-e.cmds:
			cmd()
		case <-e.stop:
			stop = true
			log.Info("[LEDGER] Stopped engine")
		}
	}
	close(e.done)
	e.wg.Done()
}

func (e *Engine) Stop() {
	log.Debug("[LEDGER] Stopping engine")
	e.stop <- true
}

func (e *Engine) Health() models.ServiceHealth {
	e.healthMu.RLock()
	defer e.healthMu.RUnlock()

	return models.ServiceHealth{
		Name:           LedgerEngineName,
		LastSyncTime:   e.lastCommandTime,
		NextSyncTime:   e.lastCommandTime,
		CommandSeq:     strconv.FormatInt(e.seq, 10),
		EthBlockNumber: "",
		Healthy:        true,
	}
}

// Status reports the engine's command sequence for the runner host.
func (e *Engine) Status() models.RunnerStatus {
	e.healthMu.RLock()
	defer e.healthMu.RUnlock()

	return models.RunnerStatus{
		CommandSeq:     strconv.FormatInt(e.seq, 10),
		EthBlockNumber: "",
	}
}

// do submits a command to the loop and waits for its result. Once the loop
// has exited nothing drains cmds anymore, so commands racing with shutdown
// fail instead of blocking their caller forever.
func (e *Engine) do(fn func() error) error {
	errCh := make(chan error, 1)
	select {
	case e.cmds <- func() { errCh <- fn() }:
		return <-errCh
	case <-e.done:
		return ErrEngineStopped
	}
}

func (e *Engine) bumpSeq() {
	e.healthMu.Lock()
	defer e.healthMu.Unlock()
	e.seq++
	e.lastCommandTime = e.now()
}

func (e *Engine) requiredUnitPrice(t *Token) *big.Int {
	if t.IsCustomPrice {
		return t.MintPrice
	}
	return e.params.DefaultMintPrice
}

var zeroAddress = common.Address{}

// CreateToken registers a new token id with its own price mode and minting
// deadline. No payment and no supply yet; the canonical first mint happens
// through Mint.
func (e *Engine) CreateToken(creator common.Address, tokenURI string, customPrice *big.Int, mintDuration time.Duration) (int64, error) {
	var id int64
	err := e.do(func() error {
		var err error
		id, err = e.createToken(creator, tokenURI, customPrice, mintDuration)
		return err
	})
	return id, err
}

// CreateTokenSimple registers a default-price token with the default
// minting duration.
func (e *Engine) CreateTokenSimple(creator common.Address, tokenURI string) (int64, error) {
	return e.CreateToken(creator, tokenURI, nil, 0)
}

func (e *Engine) createToken(creator common.Address, tokenURI string, customPrice *big.Int, mintDuration time.Duration) (int64, error) {
	if e.ledger.Paused {
		return 0, ErrContractPaused
	}
	if creator == zeroAddress {
		return 0, ErrInvalidRecipient
	}
	if !ValidTokenURI(tokenURI) {
		return 0, ErrInvalidTokenURI
	}
	isCustom := customPrice != nil
	if isCustom && customPrice.Sign() <= 0 {
		return 0, ErrInvalidPrice
	}
	if mintDuration <= 0 {
		mintDuration = e.params.DefaultMintDuration
	}

	now := e.now()
	token := &Token{
		ID:            e.ledger.NextTokenID,
		Creator:       creator,
		MintPrice:     big.NewInt(0),
		IsCustomPrice: isCustom,
		MintEndTime:   now.Add(mintDuration),
		TokenURI:      tokenURI,
	}
	if isCustom {
		token.MintPrice = new(big.Int).Set(customPrice)
	}

	e.ledger.NextTokenID++
	e.ledger.Tokens[token.ID] = token
	e.persistToken(token)
	e.bumpSeq()

	log.Info("[LEDGER] Created token: ", token.ID, " creator: ", creator.Hex(), " custom price: ", isCustom)
	return token.ID, nil
}

// Mint mints one unit of an existing token to the recipient. The first mint
// of a token is its canonical mint: it records the first minter, the
// referrer and the price actually paid. A creator's first default-price
// mint is free exactly once per address.
func (e *Engine) Mint(minter common.Address, tokenID int64, recipient common.Address, referrer common.Address, value *big.Int) error {
	return e.do(func() error {
		return e.mint(minter, tokenID, recipient, referrer, value)
	})
}

func (e *Engine) mint(minter common.Address, tokenID int64, recipient common.Address, referrer common.Address, value *big.Int) error {
	if e.ledger.Paused {
		return ErrContractPaused
	}
	if minter == zeroAddress || recipient == zeroAddress {
		return ErrInvalidRecipient
	}
	token, ok := e.ledger.Tokens[tokenID]
	if !ok {
		return ErrTokenNotFound
	}

	now := e.now()
	if !token.MintingActiveAt(now, e.params.FinalCountdownDuration) {
		return ErrMintingClosed
	}

	if value == nil {
		value = big.NewInt(0)
	}

	free := !token.IsCustomPrice &&
		value.Sign() == 0 &&
		minter == token.Creator &&
		!e.ledger.HasMintedFree[minter]

	price := big.NewInt(0)
	if !free {
		price = e.requiredUnitPrice(token)
		if value.Cmp(price) < 0 {
			return ErrInsufficientPayment
		}
	}

	// all preconditions hold, mutate
	if token.TotalMinted == 0 {
		token.FirstMinter = minter
		token.Referrer = referrer
		token.MintPrice = new(big.Int).Set(price)
	}

	if free {
		e.ledger.HasMintedFree[minter] = true
		e.persistFreeMint(minter, token.ID)
		log.Info("[LEDGER] Free creator mint: token ", token.ID, " creator: ", minter.Hex())
	} else {
		hasReferrer := referrer != zeroAddress
		fees := CalculateMintFees(price, hasReferrer, token.IsCustomPrice)
		e.ledger.creditFees(token.Creator, fees.Creator)
		e.ledger.creditFees(token.FirstMinter, fees.FirstMinter)
		if hasReferrer {
			e.ledger.creditFees(referrer, fees.Referral)
		}
		e.ledger.creditPlatform(fees.Platform)

		// excess over the price is refunded through the payer's balance
		excess := new(big.Int).Sub(value, price)
		e.ledger.creditFees(minter, excess)

		e.persistBalance(token.Creator)
		e.persistBalance(token.FirstMinter)
		if hasReferrer {
			e.persistBalance(referrer)
		}
		e.persistBalance(minter)
		e.persistPlatformBalance()
	}

	token.TotalMinted++
	if token.maybeStartCountdown(now, e.params.TriggerSupply) {
		log.Info("[LEDGER] Final countdown started for token: ", token.ID, " at supply: ", token.TotalMinted)
	}
	e.ledger.addHolding(token.ID, recipient, 1)

	e.persistToken(token)
	e.persistHolding(token.ID, recipient)
	e.bumpSeq()

	log.Info("[LEDGER] Minted token: ", token.ID, " to: ", recipient.Hex(), " price: ", price.String())
	return nil
}

// ListForSale creates an active listing for amount units of a token the
// seller holds.
func (e *Engine) ListForSale(seller common.Address, tokenID int64, amount int64, pricePerToken *big.Int) (int64, error) {
	var id int64
	err := e.do(func() error {
		var err error
		id, err = e.listForSale(seller, tokenID, amount, pricePerToken)
		return err
	})
	return id, err
}

func (e *Engine) listForSale(seller common.Address, tokenID int64, amount int64, pricePerToken *big.Int) (int64, error) {
	if e.ledger.Paused {
		return 0, ErrContractPaused
	}
	if seller == zeroAddress {
		return 0, ErrInvalidRecipient
	}
	if _, ok := e.ledger.Tokens[tokenID]; !ok {
		return 0, ErrTokenNotFound
	}
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	if pricePerToken == nil || pricePerToken.Sign() <= 0 {
		return 0, ErrInvalidPrice
	}
	if e.ledger.holdingOf(tokenID, seller) < amount {
		return 0, ErrNotTokenOwner
	}

	listing := &Listing{
		ID:            e.ledger.NextListingID,
		TokenID:       tokenID,
		Seller:        seller,
		Amount:        amount,
		PricePerToken: new(big.Int).Set(pricePerToken),
		Active:        true,
	}
	e.ledger.NextListingID++
	e.ledger.Listings[listing.ID] = listing

	e.persistListing(listing)
	e.bumpSeq()

	log.Info("[LEDGER] Listed token: ", tokenID, " listing: ", listing.ID, " amount: ", amount, " price: ", pricePerToken.String())
	return listing.ID, nil
}

// BuyNFT purchases an active listing in full. Payment must match the
// listing total exactly; sale fees are credited to the accumulated
// balances, never paid out inline.
func (e *Engine) BuyNFT(buyer common.Address, listingID int64, amount int64, value *big.Int) error {
	return e.do(func() error {
		return e.buyNFT(buyer, listingID, amount, value)
	})
}

func (e *Engine) buyNFT(buyer common.Address, listingID int64, amount int64, value *big.Int) error {
	if e.ledger.Paused {
		return ErrContractPaused
	}
	if buyer == zeroAddress {
		return ErrInvalidRecipient
	}
	listing, ok := e.ledger.Listings[listingID]
	if !ok || !listing.Active {
		return ErrListingInactive
	}
	if buyer == listing.Seller {
		return ErrCannotBuyOwnListing
	}
	// listings fill all or nothing
	if amount != listing.Amount {
		return ErrInvalidAmount
	}
	total := new(big.Int).Mul(listing.PricePerToken, big.NewInt(amount))
	if value == nil || value.Cmp(total) != 0 {
		return ErrInsufficientPayment
	}
	if e.ledger.holdingOf(listing.TokenID, listing.Seller) < amount {
		return ErrNotTokenOwner
	}
	token, ok := e.ledger.Tokens[listing.TokenID]
	if !ok {
		return ErrTokenNotFound
	}

	fees := CalculateSaleFees(total)
	e.ledger.creditFees(token.Creator, fees.Royalty)
	e.ledger.creditPlatform(fees.Marketplace)
	e.ledger.creditFees(listing.Seller, fees.Seller)

	e.ledger.addHolding(listing.TokenID, listing.Seller, -amount)
	e.ledger.addHolding(listing.TokenID, buyer, amount)
	listing.Active = false

	e.persistListing(listing)
	e.persistHolding(listing.TokenID, listing.Seller)
	e.persistHolding(listing.TokenID, buyer)
	e.persistBalance(token.Creator)
	e.persistBalance(listing.Seller)
	e.persistPlatformBalance()
	e.bumpSeq()

	log.Info("[LEDGER] Sold listing: ", listingID, " token: ", listing.TokenID, " to: ", buyer.Hex(), " total: ", total.String())
	return nil
}

// DelistNFT deactivates a listing; only its seller may do so, and delisting
// an inactive listing fails loudly.
func (e *Engine) DelistNFT(seller common.Address, listingID int64) error {
	return e.do(func() error {
		return e.delistNFT(seller, listingID)
	})
}

func (e *Engine) delistNFT(seller common.Address, listingID int64) error {
	if e.ledger.Paused {
		return ErrContractPaused
	}
	listing, ok := e.ledger.Listings[listingID]
	if !ok || !listing.Active {
		return ErrListingInactive
	}
	if seller != listing.Seller {
		return ErrNotTokenOwner
	}

	listing.Active = false
	e.persistListing(listing)
	e.bumpSeq()

	log.Info("[LEDGER] Delisted listing: ", listingID)
	return nil
}

// WithdrawFees pays out the caller's entire accumulated balance. The
// balance is zeroed in the same command that enqueues the payout, so a
// second withdraw sees nothing to pay.
func (e *Engine) WithdrawFees(caller common.Address) (*big.Int, error) {
	var amount *big.Int
	err := e.do(func() error {
		var err error
		amount, err = e.withdrawFees(caller)
		return err
	})
	return amount, err
}

func (e *Engine) withdrawFees(caller common.Address) (*big.Int, error) {
	if e.ledger.Paused {
		return nil, ErrContractPaused
	}
	if caller == zeroAddress {
		return nil, ErrInvalidRecipient
	}
	balance := e.ledger.feesOf(caller)
	if balance.Sign() == 0 {
		return nil, ErrNoFeesToWithdraw
	}

	amount := new(big.Int).Set(balance)
	if err := e.insertPayout(caller, amount); err != nil {
		return nil, err
	}
	balance.SetInt64(0)

	e.persistBalance(caller)
	e.bumpSeq()

	log.Info("[LEDGER] Withdrawal queued for: ", caller.Hex(), " amount: ", amount.String())
	return amount, nil
}

// WithdrawPlatformFees pays the accumulated platform fees to the configured
// fee recipient. Admin only.
func (e *Engine) WithdrawPlatformFees(caller common.Address) (*big.Int, error) {
	var amount *big.Int
	err := e.do(func() error {
		var err error
		amount, err = e.withdrawPlatformFees(caller)
		return err
	})
	return amount, err
}

func (e *Engine) withdrawPlatformFees(caller common.Address) (*big.Int, error) {
	if e.ledger.Paused {
		return nil, ErrContractPaused
	}
	if caller != e.params.Admin {
		return nil, ErrUnauthorized
	}
	if e.ledger.PlatformFees.Sign() == 0 {
		return nil, ErrNoFeesToWithdraw
	}

	amount := new(big.Int).Set(e.ledger.PlatformFees)
	if err := e.insertPayout(e.ledger.FeeRecipient, amount); err != nil {
		return nil, err
	}
	e.ledger.PlatformFees.SetInt64(0)

	e.persistPlatformBalance()
	e.bumpSeq()

	log.Info("[LEDGER] Platform withdrawal queued for: ", e.ledger.FeeRecipient.Hex(), " amount: ", amount.String())
	return amount, nil
}

// SetPlatformFeeRecipient changes where platform withdrawals are paid.
// Admin only.
func (e *Engine) SetPlatformFeeRecipient(caller common.Address, recipient common.Address) error {
	return e.do(func() error {
		if caller != e.params.Admin {
			return ErrUnauthorized
		}
		if recipient == zeroAddress {
			return ErrInvalidRecipient
		}
		e.ledger.FeeRecipient = recipient
		e.persistSetting(models.SettingFeeRecipient, recipient.Hex())
		e.bumpSeq()
		log.Info("[LEDGER] Platform fee recipient set to: ", recipient.Hex())
		return nil
	})
}

// Pause rejects all mutating commands until Unpause. Admin only.
func (e *Engine) Pause(caller common.Address) error {
	return e.do(func() error {
		if caller != e.params.Admin {
			return ErrUnauthorized
		}
		e.ledger.Paused = true
		e.persistSetting(models.SettingPaused, "true")
		e.bumpSeq()
		log.Info("[LEDGER] Ledger paused")
		return nil
	})
}

func (e *Engine) Unpause(caller common.Address) error {
	return e.do(func() error {
		if caller != e.params.Admin {
			return ErrUnauthorized
		}
		e.ledger.Paused = false
		e.persistSetting(models.SettingPaused, "false")
		e.bumpSeq()
		log.Info("[LEDGER] Ledger unpaused")
		return nil
	})
}

// read views, served through the same loop for a consistent snapshot

func (e *Engine) GetTokenInfo(tokenID int64) (TokenInfo, error) {
	var info TokenInfo
	err := e.do(func() error {
		token, ok := e.ledger.Tokens[tokenID]
		if !ok {
			return ErrTokenNotFound
		}
		info = TokenInfo{
			TokenID:             token.ID,
			Creator:             token.Creator,
			FirstMinter:         token.FirstMinter,
			MintPrice:           new(big.Int).Set(token.MintPrice),
			IsCustomPrice:       token.IsCustomPrice,
			MintEndTime:         token.MintEndTime,
			TotalMinted:         token.TotalMinted,
			FinalCountdownStart: token.FinalCountdownStart,
			Status:              string(token.StatusAt(e.now(), e.params.FinalCountdownDuration)),
			Referrer:            token.Referrer,
			TokenURI:            token.TokenURI,
		}
		return nil
	})
	return info, err
}

func (e *Engine) IsMintingActive(tokenID int64) (bool, error) {
	var active bool
	err := e.do(func() error {
		token, ok := e.ledger.Tokens[tokenID]
		if !ok {
			return ErrTokenNotFound
		}
		active = token.MintingActiveAt(e.now(), e.params.FinalCountdownDuration)
		return nil
	})
	return active, err
}

func (e *Engine) GetCountdownTimeLeft(tokenID int64) (time.Duration, error) {
	var left time.Duration
	err := e.do(func() error {
		token, ok := e.ledger.Tokens[tokenID]
		if !ok {
			return ErrTokenNotFound
		}
		left = token.CountdownTimeLeftAt(e.now(), e.params.FinalCountdownDuration)
		return nil
	})
	return left, err
}

func (e *Engine) BalanceOf(owner common.Address, tokenID int64) int64 {
	var amount int64
	_ = e.do(func() error {
		amount = e.ledger.holdingOf(tokenID, owner)
		return nil
	})
	return amount
}

func (e *Engine) TotalSupply(tokenID int64) int64 {
	var supply int64
	_ = e.do(func() error {
		if token, ok := e.ledger.Tokens[tokenID]; ok {
			supply = token.TotalMinted
		}
		return nil
	})
	return supply
}

func (e *Engine) URI(tokenID int64) (string, error) {
	var uri string
	err := e.do(func() error {
		token, ok := e.ledger.Tokens[tokenID]
		if !ok {
			return ErrTokenNotFound
		}
		uri = token.TokenURI
		return nil
	})
	return uri, err
}

func (e *Engine) AccumulatedFees(addr common.Address) *big.Int {
	amount := big.NewInt(0)
	_ = e.do(func() error {
		amount.Set(e.ledger.feesOf(addr))
		return nil
	})
	return amount
}

func (e *Engine) PlatformAccumulatedFees() *big.Int {
	amount := big.NewInt(0)
	_ = e.do(func() error {
		amount.Set(e.ledger.PlatformFees)
		return nil
	})
	return amount
}

func (e *Engine) GetListing(listingID int64) (Listing, error) {
	var listing Listing
	err := e.do(func() error {
		l, ok := e.ledger.Listings[listingID]
		if !ok {
			return ErrListingInactive
		}
		listing = *l
		listing.PricePerToken = new(big.Int).Set(l.PricePerToken)
		return nil
	})
	return listing, err
}

func (e *Engine) Paused() bool {
	var paused bool
	_ = e.do(func() error {
		paused = e.ledger.Paused
		return nil
	})
	return paused
}
