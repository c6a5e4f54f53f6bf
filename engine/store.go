package engine

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/zoriumlabs/zorium-ledger/app"
	"github.com/zoriumlabs/zorium-ledger/models"
)

// The mongo collections are a mirror of the in-memory ledger for off-chain
// readers and for restart recovery. The ledger in memory is authoritative:
// mirror writes log failures instead of failing the command. The one
// exception is the payout queue, which is the handoff to the payout
// executor and must be durable before a balance is zeroed.

func (e *Engine) tokenDoc(t *Token) models.Token {
	now := e.now()
	return models.Token{
		TokenID:             t.ID,
		Creator:             t.Creator.Hex(),
		FirstMinter:         t.FirstMinter.Hex(),
		MintPrice:           t.MintPrice.String(),
		IsCustomPrice:       t.IsCustomPrice,
		MintEndTime:         t.MintEndTime,
		TotalMinted:         t.TotalMinted,
		FinalCountdownStart: t.FinalCountdownStart,
		Status:              t.StatusAt(now, e.params.FinalCountdownDuration),
		Referrer:            t.Referrer.Hex(),
		TokenURI:            t.TokenURI,
		UpdatedAt:           now,
	}
}

func (e *Engine) persistToken(t *Token) {
	doc := e.tokenDoc(t)
	err := app.DB.UpsertOne(models.CollectionTokens, bson.M{"token_id": t.ID}, bson.M{"$set": doc})
	if err != nil {
		log.Error("[LEDGER] Error while storing token in db: ", err)
		return
	}
	t.mirroredStatus = doc.Status
}

func (e *Engine) persistHolding(tokenID int64, owner common.Address) {
	doc := models.Holding{
		TokenID:   tokenID,
		Owner:     owner.Hex(),
		Amount:    e.ledger.holdingOf(tokenID, owner),
		UpdatedAt: e.now(),
	}
	filter := bson.M{"token_id": tokenID, "owner": doc.Owner}
	err := app.DB.UpsertOne(models.CollectionHoldings, filter, bson.M{"$set": doc})
	if err != nil {
		log.Error("[LEDGER] Error while storing holding in db: ", err)
	}
}

func (e *Engine) persistListing(l *Listing) {
	doc := models.Listing{
		ListingID:     l.ID,
		TokenID:       l.TokenID,
		Seller:        l.Seller.Hex(),
		Amount:        l.Amount,
		PricePerToken: l.PricePerToken.String(),
		Active:        l.Active,
		UpdatedAt:     e.now(),
	}
	err := app.DB.UpsertOne(models.CollectionListings, bson.M{"listing_id": l.ID}, bson.M{"$set": doc})
	if err != nil {
		log.Error("[LEDGER] Error while storing listing in db: ", err)
	}
}

func (e *Engine) persistBalance(addr common.Address) {
	doc := models.Balance{
		Address:   addr.Hex(),
		Amount:    e.ledger.feesOf(addr).String(),
		UpdatedAt: e.now(),
	}
	err := app.DB.UpsertOne(models.CollectionBalances, bson.M{"address": doc.Address}, bson.M{"$set": doc})
	if err != nil {
		log.Error("[LEDGER] Error while storing balance in db: ", err)
	}
}

func (e *Engine) persistPlatformBalance() {
	doc := models.Balance{
		Address:   models.PlatformBalanceAddress,
		Amount:    e.ledger.PlatformFees.String(),
		UpdatedAt: e.now(),
	}
	err := app.DB.UpsertOne(models.CollectionBalances, bson.M{"address": doc.Address}, bson.M{"$set": doc})
	if err != nil {
		log.Error("[LEDGER] Error while storing platform balance in db: ", err)
	}
}

func (e *Engine) persistFreeMint(addr common.Address, tokenID int64) {
	doc := models.FreeMint{
		Address:   addr.Hex(),
		TokenID:   tokenID,
		CreatedAt: e.now(),
	}
	err := app.DB.UpsertOne(models.CollectionFreeMints, bson.M{"address": doc.Address}, bson.M{"$set": doc})
	if err != nil {
		log.Error("[LEDGER] Error while storing free mint in db: ", err)
	}
}

func (e *Engine) persistSetting(key string, value string) {
	doc := models.Setting{
		Key:       key,
		Value:     value,
		UpdatedAt: e.now(),
	}
	err := app.DB.UpsertOne(models.CollectionSettings, bson.M{"key": key}, bson.M{"$set": doc})
	if err != nil {
		log.Error("[LEDGER] Error while storing setting in db: ", err)
	}
}

func (e *Engine) insertPayout(recipient common.Address, amount *big.Int) error {
	doc := models.Payout{
		Recipient: recipient.Hex(),
		Amount:    amount.String(),
		Status:    models.PayoutStatusPending,
		CreatedAt: e.now(),
		UpdatedAt: e.now(),
	}
	if err := app.DB.InsertOne(models.CollectionPayouts, doc); err != nil {
		return fmt.Errorf("error queueing payout: %w", err)
	}
	return nil
}

// Restore rebuilds the in-memory ledger from the mongo mirror. It holds an
// exclusive lock on the ledger resource so two instances can not restore
// and run against the same database at once.
func (e *Engine) Restore() error {
	lockID, err := app.DB.XLock("ledger")
	if err != nil {
		return fmt.Errorf("error locking ledger: %w", err)
	}
	defer func() {
		if err := app.DB.Unlock(lockID); err != nil {
			log.Error("[LEDGER] Error unlocking ledger: ", err)
		}
	}()

	if err := e.restoreTokens(); err != nil {
		return err
	}
	if err := e.restoreHoldings(); err != nil {
		return err
	}
	if err := e.restoreListings(); err != nil {
		return err
	}
	if err := e.restoreBalances(); err != nil {
		return err
	}
	if err := e.restoreFreeMints(); err != nil {
		return err
	}
	if err := e.restoreSettings(); err != nil {
		return err
	}

	log.Info("[LEDGER] Restored ledger: ", len(e.ledger.Tokens), " tokens, ",
		len(e.ledger.Listings), " listings, ", len(e.ledger.Fees), " balances")
	return nil
}

func parseWei(field string, value string) (*big.Int, error) {
	if value == "" {
		return big.NewInt(0), nil
	}
	amount, ok := new(big.Int).SetString(value, 10)
	if !ok || amount.Sign() < 0 {
		return nil, fmt.Errorf("invalid %s amount: %q", field, value)
	}
	return amount, nil
}

func (e *Engine) restoreTokens() error {
	var docs []models.Token
	if err := app.DB.FindMany(models.CollectionTokens, bson.M{}, &docs); err != nil {
		return fmt.Errorf("error loading tokens: %w", err)
	}
	for _, doc := range docs {
		price, err := parseWei("token mint_price", doc.MintPrice)
		if err != nil {
			return err
		}
		token := &Token{
			ID:                  doc.TokenID,
			Creator:             common.HexToAddress(doc.Creator),
			FirstMinter:         common.HexToAddress(doc.FirstMinter),
			MintPrice:           price,
			IsCustomPrice:       doc.IsCustomPrice,
			MintEndTime:         doc.MintEndTime,
			TotalMinted:         doc.TotalMinted,
			FinalCountdownStart: doc.FinalCountdownStart,
			Referrer:            common.HexToAddress(doc.Referrer),
			TokenURI:            doc.TokenURI,
			mirroredStatus:      doc.Status,
		}
		e.ledger.Tokens[token.ID] = token
		if token.ID >= e.ledger.NextTokenID {
			e.ledger.NextTokenID = token.ID + 1
		}
	}
	return nil
}

func (e *Engine) restoreHoldings() error {
	var docs []models.Holding
	if err := app.DB.FindMany(models.CollectionHoldings, bson.M{}, &docs); err != nil {
		return fmt.Errorf("error loading holdings: %w", err)
	}
	for _, doc := range docs {
		if doc.Amount == 0 {
			continue
		}
		key := holdingKey{TokenID: doc.TokenID, Owner: common.HexToAddress(doc.Owner)}
		e.ledger.Holdings[key] = doc.Amount
	}
	return nil
}

func (e *Engine) restoreListings() error {
	var docs []models.Listing
	if err := app.DB.FindMany(models.CollectionListings, bson.M{}, &docs); err != nil {
		return fmt.Errorf("error loading listings: %w", err)
	}
	for _, doc := range docs {
		price, err := parseWei("listing price_per_token", doc.PricePerToken)
		if err != nil {
			return err
		}
		listing := &Listing{
			ID:            doc.ListingID,
			TokenID:       doc.TokenID,
			Seller:        common.HexToAddress(doc.Seller),
			Amount:        doc.Amount,
			PricePerToken: price,
			Active:        doc.Active,
		}
		e.ledger.Listings[listing.ID] = listing
		if listing.ID >= e.ledger.NextListingID {
			e.ledger.NextListingID = listing.ID + 1
		}
	}
	return nil
}

func (e *Engine) restoreBalances() error {
	var docs []models.Balance
	if err := app.DB.FindMany(models.CollectionBalances, bson.M{}, &docs); err != nil {
		return fmt.Errorf("error loading balances: %w", err)
	}
	for _, doc := range docs {
		amount, err := parseWei("balance", doc.Amount)
		if err != nil {
			return err
		}
		if doc.Address == models.PlatformBalanceAddress {
			e.ledger.PlatformFees = amount
			continue
		}
		if amount.Sign() == 0 {
			continue
		}
		e.ledger.Fees[common.HexToAddress(doc.Address)] = amount
	}
	return nil
}

func (e *Engine) restoreFreeMints() error {
	var docs []models.FreeMint
	if err := app.DB.FindMany(models.CollectionFreeMints, bson.M{}, &docs); err != nil {
		return fmt.Errorf("error loading free mints: %w", err)
	}
	for _, doc := range docs {
		e.ledger.HasMintedFree[common.HexToAddress(doc.Address)] = true
	}
	return nil
}

func (e *Engine) restoreSettings() error {
	var docs []models.Setting
	if err := app.DB.FindMany(models.CollectionSettings, bson.M{}, &docs); err != nil {
		return fmt.Errorf("error loading settings: %w", err)
	}
	for _, doc := range docs {
		switch doc.Key {
		case models.SettingFeeRecipient:
			if common.IsHexAddress(doc.Value) {
				e.ledger.FeeRecipient = common.HexToAddress(doc.Value)
			}
		case models.SettingPaused:
			e.ledger.Paused = doc.Value == "true"
		}
	}
	return nil
}
