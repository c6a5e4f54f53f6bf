package ethereum

import (
	"math/big"
	"strconv"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	log "github.com/sirupsen/logrus"
	"github.com/zoriumlabs/zorium-ledger/app"
	zcommon "github.com/zoriumlabs/zorium-ledger/common"
	"github.com/zoriumlabs/zorium-ledger/models"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	PayoutExecutorName string = "payout executor"

	// plain value transfer
	payoutGasLimit uint64 = 21000
)

type PayoutExecutorRunner struct {
	client  EthereumClient
	signer  zcommon.Signer
	chainID *big.Int
	address string

	confirmations      int64
	currentBlockNumber int64
}

func (x *PayoutExecutorRunner) Run() {
	x.UpdateCurrentBlockNumber()
	x.HandlePendingPayouts()
	x.ConfirmSentPayouts()
}

func (x *PayoutExecutorRunner) Status() models.RunnerStatus {
	return models.RunnerStatus{
		EthBlockNumber: strconv.FormatInt(x.currentBlockNumber, 10),
	}
}

func (x *PayoutExecutorRunner) UpdateCurrentBlockNumber() {
	res, err := x.client.GetBlockNumber()
	if err != nil {
		log.Error("[PAYOUT EXECUTOR] Error getting block number: ", err)
		return
	}

	x.currentBlockNumber = int64(res)
	log.Debug("[PAYOUT EXECUTOR] Current block number: ", x.currentBlockNumber)
}

func (x *PayoutExecutorRunner) markPayout(payout models.Payout, status string, txHash string) bool {
	filter := bson.M{"_id": payout.Id}
	update := bson.M{
		"$set": bson.M{
			"status":     status,
			"tx_hash":    txHash,
			"updated_at": time.Now(),
		},
	}

	err := app.DB.UpdateOne(models.CollectionPayouts, filter, update)
	if err != nil {
		log.Error("[PAYOUT EXECUTOR] Error updating payout: ", err)
		return false
	}
	return true
}

func (x *PayoutExecutorRunner) HandlePayout(payout models.Payout) bool {
	log.Debug("[PAYOUT EXECUTOR] Handling payout to: ", payout.Recipient)

	amount, ok := new(big.Int).SetString(payout.Amount, 10)
	if !ok || amount.Sign() <= 0 {
		log.Error("[PAYOUT EXECUTOR] Invalid payout amount: ", payout.Amount)
		return x.markPayout(payout, models.PayoutStatusFailed, "")
	}

	nonce, err := x.client.GetPendingNonce(x.address)
	if err != nil {
		log.Error("[PAYOUT EXECUTOR] Error getting nonce: ", err)
		return false
	}

	gasPrice, err := x.client.SuggestGasPrice()
	if err != nil {
		log.Error("[PAYOUT EXECUTOR] Error getting gas price: ", err)
		return false
	}

	tx := types.NewTransaction(nonce, common.HexToAddress(payout.Recipient), amount, payoutGasLimit, gasPrice, nil)

	txSigner := types.LatestSignerForChainID(x.chainID)

	signature, err := x.signer.EthSign(txSigner.Hash(tx).Bytes())
	if err != nil {
		log.Error("[PAYOUT EXECUTOR] Error signing transaction: ", err)
		return false
	}

	if signature[64] >= 27 {
		signature[64] -= 27
	}

	signedTx, err := tx.WithSignature(txSigner, signature)
	if err != nil {
		log.Error("[PAYOUT EXECUTOR] Error attaching signature: ", err)
		return false
	}

	err = x.client.SendTransaction(signedTx)
	if err != nil {
		log.Error("[PAYOUT EXECUTOR] Error sending transaction: ", err)
		return false
	}

	log.Info("[PAYOUT EXECUTOR] Sent payout of ", payout.Amount, " wei to ", payout.Recipient, " in tx ", signedTx.Hash().Hex())

	return x.markPayout(payout, models.PayoutStatusSent, signedTx.Hash().Hex())
}

func (x *PayoutExecutorRunner) HandlePendingPayouts() bool {
	filter := bson.M{"status": models.PayoutStatusPending}

	var payouts []models.Payout
	err := app.DB.FindMany(models.CollectionPayouts, filter, &payouts)
	if err != nil {
		log.Error("[PAYOUT EXECUTOR] Error fetching pending payouts: ", err)
		return false
	}

	var success = true
	for _, payout := range payouts {
		success = x.HandlePayout(payout) && success
	}

	return success
}

func (x *PayoutExecutorRunner) ConfirmPayout(payout models.Payout) bool {
	receipt, err := x.client.GetTransactionReceipt(payout.TxHash)
	if err != nil {
		log.Debug("[PAYOUT EXECUTOR] Receipt not available for ", payout.TxHash, ": ", err)
		return true
	}
	if receipt == nil {
		return true
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		log.Error("[PAYOUT EXECUTOR] Payout tx reverted: ", payout.TxHash)
		return x.markPayout(payout, models.PayoutStatusFailed, payout.TxHash)
	}

	confirmations := x.currentBlockNumber - receipt.BlockNumber.Int64()
	if confirmations < x.confirmations {
		log.Debug("[PAYOUT EXECUTOR] Payout tx ", payout.TxHash, " has ", confirmations, " confirmations, need ", x.confirmations)
		return true
	}

	log.Info("[PAYOUT EXECUTOR] Payout confirmed: ", payout.TxHash)
	return x.markPayout(payout, models.PayoutStatusSuccess, payout.TxHash)
}

func (x *PayoutExecutorRunner) ConfirmSentPayouts() bool {
	filter := bson.M{"status": models.PayoutStatusSent}

	var payouts []models.Payout
	err := app.DB.FindMany(models.CollectionPayouts, filter, &payouts)
	if err != nil {
		log.Error("[PAYOUT EXECUTOR] Error fetching sent payouts: ", err)
		return false
	}

	var success = true
	for _, payout := range payouts {
		success = x.ConfirmPayout(payout) && success
	}

	return success
}

func NewPayoutExecutor(wg *sync.WaitGroup) models.Service {
	if !app.Config.PayoutExecutor.Enabled {
		log.Debug("[PAYOUT EXECUTOR] Payout executor disabled")
		return models.NewEmptyService(wg)
	}

	log.Debug("[PAYOUT EXECUTOR] Initializing payout executor")

	client, err := NewClient()
	if err != nil {
		log.Fatal("[PAYOUT EXECUTOR] Error initializing ethereum client: ", err)
	}
	client.ValidateNetwork()

	signer, err := zcommon.NewEthereumSigner(
		app.Config.Ethereum.PrivateKey,
		app.Config.Ethereum.Mnemonic,
		app.Config.Ethereum.GcpKmsKeyName,
	)
	if err != nil {
		log.Fatal("[PAYOUT EXECUTOR] Error initializing signer: ", err)
	}

	chainID, ok := new(big.Int).SetString(app.Config.Ethereum.ChainID, 10)
	if !ok {
		log.Fatal("[PAYOUT EXECUTOR] Invalid chain id: ", app.Config.Ethereum.ChainID)
	}

	x := &PayoutExecutorRunner{
		client:        client,
		signer:        signer,
		chainID:       chainID,
		address:       signer.EthAddress().Hex(),
		confirmations: app.Config.Ethereum.Confirmations,
	}

	x.UpdateCurrentBlockNumber()

	log.Info("[PAYOUT EXECUTOR] Initialized payout executor with address ", x.address)

	return app.NewRunnerService(
		PayoutExecutorName,
		x,
		wg,
		time.Duration(app.Config.PayoutExecutor.IntervalMillis)*time.Millisecond,
	)
}
