package ethereum

import (
	"errors"
	"io"
	"math/big"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/core/types"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/zoriumlabs/zorium-ledger/app"
	appMocks "github.com/zoriumlabs/zorium-ledger/app/mocks"
	zcommon "github.com/zoriumlabs/zorium-ledger/common"
	"github.com/zoriumlabs/zorium-ledger/ethereum/mocks"
	"github.com/zoriumlabs/zorium-ledger/models"
)

func init() {
	log.SetOutput(io.Discard)
}

const testPayoutPrivateKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

func NewTestPayoutExecutor(t *testing.T, client *mocks.MockEthereumClient) *PayoutExecutorRunner {
	signer, err := zcommon.NewKeySigner(testPayoutPrivateKey)
	assert.NoError(t, err)

	return &PayoutExecutorRunner{
		client:        client,
		signer:        signer,
		chainID:       big.NewInt(31337),
		address:       signer.EthAddress().Hex(),
		confirmations: 5,
	}
}

func TestPayoutExecutorStatus(t *testing.T) {
	mockClient := mocks.NewMockEthereumClient(t)
	x := NewTestPayoutExecutor(t, mockClient)
	x.currentBlockNumber = 42

	status := x.Status()
	assert.Equal(t, "42", status.EthBlockNumber)
	assert.Equal(t, "", status.CommandSeq)
}

func TestPayoutExecutorUpdateCurrentBlockNumber(t *testing.T) {

	t.Run("No Error", func(t *testing.T) {
		mockClient := mocks.NewMockEthereumClient(t)
		x := NewTestPayoutExecutor(t, mockClient)

		mockClient.EXPECT().GetBlockNumber().Return(uint64(100), nil)

		x.UpdateCurrentBlockNumber()

		assert.Equal(t, int64(100), x.currentBlockNumber)
	})

	t.Run("With Error", func(t *testing.T) {
		mockClient := mocks.NewMockEthereumClient(t)
		x := NewTestPayoutExecutor(t, mockClient)

		mockClient.EXPECT().GetBlockNumber().Return(uint64(0), errors.New("error"))

		x.UpdateCurrentBlockNumber()

		assert.Equal(t, int64(0), x.currentBlockNumber)
	})

}

func TestHandlePayout(t *testing.T) {

	t.Run("Invalid Amount", func(t *testing.T) {
		mockClient := mocks.NewMockEthereumClient(t)
		mockDB := appMocks.NewMockDatabase(t)
		app.DB = mockDB

		x := NewTestPayoutExecutor(t, mockClient)

		payout := models.Payout{
			Recipient: "0x1111111111111111111111111111111111111111",
			Amount:    "not a number",
			Status:    models.PayoutStatusPending,
		}

		mockDB.EXPECT().UpdateOne(models.CollectionPayouts, mock.Anything, mock.Anything).Return(nil)

		success := x.HandlePayout(payout)
		assert.True(t, success)
	})

	t.Run("Nonce Error", func(t *testing.T) {
		mockClient := mocks.NewMockEthereumClient(t)
		x := NewTestPayoutExecutor(t, mockClient)

		payout := models.Payout{
			Recipient: "0x1111111111111111111111111111111111111111",
			Amount:    "1000000000000000",
			Status:    models.PayoutStatusPending,
		}

		mockClient.EXPECT().GetPendingNonce(x.address).Return(uint64(0), errors.New("error"))

		success := x.HandlePayout(payout)
		assert.False(t, success)
	})

	t.Run("No Error", func(t *testing.T) {
		mockClient := mocks.NewMockEthereumClient(t)
		mockDB := appMocks.NewMockDatabase(t)
		app.DB = mockDB

		x := NewTestPayoutExecutor(t, mockClient)

		payout := models.Payout{
			Recipient: "0x1111111111111111111111111111111111111111",
			Amount:    "1000000000000000",
			Status:    models.PayoutStatusPending,
		}

		mockClient.EXPECT().GetPendingNonce(x.address).Return(uint64(7), nil)
		mockClient.EXPECT().SuggestGasPrice().Return(big.NewInt(1000000000), nil)

		var sentTx *types.Transaction
		sendCall := mockClient.EXPECT().SendTransaction(mock.Anything)
		sendCall.Run(func(tx *types.Transaction) {
			sentTx = tx
		})
		sendCall.Return(nil)

		mockDB.EXPECT().UpdateOne(models.CollectionPayouts, mock.Anything, mock.Anything).Return(nil)

		success := x.HandlePayout(payout)
		assert.True(t, success)

		assert.NotNil(t, sentTx)
		assert.Equal(t, uint64(7), sentTx.Nonce())
		assert.Equal(t, "1000000000000000", sentTx.Value().String())
		assert.Equal(t, payoutGasLimit, sentTx.Gas())

		txSigner := types.LatestSignerForChainID(x.chainID)
		from, err := types.Sender(txSigner, sentTx)
		assert.NoError(t, err)
		assert.Equal(t, x.address, from.Hex())
	})

}

func TestHandlePendingPayouts(t *testing.T) {

	t.Run("Find Error", func(t *testing.T) {
		mockClient := mocks.NewMockEthereumClient(t)
		mockDB := appMocks.NewMockDatabase(t)
		app.DB = mockDB

		x := NewTestPayoutExecutor(t, mockClient)

		mockDB.EXPECT().FindMany(models.CollectionPayouts, mock.Anything, mock.Anything).Return(errors.New("error"))

		success := x.HandlePendingPayouts()
		assert.False(t, success)
	})

	t.Run("No Payouts", func(t *testing.T) {
		mockClient := mocks.NewMockEthereumClient(t)
		mockDB := appMocks.NewMockDatabase(t)
		app.DB = mockDB

		x := NewTestPayoutExecutor(t, mockClient)

		mockDB.EXPECT().FindMany(models.CollectionPayouts, mock.Anything, mock.Anything).Return(nil)

		success := x.HandlePendingPayouts()
		assert.True(t, success)
	})

}

func TestConfirmPayout(t *testing.T) {

	t.Run("Receipt Not Available", func(t *testing.T) {
		mockClient := mocks.NewMockEthereumClient(t)
		x := NewTestPayoutExecutor(t, mockClient)

		payout := models.Payout{TxHash: "0xabc", Status: models.PayoutStatusSent}

		mockClient.EXPECT().GetTransactionReceipt(payout.TxHash).Return(nil, errors.New("not found"))

		success := x.ConfirmPayout(payout)
		assert.True(t, success)
	})

	t.Run("Reverted", func(t *testing.T) {
		mockClient := mocks.NewMockEthereumClient(t)
		mockDB := appMocks.NewMockDatabase(t)
		app.DB = mockDB

		x := NewTestPayoutExecutor(t, mockClient)

		payout := models.Payout{TxHash: "0xabc", Status: models.PayoutStatusSent}

		receipt := &types.Receipt{
			Status:      types.ReceiptStatusFailed,
			BlockNumber: big.NewInt(90),
		}
		mockClient.EXPECT().GetTransactionReceipt(payout.TxHash).Return(receipt, nil)
		mockDB.EXPECT().UpdateOne(models.CollectionPayouts, mock.Anything, mock.Anything).Return(nil)

		success := x.ConfirmPayout(payout)
		assert.True(t, success)
	})

	t.Run("Not Enough Confirmations", func(t *testing.T) {
		mockClient := mocks.NewMockEthereumClient(t)
		x := NewTestPayoutExecutor(t, mockClient)
		x.currentBlockNumber = 92

		payout := models.Payout{TxHash: "0xabc", Status: models.PayoutStatusSent}

		receipt := &types.Receipt{
			Status:      types.ReceiptStatusSuccessful,
			BlockNumber: big.NewInt(90),
		}
		mockClient.EXPECT().GetTransactionReceipt(payout.TxHash).Return(receipt, nil)

		success := x.ConfirmPayout(payout)
		assert.True(t, success)
	})

	t.Run("Confirmed", func(t *testing.T) {
		mockClient := mocks.NewMockEthereumClient(t)
		mockDB := appMocks.NewMockDatabase(t)
		app.DB = mockDB

		x := NewTestPayoutExecutor(t, mockClient)
		x.currentBlockNumber = 100

		payout := models.Payout{TxHash: "0xabc", Status: models.PayoutStatusSent}

		receipt := &types.Receipt{
			Status:      types.ReceiptStatusSuccessful,
			BlockNumber: big.NewInt(90),
		}
		mockClient.EXPECT().GetTransactionReceipt(payout.TxHash).Return(receipt, nil)
		mockDB.EXPECT().UpdateOne(models.CollectionPayouts, mock.Anything, mock.Anything).Return(nil)

		success := x.ConfirmPayout(payout)
		assert.True(t, success)
	})

}

func TestNewPayoutExecutorDisabled(t *testing.T) {
	app.Config.PayoutExecutor.Enabled = false

	wg := &sync.WaitGroup{}
	service := NewPayoutExecutor(wg)

	health := service.Health()
	assert.Equal(t, models.EmptyServiceName, health.Name)
}
