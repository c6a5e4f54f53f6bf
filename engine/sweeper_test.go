package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/zoriumlabs/zorium-ledger/models"
)

func TestSweepStatuses(t *testing.T) {
	params := testParams()
	params.TriggerSupply = 1

	t.Run("Mirrors Drifted Status", func(t *testing.T) {
		engine, clock, _ := NewTestEngine(t, params)
		id, err := engine.CreateTokenSimple(testCreator, testURI)
		assert.Nil(t, err)
		assert.Equal(t, models.TokenStatusOpen, engine.ledger.Tokens[id].mirroredStatus)

		clock.Advance(DefaultMintDuration + time.Second)
		engine.SweepStatuses()

		assert.Equal(t, models.TokenStatusClosed, engine.ledger.Tokens[id].mirroredStatus)
	})

	t.Run("Mirrors Countdown Expiry", func(t *testing.T) {
		engine, clock, _ := NewTestEngine(t, params)
		id, err := engine.CreateTokenSimple(testCreator, testURI)
		assert.Nil(t, err)
		err = engine.Mint(testMinter, id, testMinter, zeroAddress, wei(t, "111000000000000"))
		assert.Nil(t, err)
		assert.Equal(t, models.TokenStatusCountdownActive, engine.ledger.Tokens[id].mirroredStatus)

		clock.Advance(params.FinalCountdownDuration + time.Second)
		engine.SweepStatuses()

		assert.Equal(t, models.TokenStatusClosed, engine.ledger.Tokens[id].mirroredStatus)
	})

	t.Run("No Drift No Write", func(t *testing.T) {
		engine, _, mockDB := NewTestEngine(t, params)
		id, err := engine.CreateTokenSimple(testCreator, testURI)
		assert.Nil(t, err)

		writes := len(mockDB.Calls)
		engine.SweepStatuses()

		assert.Equal(t, writes, len(mockDB.Calls))
		assert.Equal(t, models.TokenStatusOpen, engine.ledger.Tokens[id].mirroredStatus)
	})
}

func TestLifecycleSweeperRunner(t *testing.T) {
	engine, clock, _ := NewTestEngine(t, testParams())
	id, err := engine.CreateTokenSimple(testCreator, testURI)
	assert.Nil(t, err)

	runner := NewLifecycleSweeper(engine)

	clock.Advance(DefaultMintDuration + time.Second)
	runner.Run()

	assert.Equal(t, models.TokenStatusClosed, engine.ledger.Tokens[id].mirroredStatus)

	status := runner.Status()
	assert.Equal(t, "1", status.CommandSeq)
}
