package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/zoriumlabs/zorium-ledger/models"
)

func TestEffectiveDeadline(t *testing.T) {
	now := time.Now()
	countdown := 48 * time.Hour

	t.Run("Before Countdown", func(t *testing.T) {
		token := &Token{MintEndTime: now.Add(30 * 24 * time.Hour)}

		assert.Equal(t, token.MintEndTime, token.EffectiveDeadline(countdown))
	})

	t.Run("After Countdown Latched", func(t *testing.T) {
		token := &Token{
			MintEndTime:         now.Add(30 * 24 * time.Hour),
			FinalCountdownStart: now,
		}

		assert.Equal(t, now.Add(countdown), token.EffectiveDeadline(countdown))
	})

	t.Run("Countdown Extends Past Mint End Time", func(t *testing.T) {
		token := &Token{
			MintEndTime:         now.Add(time.Hour),
			FinalCountdownStart: now,
		}

		deadline := token.EffectiveDeadline(countdown)
		assert.True(t, deadline.After(token.MintEndTime))
		assert.Equal(t, now.Add(countdown), deadline)
	})
}

func TestMintingActiveAt(t *testing.T) {
	now := time.Now()
	countdown := 48 * time.Hour
	token := &Token{MintEndTime: now.Add(time.Hour)}

	assert.True(t, token.MintingActiveAt(now, countdown))
	assert.False(t, token.MintingActiveAt(now.Add(time.Hour), countdown))
	assert.False(t, token.MintingActiveAt(now.Add(2*time.Hour), countdown))
}

func TestCountdownTimeLeftAt(t *testing.T) {
	now := time.Now()
	countdown := 48 * time.Hour

	t.Run("Open", func(t *testing.T) {
		token := &Token{MintEndTime: now.Add(time.Hour)}

		assert.Equal(t, time.Hour, token.CountdownTimeLeftAt(now, countdown))
	})

	t.Run("Countdown Active", func(t *testing.T) {
		token := &Token{
			MintEndTime:         now.Add(30 * 24 * time.Hour),
			FinalCountdownStart: now,
		}

		assert.Equal(t, countdown, token.CountdownTimeLeftAt(now, countdown))
		assert.Equal(t, countdown-time.Hour, token.CountdownTimeLeftAt(now.Add(time.Hour), countdown))
	})

	t.Run("Closed", func(t *testing.T) {
		token := &Token{MintEndTime: now.Add(time.Hour)}

		assert.Equal(t, time.Duration(0), token.CountdownTimeLeftAt(now.Add(2*time.Hour), countdown))
	})
}

func TestStatusAt(t *testing.T) {
	now := time.Now()
	countdown := 48 * time.Hour

	t.Run("Open", func(t *testing.T) {
		token := &Token{MintEndTime: now.Add(time.Hour)}

		assert.Equal(t, models.TokenStatusOpen, token.StatusAt(now, countdown))
	})

	t.Run("Countdown Active", func(t *testing.T) {
		token := &Token{
			MintEndTime:         now.Add(30 * 24 * time.Hour),
			FinalCountdownStart: now,
		}

		assert.Equal(t, models.TokenStatusCountdownActive, token.StatusAt(now, countdown))
	})

	t.Run("Closed After Mint End Time", func(t *testing.T) {
		token := &Token{MintEndTime: now.Add(time.Hour)}

		assert.Equal(t, models.TokenStatusClosed, token.StatusAt(now.Add(2*time.Hour), countdown))
	})

	t.Run("Closed After Countdown Expires", func(t *testing.T) {
		token := &Token{
			MintEndTime:         now.Add(30 * 24 * time.Hour),
			FinalCountdownStart: now,
		}

		assert.Equal(t, models.TokenStatusClosed, token.StatusAt(now.Add(countdown), countdown))
	})
}

func TestMaybeStartCountdown(t *testing.T) {
	now := time.Now()

	t.Run("Below Trigger Supply", func(t *testing.T) {
		token := &Token{TotalMinted: 999}

		assert.False(t, token.maybeStartCountdown(now, 1000))
		assert.True(t, token.FinalCountdownStart.IsZero())
	})

	t.Run("At Trigger Supply", func(t *testing.T) {
		token := &Token{TotalMinted: 1000}

		assert.True(t, token.maybeStartCountdown(now, 1000))
		assert.Equal(t, now, token.FinalCountdownStart)
	})

	t.Run("Latch Is One Shot", func(t *testing.T) {
		token := &Token{TotalMinted: 1000}

		assert.True(t, token.maybeStartCountdown(now, 1000))

		token.TotalMinted = 2000
		assert.False(t, token.maybeStartCountdown(now.Add(time.Hour), 1000))
		assert.Equal(t, now, token.FinalCountdownStart)
	})

	t.Run("Disabled Trigger", func(t *testing.T) {
		token := &Token{TotalMinted: 5000}

		assert.False(t, token.maybeStartCountdown(now, 0))
		assert.True(t, token.FinalCountdownStart.IsZero())
	})
}
