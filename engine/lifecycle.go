package engine

import (
	"time"

	"github.com/zoriumlabs/zorium-ledger/models"
)

// Token minting lifecycle: Open until the effective deadline, with a single
// supply-triggered extension. When TotalMinted first reaches the trigger
// supply the countdown start is latched and the deadline becomes
// FinalCountdownStart + countdown, even when that is later than the
// original MintEndTime. The latch is one-shot: once set it is never reset,
// so supply crossing the trigger again can not re-arm the countdown.

// EffectiveDeadline returns the instant minting closes for good.
func (t *Token) EffectiveDeadline(countdown time.Duration) time.Time {
	if !t.FinalCountdownStart.IsZero() {
		return t.FinalCountdownStart.Add(countdown)
	}
	return t.MintEndTime
}

// MintingActiveAt reports whether a mint is still allowed at the given time.
func (t *Token) MintingActiveAt(now time.Time, countdown time.Duration) bool {
	return now.Before(t.EffectiveDeadline(countdown))
}

// CountdownTimeLeftAt returns the remaining open-minting window, zero once
// closed. Pure view, no side effects.
func (t *Token) CountdownTimeLeftAt(now time.Time, countdown time.Duration) time.Duration {
	left := t.EffectiveDeadline(countdown).Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

// StatusAt derives the lifecycle state from supply, deadlines and the
// current time. Closed is terminal.
func (t *Token) StatusAt(now time.Time, countdown time.Duration) models.TokenStatus {
	if !t.MintingActiveAt(now, countdown) {
		return models.TokenStatusClosed
	}
	if !t.FinalCountdownStart.IsZero() {
		return models.TokenStatusCountdownActive
	}
	return models.TokenStatusOpen
}

// maybeStartCountdown latches the final-countdown start the first time the
// trigger supply is reached.
func (t *Token) maybeStartCountdown(now time.Time, triggerSupply int64) bool {
	if triggerSupply <= 0 || t.TotalMinted < triggerSupply {
		return false
	}
	if !t.FinalCountdownStart.IsZero() {
		return false
	}
	t.FinalCountdownStart = now
	return true
}
