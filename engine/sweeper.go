package engine

import (
	log "github.com/sirupsen/logrus"

	"github.com/zoriumlabs/zorium-ledger/models"
)

const (
	LifecycleSweeperName = "lifecycle sweeper"
)

// LifecycleSweeper re-mirrors token documents whose derived minting status
// drifted since the last write, so off-chain readers see countdown and
// close transitions without waiting for the next mint attempt.
type LifecycleSweeper struct {
	engine *Engine
}

func (x *LifecycleSweeper) Run() {
	x.engine.SweepStatuses()
}

func (x *LifecycleSweeper) Status() models.RunnerStatus {
	return x.engine.Status()
}

func NewLifecycleSweeper(engine *Engine) *LifecycleSweeper {
	return &LifecycleSweeper{engine: engine}
}

// SweepStatuses runs inside the command loop like any other command, so the
// statuses it mirrors are a consistent snapshot.
func (e *Engine) SweepStatuses() {
	_ = e.do(func() error {
		now := e.now()
		swept := 0
		for _, token := range e.ledger.Tokens {
			status := token.StatusAt(now, e.params.FinalCountdownDuration)
			if status == token.mirroredStatus {
				continue
			}
			e.persistToken(token)
			swept++
		}
		if swept > 0 {
			log.Info("[LIFECYCLE SWEEPER] Mirrored status for ", swept, " tokens")
		}
		return nil
	})
}
