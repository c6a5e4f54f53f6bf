package main

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/zoriumlabs/zorium-ledger/app"
	"github.com/zoriumlabs/zorium-ledger/engine"
	"github.com/zoriumlabs/zorium-ledger/ethereum"
	"github.com/zoriumlabs/zorium-ledger/models"
)

func NewLifecycleSweeperService(ledger *engine.Engine, wg *sync.WaitGroup) models.Service {
	if !app.Config.LifecycleSweeper.Enabled {
		log.Debug("[LIFECYCLE SWEEPER] Lifecycle sweeper disabled")
		return models.NewEmptyService(wg)
	}

	return app.NewRunnerService(
		engine.LifecycleSweeperName,
		engine.NewLifecycleSweeper(ledger),
		wg,
		time.Duration(app.Config.LifecycleSweeper.IntervalMillis)*time.Millisecond,
	)
}

func NewHealthService(healthcheck *app.HealthCheckRunner, wg *sync.WaitGroup) models.Service {
	return app.NewRunnerService(
		app.HealthCheckName,
		healthcheck,
		wg,
		time.Duration(app.Config.HealthCheck.IntervalMillis)*time.Millisecond,
	)
}

func CreateServices(ledger *engine.Engine, wg *sync.WaitGroup) []models.Service {
	return []models.Service{
		NewLifecycleSweeperService(ledger, wg),
		ethereum.NewPayoutExecutor(wg),
	}
}
