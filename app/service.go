package app

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/zoriumlabs/zorium-ledger/models"
)

type Service = models.Service

// Runner is the unit of work wrapped by a RunnerService. Run is invoked
// once per interval and Status reports the runner's current sync state.
type Runner interface {
	Run()
	Status() models.RunnerStatus
}

type RunnerService struct {
	wg *sync.WaitGroup

	name string

	stop chan bool

	lastSyncTime time.Time
	interval     time.Duration

	runner Runner

	healthMu sync.RWMutex
}

func (x *RunnerService) Start() {
	if x.runner == nil {
		log.Error("[", x.name, "] Runner not initialized")
		return
	}
	log.Info("[", x.name, "] Service started")
	stop := false
	for !stop {
		log.Debug("[", x.name, "] Run started")

		x.runner.Run()
		x.updateLastSyncTime()

		log.Debug("[", x.name, "] Run complete, next run in ", x.interval)

		select {
		case <-x.stop:
			stop = true
			log.Info("[", x.name, "] Service stopped")
		case <-time.After(x.interval):
		}
	}
	x.wg.Done()
}

func (x *RunnerService) Stop() {
	log.Debug("[", x.name, "] Stopping service")
	close(x.stop)
}

func (x *RunnerService) updateLastSyncTime() {
	x.healthMu.Lock()
	defer x.healthMu.Unlock()
	x.lastSyncTime = time.Now()
}

func (x *RunnerService) Health() models.ServiceHealth {
	x.healthMu.RLock()
	defer x.healthMu.RUnlock()

	status := x.runner.Status()

	return models.ServiceHealth{
		Name:           x.name,
		LastSyncTime:   x.lastSyncTime,
		NextSyncTime:   x.lastSyncTime.Add(x.interval),
		CommandSeq:     status.CommandSeq,
		EthBlockNumber: status.EthBlockNumber,
		Healthy:        true,
	}
}

func NewRunnerService(
	name string,
	runner Runner,
	wg *sync.WaitGroup,
	interval time.Duration,
) Service {
	if name == "" || runner == nil || wg == nil || interval == 0 {
		log.Debug("[RUNNER] Invalid parameters")
		return nil
	}

	return &RunnerService{
		name:     name,
		runner:   runner,
		wg:       wg,
		stop:     make(chan bool),
		interval: interval,
	}
}
