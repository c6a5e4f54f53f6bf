package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/zoriumlabs/zorium-ledger/app"
	"github.com/zoriumlabs/zorium-ledger/engine"
	"github.com/zoriumlabs/zorium-ledger/models"
)

func main() {

	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

	var absConfigPath string
	var absEnvPath string
	if len(os.Args) > 1 {
		absConfigPath, _ = filepath.Abs(os.Args[1])
	}
	if len(os.Args) > 2 {
		absEnvPath, _ = filepath.Abs(os.Args[2])
	}

	app.InitConfig(absConfigPath, absEnvPath)
	app.InitLogger()
	app.InitDB()

	wg := &sync.WaitGroup{}
	ledger := engine.NewEngine(wg, engine.ParamsFromConfig())

	if err := ledger.Restore(); err != nil {
		log.Fatal("[MAIN] Error restoring ledger state: ", err)
	}

	healthcheck := app.NewHealthCheck()

	services := []models.Service{ledger}
	services = append(services, CreateServices(ledger, wg)...)
	services = append(services, NewHealthService(healthcheck, wg))

	healthcheck.SetServices(services)

	wg.Add(len(services))
	for _, service := range services {
		go service.Start()
	}

	log.Info("[MAIN] Server started")

	// Gracefully shut down server
	gracefulStop := make(chan os.Signal, 1)
	done := make(chan bool, 1)
	signal.Notify(gracefulStop, syscall.SIGINT, syscall.SIGTERM)
	go waitForExitSignals(gracefulStop, done)
	<-done

	log.Debug("[MAIN] Gracefully shutting down server")
	// reverse order: the ledger engine is first in the slice and the
	// runners behind it submit commands to it until they stop
	for i := len(services) - 1; i >= 0; i-- {
		services[i].Stop()
	}
	wg.Wait()

	err := app.DB.Disconnect()
	if err != nil {
		log.Error("[MAIN] Error disconnecting from database: ", err)
	}
	log.Info("[MAIN] Server gracefully stopped")
}

func waitForExitSignals(gracefulStop chan os.Signal, done chan bool) {
	sig := <-gracefulStop
	log.Debug("[MAIN] Got signal: ", sig)
	done <- true
}
