package app

import (
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/zoriumlabs/zorium-ledger/common"
	"github.com/zoriumlabs/zorium-ledger/models"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	HealthCheckName = "health"
)

type HealthCheckRunner struct {
	ledgerId   string
	hostname   string
	ethAddress string
	services   []Service
}

func (x *HealthCheckRunner) Status() models.RunnerStatus {
	return models.RunnerStatus{}
}

func (x *HealthCheckRunner) Run() {
	x.PostHealth()
}

func (x *HealthCheckRunner) SetServices(services []Service) {
	x.services = services
}

func (x *HealthCheckRunner) ServiceHealths() []models.ServiceHealth {
	var serviceHealths []models.ServiceHealth
	for _, service := range x.services {
		health := service.Health()
		if health.Name == models.EmptyServiceName {
			continue
		}
		serviceHealths = append(serviceHealths, health)
	}
	return serviceHealths
}

func (x *HealthCheckRunner) FindLastHealth() (models.Health, error) {
	var health models.Health
	filter := bson.M{
		"ledger_id": x.ledgerId,
		"hostname":  x.hostname,
	}
	err := DB.FindOne(models.CollectionHealthChecks, filter, &health)
	return health, err
}

func (x *HealthCheckRunner) PostHealth() bool {
	log.Debug("[HEALTH] Posting health")

	filter := bson.M{
		"ledger_id": x.ledgerId,
		"hostname":  x.hostname,
	}

	onInsert := bson.M{
		"ledger_id":   x.ledgerId,
		"hostname":    x.hostname,
		"eth_address": x.ethAddress,
		"created_at":  time.Now(),
	}

	onUpdate := bson.M{
		"healthy":         true,
		"service_healths": x.ServiceHealths(),
		"updated_at":      time.Now(),
	}

	update := bson.M{"$set": onUpdate, "$setOnInsert": onInsert}

	err := DB.UpsertOne(models.CollectionHealthChecks, filter, update)

	if err != nil {
		log.Error("[HEALTH] Error posting health: ", err)
		return false
	}

	log.Info("[HEALTH] Posted health")
	return true
}

func NewHealthCheck() *HealthCheckRunner {
	log.Debug("[HEALTH] Initializing health check")

	ethAddress := common.ZeroAddress
	signer, err := common.NewEthereumSigner(
		Config.Ethereum.PrivateKey,
		Config.Ethereum.Mnemonic,
		Config.Ethereum.GcpKmsKeyName,
	)
	if err != nil {
		log.Warn("[HEALTH] No payout signer configured: ", err)
	} else {
		ethAddress = strings.ToLower(signer.EthAddress().Hex())
		signer.Destroy()
	}

	hostname, err := os.Hostname()
	if err != nil {
		log.Fatal("[HEALTH] Error getting hostname: ", err)
	}

	x := &HealthCheckRunner{
		ledgerId:   "zorium-ledger-" + ethAddress,
		hostname:   hostname,
		ethAddress: ethAddress,
	}

	if Config.HealthCheck.ReadLastHealth {
		health, err := x.FindLastHealth()
		if err != nil {
			log.Warn("[HEALTH] Error finding last health: ", err)
		} else {
			log.Info("[HEALTH] Last health check at ", health.UpdatedAt)
		}
	}

	log.Info("[HEALTH] Initialized health check")

	return x
}
