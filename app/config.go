package app

import (
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/ethereum/go-ethereum/common"
	"github.com/zoriumlabs/zorium-ledger/models"
	"gopkg.in/yaml.v2"
)

var (
	Config models.Config
)

func InitConfig(configFile string, envFile string) {
	readConfigFromConfigFile(configFile)
	readConfigFromENV(envFile)
	readSecretsFromGSM()
	validateConfig()
}

func readConfigFromConfigFile(configFile string) bool {
	if configFile == "" {
		log.Debug("[CONFIG] No config file provided")
		return false
	}
	var yamlFile, err = os.ReadFile(configFile)
	if err != nil {
		log.Fatalf("[CONFIG] Error reading config file %q: %s\n", configFile, err.Error())
	}
	err = yaml.Unmarshal(yamlFile, &Config)
	if err != nil {
		log.Fatalf("[CONFIG] Error unmarshalling config file %q: %s\n", configFile, err.Error())
	}
	return true
}

func validateConfig() {
	if Config.MongoDB.URI == "" {
		log.Fatal("[CONFIG] MongoDB.URI is required")
	}
	if Config.MongoDB.Database == "" {
		log.Fatal("[CONFIG] MongoDB.Database is required")
	}
	if Config.MongoDB.TimeoutMillis == 0 {
		log.Fatal("[CONFIG] MongoDB.TimeoutMillis is required")
	}
	if Config.Ledger.AdminAddress == "" {
		log.Fatal("[CONFIG] Ledger.AdminAddress is required")
	}
	if !common.IsHexAddress(Config.Ledger.AdminAddress) {
		log.Fatal("[CONFIG] Ledger.AdminAddress is invalid")
	}
	if Config.Ledger.PlatformFeeRecipient == "" {
		log.Fatal("[CONFIG] Ledger.PlatformFeeRecipient is required")
	}
	if !common.IsHexAddress(Config.Ledger.PlatformFeeRecipient) {
		log.Fatal("[CONFIG] Ledger.PlatformFeeRecipient is invalid")
	}
	if Config.PayoutExecutor.Enabled {
		if Config.Ethereum.RPCURL == "" {
			log.Fatal("[CONFIG] Ethereum.RPCURL is required")
		}
		if Config.Ethereum.ChainID == "" {
			log.Fatal("[CONFIG] Ethereum.ChainID is required")
		}
		if Config.Ethereum.PrivateKey == "" && Config.Ethereum.Mnemonic == "" && Config.Ethereum.GcpKmsKeyName == "" {
			log.Fatal("[CONFIG] One of Ethereum.PrivateKey, Ethereum.Mnemonic or Ethereum.GcpKmsKeyName is required")
		}
	}
}
