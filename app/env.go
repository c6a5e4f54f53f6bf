package app

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func parseInt64ENV(name string, target *int64) {
	if os.Getenv(name) == "" {
		return
	}
	value, err := strconv.ParseInt(os.Getenv(name), 10, 64)
	if err != nil {
		log.Warn("[ENV] Error parsing ", name, ": ", err.Error())
		return
	}
	*target = value
}

func parseBoolENV(name string, target *bool) {
	if os.Getenv(name) == "" {
		return
	}
	value, err := strconv.ParseBool(os.Getenv(name))
	if err != nil {
		log.Warn("[ENV] Error parsing ", name, ": ", err.Error())
		return
	}
	*target = value
}

func readConfigFromENV(envFile string) {
	if envFile != "" {
		err := godotenv.Load(envFile)
		if err != nil {
			log.Warn("[ENV] Error loading .env file: ", err.Error())
		}
	}

	// logger
	if os.Getenv("LOGGER_LEVEL") != "" {
		Config.Logger.Level = os.Getenv("LOGGER_LEVEL")
	}

	// mongodb
	if os.Getenv("MONGODB_URI") != "" {
		Config.MongoDB.URI = os.Getenv("MONGODB_URI")
	}
	if os.Getenv("MONGODB_DATABASE") != "" {
		Config.MongoDB.Database = os.Getenv("MONGODB_DATABASE")
	}
	parseInt64ENV("MONGODB_TIMEOUT_MS", &Config.MongoDB.TimeoutMillis)

	// ethereum
	if os.Getenv("ETH_RPC_URL") != "" {
		Config.Ethereum.RPCURL = os.Getenv("ETH_RPC_URL")
	}
	if os.Getenv("ETH_CHAIN_ID") != "" {
		Config.Ethereum.ChainID = os.Getenv("ETH_CHAIN_ID")
	}
	if os.Getenv("ETH_PRIVATE_KEY") != "" {
		Config.Ethereum.PrivateKey = os.Getenv("ETH_PRIVATE_KEY")
	}
	if os.Getenv("ETH_MNEMONIC") != "" {
		Config.Ethereum.Mnemonic = os.Getenv("ETH_MNEMONIC")
	}
	if os.Getenv("ETH_GCP_KMS_KEY_NAME") != "" {
		Config.Ethereum.GcpKmsKeyName = os.Getenv("ETH_GCP_KMS_KEY_NAME")
	}
	parseInt64ENV("ETH_RPC_TIMEOUT_MS", &Config.Ethereum.RPCTimeoutMillis)
	parseInt64ENV("ETH_CONFIRMATIONS", &Config.Ethereum.Confirmations)

	// ledger
	if os.Getenv("LEDGER_ADMIN_ADDRESS") != "" {
		Config.Ledger.AdminAddress = os.Getenv("LEDGER_ADMIN_ADDRESS")
	}
	if os.Getenv("LEDGER_PLATFORM_FEE_RECIPIENT") != "" {
		Config.Ledger.PlatformFeeRecipient = os.Getenv("LEDGER_PLATFORM_FEE_RECIPIENT")
	}
	if os.Getenv("LEDGER_DEFAULT_MINT_PRICE_WEI") != "" {
		Config.Ledger.DefaultMintPriceWei = os.Getenv("LEDGER_DEFAULT_MINT_PRICE_WEI")
	}
	parseInt64ENV("LEDGER_TRIGGER_SUPPLY", &Config.Ledger.TriggerSupply)
	parseInt64ENV("LEDGER_FINAL_COUNTDOWN_HOURS", &Config.Ledger.FinalCountdownHours)
	parseInt64ENV("LEDGER_DEFAULT_MINT_DURATION_HOURS", &Config.Ledger.DefaultMintDurationHours)

	// google secret manager
	parseBoolENV("GSM_ENABLED", &Config.GoogleSecretManager.Enabled)
	if os.Getenv("GSM_PROJECT_ID") != "" {
		Config.GoogleSecretManager.ProjectId = os.Getenv("GSM_PROJECT_ID")
	}
	if os.Getenv("GSM_MONGO_SECRET_NAME") != "" {
		Config.GoogleSecretManager.MongoSecretName = os.Getenv("GSM_MONGO_SECRET_NAME")
	}
	if os.Getenv("GSM_ETH_SECRET_NAME") != "" {
		Config.GoogleSecretManager.EthSecretName = os.Getenv("GSM_ETH_SECRET_NAME")
	}

	// services
	parseBoolENV("HEALTH_CHECK_READ_LAST_HEALTH", &Config.HealthCheck.ReadLastHealth)
	parseInt64ENV("HEALTH_CHECK_INTERVAL_MS", &Config.HealthCheck.IntervalMillis)
	parseBoolENV("LIFECYCLE_SWEEPER_ENABLED", &Config.LifecycleSweeper.Enabled)
	parseInt64ENV("LIFECYCLE_SWEEPER_INTERVAL_MS", &Config.LifecycleSweeper.IntervalMillis)
	parseBoolENV("PAYOUT_EXECUTOR_ENABLED", &Config.PayoutExecutor.Enabled)
	parseInt64ENV("PAYOUT_EXECUTOR_INTERVAL_MS", &Config.PayoutExecutor.IntervalMillis)
}
