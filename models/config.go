package models

type Config struct {
	GoogleSecretManager GoogleSecretManagerConfig `yaml:"google_secret_manager" json:"google_secret_manager"`
	HealthCheck         HealthCheckConfig         `yaml:"health_check" json:"health_check"`
	Logger              LoggerConfig              `yaml:"logger" json:"logger"`
	MongoDB             MongoConfig               `yaml:"mongodb" json:"mongo_db"`
	Ethereum            EthereumConfig            `yaml:"ethereum" json:"ethereum"`
	Ledger              LedgerConfig              `yaml:"ledger" json:"ledger"`
	LifecycleSweeper    ServiceConfig             `yaml:"lifecycle_sweeper" json:"lifecycle_sweeper"`
	PayoutExecutor      ServiceConfig             `yaml:"payout_executor" json:"payout_executor"`
}

type GoogleSecretManagerConfig struct {
	Enabled         bool   `yaml:"enabled" json:"enabled"`
	ProjectId       string `yaml:"project_id" json:"project_id"`
	MongoSecretName string `yaml:"mongo_secret_name" json:"mongo_secret_name"`
	EthSecretName   string `yaml:"eth_secret_name" json:"eth_secret_name"`
}

type HealthCheckConfig struct {
	IntervalMillis int64 `yaml:"interval_ms" json:"interval_ms"`
	ReadLastHealth bool  `yaml:"read_last_health" json:"read_last_health"`
}

type LoggerConfig struct {
	Level string `yaml:"level" json:"level"`
}

type MongoConfig struct {
	URI           string `yaml:"uri" json:"uri"`
	Database      string `yaml:"database" json:"database"`
	TimeoutMillis int64  `yaml:"timeout_ms" json:"timeout_ms"`
}

type EthereumConfig struct {
	RPCURL           string `yaml:"rpc_url" json:"rpcurl"`
	RPCTimeoutMillis int64  `yaml:"rpc_timeout_ms" json:"rpc_timeout_ms"`
	ChainID          string `yaml:"chain_id" json:"chain_id"`
	Confirmations    int64  `yaml:"confirmations" json:"confirmations"`
	PrivateKey       string `yaml:"private_key" json:"private_key"`
	Mnemonic         string `yaml:"mnemonic" json:"mnemonic"`
	GcpKmsKeyName    string `yaml:"gcp_kms_key_name" json:"gcp_kms_key_name"`
}

type LedgerConfig struct {
	AdminAddress             string `yaml:"admin_address" json:"admin_address"`
	PlatformFeeRecipient     string `yaml:"platform_fee_recipient" json:"platform_fee_recipient"`
	DefaultMintPriceWei      string `yaml:"default_mint_price_wei" json:"default_mint_price_wei"`
	TriggerSupply            int64  `yaml:"trigger_supply" json:"trigger_supply"`
	FinalCountdownHours      int64  `yaml:"final_countdown_hours" json:"final_countdown_hours"`
	DefaultMintDurationHours int64  `yaml:"default_mint_duration_hours" json:"default_mint_duration_hours"`
}

type ServiceConfig struct {
	Enabled        bool  `yaml:"enabled" json:"enabled"`
	IntervalMillis int64 `yaml:"interval_ms" json:"interval_ms"`
}
