package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config represents the gateway configuration
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Ethereum   EthereumConfig   `mapstructure:"ethereum"`
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host     string `mapstructure:"host" validate:"required"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

// EthereumConfig contains chain client settings
type EthereumConfig struct {
	RPCURL          string          `mapstructure:"rpc_url" validate:"required"`
	ChainID         int64           `mapstructure:"chain_id" validate:"required"`
	PrivateKey      string          `mapstructure:"private_key"` // empty means read-only (no wallet)
	GasLimit        uint64          `mapstructure:"gas_limit"`
	MaxGasPrice     string          `mapstructure:"max_gas_price"`
	PollingInterval time.Duration   `mapstructure:"polling_interval"`
	StartBlock      int64           `mapstructure:"start_block"`
	Contracts       ContractsConfig `mapstructure:"contracts"`
}

// ContractsConfig holds the deployed protocol contract addresses
type ContractsConfig struct {
	LiptToken       string `mapstructure:"lipt_token" validate:"required"`
	UsdtToken       string `mapstructure:"usdt_token" validate:"required"`
	SwapPool        string `mapstructure:"swap_pool" validate:"required"`
	StakingPool     string `mapstructure:"staking_pool" validate:"required"`
	MiningPool      string `mapstructure:"mining_pool" validate:"required"`
	ReferralProgram string `mapstructure:"referral_program"`
	WheelOfFortune  string `mapstructure:"wheel_of_fortune"`
	RocketGame      string `mapstructure:"rocket_game"`
	Lottery         string `mapstructure:"lottery"`
	Controller      string `mapstructure:"controller"`
}

// MonitoringConfig contains monitoring and metrics settings
type MonitoringConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "15s")
	viper.SetDefault("server.idle_timeout", "60s")
	viper.SetDefault("server.shutdown_timeout", "30s")

	// Database defaults
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.ssl_mode", "disable")
	viper.SetDefault("database.database", "lipt_gateway")

	// Ethereum defaults
	viper.SetDefault("ethereum.gas_limit", 300000)
	viper.SetDefault("ethereum.polling_interval", "15s")
	viper.SetDefault("ethereum.start_block", 0)

	// Monitoring defaults
	viper.SetDefault("monitoring.enabled", true)

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.output_path", "stdout")
}

func validate(config *Config) error {
	if err := validator.New().Struct(config); err != nil {
		return err
	}
	if config.Ethereum.PollingInterval <= 0 {
		return fmt.Errorf("ethereum.polling_interval must be positive")
	}
	return nil
}
