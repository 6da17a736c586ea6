package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the deposit monitor.
type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Chain        ChainConfig
	Monitor      MonitorConfig `yaml:"monitor"`
	Notification NotificationConfig
	Logging      LoggingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port string
	Host string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
}

// ChainConfig holds chain data source configuration
type ChainConfig struct {
	RPCURL          string `yaml:"rpc_url"`
	IndexerBaseURL  string `yaml:"indexer_base_url"`
	IndexerAPIKey   string `yaml:"indexer_api_key"`
	FallbackHorizon uint64 `yaml:"fallback_horizon"`
}

// MonitorConfig holds deposit monitor behavior configuration
type MonitorConfig struct {
	Currency        string        `yaml:"currency" env:"STAKING_CURRENCY" envDefault:"BSK"`
	ScanInterval    time.Duration `yaml:"scan_interval" env:"DEPOSIT_SCAN_INTERVAL" envDefault:"30s"`
	EnableScheduler bool          `yaml:"enable_scheduler" env:"DEPOSIT_ENABLE_SCHEDULER" envDefault:"true"`
}

// NotificationConfig holds notification configuration
type NotificationConfig struct {
	Telegram TelegramConfig
}

// TelegramConfig holds Telegram specific configuration
type TelegramConfig struct {
	BotToken string
	ChatID   string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
	Dir    string
}

// LoadConfig loads configuration from YAML file or environment variables
func LoadConfig() *Config {
	if config, err := LoadConfigFromYAML(); err == nil {
		return config
	}
	return LoadConfigFromEnv()
}

// LoadConfigFromYAML loads configuration from YAML file
func LoadConfigFromYAML() (*Config, error) {
	viper.SetConfigName("config.dev")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../configs")
	viper.AddConfigPath("../../configs")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideWithEnvVars(&config)

	return &config, nil
}

// overrideWithEnvVars overrides config values with environment variables if they exist
func overrideWithEnvVars(config *Config) {
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		config.Database.Password = password
	}
	if key := os.Getenv("INDEXER_API_KEY"); key != "" {
		config.Chain.IndexerAPIKey = key
	}
}

// LoadConfigFromEnv loads configuration from environment variables
func LoadConfigFromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_URL", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "password"),
			Database: getEnv("DB_DATABASE", "staking_monitor"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Chain: ChainConfig{
			RPCURL:          getEnv("BSC_RPC_URL", "https://bsc-dataseed.binance.org"),
			IndexerBaseURL:  getEnv("INDEXER_BASE_URL", "https://api.bscscan.com"),
			IndexerAPIKey:   getEnv("INDEXER_API_KEY", ""),
			FallbackHorizon: uint64(getEnvAsInt("RPC_FALLBACK_HORIZON", 5000)),
		},
		Monitor: MonitorConfig{
			Currency:        getEnv("STAKING_CURRENCY", "BSK"),
			ScanInterval:    getEnvAsDuration("DEPOSIT_SCAN_INTERVAL", 30*time.Second),
			EnableScheduler: getEnv("DEPOSIT_ENABLE_SCHEDULER", "true") == "true",
		},
		Notification: NotificationConfig{
			Telegram: TelegramConfig{
				BotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
				ChatID:   getEnv("TELEGRAM_BOT_MESSAGE_GROUP", ""),
			},
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
			Dir:    getEnv("LOG_DIR", "./logs"),
		},
	}
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvAsInt gets an environment variable as integer with a fallback value
func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}

// getEnvAsDuration gets an environment variable as duration with a fallback value
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
