package config

import (
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Gateway       GatewayConfig
	Store         StoreConfig
	Observability ObservabilityConfig
}

// GatewayConfig enumerates the recognized gateway settings with typed
// defaults. The "result" setting is the single switch controlling every
// payment decision.
type GatewayConfig struct {
	Enabled              bool
	Title                string
	Description          string
	Instructions         string
	Result               string // "success" or "failure"
	HideForNonAdminUsers bool
	Tokenization         bool
	Deposits             bool
	ForcedTokenization   bool
	// TokenCaptureOverwrite selects the order-token capture policy:
	// false keeps the first captured token, true always overwrites.
	TokenCaptureOverwrite bool
}

type StoreConfig struct {
	Type       string // "sqlite" or "memory"
	SQLiteFile string
}

type ObservabilityConfig struct {
	LogLevel       string
	LogFormat      string // "json" or "text"
	MetricsEnabled bool
	MetricsPort    int
	TracingEnabled bool
	ZipkinEndpoint string
}

// DefaultConfig returns configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Gateway: GatewayConfig{
			Enabled:      true,
			Title:        "Dummy Payment",
			Description:  "The goods are yours. No money needed.",
			Instructions: "The goods are yours. No money needed.",
			Result:       "success",
			Tokenization: true,
		},
		Store: StoreConfig{
			Type:       "memory",
			SQLiteFile: "data/tokens.db",
		},
		Observability: ObservabilityConfig{
			LogLevel:       "info",
			LogFormat:      "json",
			MetricsEnabled: true,
			MetricsPort:    9090,
			TracingEnabled: false,
			ZipkinEndpoint: "http://localhost:9411/api/v2/spans",
		},
	}
}

// LoadConfig loads configuration from YAML file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		viper.SetConfigFile(configPath)
		if err := viper.ReadInConfig(); err != nil {
			return nil, err
		}
		if err := viper.Unmarshal(cfg); err != nil {
			return nil, err
		}
	}

	// Environment variable overrides
	viper.SetEnvPrefix("DUMMYPAY")
	viper.AutomaticEnv()

	if enabled := os.Getenv("DUMMYPAY_ENABLED"); enabled != "" {
		cfg.Gateway.Enabled = enabled == "yes" || enabled == "true"
	}
	if result := os.Getenv("DUMMYPAY_RESULT"); result != "" {
		cfg.Gateway.Result = result
	}
	if storeType := os.Getenv("DUMMYPAY_STORE_TYPE"); storeType != "" {
		cfg.Store.Type = storeType
	}
	if sqliteFile := os.Getenv("DUMMYPAY_STORE_SQLITE_FILE"); sqliteFile != "" {
		cfg.Store.SQLiteFile = sqliteFile
	}
	if logLevel := os.Getenv("DUMMYPAY_LOG_LEVEL"); logLevel != "" {
		cfg.Observability.LogLevel = logLevel
	}
	if tracingEnabled := os.Getenv("DUMMYPAY_TRACING_ENABLED"); tracingEnabled != "" {
		cfg.Observability.TracingEnabled = tracingEnabled == "true"
	}
	if zipkinEndpoint := os.Getenv("DUMMYPAY_ZIPKIN_ENDPOINT"); zipkinEndpoint != "" {
		cfg.Observability.ZipkinEndpoint = zipkinEndpoint
	}

	return cfg, nil
}
