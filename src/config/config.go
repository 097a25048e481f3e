package config

import (
	"fmt"
	"os"
	"strconv"

	"trading-dashboard/src/helpers"
	"trading-dashboard/src/models"

	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------

// Default ports mirror the dashboard's historical environment defaults.
const (
	DefaultWSPort   = 3002
	DefaultHTTPPort = 3001
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// Default returns the built-in configuration used when no YAML file is given.
func Default() *Config {
	return &Config{MConfig: &models.MConfig{
		Name:     "trading-dashboard",
		Host:     "0.0.0.0",
		WSPort:   DefaultWSPort,
		HTTPPort: DefaultHTTPPort,
		LogLevel: "INFO",
		Broadcast: models.MBroadcast{
			UpdateIntervalSeconds: 2,
			InitialDelaySeconds:   1,
		},
		Market: models.MMarketConfig{Symbol: "US100"},
	}}
}

// -----------------------------------------------------------------------------

// NewConfig builds the configuration from an optional YAML file, then applies
// environment overrides (WS_PORT, HTTP_PORT, HOST, LOG_LEVEL) and validates.
func NewConfig(configPath string) (*Config, error) {
	config := Default()

	if configPath != "" {
		// 1. Read the YAML file content
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
		}

		// 2. Unmarshal over the defaults
		if err := yaml.Unmarshal(data, config.MConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
		}
	}

	// 3. Environment overrides win over file values
	if err := config.applyEnv(); err != nil {
		return nil, err
	}

	// 4. Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, helpers.NewConfigurationError("config validation failed", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

func (c *Config) applyEnv() error {
	if v := os.Getenv("HOST"); v != "" {
		c.Host = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("WS_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid WS_PORT '%s': %w", v, err)
		}
		c.WSPort = port
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid HTTP_PORT '%s': %w", v, err)
		}
		c.HTTPPort = port
	}
	return nil
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("application name cannot be empty")
	}

	if c.Host == "" {
		return fmt.Errorf("server host cannot be empty")
	}
	if c.WSPort <= 1024 || c.WSPort > 65535 {
		return fmt.Errorf("invalid websocket port number: %d (must be between 1025 and 65535)", c.WSPort)
	}
	if c.HTTPPort <= 1024 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid http port number: %d (must be between 1025 and 65535)", c.HTTPPort)
	}
	if c.WSPort == c.HTTPPort {
		return fmt.Errorf("websocket and http ports must differ (both %d)", c.WSPort)
	}

	if c.Broadcast.UpdateIntervalSeconds <= 0 {
		return fmt.Errorf("update interval must be greater than 0")
	}
	if c.Broadcast.InitialDelaySeconds < 0 {
		return fmt.Errorf("initial delay cannot be negative")
	}

	if c.Market.Symbol == "" {
		return fmt.Errorf("market symbol cannot be empty")
	}

	return nil
}
