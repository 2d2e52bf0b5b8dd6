package config

import (
	"fmt"
	"strings"
	"time"

	"dario.cat/mergo"
)

// Client defaults.
const (
	DefaultClientServerAddress = "localhost:8080"
	DefaultClientTimeout       = 30 * time.Second
)

// ClientConfig configures the notes-keeper command line client.
type ClientConfig struct {
	// ServerAddress is the base address of the REST API, with or without
	// scheme.
	// Env: NOTES_SERVER_ADDRESS
	ServerAddress string `env:"NOTES_SERVER_ADDRESS"`

	// Timeout bounds every request of the client.
	// Env: NOTES_CLIENT_TIMEOUT
	Timeout time.Duration `env:"NOTES_CLIENT_TIMEOUT"`

	// Token is a bearer token issued by signup or login.
	// Env: NOTES_TOKEN
	Token string `env:"NOTES_TOKEN"`

	// LogLevel is the zerolog level of the client logger, written to stderr.
	// Env: NOTES_CLIENT_LOG_LEVEL
	LogLevel string `env:"NOTES_CLIENT_LOG_LEVEL"`
}

// GetClientConfig reads the client configuration from a .env file in the
// working directory and the environment. Unset values are filled from the
// client defaults.
func GetClientConfig() (*ClientConfig, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	cfg := &ClientConfig{}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}

	defaults := &ClientConfig{
		ServerAddress: DefaultClientServerAddress,
		Timeout:       DefaultClientTimeout,
		LogLevel:      "warn",
	}
	if err := mergo.Merge(cfg, defaults); err != nil {
		return nil, fmt.Errorf("error applying default client configs: %w", err)
	}

	if strings.TrimSpace(cfg.ServerAddress) == "" || cfg.Timeout < 0 {
		return nil, ErrInvalidClientConfigs
	}

	return cfg, nil
}
