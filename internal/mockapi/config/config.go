// Package config handles configuration for the local stub API,
// including defaults, JSON overlay, and command-line flags.
package config

import (
	"errors"
	"os"
	"time"
)

// Config holds runtime settings for the stub API.
//
// Fields:
//   - EndpointAddr: bind address of the HTTP listener.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use the default outside development.
//   - AccessTokenValidityDuration: lifetime of issued tokens.
//   - LogLevel / LogFormat: slog handler settings.
type Config struct {
	EndpointAddr                string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	LogLevel                    string
	LogFormat                   string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 24 * time.Hour
	c.LogLevel = "info"
	c.LogFormat = "json"
}

func (c *Config) Validate() error {
	if c.EndpointAddr == "" {
		return errors.New("endpoint address is required")
	}
	if c.SecretKey == "" {
		return errors.New("secret key is required")
	}
	if c.AccessTokenValidityDuration <= 0 {
		return errors.New("token validity must be positive")
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad is LoadConfig over the process arguments; it exits on error.
func MustLoad() *Config {
	cfg, err := LoadConfig(os.Args[1:])
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(2)
	}
	return cfg
}
