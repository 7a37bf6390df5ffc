package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/mindhaven/internal/flagx"
	"github.com/dmitrijs2005/mindhaven/internal/timex"
)

// JsonConfig is the on-disk DTO. Durations accept "24h" or nanoseconds.
type JsonConfig struct {
	EndpointAddr                string         `json:"endpoint_addr"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	LogLevel                    string         `json:"log_level"`
	LogFormat                   string         `json:"log_format"`
}

func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if jc.EndpointAddr != "" {
		cfg.EndpointAddr = jc.EndpointAddr
	}
	if jc.SecretKey != "" {
		cfg.SecretKey = jc.SecretKey
	}
	if jc.AccessTokenValidityDuration.Duration > 0 {
		cfg.AccessTokenValidityDuration = jc.AccessTokenValidityDuration.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.LogFormat != "" {
		cfg.LogFormat = jc.LogFormat
	}
	return nil
}
