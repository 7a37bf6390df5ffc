package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/mindhaven/internal/flagx"
	"github.com/dmitrijs2005/mindhaven/internal/timex"
)

// JsonConfig is the on-disk DTO. Zero values mean "not set" and leave the
// current Config value untouched.
type JsonConfig struct {
	BaseURL        string         `json:"base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	StoragePath    string         `json:"storage_path"`
	LogLevel       string         `json:"log_level"`
	LogFormat      string         `json:"log_format"`
}

// parseJson overlays cfg with values from the file named by -c/-config.
// Without the flag nothing happens.
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

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.StoragePath != "" {
		cfg.StoragePath = jc.StoragePath
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.LogFormat != "" {
		cfg.LogFormat = jc.LogFormat
	}
	return nil
}
