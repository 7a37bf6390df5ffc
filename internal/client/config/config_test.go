package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "https://psyco.onrender.com", c.BaseURL)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
	assert.Equal(t, "mindhaven.db", c.StoragePath)
	require.NoError(t, c.Validate())
}

func TestLoadConfig_NoArgsGivesDefaults(t *testing.T) {
	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, "https://psyco.onrender.com", cfg.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		var c Config
		c.LoadDefaults()
		return c
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"relative url", func(c *Config) { c.BaseURL = "/api" }},
		{"ftp url", func(c *Config) { c.BaseURL = "ftp://host" }},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }},
		{"empty storage", func(c *Config) { c.StoragePath = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(&c)
			require.Error(t, c.Validate())
		})
	}
}

func TestLoadConfig_InvalidFlagValue(t *testing.T) {
	_, err := LoadConfig([]string{"-u", "not a url"})
	require.Error(t, err)
}
