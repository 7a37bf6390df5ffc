package config

import (
	"errors"
	"net/url"
	"os"
	"time"
)

// Config holds runtime settings for the client.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	StoragePath    string
	LogLevel       string
	LogFormat      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "https://psyco.onrender.com"
	c.RequestTimeout = 15 * time.Second
	c.StoragePath = "mindhaven.db"
	c.LogLevel = "warn"
	c.LogFormat = "text"
}

// Validate reports settings the client cannot run with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("base url must be an absolute http(s) url")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("base url must use http or https")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request timeout must be positive")
	}
	if c.StoragePath == "" {
		return errors.New("storage path is required")
	}
	return nil
}

// LoadConfig applies defaults, then the JSON file, then flags taken from
// args (usually os.Args[1:]). Later sources take precedence.
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
