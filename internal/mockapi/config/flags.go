package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/mindhaven/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   listen address (e.g. ":8080")
//	-s string   JWT HMAC secret key
//	-ttl int    token validity, minutes
//	-l string   log level
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-s", "-ttl", "-l"})

	fs := flag.NewFlagSet("mockserver", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.EndpointAddr, "a", cfg.EndpointAddr, "address and port to run server")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "secret key")
	ttl := fs.Int("ttl", int(cfg.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.AccessTokenValidityDuration = time.Duration(*ttl) * time.Minute
	return nil
}
