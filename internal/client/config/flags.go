package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/mindhaven/internal/flagx"
)

// parseFlags populates cfg from the flags this package owns. Unknown
// arguments are filtered out first so other flag sets can coexist.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-u", "-t", "-d", "-l"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.BaseURL, "u", cfg.BaseURL, "base url of the remote api")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.StoragePath, "d", cfg.StoragePath, "local storage database path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	return nil
}
