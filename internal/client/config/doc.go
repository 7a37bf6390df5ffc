// Package config loads runtime configuration for the mindhaven client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-u string   base URL of the remote API (without the /api prefix)
//	-t int      request timeout (seconds)
//	-d string   path of the local storage database
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// Durations accept strings like "15s" or integer nanoseconds:
//
//	{
//	  "base_url": "https://psyco.onrender.com",
//	  "request_timeout": "15s",
//	  "storage_path": "mindhaven.db",
//	  "log_level": "info",
//	  "log_format": "text"
//	}
package config
