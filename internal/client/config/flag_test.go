package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected *Config
		name     string
		args     []string
		wantErr  bool
	}{
		{
			name: "all flags",
			args: []string{"-u", "http://127.0.0.1:8080", "-t", "5", "-d", "/tmp/x.db", "-l", "debug"},
			expected: &Config{
				BaseURL:        "http://127.0.0.1:8080",
				RequestTimeout: 5 * time.Second,
				StoragePath:    "/tmp/x.db",
				LogLevel:       "debug",
			},
		},
		{
			name:     "foreign flags ignored",
			args:     []string{"-c", "cfg.json", "-t", "7", "-x"},
			expected: &Config{RequestTimeout: 7 * time.Second},
		},
		{name: "bad timeout", args: []string{"-t", "abc"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			err := parseFlags(cfg, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}
