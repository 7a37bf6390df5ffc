package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"base_url":        "http://api.example:9000",
		"request_timeout": "10s",
		"log_level":       "debug",
	})

	t.Run("loads from -config", func(t *testing.T) {
		cfg := &Config{StoragePath: "keep.db"}
		require.NoError(t, parseJson(cfg, []string{"-config", path}))

		assert.Equal(t, "http://api.example:9000", cfg.BaseURL)
		assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "keep.db", cfg.StoragePath, "unset json fields keep current values")
	})

	t.Run("no flag → no changes", func(t *testing.T) {
		cfg := &Config{BaseURL: "http://defaults:1234", RequestTimeout: 42 * time.Second}
		require.NoError(t, parseJson(cfg, nil))

		assert.Equal(t, "http://defaults:1234", cfg.BaseURL)
		assert.Equal(t, 42*time.Second, cfg.RequestTimeout)
	})

	t.Run("flags override json", func(t *testing.T) {
		cfg, err := LoadConfig([]string{"-c", path, "-t", "3"})
		require.NoError(t, err)
		assert.Equal(t, "http://api.example:9000", cfg.BaseURL)
		assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	})

	t.Run("invalid JSON → error", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		require.Error(t, parseJson(&Config{}, []string{"-c", bad}))
	})

	t.Run("missing file → error", func(t *testing.T) {
		require.Error(t, parseJson(&Config{}, []string{"-c", filepath.Join(t.TempDir(), "nope.json")}))
	})
}
