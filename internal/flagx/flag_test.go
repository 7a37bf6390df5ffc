package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-c", "conf.json", "-u", "http://localhost"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"-c", "conf.json"},
		},
		{
			name:         "long flag with equals",
			args:         []string{"--config=alt.json", "-u", "http://localhost"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"--config=alt.json"},
		},
		{
			name:         "order preserved",
			args:         []string{"--config=first.json", "-c", "second.json", "-x", "1"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"--config=first.json", "-c", "second.json"},
		},
		{
			name:         "unknown flags ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
		{
			name:         "flag followed by another flag keeps no value",
			args:         []string{"-c", "-t", "5"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "positional equals sign is not a flag",
			args:         []string{"key=value", "-t", "5"},
			allowedFlags: []string{"-t"},
			want:         []string{"-t", "5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestConfigPath(t *testing.T) {
	assert.Equal(t, "a.json", ConfigPath([]string{"-u", "x", "-c", "a.json"}))
	assert.Equal(t, "b.json", ConfigPath([]string{"--config=b.json"}))
	assert.Equal(t, "", ConfigPath([]string{"-u", "http://x"}))
}
