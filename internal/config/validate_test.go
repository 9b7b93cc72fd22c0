package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateDefaults(t *testing.T) {
	warnings, err := Validate(Default())
	require.NoError(t, err)
	require.Empty(t, warnings)
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "empty server url", mutate: func(c *Config) { c.ServerURL = " " }, wantErr: "server_url"},
		{name: "server url without scheme", mutate: func(c *Config) { c.ServerURL = "coach:8000" }, wantErr: "http://"},
		{name: "empty health path", mutate: func(c *Config) { c.ServerHealthPath = "" }, wantErr: "server_health_path"},
		{name: "relative health path", mutate: func(c *Config) { c.ServerHealthPath = "docs" }, wantErr: "'/'"},
		{name: "empty playback command", mutate: func(c *Config) { c.Playback.Command.Argv = nil }, wantErr: "playback_cmd"},
		{name: "clipboard raw without argv", mutate: func(c *Config) { c.Clipboard = CommandConfig{Raw: "x", Argv: nil} }, wantErr: "clipboard_cmd"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			_, err := Validate(cfg)
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
