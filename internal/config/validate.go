package config

import (
	"fmt"
	"strings"
)

// Validate enforces config invariants and returns non-fatal warnings.
func Validate(cfg Config) ([]Warning, error) {
	warnings := make([]Warning, 0)

	server := strings.TrimSpace(cfg.ServerURL)
	if server == "" {
		return nil, fmt.Errorf("server_url must not be empty")
	}
	if !strings.HasPrefix(server, "http://") && !strings.HasPrefix(server, "https://") {
		return nil, fmt.Errorf("server_url must start with http:// or https://")
	}
	if strings.TrimSpace(cfg.ServerHealthPath) == "" {
		return nil, fmt.Errorf("server_health_path must not be empty")
	}
	if !strings.HasPrefix(strings.TrimSpace(cfg.ServerHealthPath), "/") {
		return nil, fmt.Errorf("server_health_path must start with '/'")
	}
	if len(cfg.Playback.Command.Argv) == 0 {
		return nil, fmt.Errorf("playback_cmd must not be empty")
	}
	if cfg.Clipboard.Raw != "" && len(cfg.Clipboard.Argv) == 0 {
		return nil, fmt.Errorf("clipboard_cmd is configured but empty")
	}

	return warnings, nil
}
