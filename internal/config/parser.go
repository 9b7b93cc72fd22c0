package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse reads key=value configuration content over a base config.
//
// Lines are `key = value`; `#` starts a comment. Unknown keys produce
// warnings rather than errors so older configs keep loading.
func Parse(content string, base Config) (Config, []Warning, error) {
	cfg := base
	warnings := make([]Warning, 0)

	for lineNo, rawLine := range strings.Split(content, "\n") {
		line := rawLine
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			warnings = append(warnings, Warning{Line: lineNo + 1, Message: fmt.Sprintf("ignoring malformed line %q", strings.TrimSpace(rawLine))})
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = unquote(strings.TrimSpace(value))

		if err := applyKey(&cfg, key, value, lineNo+1, &warnings); err != nil {
			return Config{}, nil, err
		}
	}

	validateWarnings, err := Validate(cfg)
	if err != nil {
		return Config{}, nil, err
	}
	warnings = append(warnings, validateWarnings...)

	return cfg, warnings, nil
}

// applyKey mutates cfg for one recognized key, warning on unknown ones.
func applyKey(cfg *Config, key, value string, line int, warnings *[]Warning) error {
	switch key {
	case "server_url":
		cfg.ServerURL = value
	case "server_health_path":
		cfg.ServerHealthPath = value
	case "audio.input":
		cfg.Audio.Input = value
	case "audio.fallback":
		cfg.Audio.Fallback = value
	case "playback_cmd":
		argv, err := parseArgv(value)
		if err != nil {
			return fmt.Errorf("line %d: playback_cmd: %w", line, err)
		}
		cfg.Playback.Command = CommandConfig{Raw: value, Argv: argv}
	case "clipboard_cmd":
		argv, err := parseArgv(value)
		if err != nil {
			return fmt.Errorf("line %d: clipboard_cmd: %w", line, err)
		}
		cfg.Clipboard = CommandConfig{Raw: value, Argv: argv}
	case "cue.enable":
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("line %d: cue.enable: %w", line, err)
		}
		cfg.Cue.Enable = b
	case "report.pdf_dir":
		cfg.Report.PDFDir = value
	case "debug.audio_dump":
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("line %d: debug.audio_dump: %w", line, err)
		}
		cfg.Debug.EnableAudioDump = b
	default:
		*warnings = append(*warnings, Warning{Line: line, Message: fmt.Sprintf("unknown key %q", key)})
	}
	return nil
}

// unquote strips one pair of matching surrounding quotes.
func unquote(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if first == last && (first == '"' || first == '\'') {
			return value[1 : len(value)-1]
		}
	}
	return value
}

func parseBool(value string) (bool, error) {
	b, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(value)))
	if err != nil {
		return false, fmt.Errorf("expected true/false, got %q", value)
	}
	return b, nil
}
