// Package config resolves, parses, validates, and defaults vuka configuration.
package config

// Config is the fully materialized runtime configuration used by vuka.
type Config struct {
	ServerURL        string
	ServerHealthPath string
	Audio            AudioConfig
	Playback         PlaybackConfig
	Cue              CueConfig
	Clipboard        CommandConfig
	Report           ReportConfig
	Debug            DebugConfig
}

// AudioConfig controls preferred and fallback input-source selection.
type AudioConfig struct {
	Input    string
	Fallback string
}

// PlaybackConfig controls how encoded audio payloads are played.
type PlaybackConfig struct {
	Command CommandConfig
}

// CueConfig controls synthesized audio cue behavior.
type CueConfig struct {
	Enable bool
}

// CommandConfig stores a raw command string and its parsed argv form.
type CommandConfig struct {
	Raw  string
	Argv []string
}

// ReportConfig controls report export behavior.
type ReportConfig struct {
	PDFDir string
}

// DebugConfig controls optional debug artifact output.
type DebugConfig struct {
	EnableAudioDump bool
}

// Warning is a non-fatal parse/validation message.
type Warning struct {
	Line    int
	Message string
}
