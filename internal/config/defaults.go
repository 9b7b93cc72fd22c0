package config

// Default returns the canonical runtime configuration used when no file is present.
func Default() Config {
	playback := "pw-play --media-role Music"
	clipboard := "wl-copy --trim-newline"

	return Config{
		ServerURL:        "http://localhost:8000",
		ServerHealthPath: "/docs",
		Audio: AudioConfig{
			Input:    "default",
			Fallback: "default",
		},
		Playback: PlaybackConfig{
			Command: CommandConfig{Raw: playback, Argv: mustParseArgv(playback)},
		},
		Cue:       CueConfig{Enable: true},
		Clipboard: CommandConfig{Raw: clipboard, Argv: mustParseArgv(clipboard)},
		Report:    ReportConfig{PDFDir: ""},
		Debug:     DebugConfig{},
	}
}
