// Package recorder wraps press-and-hold microphone capture into a
// start/stop controller producing one WAV blob per take.
package recorder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/SinomthaMzamo/vuka-coach/internal/audio"
	"github.com/SinomthaMzamo/vuka-coach/internal/config"
)

// Status is the two-state recording signal surfaced to the UI.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusRecording Status = "recording"
)

// Recorder owns one microphone capture at a time. Starting while already
// recording and stopping while idle are no-ops.
type Recorder struct {
	cfg    config.Config
	logger *slog.Logger

	mu        sync.Mutex
	capture   *audio.Capture
	selection audio.Selection
}

// New constructs an idle recorder from runtime config.
func New(cfg config.Config, logger *slog.Logger) *Recorder {
	return &Recorder{cfg: cfg, logger: logger}
}

// Status returns the current capture state.
func (r *Recorder) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.capture != nil {
		return StatusRecording
	}
	return StatusIdle
}

// Start resolves device selection and begins buffering microphone input.
func (r *Recorder) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.capture != nil {
		return nil
	}

	selection, err := audio.SelectDevice(ctx, r.cfg.Audio.Input, r.cfg.Audio.Fallback)
	if err != nil {
		return err
	}
	if selection.Warning != "" && r.logger != nil {
		r.logger.Warn(selection.Warning)
	}

	capture, err := audio.StartCapture(ctx, selection.Device)
	if err != nil {
		return err
	}

	r.selection = selection
	r.capture = capture
	return nil
}

// Stop finalizes the take and returns the captured audio as WAV bytes.
// The interval between stop and blob delivery is the encode step; callers
// treat it as in-flight time, not idle time.
func (r *Recorder) Stop() ([]byte, error) {
	r.mu.Lock()
	capture := r.capture
	r.capture = nil
	r.mu.Unlock()

	if capture == nil {
		return nil, nil
	}

	if err := capture.Stop(); err != nil {
		return nil, fmt.Errorf("stop capture: %w", err)
	}

	pcm := capture.RawPCM()
	r.dumpDebugAudio(pcm)
	if len(pcm) == 0 {
		return nil, fmt.Errorf("no audio captured from %s", describeDevice(capture.Device()))
	}

	return EncodePCM16WAV(pcm, audio.SampleRate, audio.Channels), nil
}

// Discard stops any active capture and drops its audio.
func (r *Recorder) Discard() {
	r.mu.Lock()
	capture := r.capture
	r.capture = nil
	r.mu.Unlock()

	if capture != nil {
		_ = capture.Stop()
	}
}

// Device describes the active or last-selected input for logging.
func (r *Recorder) Device() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return describeDevice(r.selection.Device)
}

// describeDevice formats device metadata for logs.
func describeDevice(device audio.Device) string {
	description := strings.TrimSpace(device.Description)
	id := strings.TrimSpace(device.ID)
	if description == "" {
		return id
	}
	if id == "" {
		return description
	}
	return fmt.Sprintf("%s (%s)", description, id)
}

// dumpDebugAudio writes the take as WAV under the state dir when enabled.
func (r *Recorder) dumpDebugAudio(pcm []byte) {
	if !r.cfg.Debug.EnableAudioDump || len(pcm) == 0 {
		return
	}

	stateDir, err := resolveStateDir()
	if err != nil {
		r.logWarn(fmt.Sprintf("unable to resolve debug audio dir: %v", err))
		return
	}
	debugDir := filepath.Join(stateDir, "vuka", "debug")
	if err := os.MkdirAll(debugDir, 0o700); err != nil {
		r.logWarn(fmt.Sprintf("unable to create debug audio dir: %v", err))
		return
	}

	timestamp := time.Now().Format("20060102-150405.000")
	path := filepath.Join(debugDir, fmt.Sprintf("answer-%s.wav", timestamp))
	wav := EncodePCM16WAV(pcm, audio.SampleRate, audio.Channels)
	if err := os.WriteFile(path, wav, 0o600); err != nil {
		r.logWarn(fmt.Sprintf("unable to write debug audio dump: %v", err))
	}
}

// resolveStateDir returns XDG_STATE_HOME fallback path for debug artifacts.
func resolveStateDir() (string, error) {
	if xdg := strings.TrimSpace(os.Getenv("XDG_STATE_HOME")); xdg != "" {
		return xdg, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory for state: %w", err)
	}
	return filepath.Join(home, ".local", "state"), nil
}

func (r *Recorder) logWarn(message string) {
	if r.logger == nil {
		return
	}
	r.logger.Warn(message)
}
