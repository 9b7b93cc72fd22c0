// Package player manages the single logical audio-output slot: one sound
// (question prompt or spoken feedback) playing at a time.
package player

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"sync"
)

// Clip is one encoded-audio payload with a stable identity used for
// toggle semantics (replaying the clip that is already playing pauses it).
type Clip struct {
	ID   string
	Data []byte
}

// Player owns the output slot. A new Play call always preempts the
// current sound; there is no queueing and no overlap. Playback failures
// are logged and swallowed, never surfaced to the caller.
type Player struct {
	argv   []string
	logger *slog.Logger

	mu        sync.Mutex
	gen       int
	currentID string
	cancel    context.CancelFunc
	onChange  func()

	// runClip is swapped in tests.
	runClip func(ctx context.Context, argv []string, data []byte) error
}

// New constructs an idle player from the configured playback command.
func New(argv []string, logger *slog.Logger) *Player {
	return &Player{argv: argv, logger: logger, runClip: runClipCommand}
}

// SetOnChange registers a callback fired on every playing-state change.
func (p *Player) SetOnChange(fn func()) {
	p.mu.Lock()
	p.onChange = fn
	p.mu.Unlock()
}

// Playing reports whether a clip is currently in the slot.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

// PlayingClip returns the identity of the playing clip, or "" when idle.
func (p *Player) PlayingClip() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel == nil {
		return ""
	}
	return p.currentID
}

// Play starts clip playback, preempting whatever is playing. Calling it
// with the clip already in the slot pauses instead, so one control can
// drive both start and pause. Pause is a stop: replaying restarts the
// clip from the top.
func (p *Player) Play(clip Clip) {
	if len(clip.Data) == 0 {
		return
	}

	p.mu.Lock()
	if p.cancel != nil {
		cancel := p.cancel
		p.cancel = nil
		if p.currentID == clip.ID {
			// Toggle semantics.
			p.mu.Unlock()
			cancel()
			p.notify()
			return
		}
		cancel()
	}

	p.gen++
	gen := p.gen
	p.currentID = clip.ID

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	argv := p.argv
	run := p.runClip
	p.mu.Unlock()
	p.notify()

	go func() {
		err := run(ctx, argv, clip.Data)

		p.mu.Lock()
		stillCurrent := p.gen == gen
		if stillCurrent {
			p.cancel = nil
		}
		p.mu.Unlock()

		if err != nil && ctx.Err() == nil && p.logger != nil {
			p.logger.Error("audio playback failed", "clip", clip.ID, "error", err.Error())
		}
		if stillCurrent {
			p.notify()
		}
	}()
}

// Stop halts playback immediately; no-op when idle.
func (p *Player) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
		p.notify()
	}
}

// notify fires the registered observer outside the slot lock.
func (p *Player) notify() {
	p.mu.Lock()
	fn := p.onChange
	p.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// runClipCommand writes the payload to a temp file and plays it with the
// configured command (pw-play by default).
func runClipCommand(ctx context.Context, argv []string, data []byte) error {
	f, err := os.CreateTemp("", "vuka-clip-*.mp3")
	if err != nil {
		return err
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	args := append(append([]string{}, argv[1:]...), path)
	cmd := exec.CommandContext(ctx, argv[0], args...)
	return cmd.Run()
}
