// Package cue emits short synthesized audio cues for interview state
// changes: capture start, capture stop, feedback ready, and errors.
package cue

import (
	"log/slog"
	"sync"

	"github.com/SinomthaMzamo/vuka-coach/internal/config"
)

type kind int

const (
	kindRecordStart kind = iota + 1
	kindRecordStop
	kindFeedbackReady
	kindError
)

// Notifier serializes cue playback so overlapping state changes never
// stack tones on top of each other. Cue failures are logged at debug
// level and otherwise ignored.
type Notifier struct {
	cfg    config.CueConfig
	logger *slog.Logger

	mu sync.Mutex

	// emit is swapped in tests.
	emit func(samples []int16) error
}

// NewNotifier creates a cue notifier from config.
func NewNotifier(cfg config.CueConfig, logger *slog.Logger) *Notifier {
	return &Notifier{cfg: cfg, logger: logger, emit: playSynthCue}
}

// RecordStart signals that answer capture began.
func (n *Notifier) RecordStart() { n.play(kindRecordStart) }

// RecordStop signals that answer capture ended.
func (n *Notifier) RecordStop() { n.play(kindRecordStop) }

// FeedbackReady signals that coach feedback arrived.
func (n *Notifier) FeedbackReady() { n.play(kindFeedbackReady) }

// Error signals a failed operation.
func (n *Notifier) Error() { n.play(kindError) }

func (n *Notifier) play(k kind) {
	if n == nil || !n.cfg.Enable {
		return
	}
	samples := cueSamples(k)
	if len(samples) == 0 {
		return
	}
	go func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if err := n.emit(samples); err != nil && n.logger != nil {
			n.logger.Debug("audio cue failed", "error", err.Error())
		}
	}()
}
