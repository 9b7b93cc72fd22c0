package session

import (
	"context"
	"errors"

	"github.com/SinomthaMzamo/vuka-coach/internal/api"
	"github.com/SinomthaMzamo/vuka-coach/internal/player"
)

var (
	// ErrBusy indicates a mutating request is already in flight.
	ErrBusy = errors.New("another request is in flight")
	// ErrNoSession indicates the controller has no initialized session.
	ErrNoSession = errors.New("no active interview session")
)

// Coach is the remote-call surface the controller drives.
type Coach interface {
	SubmitAnswer(ctx context.Context, sessionID string, wav []byte) (*api.Feedback, error)
	SetQuestion(ctx context.Context, sessionID string, index int) (*api.QuestionPrompt, error)
	GenerateReport(ctx context.Context, sessionID string) (*api.Report, error)
}

// Mic abstracts answer capture. Stop returns the finalized WAV blob.
type Mic interface {
	Start(ctx context.Context) error
	Stop() ([]byte, error)
	Discard()
}

// Sound abstracts the single audio-output slot.
type Sound interface {
	Play(player.Clip)
	Stop()
	Playing() bool
	PlayingClip() string
}

// Cues receives state-change notifications for audio cue playback.
type Cues interface {
	RecordStart()
	RecordStop()
	FeedbackReady()
	Error()
}

// noopSound preserves controller flow when no playback is wired.
type noopSound struct{}

func (noopSound) Play(player.Clip)    {}
func (noopSound) Stop()               {}
func (noopSound) Playing() bool       { return false }
func (noopSound) PlayingClip() string { return "" }

// noopCues preserves controller flow when no cue notifier is wired.
type noopCues struct{}

func (noopCues) RecordStart()   {}
func (noopCues) RecordStop()    {}
func (noopCues) FeedbackReady() {}
func (noopCues) Error()         {}
