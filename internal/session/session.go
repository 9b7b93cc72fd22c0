// Package session coordinates interview lifecycle state: recording answers,
// receiving feedback, navigating questions, and closing out with a report.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/SinomthaMzamo/vuka-coach/internal/api"
	"github.com/SinomthaMzamo/vuka-coach/internal/fsm"
)

// Op is the asynchronous half of a controller method: the network call
// plus its completion transition. The caller runs it off the event loop;
// the completion is applied under the controller lock and discarded when
// the session generation has moved on.
type Op func(ctx context.Context) error

// Controller orchestrates one interview session. User-edge transitions
// are applied synchronously inside the calling method; server completions
// are applied by the returned Op, guarded by a generation counter so
// responses that arrive after a reset or supersede are ignored.
type Controller struct {
	logger *slog.Logger
	coach  Coach
	mic    Mic
	sound  Sound
	cues   Cues

	mu          sync.Mutex
	gen         int
	state       fsm.State
	sessionID   string
	questions   []string
	starStories []api.StarStory
	index       int
	promptAudio []byte
	feedback    *api.Feedback
	report      *api.Report
	answered    map[int]bool
	notice      string
}

// Snapshot is an immutable view of controller state for rendering.
type Snapshot struct {
	State         fsm.State
	SessionID     string
	Index         int
	QuestionCount int
	Question      string
	Questions     []string
	StarStories   []api.StarStory
	Feedback      *api.Feedback
	Report        *api.Report
	AnsweredCount int
	Answered      map[int]bool
	Notice        string
	Playing       bool
	PlayingClip   string
}

// NewController seeds a controller from an initialized session. Nil sound
// and cue hooks fall back to no-ops.
func NewController(logger *slog.Logger, coach Coach, mic Mic, sound Sound, cues Cues, sess *api.Session) *Controller {
	if sound == nil {
		sound = noopSound{}
	}
	if cues == nil {
		cues = noopCues{}
	}

	c := &Controller{
		logger:   logger,
		coach:    coach,
		mic:      mic,
		sound:    sound,
		cues:     cues,
		state:    fsm.StateAwaitingAction,
		answered: map[int]bool{},
	}
	if sess != nil {
		c.sessionID = sess.ID
		c.questions = sess.Questions
		c.starStories = sess.StarStories
		c.index = sess.CurrentIndex
		c.promptAudio = sess.PromptAudio
	}
	return c
}

// State returns the current FSM state.
func (c *Controller) State() fsm.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot captures the full renderable state under one lock acquisition.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		State:         c.state,
		SessionID:     c.sessionID,
		Index:         c.index,
		QuestionCount: len(c.questions),
		Questions:     c.questions,
		StarStories:   c.starStories,
		Feedback:      c.feedback,
		Report:        c.report,
		Notice:        c.notice,
		Playing:       c.sound.Playing(),
		PlayingClip:   c.sound.PlayingClip(),
	}
	if c.index >= 0 && c.index < len(c.questions) {
		snap.Question = c.questions[c.index]
	}
	snap.Answered = make(map[int]bool, len(c.answered))
	for i := range c.answered {
		snap.Answered[i] = true
	}
	snap.AnsweredCount = len(c.answered)
	return snap
}

// transition applies one FSM event under the already-held lock.
func (c *Controller) transition(event fsm.Event) error {
	next, err := fsm.Transition(c.state, event)
	if err != nil {
		return err
	}
	c.state = next
	return nil
}

// complete applies an async completion under the lock, dropping it when
// the generation has been superseded.
func (c *Controller) complete(gen int, apply func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		if c.logger != nil {
			c.logger.Debug("discarded stale completion", "completion_gen", gen, "current_gen", c.gen)
		}
		return false
	}
	apply()
	return true
}

// clearFeedbackLocked drops the live feedback record. At most one is live
// at a time and any index change or re-record invalidates it.
func (c *Controller) clearFeedbackLocked() {
	c.feedback = nil
}

// guardActionLocked rejects user actions while a request is in flight.
func (c *Controller) guardActionLocked() error {
	if c.sessionID == "" {
		return ErrNoSession
	}
	if fsm.InFlight(c.state) {
		return fmt.Errorf("%w: %s", ErrBusy, c.state)
	}
	return nil
}

// Reset abandons the session: any in-flight completion is orphaned and
// will be discarded when it lands. The caller tears down the controller
// afterwards; this only makes the teardown race-free.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.sound.Stop()
	c.mic.Discard()
	c.clearFeedbackLocked()
	c.notice = ""
}
