package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/SinomthaMzamo/vuka-coach/internal/api"
	"github.com/SinomthaMzamo/vuka-coach/internal/fsm"
	"github.com/SinomthaMzamo/vuka-coach/internal/player"
)

// StartRecording begins answer capture. Pressing record while feedback is
// shown first discards that feedback, same as an explicit Retry. Any
// playing audio is stopped before capture starts.
func (c *Controller) StartRecording(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.guardActionLocked(); err != nil {
		return err
	}
	if c.state == fsm.StateRecording {
		return nil
	}
	if c.state == fsm.StateFeedbackShown {
		if err := c.transition(fsm.EventRetry); err != nil {
			return err
		}
		c.clearFeedbackLocked()
	}

	// Validate the edge before touching the microphone so a rejected
	// press leaves capture untouched.
	if _, err := fsm.Transition(c.state, fsm.EventPressRecord); err != nil {
		return err
	}

	c.sound.Stop()
	c.clearFeedbackLocked()
	c.notice = ""

	if err := c.mic.Start(ctx); err != nil {
		c.notice = "Could not start recording. Check your microphone."
		c.cues.Error()
		c.logError("recording start failed", err)
		return err
	}

	_ = c.transition(fsm.EventPressRecord)
	c.cues.RecordStart()
	return nil
}

// StopRecording reports the release synchronously, moving straight into
// the processing state so the caller can show a busy indicator before the
// blob is finalized. The returned Op finalizes the blob, submits it, and
// applies the completion transition.
func (c *Controller) StopRecording() (Op, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.transition(fsm.EventReleaseRecord); err != nil {
		return nil, err
	}
	c.cues.RecordStop()

	gen := c.gen
	sessionID := c.sessionID
	index := c.index

	op := func(ctx context.Context) error {
		wav, err := c.mic.Stop()
		var feedback *api.Feedback
		if err == nil {
			feedback, err = c.coach.SubmitAnswer(ctx, sessionID, wav)
		}

		c.complete(gen, func() {
			if err != nil {
				_ = c.transition(fsm.EventSubmitFailed)
				c.notice = "Could not process your answer. Please try again."
				c.cues.Error()
				c.logError("answer submission failed", err)
				return
			}
			_ = c.transition(fsm.EventFeedbackReady)
			c.feedback = feedback
			c.answered[index] = true
			c.notice = ""
			c.cues.FeedbackReady()
			c.sound.Play(player.Clip{ID: feedbackClipID(index), Data: feedback.Audio})
		})
		return err
	}
	return op, nil
}

// Retry discards the shown feedback and any pending blob, returning to
// the ready state without re-fetching the question.
func (c *Controller) Retry() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.transition(fsm.EventRetry); err != nil {
		return err
	}
	c.sound.Stop()
	c.mic.Discard()
	c.clearFeedbackLocked()
	c.notice = ""
	return nil
}

// SelectQuestion jumps to the question at index i. Selecting the current
// index is a no-op with no network call and a nil Op.
func (c *Controller) SelectQuestion(i int) (Op, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.guardActionLocked(); err != nil {
		return nil, err
	}
	if i < 0 || i >= len(c.questions) {
		return nil, fmt.Errorf("question index %d out of range [0,%d)", i, len(c.questions))
	}
	if i == c.index {
		return nil, nil
	}
	return c.jumpLocked(i)
}

// Next advances to the following question, or routes to report
// generation when the current question is the last one.
func (c *Controller) Next() (Op, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.guardActionLocked(); err != nil {
		return nil, err
	}
	if c.index+1 >= len(c.questions) {
		return c.finishLocked()
	}
	return c.jumpLocked(c.index + 1)
}

// Finish requests the session report.
func (c *Controller) Finish() (Op, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.guardActionLocked(); err != nil {
		return nil, err
	}
	return c.finishLocked()
}

// BackToPractice leaves the report view and returns to the question that
// was active before finishing. The report stays cached for re-display.
func (c *Controller) BackToPractice() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.transition(fsm.EventBackToPractice); err != nil {
		return err
	}
	c.notice = ""
	return nil
}

// ToggleQuestionAudio plays or pauses the current question prompt.
func (c *Controller) ToggleQuestionAudio() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sound.Play(player.Clip{ID: questionClipID(c.index), Data: c.promptAudio})
}

// ToggleFeedbackAudio plays or pauses the spoken feedback, when present.
func (c *Controller) ToggleFeedbackAudio() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.feedback == nil {
		return
	}
	c.sound.Play(player.Clip{ID: feedbackClipID(c.index), Data: c.feedback.Audio})
}

// jumpLocked applies the jump edge and builds the question-fetch Op.
func (c *Controller) jumpLocked(target int) (Op, error) {
	if err := c.transition(fsm.EventJump); err != nil {
		return nil, err
	}
	c.sound.Stop()
	c.clearFeedbackLocked()
	c.notice = ""

	gen := c.gen
	sessionID := c.sessionID

	op := func(ctx context.Context) error {
		prompt, err := c.coach.SetQuestion(ctx, sessionID, target)

		finishNow := false
		c.complete(gen, func() {
			if err != nil {
				_ = c.transition(fsm.EventJumpFailed)
				c.notice = "Could not load that question. Please try again."
				c.cues.Error()
				c.logError("question jump failed", err)
				return
			}
			if prompt.Finished {
				// The server considers the session complete; fall
				// through to report generation.
				_ = c.transition(fsm.EventFinish)
				finishNow = true
				return
			}
			_ = c.transition(fsm.EventJumped)
			c.index = prompt.Index
			c.promptAudio = prompt.Audio
			c.sound.Play(player.Clip{ID: questionClipID(prompt.Index), Data: prompt.Audio})
		})
		if finishNow {
			return c.reportOp(gen, sessionID)(ctx)
		}
		return err
	}
	return op, nil
}

// finishLocked applies the finish edge and builds the report Op.
func (c *Controller) finishLocked() (Op, error) {
	if err := c.transition(fsm.EventFinish); err != nil {
		return nil, err
	}
	c.sound.Stop()
	c.notice = ""

	return c.reportOp(c.gen, c.sessionID), nil
}

// reportOp builds the report-fetch Op for an already-applied finish edge.
func (c *Controller) reportOp(gen int, sessionID string) Op {
	return func(ctx context.Context) error {
		report, err := c.coach.GenerateReport(ctx, sessionID)

		c.complete(gen, func() {
			if err != nil {
				_ = c.transition(fsm.EventReportFailed)
				if errors.Is(err, api.ErrNoAnswers) {
					c.notice = "Report not available yet. Answer at least one question first."
				} else {
					c.notice = "Could not generate your report. Please try again."
				}
				c.cues.Error()
				c.logError("report generation failed", err)
				return
			}
			_ = c.transition(fsm.EventReportReady)
			c.report = report
			c.sound.Stop()
		})
		return err
	}
}

func (c *Controller) logError(message string, err error) {
	if c.logger == nil || err == nil {
		return
	}
	c.logger.Error(message, "error", err.Error())
}

func questionClipID(i int) string { return fmt.Sprintf("question:%d", i) }

func feedbackClipID(i int) string { return fmt.Sprintf("feedback:%d", i) }
