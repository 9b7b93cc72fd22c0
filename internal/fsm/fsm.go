package fsm

import "fmt"

type State string

type Event string

const (
	StateAwaitingAction   State = "awaiting_action"
	StateRecording        State = "recording"
	StateProcessingAnswer State = "processing_answer"
	StateFeedbackShown    State = "feedback_shown"
	StateNavigating       State = "navigating"
	StateFinishing        State = "finishing"
	StateReportShown      State = "report_shown"
)

const (
	EventPressRecord    Event = "press_record"
	EventReleaseRecord  Event = "release_record"
	EventFeedbackReady  Event = "feedback_ready"
	EventSubmitFailed   Event = "submit_failed"
	EventJump           Event = "jump"
	EventJumped         Event = "jumped"
	EventJumpFailed     Event = "jump_failed"
	EventRetry          Event = "retry"
	EventFinish         Event = "finish"
	EventReportReady    Event = "report_ready"
	EventReportFailed   Event = "report_failed"
	EventBackToPractice Event = "back_to_practice"
)

func Transition(current State, event Event) (State, error) {
	switch current {
	case StateAwaitingAction:
		switch event {
		case EventPressRecord:
			return StateRecording, nil
		case EventJump:
			return StateNavigating, nil
		case EventFinish:
			return StateFinishing, nil
		default:
			return current, invalidTransition(current, event)
		}
	case StateRecording:
		switch event {
		case EventReleaseRecord:
			return StateProcessingAnswer, nil
		default:
			return current, invalidTransition(current, event)
		}
	case StateProcessingAnswer:
		switch event {
		case EventFeedbackReady:
			return StateFeedbackShown, nil
		case EventSubmitFailed:
			return StateAwaitingAction, nil
		default:
			return current, invalidTransition(current, event)
		}
	case StateFeedbackShown:
		switch event {
		case EventRetry:
			return StateAwaitingAction, nil
		case EventJump:
			return StateNavigating, nil
		case EventFinish:
			return StateFinishing, nil
		default:
			return current, invalidTransition(current, event)
		}
	case StateNavigating:
		switch event {
		case EventJumped:
			return StateAwaitingAction, nil
		case EventJumpFailed:
			return StateAwaitingAction, nil
		case EventFinish:
			return StateFinishing, nil
		default:
			return current, invalidTransition(current, event)
		}
	case StateFinishing:
		switch event {
		case EventReportReady:
			return StateReportShown, nil
		case EventReportFailed:
			return StateAwaitingAction, nil
		default:
			return current, invalidTransition(current, event)
		}
	case StateReportShown:
		switch event {
		case EventBackToPractice:
			return StateAwaitingAction, nil
		default:
			return current, invalidTransition(current, event)
		}
	default:
		return current, fmt.Errorf("unknown state %q", current)
	}
}

// InFlight reports whether the state has a mutating server request
// outstanding. Record and navigation controls are disabled while true.
func InFlight(s State) bool {
	switch s {
	case StateProcessingAnswer, StateNavigating, StateFinishing:
		return true
	default:
		return false
	}
}

func invalidTransition(state State, event Event) error {
	return fmt.Errorf("invalid transition: %s --(%s)--> ?", state, event)
}
