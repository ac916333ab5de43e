package session

import "time"

type State int

const (
	StateIdle State = iota
	StateStarting
	StateListening
	StateProcessing
	StateSpeaking
	StateRestarting
	StateErrorTransient
	StateErrorFatal
)

// String returns the string representation of a State
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateStarting:
		return "STARTING"
	case StateListening:
		return "LISTENING"
	case StateProcessing:
		return "PROCESSING"
	case StateSpeaking:
		return "SPEAKING"
	case StateRestarting:
		return "RESTARTING"
	case StateErrorTransient:
		return "ERROR_TRANSIENT"
	case StateErrorFatal:
		return "ERROR_FATAL"
	default:
		return "UNKNOWN"
	}
}

// StateChange represents a state transition event.
type StateChange struct {
	FromState State
	ToState   State
	Timestamp time.Time
	Reason    string
}

// StateListener observes session state changes.
type StateListener interface {
	OnStateChange(event StateChange)
}

// CaptureDriver abstracts the speech capture source the session controls.
// Implementations must be safe to call from timer goroutines.
type CaptureDriver interface {
	StartCapture() error
	StopCapture()
}

// Manager owns the lifecycle of one continuous speech capture session.
type Manager interface {
	// Start begins continuous capture: Idle -> Starting -> Listening.
	Start() error
	// Stop ends the session immediately and cancels any pending restart.
	Stop()
	// State returns the current session state.
	State() State
	// SessionID returns the identifier assigned on Start.
	SessionID() string

	// OnCaptureError classifies a recognizer error code and either enters
	// a fatal error state or schedules an automatic restart.
	OnCaptureError(code string)
	// OnCaptureEnd handles the recognizer stopping on its own; while the
	// session is active this schedules a quick restart.
	OnCaptureEnd()
	// OnFinalTranscript marks a successful capture, resetting the
	// consecutive-restart counter.
	OnFinalTranscript()

	// BeginProcessing claims the single reasoning slot. It returns false
	// when a previous utterance is still being processed.
	BeginProcessing() bool
	// EndProcessing releases the reasoning slot and moves to next.
	EndProcessing(next State)
	// OnSpeechEnd returns the session to Listening once playback finishes.
	OnSpeechEnd()

	AddListener(listener StateListener)
}
