package session

import "github.com/mandimitra/vaani/pkg/errorsx"

// ErrorClass groups recognizer error codes by recovery strategy.
type ErrorClass int

const (
	// ClassTransient errors trigger an automatic restart after a delay.
	ClassTransient ErrorClass = iota
	// ClassFatal errors end the session; the user must restart manually.
	ClassFatal
)

// Recognizer error codes as delivered by the capture layer. The set
// mirrors the Web Speech API error names the dashboard client reports.
const (
	ErrNoSpeech          = "no-speech"
	ErrNotAllowed        = "not-allowed"
	ErrServiceNotAllowed = "service-not-allowed"
	ErrAudioCapture      = "audio-capture"
	ErrNetwork           = "network"
	ErrAborted           = "aborted"
)

// ClassifyCaptureError maps a recognizer error code to its class and the
// restart delay to apply when transient.
func ClassifyCaptureError(code string) (ErrorClass, RestartDelay) {
	switch code {
	case ErrNotAllowed, ErrServiceNotAllowed, ErrAudioCapture:
		return ClassFatal, 0
	case ErrNoSpeech:
		return ClassTransient, RestartAfterNoSpeech
	default:
		return ClassTransient, RestartAfterError
	}
}

// ReasonFor returns the error reason code for a capture error class.
func ReasonFor(class ErrorClass) errorsx.ReasonCode {
	if class == ClassFatal {
		return errorsx.ReasonCaptureFatal
	}
	return errorsx.ReasonCaptureTransient
}
