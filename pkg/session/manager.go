package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mandimitra/vaani/pkg/errorsx"
	"github.com/mandimitra/vaani/pkg/logging"
)

// RestartDelay is the pause before the capture source is restarted.
type RestartDelay = time.Duration

const (
	RestartAfterNoSpeech RestartDelay = 500 * time.Millisecond
	RestartAfterError    RestartDelay = 1000 * time.Millisecond
	RestartAfterEnd      RestartDelay = 300 * time.Millisecond
)

// DefaultMaxConsecutiveRestarts bounds transient restarts without a
// successful transcript before the session gives up.
const DefaultMaxConsecutiveRestarts = 5

type ManagerOptions struct {
	// MaxConsecutiveRestarts overrides the restart ceiling (0 = default).
	MaxConsecutiveRestarts int
	Logger                 *slog.Logger
	// Activity receives the synthetic voice activity level while listening.
	Activity func(level float64)
}

type manager struct {
	mu  sync.Mutex
	sm  *stateMachine
	log *slog.Logger

	driver    CaptureDriver
	sessionID string

	// listening is the user's intent flag: true between Start and Stop.
	// Restart timers that fire after it drops are no-ops.
	listening  bool
	restartGen uint64
	restart    *time.Timer

	consecutiveRestarts int
	maxRestarts         int

	inFlight bool

	activity *activityMonitor
}

// NewManager builds a session manager around the given capture driver.
// driver may be nil when the capture source lives outside the process
// (the browser drives its own recognizer and only reports events).
func NewManager(driver CaptureDriver, opts ManagerOptions) Manager {
	maxRestarts := opts.MaxConsecutiveRestarts
	if maxRestarts <= 0 {
		maxRestarts = DefaultMaxConsecutiveRestarts
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	m := &manager{
		sm:          newStateMachine(),
		log:         logging.NewComponentLogger(log, "session"),
		driver:      driver,
		maxRestarts: maxRestarts,
	}
	if opts.Activity != nil {
		m.activity = newActivityMonitor(opts.Activity)
		m.sm.AddListener(m.activity)
	}
	return m
}

func (m *manager) State() State { return m.sm.State() }

func (m *manager) SessionID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessionID
}

func (m *manager) AddListener(listener StateListener) {
	m.sm.AddListener(listener)
}

func (m *manager) Start() error {
	m.mu.Lock()
	if m.listening {
		m.mu.Unlock()
		return nil
	}
	m.listening = true
	m.sessionID = uuid.NewString()
	m.consecutiveRestarts = 0
	id := m.sessionID
	m.mu.Unlock()

	if err := m.sm.Transition(StateStarting, "user start"); err != nil {
		m.mu.Lock()
		m.listening = false
		m.mu.Unlock()
		return errorsx.Wrap(err, errorsx.ReasonInvalidTransition)
	}
	if m.driver != nil {
		if err := m.driver.StartCapture(); err != nil {
			_ = m.sm.Transition(StateErrorFatal, "capture start failed")
			m.mu.Lock()
			m.listening = false
			m.mu.Unlock()
			return errorsx.Wrap(err, errorsx.ReasonCaptureFatal)
		}
	}
	if err := m.sm.Transition(StateListening, "capture active"); err != nil {
		return errorsx.Wrap(err, errorsx.ReasonInvalidTransition)
	}
	m.log.Info("session_started", "session_id", id)
	return nil
}

func (m *manager) Stop() {
	m.mu.Lock()
	// Clear intent first so a concurrently firing restart timer sees it.
	m.listening = false
	m.restartGen++
	if m.restart != nil {
		m.restart.Stop()
		m.restart = nil
	}
	m.inFlight = false
	id := m.sessionID
	m.mu.Unlock()

	if m.driver != nil {
		m.driver.StopCapture()
	}
	if err := m.sm.Transition(StateIdle, "user stop"); err == nil {
		m.log.Info("session_stopped", "session_id", id)
	}
}

func (m *manager) OnCaptureError(code string) {
	m.mu.Lock()
	if !m.listening {
		m.mu.Unlock()
		return
	}
	class, delay := ClassifyCaptureError(code)
	if class == ClassFatal {
		m.listening = false
		m.restartGen++
		if m.restart != nil {
			m.restart.Stop()
			m.restart = nil
		}
		m.mu.Unlock()
		_ = m.sm.Transition(StateErrorFatal, "capture error: "+code)
		m.log.Error("session_capture_fatal", "error_code", code)
		return
	}
	m.consecutiveRestarts++
	exhausted := m.consecutiveRestarts > m.maxRestarts
	attempts := m.consecutiveRestarts
	m.mu.Unlock()

	if exhausted {
		m.mu.Lock()
		m.listening = false
		m.mu.Unlock()
		_ = m.sm.Transition(StateErrorFatal, "restarts exhausted")
		m.log.Error("session_restarts_exhausted", "error_code", code, "attempts", attempts)
		return
	}

	_ = m.sm.Transition(StateErrorTransient, "capture error: "+code)
	m.scheduleRestart(delay, "capture error: "+code)
	m.log.Warn("session_restart_scheduled",
		"error_code", code,
		"delay_ms", delay.Milliseconds(),
		"attempt", attempts,
	)
}

func (m *manager) OnCaptureEnd() {
	m.mu.Lock()
	active := m.listening
	m.mu.Unlock()
	if !active {
		return
	}
	// The recognizer halts on its own between utterances; keep the
	// continuous-capture illusion by restarting shortly after.
	m.scheduleRestart(RestartAfterEnd, "capture ended")
	m.log.Debug("session_restart_scheduled", "reason", "capture_end",
		"delay_ms", RestartAfterEnd.Milliseconds())
}

func (m *manager) OnFinalTranscript() {
	m.mu.Lock()
	m.consecutiveRestarts = 0
	m.mu.Unlock()
}

func (m *manager) BeginProcessing() bool {
	m.mu.Lock()
	if m.inFlight {
		m.mu.Unlock()
		return false
	}
	m.inFlight = true
	m.mu.Unlock()

	if err := m.sm.Transition(StateProcessing, "utterance accepted"); err != nil {
		m.mu.Lock()
		m.inFlight = false
		m.mu.Unlock()
		return false
	}
	return true
}

func (m *manager) EndProcessing(next State) {
	m.mu.Lock()
	m.inFlight = false
	m.mu.Unlock()
	_ = m.sm.Transition(next, "processing done")
}

func (m *manager) OnSpeechEnd() {
	m.mu.Lock()
	active := m.listening
	m.mu.Unlock()
	if !active {
		return
	}
	_ = m.sm.Transition(StateListening, "playback complete")
}

// scheduleRestart arms the restart timer. Each call bumps the generation
// so only the most recent timer may act, and a timer that fires after
// Stop finds listening false and does nothing.
func (m *manager) scheduleRestart(delay time.Duration, reason string) {
	m.mu.Lock()
	if !m.listening {
		m.mu.Unlock()
		return
	}
	m.restartGen++
	gen := m.restartGen
	if m.restart != nil {
		m.restart.Stop()
	}
	m.restart = time.AfterFunc(delay, func() {
		m.fireRestart(gen, reason)
	})
	m.mu.Unlock()
}

func (m *manager) fireRestart(gen uint64, reason string) {
	m.mu.Lock()
	stale := gen != m.restartGen || !m.listening
	m.mu.Unlock()
	if stale {
		return
	}
	if err := m.sm.Transition(StateRestarting, reason); err != nil {
		return
	}
	_ = m.sm.Transition(StateStarting, "restart")
	if m.driver != nil {
		if err := m.driver.StartCapture(); err != nil {
			m.OnCaptureError(ErrNetwork)
			return
		}
	}
	_ = m.sm.Transition(StateListening, "capture active")
	m.log.Debug("session_restarted", "reason", reason)
}
