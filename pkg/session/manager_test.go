package session

import (
	"sync"
	"testing"
	"time"
)

type fakeDriver struct {
	mu     sync.Mutex
	starts int
	stops  int
	err    error
}

func (d *fakeDriver) StartCapture() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.starts++
	return d.err
}

func (d *fakeDriver) StopCapture() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stops++
}

func (d *fakeDriver) Starts() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.starts
}

func waitForState(t *testing.T, m Manager, want State, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if m.State() == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for state %s, current %s", want, m.State())
}

func TestManagerStartStop(t *testing.T) {
	driver := &fakeDriver{}
	m := NewManager(driver, ManagerOptions{})

	if err := m.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if m.State() != StateListening {
		t.Fatalf("expected LISTENING after start, got %s", m.State())
	}
	if m.SessionID() == "" {
		t.Fatalf("expected session id assigned")
	}

	m.Stop()
	if m.State() != StateIdle {
		t.Fatalf("expected IDLE after stop, got %s", m.State())
	}
	if driver.Starts() != 1 {
		t.Fatalf("expected exactly one capture start, got %d", driver.Starts())
	}
}

func TestManagerTransientErrorRestarts(t *testing.T) {
	driver := &fakeDriver{}
	m := NewManager(driver, ManagerOptions{})

	if err := m.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	m.OnCaptureError(ErrNoSpeech)
	if m.State() != StateErrorTransient {
		t.Fatalf("expected ERROR_TRANSIENT, got %s", m.State())
	}

	waitForState(t, m, StateListening, 2*time.Second)
	if driver.Starts() != 2 {
		t.Fatalf("expected capture restarted once, got %d starts", driver.Starts())
	}
	m.Stop()
}

func TestManagerFatalErrorNeverRestarts(t *testing.T) {
	driver := &fakeDriver{}
	m := NewManager(driver, ManagerOptions{})

	if err := m.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	m.OnCaptureError(ErrNotAllowed)
	if m.State() != StateErrorFatal {
		t.Fatalf("expected ERROR_FATAL, got %s", m.State())
	}

	time.Sleep(1200 * time.Millisecond)
	if m.State() != StateErrorFatal {
		t.Fatalf("fatal session restarted itself: %s", m.State())
	}
	if driver.Starts() != 1 {
		t.Fatalf("expected no restart after fatal error, got %d starts", driver.Starts())
	}
}

func TestManagerStopCancelsPendingRestart(t *testing.T) {
	driver := &fakeDriver{}
	m := NewManager(driver, ManagerOptions{})

	if err := m.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	m.OnCaptureError(ErrNoSpeech)
	m.Stop()

	time.Sleep(800 * time.Millisecond)
	if m.State() != StateIdle {
		t.Fatalf("expected IDLE after stop, got %s", m.State())
	}
	if driver.Starts() != 1 {
		t.Fatalf("restart timer fired after stop, got %d starts", driver.Starts())
	}
}

func TestManagerCaptureEndRestartsWhileActive(t *testing.T) {
	driver := &fakeDriver{}
	m := NewManager(driver, ManagerOptions{})

	if err := m.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	m.OnCaptureEnd()
	waitForState(t, m, StateListening, time.Second)
	if driver.Starts() != 2 {
		t.Fatalf("expected restart after capture end, got %d starts", driver.Starts())
	}
	m.Stop()

	// After stop, capture end reports are ignored.
	m.OnCaptureEnd()
	time.Sleep(500 * time.Millisecond)
	if driver.Starts() != 2 {
		t.Fatalf("capture end restarted a stopped session")
	}
}

func TestManagerSingleFlightProcessing(t *testing.T) {
	m := NewManager(&fakeDriver{}, ManagerOptions{})
	if err := m.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	if !m.BeginProcessing() {
		t.Fatalf("expected first utterance to claim the slot")
	}
	if m.BeginProcessing() {
		t.Fatalf("expected second utterance to be rejected while in flight")
	}
	m.EndProcessing(StateSpeaking)
	if m.State() != StateSpeaking {
		t.Fatalf("expected SPEAKING, got %s", m.State())
	}
	m.OnSpeechEnd()
	if !m.BeginProcessing() {
		t.Fatalf("expected slot free after speech end")
	}
	m.EndProcessing(StateListening)
	m.Stop()
}

func TestManagerRestartCeiling(t *testing.T) {
	m := NewManager(&fakeDriver{}, ManagerOptions{MaxConsecutiveRestarts: 1})
	if err := m.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	m.OnCaptureError(ErrNoSpeech)
	m.OnCaptureError(ErrNoSpeech)
	if m.State() != StateErrorFatal {
		t.Fatalf("expected ERROR_FATAL after exhausting restarts, got %s", m.State())
	}
}

func TestClassifyCaptureError(t *testing.T) {
	if class, delay := ClassifyCaptureError(ErrNoSpeech); class != ClassTransient || delay != RestartAfterNoSpeech {
		t.Fatalf("no-speech misclassified: %v %v", class, delay)
	}
	if class, _ := ClassifyCaptureError(ErrNotAllowed); class != ClassFatal {
		t.Fatalf("not-allowed must be fatal")
	}
	if class, _ := ClassifyCaptureError(ErrAudioCapture); class != ClassFatal {
		t.Fatalf("audio-capture must be fatal")
	}
	if class, delay := ClassifyCaptureError(ErrNetwork); class != ClassTransient || delay != RestartAfterError {
		t.Fatalf("network misclassified: %v %v", class, delay)
	}
}
