package vaani

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/mandimitra/vaani/pkg/frames"
	"github.com/mandimitra/vaani/pkg/session"
	mocktransport "github.com/mandimitra/vaani/pkg/transports/mock"
)

type stateRecorder struct {
	mu     sync.Mutex
	events []session.StateChange
}

func (r *stateRecorder) OnStateChange(ev session.StateChange) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

func (r *stateRecorder) saw(from, to session.State) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ev := range r.events {
		if ev.FromState == from && ev.ToState == to {
			return true
		}
	}
	return false
}

func waitForState(t *testing.T, mgr session.Manager, want session.State) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if mgr.State() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("state = %v, want %v", mgr.State(), want)
}

// A vendor config that cannot build an adapter (openai without api_key)
// makes every pipeline build fail. The capture state machine must return
// to listening so the next utterance is not rejected as busy.
func TestProcessingSlotReleasedWhenPipelineBuildFails(t *testing.T) {
	tr := mocktransport.New()
	cfg := Config{
		Transports: TransportsConfig{Provider: "mock"},
		Vendors: VendorsConfig{
			LLM: VendorConfig{Provider: "openai"},
		},
		Session:  SessionConfig{MaxConsecutiveRestarts: 5},
		LogLevel: "error",
	}
	eng := NewEngine(EngineOptions{Config: cfg, Transport: tr})
	if err := eng.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer func() { _ = eng.Stop() }()

	tr.Push(frames.NewSystemFrame("s-1", 1, "session_start", map[string]string{
		frames.MetaLanguage: "en",
	}))

	var ds *dialogueSession
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if ds = eng.sessions.get("s-1"); ds != nil {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if ds == nil {
		t.Fatal("session manager never created")
	}
	waitForState(t, ds.mgr, session.StateListening)

	rec := &stateRecorder{}
	ds.mgr.AddListener(rec)

	tr.Push(frames.NewUtteranceFrame("s-1", 2, "what is the price of wheat", map[string]string{
		frames.MetaIsFinal: "true",
	}))

	// The failed build must release the single-flight slot and put the
	// session back into listening.
	deadline = time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if rec.saw(session.StateProcessing, session.StateListening) {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if !rec.saw(session.StateProcessing, session.StateListening) {
		t.Fatalf("session never returned to listening, state = %v", ds.mgr.State())
	}
	if !ds.mgr.BeginProcessing() {
		t.Fatal("slot still held after failed pipeline build")
	}
	ds.mgr.EndProcessing(session.StateListening)
}
