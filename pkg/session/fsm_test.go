package session

import (
	"errors"
	"sync"
	"testing"
)

type captureListener struct {
	mu     sync.Mutex
	events []StateChange
}

func (c *captureListener) OnStateChange(event StateChange) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
}

func (c *captureListener) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}

func (c *captureListener) Last() StateChange {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.events[len(c.events)-1]
}

func TestStateMachineRejectsInvalidTransition(t *testing.T) {
	sm := newStateMachine()

	err := sm.Transition(StateProcessing, "skip listening")
	if err == nil {
		t.Fatalf("expected invalid transition error")
	}
	var ite *InvalidTransitionError
	if !errors.As(err, &ite) {
		t.Fatalf("expected InvalidTransitionError, got %T", err)
	}
	if ite.From != StateIdle || ite.To != StateProcessing {
		t.Fatalf("unexpected transition endpoints: %s -> %s", ite.From, ite.To)
	}
	if sm.State() != StateIdle {
		t.Fatalf("state changed after rejected transition: %s", sm.State())
	}
}

func TestStateMachineCaptureLifecycle(t *testing.T) {
	sm := newStateMachine()
	listener := &captureListener{}
	sm.AddListener(listener)

	steps := []State{StateStarting, StateListening, StateProcessing, StateSpeaking, StateListening}
	for _, s := range steps {
		if err := sm.Transition(s, "test"); err != nil {
			t.Fatalf("transition to %s: %v", s, err)
		}
	}
	if listener.Count() != len(steps) {
		t.Fatalf("expected %d events, got %d", len(steps), listener.Count())
	}
	last := listener.Last()
	if last.FromState != StateSpeaking || last.ToState != StateListening {
		t.Fatalf("unexpected last event: %s -> %s", last.FromState, last.ToState)
	}
}

func TestStateMachineFatalErrorOnlyExitsToIdle(t *testing.T) {
	sm := newStateMachine()
	if err := sm.Transition(StateStarting, "test"); err != nil {
		t.Fatalf("transition error: %v", err)
	}
	if err := sm.Transition(StateErrorFatal, "permission denied"); err != nil {
		t.Fatalf("transition error: %v", err)
	}
	if err := sm.Transition(StateRestarting, "must not restart"); err == nil {
		t.Fatalf("expected fatal state to reject restart")
	}
	if err := sm.Transition(StateIdle, "reset"); err != nil {
		t.Fatalf("expected fatal state to allow reset: %v", err)
	}
}
