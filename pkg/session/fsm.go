package session

import (
	"sync"
	"time"
)

// stateMachine implements the finite state machine for the capture session.
type stateMachine struct {
	currentState State
	mu           sync.RWMutex

	// State tracking
	listeningStartTime  time.Time
	processingStartTime time.Time

	// Event emission
	stateChangeListeners []StateListener
}

func newStateMachine() *stateMachine {
	return &stateMachine{currentState: StateIdle}
}

// State returns the current state.
func (sm *stateMachine) State() State {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.currentState
}

// transitionValid checks if a state transition is valid (must be called with lock held).
func (sm *stateMachine) transitionValid(from, to State) bool {
	validTransitions := map[State][]State{
		StateIdle:           {StateStarting},
		StateStarting:       {StateListening, StateErrorTransient, StateErrorFatal, StateIdle},
		StateListening:      {StateProcessing, StateRestarting, StateErrorTransient, StateErrorFatal, StateIdle},
		StateProcessing:     {StateSpeaking, StateListening, StateErrorFatal, StateIdle},
		StateSpeaking:       {StateListening, StateRestarting, StateErrorTransient, StateErrorFatal, StateIdle},
		StateRestarting:     {StateStarting, StateErrorFatal, StateIdle},
		StateErrorTransient: {StateRestarting, StateErrorFatal, StateIdle},
		StateErrorFatal:     {StateIdle},
	}

	allowedStates, exists := validTransitions[from]
	if !exists {
		return false
	}

	for _, allowed := range allowedStates {
		if allowed == to {
			return true
		}
	}
	return false
}

// Transition moves to a new state with validation.
func (sm *stateMachine) Transition(state State, reason string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.transitionValid(sm.currentState, state) {
		return &InvalidTransitionError{
			From: sm.currentState,
			To:   state,
		}
	}

	oldState := sm.currentState
	sm.currentState = state

	switch state {
	case StateListening:
		sm.listeningStartTime = time.Now()
	case StateProcessing:
		sm.processingStartTime = time.Now()
	}

	event := StateChange{
		FromState: oldState,
		ToState:   state,
		Timestamp: time.Now(),
		Reason:    reason,
	}

	// Notify listeners (release lock during notification to avoid deadlocks)
	listeners := make([]StateListener, len(sm.stateChangeListeners))
	copy(listeners, sm.stateChangeListeners)
	sm.mu.Unlock()

	for _, listener := range listeners {
		listener.OnStateChange(event)
	}

	sm.mu.Lock()
	return nil
}

// AddListener registers a listener for state change events.
func (sm *stateMachine) AddListener(listener StateListener) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.stateChangeListeners = append(sm.stateChangeListeners, listener)
}

// InvalidTransitionError represents an invalid state transition attempt
type InvalidTransitionError struct {
	From State
	To   State
}

func (e *InvalidTransitionError) Error() string {
	return "invalid state transition from " + e.From.String() + " to " + e.To.String()
}
