package session

import (
	"math/rand"
	"sync"
	"time"
)

// activityMonitor produces the synthetic voice activity level the
// dashboard meter animates while the session is listening. It is a
// smoothed random walk in [0,1]; no real signal energy is measured.
type activityMonitor struct {
	mu     sync.Mutex
	report func(level float64)
	ticker *time.Ticker
	done   chan struct{}
	level  float64
}

func newActivityMonitor(report func(level float64)) *activityMonitor {
	return &activityMonitor{report: report}
}

func (a *activityMonitor) OnStateChange(event StateChange) {
	if event.ToState == StateListening {
		a.start()
		return
	}
	a.stop()
}

func (a *activityMonitor) start() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ticker != nil {
		return
	}
	a.ticker = time.NewTicker(100 * time.Millisecond)
	a.done = make(chan struct{})
	go a.run(a.ticker, a.done)
}

func (a *activityMonitor) stop() {
	a.mu.Lock()
	ticker, done := a.ticker, a.done
	a.ticker, a.done = nil, nil
	a.level = 0
	a.mu.Unlock()

	if ticker != nil {
		ticker.Stop()
		close(done)
	}
	a.report(0)
}

func (a *activityMonitor) run(ticker *time.Ticker, done chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			a.mu.Lock()
			// Drift toward a new random target, smoothed.
			target := rand.Float64()
			a.level += (target - a.level) * 0.3
			if a.level < 0 {
				a.level = 0
			}
			if a.level > 1 {
				a.level = 1
			}
			level := a.level
			a.mu.Unlock()
			a.report(level)
		}
	}
}
