package observers

import (
	"log/slog"
	"sync"
	"time"

	"github.com/mandimitra/vaani/pkg/metrics"
)

// LatencyObserver measures the time from a final utterance entering the
// pipeline to the answer leaving it, per session turn.
type LatencyObserver struct {
	mu     sync.Mutex
	turns  map[string]*turn
	log    *slog.Logger
}

type turn struct {
	utteranceAt time.Time
	traceID     string
}

func NewLatencyObserver(log *slog.Logger) *LatencyObserver {
	if log == nil {
		log = slog.Default()
	}
	return &LatencyObserver{
		turns: make(map[string]*turn),
		log:   log,
	}
}

func (o *LatencyObserver) RecordEvent(ev metrics.MetricsEvent) {
	sessionID := ""
	if ev.Tags != nil {
		sessionID = ev.Tags["session_id"]
	}
	if sessionID == "" {
		return
	}
	switch ev.Name {
	case "frame_in":
		if ev.Tags["kind"] != "utterance" || ev.Tags["is_final"] != "true" {
			return
		}
		o.mu.Lock()
		t := o.turns[sessionID]
		if t == nil {
			t = &turn{}
			o.turns[sessionID] = t
		}
		t.utteranceAt = ev.Time
		if t.traceID == "" {
			t.traceID = ev.Tags["trace_id"]
		}
		o.mu.Unlock()
	case "frame_out":
		if ev.Tags["kind"] != "response" {
			return
		}
		o.mu.Lock()
		t := o.turns[sessionID]
		delete(o.turns, sessionID)
		o.mu.Unlock()
		if t == nil || t.utteranceAt.IsZero() {
			return
		}
		o.log.Info("turn_latency",
			"session_id", sessionID,
			"trace_id", t.traceID,
			"origin", ev.Tags["origin"],
			"answer_ms", durationMs(t.utteranceAt, ev.Time),
		)
	}
}

func durationMs(a, b time.Time) int64 {
	if a.IsZero() || b.IsZero() {
		return -1
	}
	return b.Sub(a).Milliseconds()
}
