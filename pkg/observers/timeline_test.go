package observers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mandimitra/vaani/pkg/metrics"
)

func TestTimelineObserverWritesJSONL(t *testing.T) {
	dir := t.TempDir()
	obs := NewTimelineObserver(dir)

	ev := metrics.MetricsEvent{
		Name: "frame_in",
		Time: time.Now(),
		Tags: map[string]string{
			"session_id": "session-1",
			"trace_id":   "trace-1",
			"kind":       "audio",
		},
	}
	obs.RecordEvent(ev)
	_ = obs.Close()

	path := filepath.Join(dir, "trace-1.jsonl")
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if !strings.Contains(string(b), "audio_in") {
		t.Fatalf("expected audio_in event in file")
	}
}

func TestLatencyObserverMeasuresTurn(t *testing.T) {
	obs := NewLatencyObserver(nil)
	base := time.Now()

	obs.RecordEvent(metrics.MetricsEvent{
		Name: "frame_in",
		Time: base,
		Tags: map[string]string{
			"session_id": "s-1",
			"kind":       "utterance",
			"is_final":   "true",
		},
	})

	obs.mu.Lock()
	turn := obs.turns["s-1"]
	obs.mu.Unlock()
	if turn == nil || turn.utteranceAt.IsZero() {
		t.Fatal("expected open turn after final utterance")
	}

	obs.RecordEvent(metrics.MetricsEvent{
		Name: "frame_out",
		Time: base.Add(800 * time.Millisecond),
		Tags: map[string]string{
			"session_id": "s-1",
			"kind":       "response",
			"origin":     "remote",
		},
	})

	obs.mu.Lock()
	remaining := len(obs.turns)
	obs.mu.Unlock()
	if remaining != 0 {
		t.Fatalf("expected turn to be closed, %d open", remaining)
	}
}
