package transcript

import (
	"testing"
	"time"

	"github.com/mandimitra/vaani/pkg/frames"
)

func TestAggregatorInterimReplacesBuffer(t *testing.T) {
	a := NewAggregator(Config{})
	interim := func(text string) frames.UtteranceFrame {
		return frames.NewUtteranceFrame("s1", 100, text, map[string]string{frames.MetaIsFinal: "false"})
	}
	if out, _ := a.Process(interim("wheat")); out != nil {
		t.Fatalf("interim should not flush, got %v", out)
	}
	if out, _ := a.Process(interim("wheat price")); out != nil {
		t.Fatalf("interim should not flush, got %v", out)
	}
	out, err := a.Process(frames.NewUtteranceFrame("s1", 100, "wheat price in Rajpura", map[string]string{frames.MetaIsFinal: "true"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected flush on final, got %d frames", len(out))
	}
	uf := out[0].(frames.UtteranceFrame)
	if uf.Text() != "wheat price in Rajpura" {
		t.Fatalf("expected latest hypothesis, got %q", uf.Text())
	}
	if !frames.IsFinal(uf.Meta()) {
		t.Fatal("flushed frame should be marked final")
	}
}

func TestAggregatorFlushOnSentenceEnd(t *testing.T) {
	a := NewAggregator(Config{})
	out, _ := a.Process(frames.NewUtteranceFrame("s1", 7, "गेहूं का भाव क्या है।", nil))
	if len(out) != 1 {
		t.Fatalf("danda should end the utterance, got %d frames", len(out))
	}
}

func TestAggregatorTimeoutFlushOnOtherFrames(t *testing.T) {
	a := NewAggregator(Config{FlushTimeout: 10 * time.Millisecond})
	if _, err := a.Process(frames.NewUtteranceFrame("s1", 1, "half a question", nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	ctrl := frames.NewControlFrame("s1", 2, frames.ControlFlush, nil)
	out, _ := a.Process(ctrl)
	if len(out) != 2 {
		t.Fatalf("expected flushed transcript plus passthrough, got %d", len(out))
	}
	if out[0].(frames.UtteranceFrame).Text() != "half a question" {
		t.Fatalf("unexpected flushed text %q", out[0].(frames.UtteranceFrame).Text())
	}
	if got := a.History(); len(got) != 1 {
		t.Fatalf("expected one history entry, got %d", len(got))
	}
}

func TestAggregatorHistoryBounded(t *testing.T) {
	a := NewAggregator(Config{MaxHistory: 3})
	for _, text := range []string{"one.", "two.", "three.", "four."} {
		if _, err := a.Process(frames.NewUtteranceFrame("s1", 1, text, nil)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	got := a.History()
	if len(got) != 3 || got[0] != "two." {
		t.Fatalf("unexpected history %v", got)
	}
}
