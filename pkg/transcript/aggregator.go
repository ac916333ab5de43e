package transcript

import (
	"strings"
	"sync"
	"time"

	"github.com/mandimitra/vaani/pkg/frames"
	"github.com/mandimitra/vaani/pkg/pipeline"
)

// Aggregator turns a stream of interim recognition results into final
// utterances. Interim results replace the buffer rather than append, which
// matches how browser speech recognition reports partial hypotheses.
type Aggregator struct {
	mu        sync.Mutex
	cfg       Config
	text      string
	firstPTS  int64
	sessionID string
	meta      map[string]string
	lastAt    time.Time
	history   []string
}

func NewAggregator(cfg Config) *Aggregator {
	if cfg.MinLen <= 0 {
		cfg.MinLen = 2
	}
	if cfg.MaxHistory <= 0 {
		cfg.MaxHistory = 10
	}
	if cfg.FlushTimeout <= 0 {
		cfg.FlushTimeout = 300 * time.Millisecond
	}
	return &Aggregator{cfg: cfg}
}

func (a *Aggregator) Name() string { return "transcript_aggregator" }

func (a *Aggregator) Process(f frames.Frame) ([]frames.Frame, error) {
	switch f.Kind() {
	case frames.KindUtterance:
		uf := f.(frames.UtteranceFrame)
		a.mu.Lock()
		if a.firstPTS == 0 {
			a.firstPTS = uf.PTS()
			a.sessionID = uf.Meta()[frames.MetaSessionID]
			a.meta = uf.Meta()
		}
		a.text = uf.Text()
		a.lastAt = time.Now()
		final := strings.TrimSpace(a.text)
		isFinal := frames.IsFinal(uf.Meta())
		if (isFinal || eosDetected(final)) && len(final) >= a.cfg.MinLen {
			out := a.flushLocked(final)
			a.mu.Unlock()
			return []frames.Frame{out}, nil
		}
		a.mu.Unlock()
		return nil, nil
	default:
		a.mu.Lock()
		text := strings.TrimSpace(a.text)
		stale := text != "" && time.Since(a.lastAt) > a.cfg.FlushTimeout
		if stale && len(text) >= a.cfg.MinLen {
			out := a.flushLocked(text)
			a.mu.Unlock()
			return []frames.Frame{out, f}, nil
		}
		a.mu.Unlock()
		return []frames.Frame{f}, nil
	}
}

// Flush emits the pending transcript regardless of punctuation, used when
// capture stops mid-sentence.
func (a *Aggregator) Flush() *frames.UtteranceFrame {
	a.mu.Lock()
	defer a.mu.Unlock()
	text := strings.TrimSpace(a.text)
	if text == "" {
		return nil
	}
	out := a.flushLocked(text)
	return &out
}

func (a *Aggregator) flushLocked(text string) frames.UtteranceFrame {
	meta := a.meta
	if meta == nil {
		meta = map[string]string{}
	}
	meta[frames.MetaIsFinal] = "true"
	out := frames.NewUtteranceFrame(a.sessionID, a.firstPTS, text, meta)
	a.text = ""
	a.firstPTS = 0
	a.sessionID = ""
	a.meta = nil
	a.appendHistory(text)
	return out
}

func (a *Aggregator) appendHistory(text string) {
	if a.cfg.MaxHistory <= 0 {
		return
	}
	a.history = append(a.history, text)
	if len(a.history) > a.cfg.MaxHistory {
		a.history = a.history[len(a.history)-a.cfg.MaxHistory:]
	}
}

func (a *Aggregator) History() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.history))
	copy(out, a.history)
	return out
}

func eosDetected(s string) bool {
	t := strings.TrimSpace(s)
	if len(t) == 0 {
		return false
	}
	last := t[len(t)-1]
	return last == '.' || last == '!' || last == '?' || last == '\n' ||
		strings.HasSuffix(t, "।")
}

var _ pipeline.FrameProcessor = (*Aggregator)(nil)
