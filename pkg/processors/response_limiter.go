package processors

import (
	"strings"

	"github.com/mandimitra/vaani/pkg/frames"
	"github.com/mandimitra/vaani/pkg/pipeline"
)

type ResponseLimiterConfig struct {
	MaxChars      int
	MaxSentences  int
	OriginFilters map[string]bool
}

// ResponseLimiter enforces short answers for speech playback. Only remote
// answers are limited by default; catalog templates are already short.
type ResponseLimiter struct {
	cfg ResponseLimiterConfig
}

func NewResponseLimiter(cfg ResponseLimiterConfig) *ResponseLimiter {
	if cfg.MaxChars <= 0 {
		cfg.MaxChars = 420
	}
	if cfg.MaxSentences <= 0 {
		cfg.MaxSentences = 3
	}
	if cfg.OriginFilters == nil {
		cfg.OriginFilters = map[string]bool{frames.OriginRemote: true}
	}
	return &ResponseLimiter{cfg: cfg}
}

func (r *ResponseLimiter) Name() string { return "response_limiter" }

func (r *ResponseLimiter) Process(f frames.Frame) ([]frames.Frame, error) {
	if f.Kind() != frames.KindResponse {
		return []frames.Frame{f}, nil
	}
	rf := f.(frames.ResponseFrame)
	meta := rf.Meta()
	if !r.cfg.OriginFilters[meta[frames.MetaOrigin]] {
		return []frames.Frame{f}, nil
	}
	text := strings.TrimSpace(rf.Text())
	if text == "" {
		return []frames.Frame{f}, nil
	}
	truncated := truncateSentences(text, r.cfg.MaxSentences)
	if len(truncated) > r.cfg.MaxChars {
		truncated = truncated[:r.cfg.MaxChars]
		truncated = strings.TrimSpace(truncated)
	}
	if truncated != text {
		meta[frames.MetaShortTurn] = "true"
		return []frames.Frame{frames.NewResponseFrame(meta[frames.MetaSessionID], rf.PTS(), truncated, meta)}, nil
	}
	return []frames.Frame{f}, nil
}

func truncateSentences(text string, maxSentences int) string {
	if maxSentences <= 0 {
		return text
	}
	var out strings.Builder
	count := 0
	for _, r := range text {
		out.WriteRune(r)
		if r == '.' || r == '!' || r == '?' || r == '।' {
			count++
			if count >= maxSentences {
				break
			}
		}
	}
	result := strings.TrimSpace(out.String())
	if result == "" {
		return text
	}
	return result
}

var _ pipeline.FrameProcessor = (*ResponseLimiter)(nil)
