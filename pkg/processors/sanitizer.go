package processors

import (
	"github.com/mandimitra/vaani/pkg/frames"
	"github.com/mandimitra/vaani/pkg/pipeline"
	"github.com/mandimitra/vaani/pkg/reasoning"
)

// Sanitizer strips residual markdown from response frames before they reach
// the client. Template answers pass through unchanged; the reasoning client
// already sanitizes, so this is the final guard for anything it missed.
type Sanitizer struct{}

func NewSanitizer() *Sanitizer { return &Sanitizer{} }

func (s *Sanitizer) Name() string { return "sanitizer" }

func (s *Sanitizer) Process(f frames.Frame) ([]frames.Frame, error) {
	if f.Kind() != frames.KindResponse {
		return []frames.Frame{f}, nil
	}
	rf := f.(frames.ResponseFrame)
	meta := rf.Meta()
	if meta[frames.MetaOrigin] != frames.OriginRemote {
		return []frames.Frame{f}, nil
	}
	clean := reasoning.SanitizePlainText(rf.Text())
	if clean == rf.Text() {
		return []frames.Frame{f}, nil
	}
	return []frames.Frame{frames.NewResponseFrame(meta[frames.MetaSessionID], rf.PTS(), clean, meta)}, nil
}

var _ pipeline.FrameProcessor = (*Sanitizer)(nil)
