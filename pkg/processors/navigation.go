package processors

import (
	"log/slog"

	"github.com/mandimitra/vaani/pkg/frames"
	"github.com/mandimitra/vaani/pkg/language"
	"github.com/mandimitra/vaani/pkg/logging"
	"github.com/mandimitra/vaani/pkg/pipeline"
	"github.com/mandimitra/vaani/pkg/synthesis"
)

// NavigationProcessor short-circuits tab commands: an utterance with a
// navigation verb is answered immediately with a confirmation and a
// navigate action, without touching the classifier or reasoning stages.
type NavigationProcessor struct {
	syn  *synthesis.Synthesizer
	fctx *synthesis.DialogueContext
	log  *slog.Logger
}

func NewNavigationProcessor(syn *synthesis.Synthesizer, fctx *synthesis.DialogueContext, logger *slog.Logger) *NavigationProcessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &NavigationProcessor{
		syn:  syn,
		fctx: fctx,
		log:  logging.NewComponentLogger(logger, "navigation"),
	}
}

func (p *NavigationProcessor) Name() string { return "navigation" }

func (p *NavigationProcessor) Process(f frames.Frame) ([]frames.Frame, error) {
	if f.Kind() != frames.KindUtterance || !frames.IsFinal(f.Meta()) {
		return []frames.Frame{f}, nil
	}
	uf := f.(frames.UtteranceFrame)
	if !language.HasNavigationVerb(uf.Text()) {
		return []frames.Frame{f}, nil
	}
	meta := uf.Meta()
	lang := language.Normalize(meta[frames.MetaLanguage])
	resp := p.syn.Navigation(uf.Text(), lang)

	p.fctx.Add("user", uf.Text())
	p.fctx.Add("assistant", resp.Text)
	if resp.Action != nil {
		p.fctx.Tab = resp.Action.Tab
		meta[frames.MetaAction] = resp.Action.Type
		meta[frames.MetaActionTab] = string(resp.Action.Tab)
	}
	meta[frames.MetaOrigin] = resp.Origin
	meta[frames.MetaIntent] = string(language.IntentNavigation)
	meta[frames.MetaConfidence] = formatConfidence(resp.Confidence)

	p.log.Info("navigation_short_circuit",
		slog.String("session_id", meta[frames.MetaSessionID]),
		slog.String("tab", meta[frames.MetaActionTab]))
	return []frames.Frame{frames.NewResponseFrame(meta[frames.MetaSessionID], uf.PTS(), resp.Text, meta)}, nil
}

var _ pipeline.FrameProcessor = (*NavigationProcessor)(nil)
