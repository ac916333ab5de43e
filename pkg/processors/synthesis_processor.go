package processors

import (
	"github.com/mandimitra/vaani/pkg/frames"
	"github.com/mandimitra/vaani/pkg/language"
	"github.com/mandimitra/vaani/pkg/pipeline"
	"github.com/mandimitra/vaani/pkg/policy"
	"github.com/mandimitra/vaani/pkg/synthesis"
)

// SynthesisProcessor renders offline answers for utterances the policy
// kept local.
type SynthesisProcessor struct {
	syn  *synthesis.Synthesizer
	fctx *synthesis.DialogueContext
}

func NewSynthesisProcessor(syn *synthesis.Synthesizer, fctx *synthesis.DialogueContext) *SynthesisProcessor {
	return &SynthesisProcessor{syn: syn, fctx: fctx}
}

func (p *SynthesisProcessor) Name() string { return "synthesis" }

func (p *SynthesisProcessor) Process(f frames.Frame) ([]frames.Frame, error) {
	if f.Kind() != frames.KindUtterance {
		return []frames.Frame{f}, nil
	}
	uf := f.(frames.UtteranceFrame)
	meta := uf.Meta()
	if meta[frames.MetaRoute] != string(policy.RouteOffline) {
		return []frames.Frame{f}, nil
	}
	cls := classificationFromMeta(meta)
	lang := language.Normalize(meta[frames.MetaLanguage])
	resp := p.syn.Offline(uf.Text(), cls, lang, p.fctx)

	p.fctx.Add("user", uf.Text())
	p.fctx.Add("assistant", resp.Text)

	meta[frames.MetaOrigin] = resp.Origin
	meta[frames.MetaConfidence] = formatConfidence(resp.Confidence)
	if resp.Action != nil {
		p.fctx.Tab = resp.Action.Tab
		meta[frames.MetaAction] = resp.Action.Type
		meta[frames.MetaActionTab] = string(resp.Action.Tab)
	}
	return []frames.Frame{frames.NewResponseFrame(meta[frames.MetaSessionID], uf.PTS(), resp.Text, meta)}, nil
}

var _ pipeline.FrameProcessor = (*SynthesisProcessor)(nil)
