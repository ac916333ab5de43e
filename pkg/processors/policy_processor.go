package processors

import (
	"context"

	"github.com/mandimitra/vaani/pkg/frames"
	"github.com/mandimitra/vaani/pkg/language"
	"github.com/mandimitra/vaani/pkg/pipeline"
	"github.com/mandimitra/vaani/pkg/policy"
	"github.com/mandimitra/vaani/pkg/synthesis"
)

// PolicyProcessor routes classified utterances: offline answers continue to
// the synthesis stage, internal-data price answers are emitted directly,
// and everything else is marked for remote reasoning.
type PolicyProcessor struct {
	pol  *policy.Policy
	fctx *synthesis.DialogueContext
	ctx  context.Context
}

func NewPolicyProcessor(pol *policy.Policy, fctx *synthesis.DialogueContext) *PolicyProcessor {
	return &PolicyProcessor{pol: pol, fctx: fctx, ctx: context.Background()}
}

func (p *PolicyProcessor) SetContext(ctx context.Context) {
	if ctx != nil {
		p.ctx = ctx
	}
}

func (p *PolicyProcessor) Name() string { return "policy" }

func (p *PolicyProcessor) Process(f frames.Frame) ([]frames.Frame, error) {
	if f.Kind() != frames.KindUtterance || !frames.IsFinal(f.Meta()) {
		return []frames.Frame{f}, nil
	}
	uf := f.(frames.UtteranceFrame)
	meta := uf.Meta()
	if meta[frames.MetaIntent] == "" {
		return []frames.Frame{f}, nil
	}
	cls := classificationFromMeta(meta)
	lang := language.Normalize(meta[frames.MetaLanguage])
	crop, location, _ := p.fctx.Defaults(cls.Entities)

	decision := p.pol.Decide(p.ctx, policy.Request{
		Text:     uf.Text(),
		Language: lang,
		Crop:     crop,
		Location: location,
	}, cls)

	switch decision.Route {
	case policy.RouteInternal:
		p.fctx.Add("user", uf.Text())
		p.fctx.Add("assistant", decision.Answer)
		meta[frames.MetaRoute] = string(decision.Route)
		meta[frames.MetaOrigin] = frames.OriginInternal
		return []frames.Frame{frames.NewResponseFrame(meta[frames.MetaSessionID], uf.PTS(), decision.Answer, meta)}, nil
	case policy.RouteRemote:
		meta[frames.MetaRoute] = string(decision.Route)
		meta[frames.MetaReason] = decision.Signal
	default:
		meta[frames.MetaRoute] = string(decision.Route)
	}
	return []frames.Frame{frames.NewUtteranceFrame(meta[frames.MetaSessionID], uf.PTS(), uf.Text(), meta)}, nil
}

var _ pipeline.FrameProcessor = (*PolicyProcessor)(nil)
