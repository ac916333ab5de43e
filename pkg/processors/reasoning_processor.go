package processors

import (
	"context"
	"log/slog"

	"github.com/mandimitra/vaani/pkg/errorsx"
	"github.com/mandimitra/vaani/pkg/frames"
	"github.com/mandimitra/vaani/pkg/language"
	"github.com/mandimitra/vaani/pkg/llm"
	"github.com/mandimitra/vaani/pkg/logging"
	"github.com/mandimitra/vaani/pkg/pipeline"
	"github.com/mandimitra/vaani/pkg/policy"
	"github.com/mandimitra/vaani/pkg/reasoning"
	"github.com/mandimitra/vaani/pkg/synthesis"
)

// ReasoningProcessor answers escalated utterances via the remote client.
// When every provider is down it degrades to the localized static fallback
// instead of failing the turn.
type ReasoningProcessor struct {
	client *reasoning.Client
	syn    *synthesis.Synthesizer
	fctx   *synthesis.DialogueContext
	ctx    context.Context
	log    *slog.Logger
}

func NewReasoningProcessor(client *reasoning.Client, syn *synthesis.Synthesizer, fctx *synthesis.DialogueContext, logger *slog.Logger) *ReasoningProcessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReasoningProcessor{
		client: client,
		syn:    syn,
		fctx:   fctx,
		ctx:    context.Background(),
		log:    logging.NewComponentLogger(logger, "reasoning_processor"),
	}
}

func (p *ReasoningProcessor) SetContext(ctx context.Context) {
	if ctx != nil {
		p.ctx = ctx
	}
}

func (p *ReasoningProcessor) Name() string { return "reasoning" }

func (p *ReasoningProcessor) Process(f frames.Frame) ([]frames.Frame, error) {
	if f.Kind() != frames.KindUtterance {
		return []frames.Frame{f}, nil
	}
	uf := f.(frames.UtteranceFrame)
	meta := uf.Meta()
	if meta[frames.MetaRoute] != string(policy.RouteRemote) {
		return []frames.Frame{f}, nil
	}
	lang := language.Normalize(meta[frames.MetaLanguage])
	cls := classificationFromMeta(meta)
	crop, location, quantity := p.fctx.Defaults(cls.Entities)

	answer, err := p.client.Answer(p.ctx, reasoning.Request{
		Text:     uf.Text(),
		Language: lang,
		Crop:     crop,
		Location: location,
		Quantity: quantity,
		History:  historyMessages(p.fctx),
	})
	if err != nil {
		p.log.Warn("remote_answer_failed",
			slog.String("session_id", meta[frames.MetaSessionID]),
			slog.String("reason_code", string(errorsx.Reason(err))))
		resp := p.syn.Fallback(lang)
		p.fctx.Add("user", uf.Text())
		p.fctx.Add("assistant", resp.Text)
		meta[frames.MetaOrigin] = resp.Origin
		meta[frames.MetaConfidence] = formatConfidence(resp.Confidence)
		meta[frames.MetaErrorCode] = string(errorsx.Reason(err))
		return []frames.Frame{frames.NewResponseFrame(meta[frames.MetaSessionID], uf.PTS(), resp.Text, meta)}, nil
	}

	p.fctx.Add("user", uf.Text())
	p.fctx.Add("assistant", answer.Text)
	meta[frames.MetaOrigin] = frames.OriginRemote
	meta[frames.MetaRequestID] = answer.RequestID
	return []frames.Frame{frames.NewResponseFrame(meta[frames.MetaSessionID], uf.PTS(), answer.Text, meta)}, nil
}

// historyMessages converts retained dialogue turns into chat messages,
// excluding the current utterance which is appended by the client.
func historyMessages(fctx *synthesis.DialogueContext) []llm.Message {
	turns := fctx.History()
	out := make([]llm.Message, 0, len(turns))
	for _, t := range turns {
		role := llm.RoleAssistant
		if t.Role == "user" {
			role = llm.RoleUser
		}
		out = append(out, llm.Message{Role: role, Content: t.Text})
	}
	return out
}

var _ pipeline.FrameProcessor = (*ReasoningProcessor)(nil)
