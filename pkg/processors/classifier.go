package processors

import (
	"strconv"

	"github.com/mandimitra/vaani/pkg/classify"
	"github.com/mandimitra/vaani/pkg/frames"
	"github.com/mandimitra/vaani/pkg/language"
	"github.com/mandimitra/vaani/pkg/pipeline"
	"github.com/mandimitra/vaani/pkg/synthesis"
)

// ClassifierProcessor scores final utterances against the pattern catalog
// and annotates them with intent, confidence, keyword hits and entities.
type ClassifierProcessor struct {
	cls  *classify.Classifier
	fctx *synthesis.DialogueContext
}

func NewClassifierProcessor(cls *classify.Classifier, fctx *synthesis.DialogueContext) *ClassifierProcessor {
	return &ClassifierProcessor{cls: cls, fctx: fctx}
}

func (p *ClassifierProcessor) Name() string { return "classifier" }

func (p *ClassifierProcessor) Process(f frames.Frame) ([]frames.Frame, error) {
	if f.Kind() != frames.KindUtterance || !frames.IsFinal(f.Meta()) {
		return []frames.Frame{f}, nil
	}
	uf := f.(frames.UtteranceFrame)
	meta := uf.Meta()
	lang := language.Normalize(meta[frames.MetaLanguage])
	result := p.cls.Classify(uf.Text(), lang)

	p.fctx.Remember(result.Entities)

	meta[frames.MetaIntent] = string(result.Intent)
	meta[frames.MetaConfidence] = formatConfidence(result.Confidence)
	meta[frames.MetaKeywordHits] = strconv.Itoa(result.KeywordHits)
	if result.Entities.Crop != "" {
		meta[frames.MetaCrop] = result.Entities.Crop
	}
	if result.Entities.Location != "" {
		meta[frames.MetaLocation] = result.Entities.Location
	}
	if result.Entities.Quantity != "" {
		meta[frames.MetaQuantity] = result.Entities.Quantity
	}
	if result.Entities.Action != "" {
		meta[frames.MetaFarmActivity] = result.Entities.Action
	}
	return []frames.Frame{frames.NewUtteranceFrame(meta[frames.MetaSessionID], uf.PTS(), uf.Text(), meta)}, nil
}

func formatConfidence(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func parseConfidence(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func classificationFromMeta(meta map[string]string) classify.Classification {
	hits, _ := strconv.Atoi(meta[frames.MetaKeywordHits])
	return classify.Classification{
		Intent:      language.Intent(meta[frames.MetaIntent]),
		Confidence:  parseConfidence(meta[frames.MetaConfidence]),
		KeywordHits: hits,
		Entities: classify.Entities{
			Crop:     meta[frames.MetaCrop],
			Location: meta[frames.MetaLocation],
			Quantity: meta[frames.MetaQuantity],
			Action:   meta[frames.MetaFarmActivity],
		},
	}
}

var _ pipeline.FrameProcessor = (*ClassifierProcessor)(nil)
