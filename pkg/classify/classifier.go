package classify

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/mandimitra/vaani/pkg/language"
	"github.com/mandimitra/vaani/pkg/logging"
)

// Entities are the slots extracted from an utterance. Empty fields mean
// the utterance did not mention them; defaults are applied downstream.
type Entities struct {
	Crop     string
	Location string
	Action   string
	Quantity string
}

// Classification is the offline scoring result for one utterance.
type Classification struct {
	Intent     language.Intent
	Confidence float64
	// KeywordHits counts catalog keyword matches across every intent in
	// the utterance language, not just the winning intent.
	KeywordHits int
	Entities    Entities
}

// Classifier scores utterances against the language pattern catalog.
// It performs no I/O and is safe for concurrent use.
type Classifier struct {
	log *slog.Logger
}

func New(logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{log: logging.NewComponentLogger(logger, "classifier")}
}

// Classify detects the intent of text in lang. Confidence is the length
// ratio of the longest matched keyword to the whole utterance, so short
// throwaway matches in long sentences score low. A greeting match wins
// outright with full confidence.
func (c *Classifier) Classify(text string, lang language.Code) Classification {
	lower := strings.ToLower(text)
	textLen := utf8.RuneCountInString(lower)

	bestIntent := language.IntentUnknown
	bestConfidence := 0.0

	if textLen > 0 {
		for _, intent := range language.Intents() {
			for _, pattern := range language.Patterns(intent, lang) {
				if !strings.Contains(lower, strings.ToLower(pattern)) {
					continue
				}
				confidence := float64(utf8.RuneCountInString(pattern)) / float64(textLen)
				if confidence > 1 {
					confidence = 1
				}
				if confidence > bestConfidence {
					bestConfidence = confidence
					bestIntent = intent
				}
			}
		}
	}

	if bestIntent == language.IntentGreeting {
		bestConfidence = 1.0
	}

	result := Classification{
		Intent:      bestIntent,
		Confidence:  bestConfidence,
		KeywordHits: countKeywordHits(lower, lang),
		Entities:    ExtractEntities(lower),
	}
	c.log.Debug("utterance_classified",
		"intent", string(result.Intent),
		"confidence", result.Confidence,
		"keyword_hits", result.KeywordHits,
	)
	return result
}

func countKeywordHits(lower string, lang language.Code) int {
	hits := 0
	for _, intent := range language.Intents() {
		for _, pattern := range language.Patterns(intent, lang) {
			if pattern != "" && strings.Contains(lower, strings.ToLower(pattern)) {
				hits++
			}
		}
	}
	return hits
}

// ExtractEntities pulls crop, location, action and quantity mentions out
// of a lowercased utterance. The first catalog entry found in the text
// wins each slot, in the catalog's fixed order.
func ExtractEntities(lower string) Entities {
	var e Entities
	e.Crop = firstKeyword(lower, language.CropKeywords)
	e.Location = firstKeyword(lower, language.LocationKeywords)
	e.Action = firstKeyword(lower, language.ActionKeywords)
	if m := language.QuantityPattern.FindStringSubmatch(lower); m != nil {
		e.Quantity = m[1]
	}
	return e
}

func firstKeyword(lower string, table []language.Keyword) string {
	for _, kw := range table {
		if strings.Contains(lower, kw.Surface) {
			return kw.Canonical
		}
	}
	return ""
}
