package policy

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mandimitra/vaani/pkg/classify"
	"github.com/mandimitra/vaani/pkg/language"
	"github.com/mandimitra/vaani/pkg/logging"
	"github.com/mandimitra/vaani/pkg/marketdata"
)

// Route says where an utterance gets answered.
type Route string

const (
	// RouteOffline answers from the local catalog and templates.
	RouteOffline Route = "offline"
	// RouteInternal answers from internal market data (price fast path).
	RouteInternal Route = "internal"
	// RouteRemote escalates to the remote reasoning client.
	RouteRemote Route = "remote"
)

// EscalationSignal marks a decision that hands the utterance to the
// remote reasoning client.
const EscalationSignal = "fallback_llm"

// Thresholds for preferring the offline path.
const (
	MinConfidence  = 0.4
	MinKeywordHits = 4
)

// Request is one utterance plus the farm context it arrived with.
type Request struct {
	Text     string
	Language language.Code
	// Crop and Location come from the farmer's dashboard profile and
	// back entity extraction when the utterance names neither.
	Crop     string
	Location string
}

// Decision is the routing verdict for one utterance.
type Decision struct {
	Route  Route
	Signal string
	// Answer is set only for RouteInternal: the complete price answer
	// built from internal data.
	Answer string
}

// priceKeywords trigger the internal-data fast path.
var priceKeywords = []string{
	"price", "rate", "cost", "value", "market price", "mandi price", "bhav",
	"कीमत", "दर", "मंडी", "भाव", "मूल्य", "रेट", "आज का भाव", "भव",
}

// Policy decides whether an utterance is answered offline, from internal
// market data, or by the remote reasoning client.
type Policy struct {
	prices      marketdata.PriceProvider
	predictions marketdata.PredictionProvider
	timeout     time.Duration
	log         *slog.Logger
}

type Options struct {
	// Timeout bounds the internal data lookups (default 5s).
	Timeout time.Duration
	Logger  *slog.Logger
}

func New(prices marketdata.PriceProvider, predictions marketdata.PredictionProvider, opts Options) *Policy {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Policy{
		prices:      prices,
		predictions: predictions,
		timeout:     timeout,
		log:         logging.NewComponentLogger(logger, "policy"),
	}
}

// Decide routes one classified utterance. Greetings always stay offline.
// A confident classification with enough keyword hits stays offline.
// Price questions with known crop and location are answered from
// internal data; everything else escalates.
func (p *Policy) Decide(ctx context.Context, req Request, cls classify.Classification) Decision {
	decision := p.decide(ctx, req, cls)
	p.log.Info("route_decided",
		"route", string(decision.Route),
		"intent", string(cls.Intent),
		"confidence", fmt.Sprintf("%.2f", cls.Confidence),
		"keyword_hits", cls.KeywordHits,
	)
	return decision
}

func (p *Policy) decide(ctx context.Context, req Request, cls classify.Classification) Decision {
	if cls.Intent == language.IntentGreeting {
		return Decision{Route: RouteOffline}
	}
	if cls.Intent != language.IntentUnknown && cls.Confidence >= MinConfidence && cls.KeywordHits >= MinKeywordHits {
		return Decision{Route: RouteOffline}
	}

	crop := firstNonEmpty(cls.Entities.Crop, req.Crop)
	location := firstNonEmpty(cls.Entities.Location, req.Location)
	if hasPriceIntent(req.Text) && crop != "" && location != "" {
		if answer, ok := p.internalPriceAnswer(ctx, crop, location, req.Language); ok {
			return Decision{Route: RouteInternal, Answer: answer}
		}
	}

	return Decision{Route: RouteRemote, Signal: EscalationSignal}
}

// internalPriceAnswer queries prices and the ML prediction concurrently.
// A prediction failure is non-fatal; a price failure or empty record set
// makes the fast path report no answer so the caller escalates.
func (p *Policy) internalPriceAnswer(ctx context.Context, crop, location string, lang language.Code) (string, bool) {
	if p.prices == nil {
		return "", false
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	type predResult struct{ pred *marketdata.Prediction }
	predCh := make(chan predResult, 1)
	go func() {
		var r predResult
		defer func() {
			// A panicking prediction provider must not take the
			// session down.
			if rec := recover(); rec != nil {
				r.pred = nil
			}
			predCh <- r
		}()
		if p.predictions != nil {
			if pred, err := p.predictions.Predict(ctx, crop, location); err == nil {
				r.pred = pred
			}
		}
	}()

	prices, err := p.prices.Prices(ctx, crop, location)
	pred := (<-predCh).pred
	if err != nil || len(prices) == 0 {
		p.log.Warn("internal_price_unavailable", "crop", crop, "location", location, "error", err)
		return "", false
	}

	return BuildPriceAnswer(PriceAnswerParams{
		Crop:         crop,
		Location:     location,
		Latest:       prices[0],
		Prediction:   pred,
		RecentPrices: prices,
	}, lang), true
}

func hasPriceIntent(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range priceKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
