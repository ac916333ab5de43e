package policy

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mandimitra/vaani/pkg/classify"
	"github.com/mandimitra/vaani/pkg/language"
	"github.com/mandimitra/vaani/pkg/marketdata"
)

type panickyPrediction struct{}

func (panickyPrediction) Predict(ctx context.Context, crop, location string) (*marketdata.Prediction, error) {
	panic("prediction backend crashed")
}

func TestDecideGreetingStaysOffline(t *testing.T) {
	p := New(nil, nil, Options{})
	cls := classify.Classification{Intent: language.IntentGreeting, Confidence: 1.0}
	d := p.Decide(context.Background(), Request{Text: "hello", Language: language.English}, cls)
	if d.Route != RouteOffline {
		t.Fatalf("expected offline route for greeting, got %s", d.Route)
	}
}

func TestDecideConfidentMatchStaysOffline(t *testing.T) {
	p := New(nil, nil, Options{})
	cls := classify.Classification{Intent: language.IntentWeatherCheck, Confidence: 0.5, KeywordHits: 4}
	d := p.Decide(context.Background(), Request{Text: "mausam", Language: language.English}, cls)
	if d.Route != RouteOffline {
		t.Fatalf("expected offline route, got %s", d.Route)
	}
}

func TestDecideLowConfidenceEscalates(t *testing.T) {
	p := New(nil, nil, Options{})
	cls := classify.Classification{Intent: language.IntentCropAdvice, Confidence: 0.2, KeywordHits: 2}
	d := p.Decide(context.Background(), Request{Text: "my crop looks sick what should i do", Language: language.English}, cls)
	if d.Route != RouteRemote {
		t.Fatalf("expected remote route, got %s", d.Route)
	}
	if d.Signal != EscalationSignal {
		t.Fatalf("expected escalation signal %q, got %q", EscalationSignal, d.Signal)
	}
}

func TestDecideFewHitsEscalates(t *testing.T) {
	p := New(nil, nil, Options{})
	cls := classify.Classification{Intent: language.IntentWeatherCheck, Confidence: 0.6, KeywordHits: 3}
	d := p.Decide(context.Background(), Request{Text: "forecast", Language: language.English}, cls)
	if d.Route != RouteRemote {
		t.Fatalf("expected remote route when hits below threshold, got %s", d.Route)
	}
}

func TestPriceFastPathAnswersFromInternalData(t *testing.T) {
	prices := &marketdata.StaticProvider{Records: []marketdata.PriceRecord{
		{Price: 2100, Date: "2024-01-05", Mandi: "Rajpura"},
		{Price: 2050, Date: "2024-01-04", Mandi: "Rajpura"},
	}}
	p := New(prices, &marketdata.StaticPrediction{Err: errors.New("ml down")}, Options{})

	cls := classify.Classification{
		Intent:     language.IntentPriceCheck,
		Confidence: 0.2,
		Entities:   classify.Entities{Crop: "wheat", Location: "Rajpura"},
	}
	d := p.Decide(context.Background(), Request{Text: "what is the wheat price in rajpura", Language: language.English}, cls)
	if d.Route != RouteInternal {
		t.Fatalf("expected internal route, got %s", d.Route)
	}
	if !strings.Contains(d.Answer, "2100") {
		t.Fatalf("answer missing latest price: %q", d.Answer)
	}
	if !strings.Contains(d.Answer, "Rajpura") {
		t.Fatalf("answer missing mandi: %q", d.Answer)
	}
}

func TestPriceFastPathSurvivesPanickyPrediction(t *testing.T) {
	prices := &marketdata.StaticProvider{Records: []marketdata.PriceRecord{
		{Price: 1900, Date: "2024-02-01", Mandi: "Ludhiana"},
	}}
	p := New(prices, panickyPrediction{}, Options{})

	cls := classify.Classification{
		Intent:   language.IntentPriceCheck,
		Entities: classify.Entities{Crop: "rice", Location: "Ludhiana"},
	}
	d := p.Decide(context.Background(), Request{Text: "rice rate in ludhiana", Language: language.English}, cls)
	if d.Route != RouteInternal {
		t.Fatalf("expected internal route despite prediction panic, got %s", d.Route)
	}
	if !strings.Contains(d.Answer, "1900") {
		t.Fatalf("answer missing price: %q", d.Answer)
	}
}

func TestPriceFastPathFallsThroughOnProviderError(t *testing.T) {
	prices := &marketdata.StaticProvider{Err: errors.New("feed down")}
	p := New(prices, nil, Options{})

	cls := classify.Classification{
		Intent:   language.IntentPriceCheck,
		Entities: classify.Entities{Crop: "wheat", Location: "Rajpura"},
	}
	d := p.Decide(context.Background(), Request{Text: "wheat price in rajpura", Language: language.English}, cls)
	if d.Route != RouteRemote {
		t.Fatalf("expected remote fallback when provider fails, got %s", d.Route)
	}
}

func TestPriceFastPathNeedsCropAndLocation(t *testing.T) {
	prices := &marketdata.StaticProvider{Records: []marketdata.PriceRecord{{Price: 2100}}}
	p := New(prices, nil, Options{})

	cls := classify.Classification{Intent: language.IntentPriceCheck}
	d := p.Decide(context.Background(), Request{Text: "what is the price", Language: language.English}, cls)
	if d.Route != RouteRemote {
		t.Fatalf("expected remote route without crop/location, got %s", d.Route)
	}

	// Farm context supplies the missing entities.
	d = p.Decide(context.Background(), Request{
		Text: "what is the price", Language: language.English,
		Crop: "wheat", Location: "Rajpura",
	}, cls)
	if d.Route != RouteInternal {
		t.Fatalf("expected internal route with context entities, got %s", d.Route)
	}
}

func TestBuildPriceAnswerUsesPredictionAndTranslatesAction(t *testing.T) {
	answer := BuildPriceAnswer(PriceAnswerParams{
		Crop:     "wheat",
		Location: "Rajpura",
		Latest:   marketdata.PriceRecord{Price: 2100, Date: "2024-01-05", Mandi: "Rajpura"},
		Prediction: &marketdata.Prediction{
			NextDayPrice: 2150, NextWeekPrice: 2200, NextMonthPrice: 2300, Action: "sell_now",
		},
	}, language.Hindi)
	if !strings.Contains(answer, "2150.00") {
		t.Fatalf("expected prediction next-day price, got %q", answer)
	}
	if !strings.Contains(answer, "अभी बेचें") {
		t.Fatalf("expected translated action, got %q", answer)
	}
	if strings.Contains(answer, "sell_now") {
		t.Fatalf("raw action leaked into Hindi answer: %q", answer)
	}
}
