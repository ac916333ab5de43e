package processors

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mandimitra/vaani/pkg/classify"
	"github.com/mandimitra/vaani/pkg/frames"
	"github.com/mandimitra/vaani/pkg/language"
	"github.com/mandimitra/vaani/pkg/llm"
	"github.com/mandimitra/vaani/pkg/marketdata"
	"github.com/mandimitra/vaani/pkg/policy"
	"github.com/mandimitra/vaani/pkg/providers/mock"
	"github.com/mandimitra/vaani/pkg/reasoning"
	"github.com/mandimitra/vaani/pkg/synthesis"
)

func finalUtterance(text string, extra map[string]string) frames.UtteranceFrame {
	meta := map[string]string{
		frames.MetaIsFinal:  "true",
		frames.MetaLanguage: "en",
	}
	for k, v := range extra {
		meta[k] = v
	}
	return frames.NewUtteranceFrame("s1", 42, text, meta)
}

func TestNavigationProcessorShortCircuits(t *testing.T) {
	fctx := synthesis.NewDialogueContext()
	p := NewNavigationProcessor(synthesis.New(nil), fctx, nil)

	out, err := p.Process(finalUtterance("go to weather", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].Kind() != frames.KindResponse {
		t.Fatalf("expected one response frame, got %v", out)
	}
	meta := out[0].Meta()
	if meta[frames.MetaAction] != synthesis.ActionNavigate || meta[frames.MetaActionTab] != string(language.TabWeather) {
		t.Fatalf("expected weather navigate action, got %v", meta)
	}
	if fctx.Tab != language.TabWeather {
		t.Fatalf("expected dialogue context tab update, got %s", fctx.Tab)
	}
}

func TestNavigationProcessorPassesPlainQuestions(t *testing.T) {
	p := NewNavigationProcessor(synthesis.New(nil), synthesis.NewDialogueContext(), nil)
	out, _ := p.Process(finalUtterance("what is the wheat price", nil))
	if len(out) != 1 || out[0].Kind() != frames.KindUtterance {
		t.Fatalf("expected passthrough, got %v", out)
	}
}

func TestClassifierProcessorAnnotatesMeta(t *testing.T) {
	fctx := synthesis.NewDialogueContext()
	p := NewClassifierProcessor(classify.New(nil), fctx)

	out, err := p.Process(finalUtterance("what is the market price of wheat in rajpura", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	meta := out[0].Meta()
	if meta[frames.MetaIntent] != string(language.IntentPriceCheck) {
		t.Fatalf("expected price_check intent, got %q", meta[frames.MetaIntent])
	}
	if meta[frames.MetaCrop] != "wheat" || meta[frames.MetaLocation] != "Rajpura" {
		t.Fatalf("expected entity annotations, got %v", meta)
	}
	if fctx.Crop != "wheat" {
		t.Fatalf("expected remembered crop, got %q", fctx.Crop)
	}
}

func TestPolicyProcessorInternalFastPath(t *testing.T) {
	prices := &marketdata.StaticProvider{Records: []marketdata.PriceRecord{
		{Price: 2100, Date: time.Now().Format("2006-01-02"), Mandi: "Rajpura Mandi"},
	}}
	pol := policy.New(prices, &marketdata.StaticPrediction{Err: errors.New("model offline")}, policy.Options{})
	p := NewPolicyProcessor(pol, synthesis.NewDialogueContext())

	uf := finalUtterance("mandi price", map[string]string{
		frames.MetaIntent:     string(language.IntentPriceCheck),
		frames.MetaConfidence: "0.1000",
		frames.MetaCrop:       "wheat",
		frames.MetaLocation:   "Rajpura",
	})
	out, err := p.Process(uf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0].Kind() != frames.KindResponse {
		t.Fatalf("expected direct internal answer, got %v", out[0].Kind())
	}
	rf := out[0].(frames.ResponseFrame)
	if !strings.Contains(rf.Text(), "2100") {
		t.Fatalf("expected latest price in answer, got %q", rf.Text())
	}
	if rf.Meta()[frames.MetaOrigin] != frames.OriginInternal {
		t.Fatalf("expected internal_data origin, got %q", rf.Meta()[frames.MetaOrigin])
	}
}

func TestPolicyProcessorMarksRemoteRoute(t *testing.T) {
	pol := policy.New(&marketdata.StaticProvider{Err: errors.New("down")}, nil, policy.Options{})
	p := NewPolicyProcessor(pol, synthesis.NewDialogueContext())

	uf := finalUtterance("tell me something unusual", map[string]string{
		frames.MetaIntent:     string(language.IntentUnknown),
		frames.MetaConfidence: "0.0000",
	})
	out, _ := p.Process(uf)
	meta := out[0].Meta()
	if meta[frames.MetaRoute] != string(policy.RouteRemote) {
		t.Fatalf("expected remote route, got %q", meta[frames.MetaRoute])
	}
	if meta[frames.MetaReason] != policy.EscalationSignal {
		t.Fatalf("expected escalation signal, got %q", meta[frames.MetaReason])
	}
}

func TestSynthesisProcessorRendersOfflineAnswer(t *testing.T) {
	fctx := synthesis.NewDialogueContext()
	p := NewSynthesisProcessor(synthesis.New(nil), fctx)

	uf := finalUtterance("hello", map[string]string{
		frames.MetaIntent:     string(language.IntentGreeting),
		frames.MetaConfidence: "1.0000",
		frames.MetaRoute:      string(policy.RouteOffline),
	})
	out, err := p.Process(uf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0].Kind() != frames.KindResponse {
		t.Fatalf("expected response frame, got %v", out[0].Kind())
	}
	if got := len(fctx.History()); got != 2 {
		t.Fatalf("expected user and assistant turns recorded, got %d", got)
	}
}

func TestReasoningProcessorFallsBackWhenProvidersDown(t *testing.T) {
	client := reasoning.NewClient(
		mock.NewLLMAdapter(mock.LLMConfig{ProviderName: "primary", Err: errors.New("down")}),
		mock.NewLLMAdapter(mock.LLMConfig{ProviderName: "secondary", Err: errors.New("down")}),
		reasoning.Options{Retry: llm.RetryConfig{MaxAttempts: 1}},
	)
	p := NewReasoningProcessor(client, synthesis.New(nil), synthesis.NewDialogueContext(), nil)

	uf := finalUtterance("something the catalog cannot answer", map[string]string{
		frames.MetaRoute:    string(policy.RouteRemote),
		frames.MetaLanguage: "pa",
	})
	out, err := p.Process(uf)
	if err != nil {
		t.Fatalf("fallback should not surface an error: %v", err)
	}
	rf := out[0].(frames.ResponseFrame)
	if rf.Meta()[frames.MetaOrigin] != frames.OriginFallback {
		t.Fatalf("expected static_fallback origin, got %q", rf.Meta()[frames.MetaOrigin])
	}
	if !language.ContainsScript(language.Punjabi, rf.Text()) {
		t.Fatalf("expected Gurmukhi fallback, got %q", rf.Text())
	}
}

func TestReasoningProcessorEmitsRemoteAnswer(t *testing.T) {
	client := reasoning.NewClient(
		mock.NewLLMAdapter(mock.LLMConfig{ProviderName: "primary", ResponseText: "Hold the stock for a week."}),
		nil,
		reasoning.Options{Retry: llm.RetryConfig{MaxAttempts: 1}},
	)
	p := NewReasoningProcessor(client, synthesis.New(nil), synthesis.NewDialogueContext(), nil)

	uf := finalUtterance("should I sell now", map[string]string{
		frames.MetaRoute: string(policy.RouteRemote),
	})
	out, _ := p.Process(uf)
	rf := out[0].(frames.ResponseFrame)
	if rf.Meta()[frames.MetaOrigin] != frames.OriginRemote {
		t.Fatalf("expected remote origin, got %q", rf.Meta()[frames.MetaOrigin])
	}
	if rf.Meta()[frames.MetaRequestID] == "" {
		t.Fatal("expected request id on remote answers")
	}
}

func TestResponseLimiterTruncatesRemoteAnswers(t *testing.T) {
	p := NewResponseLimiter(ResponseLimiterConfig{MaxSentences: 2})
	long := "One. Two. Three. Four."
	rf := frames.NewResponseFrame("s1", 1, long, map[string]string{frames.MetaOrigin: frames.OriginRemote})
	out, _ := p.Process(rf)
	got := out[0].(frames.ResponseFrame)
	if got.Text() != "One. Two." {
		t.Fatalf("expected two sentences, got %q", got.Text())
	}
	if got.Meta()[frames.MetaShortTurn] != "true" {
		t.Fatal("expected short turn marker")
	}
}

func TestResponseLimiterIgnoresOfflineAnswers(t *testing.T) {
	p := NewResponseLimiter(ResponseLimiterConfig{MaxSentences: 1})
	rf := frames.NewResponseFrame("s1", 1, "One. Two. Three.", map[string]string{frames.MetaOrigin: frames.OriginOffline})
	out, _ := p.Process(rf)
	if out[0].(frames.ResponseFrame).Text() != "One. Two. Three." {
		t.Fatal("offline answers must pass unmodified")
	}
}

func TestSanitizerCleansRemoteAnswers(t *testing.T) {
	p := NewSanitizer()
	rf := frames.NewResponseFrame("s1", 1, "**Sell now**", map[string]string{frames.MetaOrigin: frames.OriginRemote})
	out, _ := p.Process(rf)
	if out[0].(frames.ResponseFrame).Text() != "Sell now" {
		t.Fatalf("expected sanitized text, got %q", out[0].(frames.ResponseFrame).Text())
	}
}
