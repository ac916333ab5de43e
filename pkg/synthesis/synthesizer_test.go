package synthesis

import (
	"strconv"
	"strings"
	"testing"

	"github.com/mandimitra/vaani/pkg/classify"
	"github.com/mandimitra/vaani/pkg/language"
)

func TestNavigationShortCircuit(t *testing.T) {
	s := New(nil)
	got := s.Navigation("go to storage", language.English)
	if got.Action == nil || got.Action.Type != ActionNavigate {
		t.Fatalf("expected navigate action, got %+v", got.Action)
	}
	if got.Action.Tab != language.TabStorage {
		t.Fatalf("expected storage tab, got %s", got.Action.Tab)
	}
	if !strings.Contains(got.Text, "Storage Optimization") {
		t.Fatalf("expected localized tab name in confirmation, got %q", got.Text)
	}
}

func TestNavigationDefaultsToMarket(t *testing.T) {
	s := New(nil)
	got := s.Navigation("take me there", language.English)
	if got.Action == nil || got.Action.Tab != language.TabMarket {
		t.Fatalf("expected market default, got %+v", got.Action)
	}
}

func TestNavigationHindi(t *testing.T) {
	s := New(nil)
	got := s.Navigation("मौसम दिखाओ", language.Hindi)
	if got.Action == nil || got.Action.Tab != language.TabWeather {
		t.Fatalf("expected weather tab, got %+v", got.Action)
	}
	if !language.ContainsScript(language.Hindi, got.Text) {
		t.Fatalf("expected Devanagari confirmation, got %q", got.Text)
	}
}

func TestOfflineGreeting(t *testing.T) {
	s := New(nil)
	cls := classify.Classification{Intent: language.IntentGreeting, Confidence: 1.0}
	got := s.Offline("hello", cls, language.English, NewDialogueContext())
	if got.Confidence != 1.0 {
		t.Fatalf("expected confidence 1.0, got %v", got.Confidence)
	}
	if !strings.Contains(got.Text, "farming assistant") {
		t.Fatalf("unexpected greeting: %q", got.Text)
	}
}

func TestOfflinePriceAnswerBoundedValues(t *testing.T) {
	s := New(nil)
	cls := classify.Classification{
		Intent:   language.IntentPriceCheck,
		Entities: classify.Entities{Crop: "wheat", Location: "Rajpura"},
	}
	for i := 0; i < 50; i++ {
		got := s.Offline("wheat price", cls, language.English, NewDialogueContext())
		price := extractPrice(t, got.Text)
		if price < 1500 || price >= 2500 {
			t.Fatalf("price out of bounds: %d in %q", price, got.Text)
		}
		if !strings.Contains(got.Text, "Rajpura") {
			t.Fatalf("expected location in answer: %q", got.Text)
		}
	}
}

func TestOfflineCropAdviceUsesKnowledge(t *testing.T) {
	s := New(nil)
	cls := classify.Classification{
		Intent:   language.IntentCropAdvice,
		Entities: classify.Entities{Crop: "rice"},
	}
	got := s.Offline("rice farming", cls, language.English, NewDialogueContext())
	if !strings.Contains(got.Text, "June to July") {
		t.Fatalf("expected rice sowing season, got %q", got.Text)
	}
}

func TestOfflineTemplatesLeaveNoPlaceholders(t *testing.T) {
	s := New(nil)
	intents := []language.Intent{
		language.IntentPriceCheck,
		language.IntentWeatherCheck,
		language.IntentStorageInfo,
		language.IntentCropAdvice,
		language.IntentFinancialCalc,
	}
	for _, lang := range language.Supported() {
		for _, intent := range intents {
			cls := classify.Classification{Intent: intent}
			got := s.Offline("query", cls, lang, NewDialogueContext())
			if strings.Contains(got.Text, "{") || strings.Contains(got.Text, "}") {
				t.Fatalf("unfilled placeholder for %s/%s: %q", intent, lang, got.Text)
			}
		}
	}
}

func TestWeatherConditionLocalized(t *testing.T) {
	s := New(nil)
	for i := 0; i < 20; i++ {
		got := s.weatherAnswer(language.Punjabi, "Ludhiana")
		found := false
		for _, cond := range language.WeatherConditions[language.Punjabi] {
			if strings.Contains(got.Text, cond) {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected Gurmukhi condition word, got %q", got.Text)
		}
	}
}

func TestFinancialAdviceLocalized(t *testing.T) {
	s := New(nil)
	got := s.financialAnswer(language.Hindi, "गेहूं", "10")
	if !strings.Contains(got.Text, language.FinancialAdviceText[language.Hindi]) {
		t.Fatalf("expected Hindi financial advice, got %q", got.Text)
	}
}

func TestFallbackLocalized(t *testing.T) {
	s := New(nil)
	got := s.Fallback(language.Punjabi)
	if !language.ContainsScript(language.Punjabi, got.Text) {
		t.Fatalf("expected Gurmukhi fallback, got %q", got.Text)
	}
	if got.Origin != "static_fallback" {
		t.Fatalf("expected static_fallback origin, got %q", got.Origin)
	}
}

func TestDialogueContextBoundedHistory(t *testing.T) {
	c := NewDialogueContext()
	for i := 0; i < 25; i++ {
		c.Add("user", "utterance "+strconv.Itoa(i))
	}
	history := c.History()
	if len(history) != MaxHistory {
		t.Fatalf("expected history capped at %d, got %d", MaxHistory, len(history))
	}
	if history[0].Text != "utterance 15" {
		t.Fatalf("expected oldest retained entry to be utterance 15, got %q", history[0].Text)
	}
}

func TestDialogueContextRemember(t *testing.T) {
	c := NewDialogueContext()
	c.Remember(classify.Entities{Crop: "rice", Location: "Ludhiana"})
	crop, location, quantity := c.Defaults(classify.Entities{})
	if crop != "rice" || location != "Ludhiana" {
		t.Fatalf("expected remembered profile, got %s/%s", crop, location)
	}
	if quantity != language.DefaultQuantity {
		t.Fatalf("expected default quantity, got %s", quantity)
	}
}

func extractPrice(t *testing.T, text string) int {
	t.Helper()
	i := strings.Index(text, "₹")
	if i < 0 {
		t.Fatalf("no price in %q", text)
	}
	rest := text[i+len("₹"):]
	end := 0
	for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
		end++
	}
	price, err := strconv.Atoi(rest[:end])
	if err != nil {
		t.Fatalf("bad price in %q: %v", text, err)
	}
	return price
}
