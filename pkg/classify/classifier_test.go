package classify

import (
	"testing"

	"github.com/mandimitra/vaani/pkg/language"
)

func TestClassifyGreetingFullConfidence(t *testing.T) {
	c := New(nil)
	got := c.Classify("Hello", language.English)
	if got.Intent != language.IntentGreeting {
		t.Fatalf("expected greeting, got %s", got.Intent)
	}
	if got.Confidence != 1.0 {
		t.Fatalf("expected confidence 1.0 for greeting, got %v", got.Confidence)
	}
}

func TestClassifyPriceQuestion(t *testing.T) {
	c := New(nil)
	got := c.Classify("What is the mandi price of wheat in Rajpura", language.English)
	if got.Intent != language.IntentPriceCheck {
		t.Fatalf("expected price_check, got %s", got.Intent)
	}
	if got.Confidence <= 0 || got.Confidence > 1 {
		t.Fatalf("confidence out of range: %v", got.Confidence)
	}
	if got.Entities.Crop != "wheat" {
		t.Fatalf("expected crop wheat, got %q", got.Entities.Crop)
	}
	if got.Entities.Location != "Rajpura" {
		t.Fatalf("expected location Rajpura, got %q", got.Entities.Location)
	}
}

func TestClassifyHindiScript(t *testing.T) {
	c := New(nil)
	got := c.Classify("गेहूं का भाव क्या है", language.Hindi)
	if got.Intent != language.IntentPriceCheck {
		t.Fatalf("expected price_check for Hindi bhav query, got %s", got.Intent)
	}
	if got.Entities.Crop != "wheat" {
		t.Fatalf("expected crop wheat from गेहूं, got %q", got.Entities.Crop)
	}
}

func TestClassifyUnknown(t *testing.T) {
	c := New(nil)
	got := c.Classify("quantum entanglement basics", language.English)
	if got.Intent != language.IntentUnknown {
		t.Fatalf("expected unknown, got %s", got.Intent)
	}
	if got.Confidence != 0 {
		t.Fatalf("expected zero confidence, got %v", got.Confidence)
	}
}

func TestKeywordHitsCountAcrossIntents(t *testing.T) {
	c := New(nil)
	// "price" and "rate" hit price_check, "weather" hits weather_check,
	// "storage" and "store" hit storage_info.
	got := c.Classify("price rate weather storage store", language.English)
	if got.KeywordHits < 5 {
		t.Fatalf("expected at least 5 keyword hits, got %d", got.KeywordHits)
	}
}

func TestExtractEntitiesQuantity(t *testing.T) {
	e := ExtractEntities("sell 25 quintal rice in ludhiana")
	if e.Quantity != "25" {
		t.Fatalf("expected quantity 25, got %q", e.Quantity)
	}
	if e.Crop != "rice" {
		t.Fatalf("expected crop rice, got %q", e.Crop)
	}
	if e.Location != "Ludhiana" {
		t.Fatalf("expected location Ludhiana, got %q", e.Location)
	}
	if e.Action != "sell" {
		t.Fatalf("expected action sell, got %q", e.Action)
	}
}

func TestExtractEntitiesHindiUnits(t *testing.T) {
	e := ExtractEntities("10 टन गेहूं बेचें")
	if e.Quantity != "10" {
		t.Fatalf("expected quantity 10, got %q", e.Quantity)
	}
	if e.Crop != "wheat" {
		t.Fatalf("expected crop wheat, got %q", e.Crop)
	}
}

func TestExtractEntitiesEmpty(t *testing.T) {
	e := ExtractEntities("tell me something")
	if e.Crop != "" || e.Location != "" || e.Quantity != "" || e.Action != "" {
		t.Fatalf("expected no entities, got %+v", e)
	}
}

func TestExtractEntitiesDeterministicOnMultipleMentions(t *testing.T) {
	// Two crops and two mandis in one utterance must resolve the same way
	// every call: the catalog lists wheat before rice and Ludhiana before
	// Amritsar.
	for i := 0; i < 200; i++ {
		e := ExtractEntities("wheat and rice price in ludhiana and amritsar")
		if e.Crop != "wheat" {
			t.Fatalf("call %d: expected crop wheat, got %q", i, e.Crop)
		}
		if e.Location != "Ludhiana" {
			t.Fatalf("call %d: expected location Ludhiana, got %q", i, e.Location)
		}
	}
}

func TestKeywordHitsFallBackToEnglish(t *testing.T) {
	// A language with no catalog entries of its own must count hits
	// against the English patterns, matching how Classify scores it.
	hits := countKeywordHits("what is the price of wheat", language.Code("mr"))
	if hits == 0 {
		t.Fatal("expected English-pattern hits for uncatalogued language")
	}
}
