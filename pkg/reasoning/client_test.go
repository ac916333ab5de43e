package reasoning

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mandimitra/vaani/pkg/errorsx"
	"github.com/mandimitra/vaani/pkg/language"
	"github.com/mandimitra/vaani/pkg/llm"
	"github.com/mandimitra/vaani/pkg/providers/mock"
)

func TestAnswerUsesPrimary(t *testing.T) {
	primary := mock.NewLLMAdapter(mock.LLMConfig{ProviderName: "primary", ResponseText: "Sell your wheat this week."})
	secondary := mock.NewLLMAdapter(mock.LLMConfig{ProviderName: "secondary", ResponseText: "should not be used"})
	c := NewClient(primary, secondary, Options{Retry: llm.RetryConfig{MaxAttempts: 1}})

	got, err := c.Answer(context.Background(), Request{Text: "should I sell wheat", Language: language.English})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Provider != "primary" {
		t.Fatalf("expected primary provider, got %s", got.Provider)
	}
	if secondary.Calls() != 0 {
		t.Fatalf("secondary should not be called, got %d calls", secondary.Calls())
	}
	if got.RequestID == "" {
		t.Fatal("expected a request id")
	}
}

func TestAnswerFailsOverToSecondary(t *testing.T) {
	primary := mock.NewLLMAdapter(mock.LLMConfig{ProviderName: "primary", Err: errors.New("connection refused")})
	secondary := mock.NewLLMAdapter(mock.LLMConfig{ProviderName: "secondary", ResponseText: "Hold your stock for now."})
	c := NewClient(primary, secondary, Options{Retry: llm.RetryConfig{MaxAttempts: 1}})

	got, err := c.Answer(context.Background(), Request{Text: "should I sell", Language: language.English})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Provider != "secondary" {
		t.Fatalf("expected failover to secondary, got %s", got.Provider)
	}
	if primary.Calls() == 0 {
		t.Fatal("primary was never tried")
	}
	if got.Text != "Hold your stock for now." {
		t.Fatalf("unexpected answer: %q", got.Text)
	}
}

func TestAnswerBothProvidersDown(t *testing.T) {
	primary := mock.NewLLMAdapter(mock.LLMConfig{ProviderName: "primary", Err: errors.New("down")})
	secondary := mock.NewLLMAdapter(mock.LLMConfig{ProviderName: "secondary", Err: errors.New("also down")})
	c := NewClient(primary, secondary, Options{Retry: llm.RetryConfig{MaxAttempts: 1}})

	_, err := c.Answer(context.Background(), Request{Text: "hello", Language: language.English})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errorsx.HasReason(err, errorsx.ReasonProviderDown) {
		t.Fatalf("expected provider_down reason, got %v", errorsx.Reason(err))
	}
}

func TestAnswerSystemPromptCarriesFarmContext(t *testing.T) {
	primary := mock.NewLLMAdapter(mock.LLMConfig{ProviderName: "primary", ResponseText: "ok"})
	c := NewClient(primary, nil, Options{Retry: llm.RetryConfig{MaxAttempts: 1}})

	_, err := c.Answer(context.Background(), Request{
		Text:          "when should I sell",
		Language:      language.Hindi,
		Crop:          "rice",
		Location:      "Ludhiana",
		Quantity:      "25",
		InternalFacts: []string{"latest mandi price 2300"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sent := primary.LastContext()
	if len(sent.Messages) < 2 || sent.Messages[0].Role != llm.RoleSystem {
		t.Fatalf("expected system message first, got %+v", sent.Messages)
	}
	sys := sent.Messages[0].Content
	for _, want := range []string{
		"KrishiAI",
		"crop=rice",
		"location=Ludhiana",
		"quantity=25 tons",
		"latest mandi price 2300",
		"Respond in Hindi.",
	} {
		if !strings.Contains(sys, want) {
			t.Fatalf("system prompt missing %q: %q", want, sys)
		}
	}
	if sent.Temperature != 0.6 || sent.TopP != 0.9 || sent.MaxTokens != 500 {
		t.Fatalf("unexpected sampling params: %+v", sent)
	}
}

func TestAnswerDefaultsFarmContext(t *testing.T) {
	primary := mock.NewLLMAdapter(mock.LLMConfig{ProviderName: "primary", ResponseText: "ok"})
	c := NewClient(primary, nil, Options{Retry: llm.RetryConfig{MaxAttempts: 1}})

	if _, err := c.Answer(context.Background(), Request{Text: "hi", Language: language.English}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sys := primary.LastContext().Messages[0].Content
	if !strings.Contains(sys, "crop=wheat") || !strings.Contains(sys, "location=Punjab") {
		t.Fatalf("expected default farm context, got %q", sys)
	}
}

func TestAnswerSanitizesMarkdown(t *testing.T) {
	primary := mock.NewLLMAdapter(mock.LLMConfig{ProviderName: "primary", ResponseText: "**Sell** your wheat:\n- now"})
	c := NewClient(primary, nil, Options{Retry: llm.RetryConfig{MaxAttempts: 1}})

	got, err := c.Answer(context.Background(), Request{Text: "advice", Language: language.English})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Text != "Sell your wheat: now" {
		t.Fatalf("expected sanitized text, got %q", got.Text)
	}
}

func TestAnswerForcesTranslationOnScriptMismatch(t *testing.T) {
	primary := mock.NewLLMAdapter(mock.LLMConfig{ProviderName: "primary", ResponseText: "Sell your wheat now."})
	c := NewClient(primary, nil, Options{Retry: llm.RetryConfig{MaxAttempts: 1}})

	got, err := c.Answer(context.Background(), Request{Text: "गेहूं बेचूं?", Language: language.Hindi})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Translated {
		t.Fatal("expected forced translation for Latin answer in Hindi session")
	}
	if primary.Calls() != 2 {
		t.Fatalf("expected a second call for translation, got %d", primary.Calls())
	}
	sent := primary.LastContext()
	if sent.Temperature != translateTemperature || sent.MaxTokens != translateMaxTokens {
		t.Fatalf("unexpected translation params: %+v", sent)
	}
	if !strings.Contains(sent.Messages[0].Content, "Translate the user content into Hindi.") {
		t.Fatalf("unexpected translation prompt: %q", sent.Messages[0].Content)
	}
}

func TestAnswerKeepsCompliantScript(t *testing.T) {
	primary := mock.NewLLMAdapter(mock.LLMConfig{ProviderName: "primary", ResponseText: "गेहूं अभी बेच दें।"})
	c := NewClient(primary, nil, Options{Retry: llm.RetryConfig{MaxAttempts: 1}})

	got, err := c.Answer(context.Background(), Request{Text: "सलाह दो", Language: language.Hindi})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Translated {
		t.Fatal("Devanagari answer should not be re-translated")
	}
	if primary.Calls() != 1 {
		t.Fatalf("expected a single call, got %d", primary.Calls())
	}
}
