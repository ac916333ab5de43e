package reasoning

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mandimitra/vaani/pkg/errorsx"
	"github.com/mandimitra/vaani/pkg/language"
	"github.com/mandimitra/vaani/pkg/llm"
	"github.com/mandimitra/vaani/pkg/logging"
	"github.com/mandimitra/vaani/pkg/metrics"
)

const (
	DefaultTimeout = 12 * time.Second

	answerTemperature = 0.6
	answerTopP        = 0.9
	answerMaxTokens   = 500
)

const personaPrompt = "You are KrishiAI, an agricultural assistant for Punjab farmers. " +
	"Be concise and practical. Keep answers under four sentences. Output plain text only, no markdown."

var languageLines = map[language.Code]string{
	language.Hindi:   "Respond in Hindi.",
	language.Punjabi: "Respond in Punjabi (Gurmukhi script).",
	language.English: "Respond in English.",
}

// Request is one escalated utterance plus the farm context that grounds it.
type Request struct {
	Text          string
	Language      language.Code
	Crop          string
	Location      string
	Quantity      string
	InternalFacts []string
	History       []llm.Message
}

// Answer is a sanitized, script-compliant remote response.
type Answer struct {
	Text       string
	Provider   string
	RequestID  string
	Translated bool
}

type Options struct {
	Timeout  time.Duration
	Retry    llm.RetryConfig
	Logger   *slog.Logger
	Observer metrics.Observer
}

// Client routes escalated utterances to a primary provider and fails over
// to a secondary one when the primary is unreachable or rate limited.
type Client struct {
	primary   llm.LLMAdapter
	secondary llm.LLMAdapter
	timeout   time.Duration
	retry     llm.RetryConfig
	log       *slog.Logger
	obs       metrics.Observer
}

func NewClient(primary, secondary llm.LLMAdapter, opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Client{
		primary:   primary,
		secondary: secondary,
		timeout:   opts.Timeout,
		retry:     opts.Retry,
		log:       logging.NewComponentLogger(opts.Logger, "reasoning"),
		obs:       opts.Observer,
	}
}

// Answer generates a remote response for req. The result is sanitized to
// plain text and, when the model ignores the session language, translated
// back into the expected script.
func (c *Client) Answer(ctx context.Context, req Request) (Answer, error) {
	requestID := uuid.NewString()
	input := llm.Context{
		Messages:    c.buildMessages(req),
		Temperature: answerTemperature,
		TopP:        answerTopP,
		MaxTokens:   answerMaxTokens,
	}
	resp, provider, err := c.generate(ctx, input)
	if err != nil {
		c.log.Error("remote_reasoning_failed",
			slog.String("request_id", requestID),
			slog.String("error", err.Error()))
		return Answer{}, errorsx.Wrap(err, errorsx.ReasonProviderDown)
	}

	text := SanitizePlainText(resp.Text)
	translated := false
	if !language.ContainsScript(req.Language, text) {
		c.record(metrics.EventScriptRetranslate, provider)
		c.log.Warn("script_mismatch",
			slog.String("request_id", requestID),
			slog.String("language", string(req.Language)))
		if fixed, terr := c.ForceTranslate(ctx, text, req.Language); terr == nil {
			text = fixed
			translated = true
		}
	}

	c.log.Info("remote_reasoning_done",
		slog.String("request_id", requestID),
		slog.String("provider", provider),
		slog.Bool("translated", translated))
	return Answer{Text: text, Provider: provider, RequestID: requestID, Translated: translated}, nil
}

// generate tries the primary adapter with retries, then the secondary.
func (c *Client) generate(ctx context.Context, input llm.Context) (llm.Response, string, error) {
	resp, err := c.callProvider(ctx, c.primary, input)
	if err == nil {
		return resp, c.primary.Name(), nil
	}
	if c.secondary == nil {
		return llm.Response{}, "", err
	}
	c.record(metrics.EventProviderFailover, c.primary.Name())
	c.log.Warn("provider_failover",
		slog.String("from", c.primary.Name()),
		slog.String("to", c.secondary.Name()),
		slog.String("error", err.Error()))
	resp, err = c.callProvider(ctx, c.secondary, input)
	if err != nil {
		return llm.Response{}, "", err
	}
	return resp, c.secondary.Name(), nil
}

func (c *Client) callProvider(ctx context.Context, adapter llm.LLMAdapter, input llm.Context) (llm.Response, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return llm.Retry(callCtx, c.retry, func(ctx context.Context) (llm.Response, error) {
		return adapter.Generate(ctx, input)
	})
}

func (c *Client) buildMessages(req Request) []llm.Message {
	var b strings.Builder
	b.WriteString(personaPrompt)
	b.WriteString("\nContext: crop=")
	b.WriteString(orDefault(req.Crop, language.DefaultCrop))
	b.WriteString(", location=")
	b.WriteString(orDefault(req.Location, language.DefaultLocation))
	b.WriteString(", quantity=")
	b.WriteString(orDefault(req.Quantity, language.DefaultQuantity))
	b.WriteString(" tons.")
	if len(req.InternalFacts) > 0 {
		b.WriteString("\nInternal data:")
		for _, fact := range req.InternalFacts {
			b.WriteString("\n- ")
			b.WriteString(fact)
		}
	}
	line, ok := languageLines[req.Language]
	if !ok {
		line = languageLines[language.English]
	}
	b.WriteString("\n")
	b.WriteString(line)

	messages := make([]llm.Message, 0, len(req.History)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: b.String()})
	messages = append(messages, req.History...)
	messages = append(messages, llm.User(req.Text))
	return messages
}

func (c *Client) record(name, provider string) {
	if c.obs == nil {
		return
	}
	c.obs.RecordEvent(metrics.MetricsEvent{
		Name: name,
		Time: time.Now(),
		Tags: map[string]string{
			"provider":  provider,
			"component": "reasoning",
		},
	})
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
