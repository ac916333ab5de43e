package openai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mandimitra/vaani/pkg/llm"
	"github.com/mandimitra/vaani/pkg/resilience"
)

const DefaultModel = "gpt-4o-mini"

// Adapter speaks the OpenAI chat-completions protocol. BaseURL can point at
// any compatible endpoint, which is how the secondary on-prem provider is
// wired in.
type Adapter struct {
	APIKey   string
	Model    string
	BaseURL  string
	Provider string
	Client   *http.Client
}

func NewAdapter(apiKey, model string) *Adapter {
	if model == "" {
		model = DefaultModel
	}
	return &Adapter{
		APIKey:   apiKey,
		Model:    model,
		BaseURL:  "https://api.openai.com/v1",
		Provider: "openai",
		Client:   &http.Client{Timeout: 60 * time.Second},
	}
}

// NewCompatibleAdapter targets a self-hosted OpenAI-compatible server.
func NewCompatibleAdapter(name, baseURL, apiKey, model string) *Adapter {
	return &Adapter{
		APIKey:   apiKey,
		Model:    model,
		BaseURL:  strings.TrimSuffix(baseURL, "/"),
		Provider: name,
		Client:   &http.Client{Timeout: 60 * time.Second},
	}
}

func (a *Adapter) Name() string {
	if a.Provider != "" {
		return a.Provider
	}
	return "openai"
}

func (a *Adapter) Generate(ctx context.Context, input llm.Context) (llm.Response, error) {
	body, err := a.buildRequest(input, false)
	if err != nil {
		return llm.Response{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.BaseURL+"/chat/completions", body)
	if err != nil {
		return llm.Response{}, err
	}
	a.applyHeaders(req)
	resp, err := a.client().Do(req)
	if err != nil {
		return llm.Response{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusTooManyRequests {
		body, _ := io.ReadAll(resp.Body)
		return llm.Response{}, resilience.RateLimitError{Provider: a.Name(), Message: string(body)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return llm.Response{}, errors.New(string(body))
	}
	var payload completionPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return llm.Response{}, err
	}
	return payload.toResponse()
}

func (a *Adapter) Stream(ctx context.Context, input llm.Context) (<-chan string, error) {
	body, err := a.buildRequest(input, true)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.BaseURL+"/chat/completions", body)
	if err != nil {
		return nil, err
	}
	a.applyHeaders(req)
	resp, err := a.client().Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, resilience.RateLimitError{Provider: a.Name(), Message: string(body)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, errors.New(string(body))
	}
	out := make(chan string, 128)
	go func() {
		defer resp.Body.Close()
		defer close(out)
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if !strings.HasPrefix(line, "data:") {
				continue
			}
			data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			if data == "[DONE]" {
				return
			}
			var chunk streamChunk
			if err := json.Unmarshal([]byte(data), &chunk); err != nil {
				continue
			}
			if len(chunk.Choices) == 0 {
				continue
			}
			if text := chunk.Choices[0].Delta.Content; text != "" {
				select {
				case <-ctx.Done():
					return
				case out <- text:
				}
			}
		}
	}()
	return out, nil
}

func (a *Adapter) buildRequest(input llm.Context, stream bool) (*bytes.Buffer, error) {
	messages := make([]map[string]string, 0, len(input.Messages))
	for _, m := range input.Messages {
		messages = append(messages, map[string]string{"role": m.Role, "content": m.Content})
	}
	req := map[string]any{
		"model":    a.Model,
		"stream":   stream,
		"messages": messages,
	}
	if input.Temperature > 0 {
		req["temperature"] = input.Temperature
	}
	if input.TopP > 0 {
		req["top_p"] = input.TopP
	}
	if input.MaxTokens > 0 {
		req["max_tokens"] = input.MaxTokens
	}
	if stream {
		req["stream_options"] = map[string]any{"include_usage": true}
	}
	b, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	return bytes.NewBuffer(b), nil
}

func (a *Adapter) applyHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if a.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.APIKey)
	}
}

func (a *Adapter) client() *http.Client {
	if a.Client != nil {
		return a.Client
	}
	return http.DefaultClient
}

type completionPayload struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

func (p completionPayload) toResponse() (llm.Response, error) {
	if len(p.Choices) == 0 {
		return llm.Response{}, errors.New("no choices")
	}
	return llm.Response{
		Text:         p.Choices[0].Message.Content,
		Model:        p.Model,
		FinishReason: p.Choices[0].FinishReason,
		Usage: llm.Usage{
			PromptTokens:     p.Usage.PromptTokens,
			CompletionTokens: p.Usage.CompletionTokens,
			TotalTokens:      p.Usage.TotalTokens,
		},
	}, nil
}

type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}
