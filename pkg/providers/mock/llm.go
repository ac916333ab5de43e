package mock

import (
	"context"
	"sync"

	"github.com/mandimitra/vaani/pkg/llm"
)

type LLMAdapter struct {
	cfg   LLMConfig
	mu    sync.Mutex
	calls int
	last  llm.Context
}

type LLMConfig struct {
	ProviderName string
	ResponseText string
	StreamChunks []string
	Err          error
}

func NewLLMAdapter(cfg LLMConfig) *LLMAdapter {
	if cfg.ResponseText == "" {
		cfg.ResponseText = "mock response"
	}
	if cfg.ProviderName == "" {
		cfg.ProviderName = "mock_llm"
	}
	return &LLMAdapter{cfg: cfg}
}

func (a *LLMAdapter) Name() string { return a.cfg.ProviderName }

func (a *LLMAdapter) Generate(ctx context.Context, input llm.Context) (llm.Response, error) {
	a.mu.Lock()
	a.calls++
	a.last = input
	a.mu.Unlock()
	if a.cfg.Err != nil {
		return llm.Response{}, a.cfg.Err
	}
	return llm.Response{Text: a.cfg.ResponseText, Model: a.cfg.ProviderName}, nil
}

func (a *LLMAdapter) Stream(ctx context.Context, input llm.Context) (<-chan string, error) {
	a.mu.Lock()
	a.calls++
	a.last = input
	a.mu.Unlock()
	if a.cfg.Err != nil {
		return nil, a.cfg.Err
	}
	out := make(chan string, len(a.cfg.StreamChunks)+1)
	if len(a.cfg.StreamChunks) > 0 {
		for _, chunk := range a.cfg.StreamChunks {
			out <- chunk
		}
	} else {
		out <- a.cfg.ResponseText
	}
	close(out)
	return out, nil
}

// Calls reports how many Generate/Stream requests the adapter served.
func (a *LLMAdapter) Calls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls
}

// LastContext returns the most recent request, for prompt assertions.
func (a *LLMAdapter) LastContext() llm.Context {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.last
}

var _ llm.LLMAdapter = (*LLMAdapter)(nil)
