package vaani

import (
	"fmt"
	"strings"

	"github.com/mandimitra/vaani/pkg/adapters/stt"
	"github.com/mandimitra/vaani/pkg/llm"
)

type STTFactoryBuilder func(cfg Config, traceID string) (func(sessionID string) stt.StreamingSTT, error)
type LLMFactory func(vendor VendorConfig) (llm.LLMAdapter, error)

type ProviderRegistry struct {
	stt map[string]STTFactoryBuilder
	llm map[string]LLMFactory
}

func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		stt: make(map[string]STTFactoryBuilder),
		llm: make(map[string]LLMFactory),
	}
}

func (r *ProviderRegistry) RegisterSTT(name string, factory STTFactoryBuilder) {
	r.stt[strings.ToLower(strings.TrimSpace(name))] = factory
}

func (r *ProviderRegistry) RegisterLLM(name string, factory LLMFactory) {
	r.llm[strings.ToLower(strings.TrimSpace(name))] = factory
}

func (r *ProviderRegistry) BuildSTTFactory(provider string, cfg Config, traceID string) (func(sessionID string) stt.StreamingSTT, error) {
	fn := r.stt[strings.ToLower(strings.TrimSpace(provider))]
	if fn == nil {
		return nil, fmt.Errorf("stt provider not registered: %s", provider)
	}
	return fn(cfg, traceID)
}

func (r *ProviderRegistry) BuildLLM(vendor VendorConfig) (llm.LLMAdapter, error) {
	fn := r.llm[strings.ToLower(strings.TrimSpace(vendor.Provider))]
	if fn == nil {
		return nil, fmt.Errorf("llm provider not registered: %s", vendor.Provider)
	}
	return fn(vendor)
}
