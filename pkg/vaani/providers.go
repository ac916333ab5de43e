package vaani

import (
	"fmt"

	"github.com/mandimitra/vaani/pkg/adapters/stt"
	"github.com/mandimitra/vaani/pkg/configutil"
	"github.com/mandimitra/vaani/pkg/language"
	"github.com/mandimitra/vaani/pkg/llm"
	"github.com/mandimitra/vaani/pkg/providers/deepgram"
	"github.com/mandimitra/vaani/pkg/providers/openai"
)

// RegisterBuiltins wires the in-tree providers: the openai-compatible chat
// adapter (cloud or self-hosted) and the Deepgram server-side recognizer.
func RegisterBuiltins(r *ProviderRegistry) {
	r.RegisterLLM("openai", buildOpenAI)
	r.RegisterLLM("openai_compatible", buildOpenAICompatible)
	r.RegisterSTT("deepgram", buildDeepgramFactory)
}

type openAISettings struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
	Name    string `mapstructure:"name"`
}

func buildOpenAI(vendor VendorConfig) (llm.LLMAdapter, error) {
	if err := configutil.ValidateSettings(vendor.Settings, configutil.Schema{
		Required: []string{"api_key"},
		Optional: []string{"model", "base_url", "name"},
	}); err != nil {
		return nil, fmt.Errorf("openai settings: %w", err)
	}
	var s openAISettings
	if err := configutil.DecodeSettings(vendor.Settings, &s); err != nil {
		return nil, fmt.Errorf("openai settings: %w", err)
	}
	return openai.NewAdapter(s.APIKey, s.Model), nil
}

func buildOpenAICompatible(vendor VendorConfig) (llm.LLMAdapter, error) {
	if err := configutil.ValidateSettings(vendor.Settings, configutil.Schema{
		Required: []string{"base_url"},
		Optional: []string{"api_key", "model", "name"},
	}); err != nil {
		return nil, fmt.Errorf("openai_compatible settings: %w", err)
	}
	var s openAISettings
	if err := configutil.DecodeSettings(vendor.Settings, &s); err != nil {
		return nil, fmt.Errorf("openai_compatible settings: %w", err)
	}
	name := s.Name
	if name == "" {
		name = "openai_compatible"
	}
	return openai.NewCompatibleAdapter(name, s.BaseURL, s.APIKey, s.Model), nil
}

type deepgramSettings struct {
	APIKey         string `mapstructure:"api_key"`
	Model          string `mapstructure:"model"`
	Encoding       string `mapstructure:"encoding"`
	Interim        bool   `mapstructure:"interim"`
	VADEvents      bool   `mapstructure:"vad_events"`
	UtteranceEndMS int    `mapstructure:"utterance_end_ms"`
}

func buildDeepgramFactory(cfg Config, traceID string) (func(sessionID string) stt.StreamingSTT, error) {
	if err := configutil.ValidateSettings(cfg.Vendors.STT.Settings, configutil.Schema{
		Required: []string{"api_key"},
		Optional: []string{"model", "encoding", "interim", "vad_events", "utterance_end_ms"},
	}); err != nil {
		return nil, fmt.Errorf("deepgram settings: %w", err)
	}
	var s deepgramSettings
	if err := configutil.DecodeSettings(cfg.Vendors.STT.Settings, &s); err != nil {
		return nil, fmt.Errorf("deepgram settings: %w", err)
	}
	lang := language.Normalize(cfg.Languages.Default)
	return func(sessionID string) stt.StreamingSTT {
		return deepgram.New(deepgram.Config{
			APIKey:     s.APIKey,
			Model:      s.Model,
			Language:   lang.Locale(),
			SampleRate: cfg.Engine.SampleRate,
			Encoding:   s.Encoding,
			Interim:    s.Interim,
			VADEvents:  s.VADEvents,
			SessionID:  sessionID,
			RequestID:  traceID,
			Params: deepgram.DeepgramParams{
				UtteranceEndMS: s.UtteranceEndMS,
			},
		})
	}, nil
}
