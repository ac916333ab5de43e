package vaani

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/mandimitra/vaani/pkg/pipeline"
	"github.com/spf13/viper"
)

type Config struct {
	Pipeline      pipeline.Config       `mapstructure:"pipeline"`
	Engine        pipeline.EngineConfig `mapstructure:"engine"`
	Vendors       VendorsConfig         `mapstructure:"vendors"`
	Transports    TransportsConfig      `mapstructure:"transports"`
	STT           STTProcessingConfig   `mapstructure:"stt"`
	Session       SessionConfig         `mapstructure:"session"`
	Transcript    TranscriptConfig      `mapstructure:"transcript"`
	Policy        PolicyConfig          `mapstructure:"policy"`
	Reasoning     ReasoningConfig       `mapstructure:"reasoning"`
	Limits        LimitsConfig          `mapstructure:"limits"`
	Environment   string                `mapstructure:"environment"`
	LogLevel      string                `mapstructure:"log_level"`
	LogFormat     string                `mapstructure:"log_format"`
	Languages     LanguageConfig        `mapstructure:"languages"`
	Observability ObservabilityConfig   `mapstructure:"observability"`
	Privacy       PrivacyConfig         `mapstructure:"privacy"`
}

type VendorConfig struct {
	Provider string         `mapstructure:"provider"`
	Settings map[string]any `mapstructure:"settings"`
}

type VendorsConfig struct {
	// STT is the optional server-side recognizer; empty means the browser
	// delivers transcripts itself.
	STT VendorConfig `mapstructure:"stt"`
	// LLM is the primary remote reasoning provider.
	LLM VendorConfig `mapstructure:"llm"`
	// LLMSecondary is the failover provider, typically a self-hosted
	// openai-compatible endpoint.
	LLMSecondary VendorConfig `mapstructure:"llm_secondary"`
}

type TransportsConfig struct {
	Provider string         `mapstructure:"provider"`
	Settings map[string]any `mapstructure:"settings"`
}

type STTProcessingConfig struct {
	ForwardInterim bool `mapstructure:"forward_interim"`
}

type SessionConfig struct {
	MaxConsecutiveRestarts int `mapstructure:"max_consecutive_restarts"`
}

type TranscriptConfig struct {
	MinLen         int `mapstructure:"min_len"`
	MaxHistory     int `mapstructure:"max_history"`
	FlushTimeoutMS int `mapstructure:"flush_timeout_ms"`
}

type PolicyConfig struct {
	InternalTimeoutMS int `mapstructure:"internal_timeout_ms"`
}

type ReasoningConfig struct {
	TimeoutMS   int `mapstructure:"timeout_ms"`
	MaxAttempts int `mapstructure:"max_attempts"`
}

type LimitsConfig struct {
	MaxChars     int `mapstructure:"max_chars"`
	MaxSentences int `mapstructure:"max_sentences"`
}

type LanguageConfig struct {
	Default string `mapstructure:"default"`
}

type ObservabilityConfig struct {
	ArtifactsDir  string `mapstructure:"artifacts_dir"`
	RecordAudio   bool   `mapstructure:"record_audio"`
	RetentionDays int    `mapstructure:"retention_days"`
	// MetricsStream appends every metrics event as JSON lines to this file.
	MetricsStream string `mapstructure:"metrics_stream"`
	// SampleRate thins the metrics stream; 1 records everything.
	SampleRate float64 `mapstructure:"sample_rate"`
}

type PrivacyConfig struct {
	RedactPII bool `mapstructure:"redact_pii"`
}

func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("VAANI")
	v.AutomaticEnv()
	v.SetDefault("pipeline.async", true)
	v.SetDefault("pipeline.stagebuffer", 128)
	v.SetDefault("pipeline.highcapacity", 256)
	v.SetDefault("pipeline.lowcapacity", 512)
	v.SetDefault("pipeline.fairnessratio", 3)
	v.SetDefault("pipeline.backpressure", "drop")
	v.SetDefault("engine.samplerate", 16000)
	v.SetDefault("engine.stt_replay_chunks", 50)
	v.SetDefault("stt.forward_interim", false)
	v.SetDefault("session.max_consecutive_restarts", 5)
	v.SetDefault("transcript.min_len", 2)
	v.SetDefault("transcript.max_history", 10)
	v.SetDefault("transcript.flush_timeout_ms", 300)
	v.SetDefault("policy.internal_timeout_ms", 5000)
	v.SetDefault("reasoning.timeout_ms", 12000)
	v.SetDefault("reasoning.max_attempts", 3)
	v.SetDefault("limits.max_chars", 420)
	v.SetDefault("limits.max_sentences", 3)
	v.SetDefault("environment", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("languages.default", "en")
	v.SetDefault("observability.artifacts_dir", "")
	v.SetDefault("observability.record_audio", false)
	v.SetDefault("observability.retention_days", 0)
	v.SetDefault("observability.metrics_stream", "")
	v.SetDefault("observability.sample_rate", 1.0)
	v.SetDefault("privacy.redact_pii", true)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Pipeline struct {
			Async         bool   `mapstructure:"async"`
			StageBuffer   int    `mapstructure:"stagebuffer"`
			HighCapacity  int    `mapstructure:"highcapacity"`
			LowCapacity   int    `mapstructure:"lowcapacity"`
			FairnessRatio int    `mapstructure:"fairnessratio"`
			Backpressure  string `mapstructure:"backpressure"`
		} `mapstructure:"pipeline"`
		Engine        pipeline.EngineConfig `mapstructure:"engine"`
		Vendors       VendorsConfig         `mapstructure:"vendors"`
		Transports    TransportsConfig      `mapstructure:"transports"`
		STT           STTProcessingConfig   `mapstructure:"stt"`
		Session       SessionConfig         `mapstructure:"session"`
		Transcript    TranscriptConfig      `mapstructure:"transcript"`
		Policy        PolicyConfig          `mapstructure:"policy"`
		Reasoning     ReasoningConfig       `mapstructure:"reasoning"`
		Limits        LimitsConfig          `mapstructure:"limits"`
		Environment   string                `mapstructure:"environment"`
		LogLevel      string                `mapstructure:"log_level"`
		LogFormat     string                `mapstructure:"log_format"`
		Languages     LanguageConfig        `mapstructure:"languages"`
		Observability ObservabilityConfig   `mapstructure:"observability"`
		Privacy       PrivacyConfig         `mapstructure:"privacy"`
	}
	if err := v.Unmarshal(&raw); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}

	cfg := Config{
		Pipeline: pipeline.Config{
			Async:         raw.Pipeline.Async,
			StageBuffer:   raw.Pipeline.StageBuffer,
			HighCapacity:  raw.Pipeline.HighCapacity,
			LowCapacity:   raw.Pipeline.LowCapacity,
			FairnessRatio: raw.Pipeline.FairnessRatio,
			Backpressure:  parseBackpressure(raw.Pipeline.Backpressure),
		},
		Engine:        raw.Engine,
		Vendors:       raw.Vendors,
		Transports:    raw.Transports,
		STT:           raw.STT,
		Session:       raw.Session,
		Transcript:    raw.Transcript,
		Policy:        raw.Policy,
		Reasoning:     raw.Reasoning,
		Limits:        raw.Limits,
		Environment:   raw.Environment,
		LogLevel:      raw.LogLevel,
		LogFormat:     raw.LogFormat,
		Languages:     raw.Languages,
		Observability: raw.Observability,
		Privacy:       raw.Privacy,
	}

	expandEnvStrings(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Transports.Provider) == "" {
		return fmt.Errorf("transports.provider is required")
	}
	if strings.TrimSpace(c.Vendors.LLM.Provider) == "" {
		return fmt.Errorf("vendors.llm.provider is required")
	}
	return nil
}

func expandEnvStrings(cfg *Config) {
	expandValue(reflect.ValueOf(cfg))
	cfg.Vendors.STT.Settings = expandSettings(cfg.Vendors.STT.Settings)
	cfg.Vendors.LLM.Settings = expandSettings(cfg.Vendors.LLM.Settings)
	cfg.Vendors.LLMSecondary.Settings = expandSettings(cfg.Vendors.LLMSecondary.Settings)
	cfg.Transports.Settings = expandSettings(cfg.Transports.Settings)
}

func expandSettings(settings map[string]any) map[string]any {
	if settings == nil {
		return nil
	}
	for k, v := range settings {
		settings[k] = expandAny(v)
	}
	return settings
}

func expandAny(v any) any {
	switch val := v.(type) {
	case string:
		return os.ExpandEnv(val)
	case []any:
		for i := range val {
			val[i] = expandAny(val[i])
		}
		return val
	case map[string]any:
		for k, v := range val {
			val[k] = expandAny(v)
		}
		return val
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, v := range val {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = expandAny(v)
		}
		return out
	default:
		return v
	}
}

func expandValue(v reflect.Value) {
	if !v.IsValid() {
		return
	}
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return
		}
		expandValue(v.Elem())
		return
	}
	switch v.Kind() {
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			expandValue(v.Field(i))
		}
	case reflect.String:
		if v.CanSet() {
			v.SetString(os.ExpandEnv(v.String()))
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			expandValue(v.Index(i))
		}
	case reflect.Map:
		if v.Type().Key().Kind() == reflect.String && v.Type().Elem().Kind() == reflect.String {
			for _, key := range v.MapKeys() {
				val := v.MapIndex(key)
				expanded := os.ExpandEnv(val.String())
				v.SetMapIndex(key, reflect.ValueOf(expanded))
			}
		}
	}
}

func parseBackpressure(v string) pipeline.BackpressureMode {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "wait":
		return pipeline.BackpressureWait
	case "drop", "":
		return pipeline.BackpressureDrop
	default:
		if n, err := strconv.Atoi(v); err == nil {
			return pipeline.BackpressureMode(n)
		}
	}
	return pipeline.BackpressureDrop
}
