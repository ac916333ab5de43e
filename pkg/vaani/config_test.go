package vaani

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
transports:
  provider: mock
vendors:
  llm:
    provider: mock
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Engine.SampleRate != 16000 {
		t.Fatalf("sample rate default = %d", cfg.Engine.SampleRate)
	}
	if cfg.Session.MaxConsecutiveRestarts != 5 {
		t.Fatalf("restart ceiling default = %d", cfg.Session.MaxConsecutiveRestarts)
	}
	if cfg.Reasoning.TimeoutMS != 12000 || cfg.Reasoning.MaxAttempts != 3 {
		t.Fatalf("reasoning defaults = %+v", cfg.Reasoning)
	}
	if cfg.Limits.MaxChars != 420 || cfg.Limits.MaxSentences != 3 {
		t.Fatalf("limit defaults = %+v", cfg.Limits)
	}
	if cfg.Languages.Default != "en" {
		t.Fatalf("language default = %s", cfg.Languages.Default)
	}
	if !cfg.Privacy.RedactPII {
		t.Fatal("redact_pii should default on")
	}
}

func TestLoadConfigExpandsEnv(t *testing.T) {
	t.Setenv("TEST_LLM_KEY", "sk-test-123")
	path := writeConfig(t, `
transports:
  provider: dashboard
vendors:
  llm:
    provider: openai
    settings:
      api_key: ${TEST_LLM_KEY}
      model: gpt-4o-mini
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got := cfg.Vendors.LLM.Settings["api_key"]; got != "sk-test-123" {
		t.Fatalf("api_key not expanded: %v", got)
	}
}

func TestLoadConfigRequiresProviders(t *testing.T) {
	path := writeConfig(t, `
vendors:
  llm:
    provider: mock
`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("missing transports.provider should fail validation")
	}

	path = writeConfig(t, `
transports:
  provider: mock
`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("missing vendors.llm.provider should fail validation")
	}
}
