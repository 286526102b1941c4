package llm

import (
	"context"
	"errors"
	"testing"
)

func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"LINGO_LLM_PROVIDER", "LINGO_LLM_MODEL", "LINGO_LLM_API_KEY", "LINGO_LLM_BASE_URL",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestConfigFromEnvNothingSet(t *testing.T) {
	clearLLMEnv(t)
	cfg := ConfigFromEnv()
	if cfg.Enabled() {
		t.Errorf("Provider = %q, want none", cfg.Provider)
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Errorf("Retry.MaxAttempts = %d, want 3", cfg.Retry.MaxAttempts)
	}
}

func TestConfigFromEnvDiscovery(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")

	cfg := ConfigFromEnv()
	if cfg.Provider != ProviderOpenAI || cfg.APIKey != "sk-openai" {
		t.Errorf("got %s/%s, want openai with its key", cfg.Provider, cfg.APIKey)
	}
	if cfg.Model != "gpt-4o-mini" {
		t.Errorf("Model = %q, want default", cfg.Model)
	}
}

func TestConfigFromEnvExplicitProvider(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("LINGO_LLM_PROVIDER", "anthropic")
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")

	cfg := ConfigFromEnv()
	if cfg.Provider != ProviderAnthropic || cfg.APIKey != "sk-ant" {
		t.Errorf("got %s/%s, want anthropic with its key", cfg.Provider, cfg.APIKey)
	}
}

func TestConfigOpenRouterBaseURL(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("OPENROUTER_API_KEY", "sk-or")

	cfg := ConfigFromEnv()
	if cfg.Provider != ProviderOpenRouter || cfg.BaseURL != openRouterBaseURL {
		t.Errorf("got %s at %q, want openrouter at %q", cfg.Provider, cfg.BaseURL, openRouterBaseURL)
	}
}

func TestConfigOverride(t *testing.T) {
	cfg := DefaultConfig().Override(ProviderGemini, "", "k1")
	if cfg.Model != "gemini-2.0-flash" || cfg.APIKey != "k1" {
		t.Errorf("got %+v", cfg)
	}

	// Switching provider drops the old provider's model.
	cfg = cfg.Override(ProviderOpenAI, "", "")
	if cfg.Model != "gpt-4o-mini" {
		t.Errorf("Model = %q, want openai default", cfg.Model)
	}
	cfg = cfg.Override("", "gpt-4.1", "")
	if cfg.Provider != ProviderOpenAI || cfg.Model != "gpt-4.1" {
		t.Errorf("got %s/%s", cfg.Provider, cfg.Model)
	}
}

func TestNewProvider(t *testing.T) {
	ctx := context.Background()

	p, err := NewProvider(ctx, Config{Provider: ProviderMock}, nil, nil)
	if err != nil || p.ModelID() != ProviderMock {
		t.Fatalf("mock: %v, %v", p, err)
	}

	_, err = NewProvider(ctx, Config{}, nil, nil)
	var un *ErrProviderUnavailable
	if !errors.As(err, &un) {
		t.Errorf("no provider: error = %v, want *ErrProviderUnavailable", err)
	}

	if _, err := NewProvider(ctx, Config{Provider: "carrier-pigeon"}, nil, nil); err == nil {
		t.Error("unknown provider: want error")
	}

	cfg := DefaultConfig().Override(ProviderOpenAI, "", "sk-test")
	p, err = NewProvider(ctx, cfg, &fakeEventRepo{}, nil)
	if err != nil {
		t.Fatalf("openai: %v", err)
	}
	if p.ModelID() != "gpt-4o-mini" {
		t.Errorf("ModelID() = %q, want gpt-4o-mini", p.ModelID())
	}
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gpt-4o-mini")
	if c == nil {
		t.Fatal("gpt-4o-mini: no pricing")
	}
	if got := c.Cost(1_000_000, 1_000_000); got != 0.75 {
		t.Errorf("Cost = %v, want 0.75", got)
	}
	if LookupCost("no-such-model") != nil {
		t.Error("unknown model should have no pricing")
	}
}
