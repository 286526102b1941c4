package llm

import (
	"os"
	"time"
)

// Provider names.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// defaultModels is the model used per provider when none is configured.
var defaultModels = map[string]string{
	ProviderAnthropic:  "claude-haiku-4-5-20251001",
	ProviderOpenAI:     "gpt-4o-mini",
	ProviderGemini:     "gemini-2.0-flash",
	ProviderOpenRouter: "google/gemini-2.0-flash-001",
}

// keyEnv lists the conventional API key variables, in discovery order.
var keyEnv = []struct {
	provider string
	env      string
}{
	{ProviderGemini, "GEMINI_API_KEY"},
	{ProviderOpenAI, "OPENAI_API_KEY"},
	{ProviderAnthropic, "ANTHROPIC_API_KEY"},
	{ProviderOpenRouter, "OPENROUTER_API_KEY"},
}

// Config selects and configures one provider.
type Config struct {
	// Provider is one of the Provider* names. Empty means no LLM.
	Provider string
	Model    string
	APIKey   string

	// BaseURL overrides the API endpoint for OpenAI-compatible providers.
	BaseURL string

	Retry RetryConfig

	// Timeout bounds a single Generate call, retries included.
	Timeout time.Duration
}

// RetryConfig configures retries of transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with no provider and standard retry settings.
func DefaultConfig() Config {
	return Config{
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 30 * time.Second,
	}
}

// Enabled reports whether a provider is selected.
func (c Config) Enabled() bool { return c.Provider != "" }

// ConfigFromEnv builds a Config from LINGO_LLM_* variables. Without an
// explicit provider the first conventional API key found selects one.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.Provider = os.Getenv("LINGO_LLM_PROVIDER")
	cfg.Model = os.Getenv("LINGO_LLM_MODEL")
	cfg.APIKey = os.Getenv("LINGO_LLM_API_KEY")
	cfg.BaseURL = os.Getenv("LINGO_LLM_BASE_URL")

	for _, k := range keyEnv {
		v := os.Getenv(k.env)
		if v == "" {
			continue
		}
		if cfg.Provider == "" {
			cfg.Provider = k.provider
		}
		if cfg.Provider == k.provider && cfg.APIKey == "" {
			cfg.APIKey = v
		}
	}
	return cfg.withDefaults()
}

// Override applies non-empty values on top of c.
func (c Config) Override(provider, model, apiKey string) Config {
	if provider != "" && provider != c.Provider {
		c.Provider = provider
		c.Model = ""
	}
	if model != "" {
		c.Model = model
	}
	if apiKey != "" {
		c.APIKey = apiKey
	}
	return c.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.Model == "" {
		c.Model = defaultModels[c.Provider]
	}
	if c.Provider == ProviderOpenRouter && c.BaseURL == "" {
		c.BaseURL = openRouterBaseURL
	}
	return c
}
