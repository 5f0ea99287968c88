package llm

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// ErrNotConfigured is returned when no provider can be selected from the
// environment.
var ErrNotConfigured = errors.New("no LLM provider configured: set CODEMASTER_LLM_PROVIDER or one of GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY, API_KEY")

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "anthropic", "openai", "gemini", "openrouter", "mock"
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig

	// Timeout is the fixed deadline for a single LLM request. There is no
	// retry; a request that misses it fails. Default: 90s.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey  string
	Model   string // Default: "claude-sonnet"
	BaseURL string // Optional. Points the SDK at a proxy or gateway.
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o"
	BaseURL string // Optional. Override for OpenRouter or compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey  string
	Model   string // Default: "gemini-pro"
	BaseURL string // Optional. Overrides the Gemini API endpoint.

	// ThinkingBudget caps the tokens the model may spend reasoning before
	// answering. Zero leaves the model default.
	ThinkingBudget int
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.5-pro"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "gemini",
		Anthropic: AnthropicConfig{
			Model: "claude-sonnet",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o",
		},
		Gemini: GeminiConfig{
			Model:          "gemini-pro",
			ThinkingBudget: 4000,
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.5-pro",
		},
		Timeout: 90 * time.Second,
	}
}

// ConfigFromEnv builds a Config from CODEMASTER_* environment variables,
// falling back to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	applyEnv(&cfg)
	return cfg
}

func applyEnv(cfg *Config) {
	if p := os.Getenv("CODEMASTER_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}
	if t := os.Getenv("CODEMASTER_LLM_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			cfg.Timeout = d
		} else {
			fmt.Fprintf(os.Stderr, "warning: ignoring CODEMASTER_LLM_TIMEOUT=%q: %v\n", t, err)
		}
	}

	if k := os.Getenv("CODEMASTER_ANTHROPIC_API_KEY"); k != "" {
		cfg.Anthropic.APIKey = k
	}
	if m := os.Getenv("CODEMASTER_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}
	if u := os.Getenv("CODEMASTER_ANTHROPIC_BASE_URL"); u != "" {
		cfg.Anthropic.BaseURL = u
	}

	if k := os.Getenv("CODEMASTER_OPENAI_API_KEY"); k != "" {
		cfg.OpenAI.APIKey = k
	}
	if m := os.Getenv("CODEMASTER_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("CODEMASTER_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	if k := os.Getenv("CODEMASTER_GEMINI_API_KEY"); k != "" {
		cfg.Gemini.APIKey = k
	}
	if m := os.Getenv("CODEMASTER_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}
	if u := os.Getenv("CODEMASTER_GEMINI_BASE_URL"); u != "" {
		cfg.Gemini.BaseURL = u
	}

	if k := os.Getenv("CODEMASTER_OPENROUTER_API_KEY"); k != "" {
		cfg.OpenRouter.APIKey = k
	}
	if m := os.Getenv("CODEMASTER_OPENROUTER_MODEL"); m != "" {
		cfg.OpenRouter.Model = m
	}
	if u := os.Getenv("CODEMASTER_OPENROUTER_BASE_URL"); u != "" {
		cfg.OpenRouter.BaseURL = u
	}
}

// DiscoverConfig probes standard API key env vars in priority order
// (Gemini → OpenAI → Anthropic → OpenRouter, then a bare API_KEY which is
// treated as a Gemini key) and returns a Config for the first provider
// whose key is found. Returns (Config{}, false) if none found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// ResolveConfig picks the provider configuration. An explicit
// CODEMASTER_LLM_PROVIDER wins; otherwise standard keys are discovered.
// CODEMASTER_* overrides are applied on top of a discovered config.
func ResolveConfig() (Config, error) {
	if os.Getenv("CODEMASTER_LLM_PROVIDER") != "" {
		cfg := ConfigFromEnv()
		fillStandardKeys(&cfg)
		return cfg, cfg.Validate()
	}

	cfg, ok := DiscoverConfig()
	if !ok {
		return Config{}, ErrNotConfigured
	}
	applyEnv(&cfg)
	return cfg, cfg.Validate()
}

// fillStandardKeys falls back to the vendors' own key variables for any
// provider whose CODEMASTER_ key is unset.
func fillStandardKeys(cfg *Config) {
	fill := func(dst *string, names ...string) {
		for _, n := range names {
			if *dst == "" {
				*dst = os.Getenv(n)
			}
		}
	}
	fill(&cfg.Gemini.APIKey, "GEMINI_API_KEY", "API_KEY")
	fill(&cfg.OpenAI.APIKey, "OPENAI_API_KEY")
	fill(&cfg.Anthropic.APIKey, "ANTHROPIC_API_KEY")
	fill(&cfg.OpenRouter.APIKey, "OPENROUTER_API_KEY")
}

// SetModel overrides the model of the selected provider.
func (c *Config) SetModel(model string) {
	switch c.Provider {
	case "anthropic":
		c.Anthropic.Model = model
	case "openai":
		c.OpenAI.Model = model
	case "gemini":
		c.Gemini.Model = model
	case "openrouter":
		c.OpenRouter.Model = model
	}
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("CODEMASTER_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("CODEMASTER_OPENAI_API_KEY is required for the openai provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("CODEMASTER_GEMINI_API_KEY is required for the gemini provider")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("CODEMASTER_OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
