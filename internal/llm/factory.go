package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/codemaster/internal/store"
)

// NewProvider builds the configured provider and stacks the middleware as
// caller → timeout → logging → provider, so a call cut off by the deadline
// is still recorded with its latency.
func NewProvider(ctx context.Context, cfg Config, repo store.EventRepo) (Provider, error) {
	if cfg.Provider == "mock" {
		return NewMockProvider(), nil
	}

	base, err := newBaseProvider(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}
	return WithTimeout(WithLogging(base, cfg.Provider, repo), cfg.Timeout), nil
}

func newBaseProvider(ctx context.Context, cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "gemini":
		return NewGeminiProvider(ctx, cfg.Gemini)
	case "openai":
		return NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		return NewAnthropicProvider(cfg.Anthropic)
	case "openrouter":
		return NewOpenRouterProvider(cfg.OpenRouter)
	}
	return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
}

// NewProviderFromEnv resolves Config from the environment, applies opts
// and validates the result before building.
func NewProviderFromEnv(ctx context.Context, repo store.EventRepo, opts ...func(*Config)) (Provider, error) {
	cfg, err := ResolveConfig()
	if err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewProvider(ctx, cfg, repo)
}
