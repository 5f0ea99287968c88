package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestMockProvider_ReplaysInOrder(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Err: &ErrRateLimit{}},
	)
	if mock.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", mock.ModelID())
	}

	ctx := WithTrace(WithPurpose(context.Background(), "module-gen"), "mod-1")
	resp, err := mock.Generate(ctx, Request{System: "sys", Messages: UserMessage("first")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"a":1}` || resp.Usage.TotalTokens != 15 || resp.StopReason != "end" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	var rl *ErrRateLimit
	if _, err := mock.Generate(context.Background(), Request{}); !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T", err)
	}

	var unavail *ErrProviderUnavailable
	if _, err := mock.Generate(context.Background(), Request{}); !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable once drained, got: %T", err)
	}

	if mock.CallCount() != 3 || mock.Pending() != 0 {
		t.Fatalf("expected 3 calls and an empty queue, got %d calls, %d pending", mock.CallCount(), mock.Pending())
	}
	first := mock.Calls[0]
	if first.System != "sys" || first.Purpose != "module-gen" || first.Trace != "mod-1" {
		t.Fatalf("unexpected recorded call: %+v", first)
	}
	if mock.Calls[1].Purpose != "unknown" || mock.Calls[1].Trace != "" {
		t.Fatalf("expected unlabelled second call, got %+v", mock.Calls[1])
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}

	ctx = WithPurpose(ctx, "module-gen")
	if p := PurposeFrom(ctx); p != "module-gen" {
		t.Fatalf("expected 'module-gen', got %q", p)
	}
}

func TestTraceContext(t *testing.T) {
	ctx := context.Background()
	if tr := TraceFrom(ctx); tr != "" {
		t.Fatalf("expected empty trace, got %q", tr)
	}

	ctx = WithTrace(ctx, "module-123")
	if tr := TraceFrom(ctx); tr != "module-123" {
		t.Fatalf("expected 'module-123', got %q", tr)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "anthropic without key",
			cfg:     Config{Provider: "anthropic"},
			wantErr: true,
		},
		{
			name:    "anthropic with key",
			cfg:     Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "openai without key",
			cfg:     Config{Provider: "openai"},
			wantErr: true,
		},
		{
			name:    "openai with key",
			cfg:     Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "gemini without key",
			cfg:     Config{Provider: "gemini"},
			wantErr: true,
		},
		{
			name:    "openrouter with key",
			cfg:     Config{Provider: "openrouter", OpenRouter: OpenRouterConfig{APIKey: "sk-or"}},
			wantErr: false,
		},
		{
			name:    "mock needs no key",
			cfg:     Config{Provider: "mock"},
			wantErr: false,
		},
		{
			name:    "unknown provider",
			cfg:     Config{Provider: "unknown"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&ErrTimeout{After: 90 * time.Second}, "The model did not answer within 1m30s."},
		{fmt.Errorf("wrapped: %w", &ErrRateLimit{RetryAfter: 7 * time.Second}), "The provider is rate limiting requests; wait 7s."},
		{&ErrRateLimit{}, "The provider is rate limiting requests."},
		{&ErrMaxTokensExceeded{}, "The reply was cut off before it was complete."},
		{&ErrInvalidResponse{Err: errors.New("bad")}, "The reply did not have the expected structure."},
		{&ErrProviderUnavailable{}, "The provider could not be reached."},
		{errors.New("plain"), ""},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := Describe(tt.err); got != tt.want {
			t.Errorf("Describe(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
