package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func newTestOpenAIProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewOpenAIProvider(OpenAIConfig{
		APIKey:  "test-key",
		Model:   "gpt-mini",
		BaseURL: server.URL + "/v1",
	})
	if err != nil {
		t.Fatalf("NewOpenAIProvider: %v", err)
	}
	return p
}

func openAIReply(content string, finish openai.FinishReason) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"model":  "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": string(finish),
			}},
			"usage": map[string]any{"prompt_tokens": 4, "completion_tokens": 4, "total_tokens": 8},
		})
	}
}

func TestOpenAIProvider_HappyPath(t *testing.T) {
	var sent map[string]any
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&sent)
		openAIReply(`{"language":"Go","explanation":"Prints a greeting."}`, openai.FinishReasonStop)(w, r)
	})

	resp, err := p.Generate(context.Background(), Request{
		System:    "You are a programming tutor.",
		Messages:  []Message{{Role: RoleUser, Content: "Explain this code."}},
		MaxTokens: 256,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.InputTokens != 4 || resp.Usage.OutputTokens != 4 || resp.Usage.TotalTokens != 8 {
		t.Fatalf("unexpected usage: %+v", resp.Usage)
	}
	if resp.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp.StopReason)
	}
	if sent["model"] != "gpt-4o-mini" {
		t.Fatalf("expected friendly name to resolve to gpt-4o-mini, got %v", sent["model"])
	}
	if msgs, _ := sent["messages"].([]any); len(msgs) != 2 {
		t.Fatalf("expected system and user messages, got %v", sent["messages"])
	}
}

func TestOpenAIProvider_RateLimit(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"type":    "tokens",
				"message": "Rate limit exceeded",
				"code":    "rate_limit_exceeded",
			},
		})
	}

	p := newTestOpenAIProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "test"}},
		MaxTokens: 100,
	})
	if err == nil {
		t.Fatal("expected error")
	}
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T (%v)", err, err)
	}
}

func TestOpenAIProvider_ServerError(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"type":    "server_error",
				"message": "Internal server error",
			},
		})
	}

	p := newTestOpenAIProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "test"}},
		MaxTokens: 100,
	})
	if err == nil {
		t.Fatal("expected error")
	}
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T (%v)", err, err)
	}
}

func TestOpenAIProvider_ModelID(t *testing.T) {
	p := &OpenAIProvider{model: "gpt-4o-mini"}
	if p.ModelID() != "gpt-4o-mini" {
		t.Fatalf("expected 'gpt-4o-mini', got %q", p.ModelID())
	}
}

func TestOpenAIProvider_Truncated(t *testing.T) {
	p := newTestOpenAIProvider(t, openAIReply(`{"language":"Py`, openai.FinishReasonLength))
	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "explain"}},
		MaxTokens: 8,
	})
	var trunc *ErrMaxTokensExceeded
	if !errors.As(err, &trunc) {
		t.Fatalf("expected ErrMaxTokensExceeded, got: %T (%v)", err, err)
	}
	if string(trunc.Content) != `{"language":"Py` {
		t.Fatalf("expected partial content to be kept, got %s", trunc.Content)
	}
}

func TestOpenAIProvider_SchemaViolation(t *testing.T) {
	p := newTestOpenAIProvider(t, openAIReply("```json\n{\"score\":\"high\"}\n```", openai.FinishReasonStop))
	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "grade"}},
		MaxTokens: 64,
		Schema: &Schema{Name: "openai-score", Definition: map[string]any{
			"type":       "object",
			"properties": map[string]any{"score": map[string]any{"type": "integer"}},
		}},
	})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
	}
	if string(inv.Content) != `{"score":"high"}` {
		t.Fatalf("expected unfenced content, got %s", inv.Content)
	}
}

func TestOpenAIProvider_Temperature(t *testing.T) {
	zero, warm := 0.0, 0.4
	tests := []struct {
		name        string
		temperature *float64
		check       func(t *testing.T, temp any, ok bool)
	}{
		{"explicit zero survives omitempty", &zero, func(t *testing.T, temp any, ok bool) {
			v, _ := temp.(float64)
			if !ok || v <= 0 || v > 1e-40 {
				t.Fatalf("expected a near-zero temperature, got %v (present %v)", temp, ok)
			}
		}},
		{"positive value", &warm, func(t *testing.T, temp any, ok bool) {
			v, _ := temp.(float64)
			if !ok || v < 0.39 || v > 0.41 {
				t.Fatalf("expected temperature 0.4, got %v", temp)
			}
		}},
		{"nil leaves the default", nil, func(t *testing.T, temp any, ok bool) {
			if ok {
				t.Fatalf("expected no temperature, got %v", temp)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sent map[string]any
			p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
				json.NewDecoder(r.Body).Decode(&sent)
				openAIReply("ok", openai.FinishReasonStop)(w, r)
			})

			if _, err := p.Generate(context.Background(), Request{
				Messages:    UserMessage("grade this"),
				MaxTokens:   64,
				Temperature: tt.temperature,
			}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			temp, ok := sent["temperature"]
			tt.check(t, temp, ok)
		})
	}
}
