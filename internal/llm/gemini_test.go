package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-3-pro-preview", "gemini-3-pro-preview"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"language": map[string]any{"type": "string"},
			"score":    map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
			"type":     map[string]any{"type": "string", "enum": []any{"choice", "code"}},
			"options": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": 4,
				"maxItems": float64(4),
			},
		},
		"required": []any{"language", "score"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["language"].Type != "STRING" {
		t.Fatalf("expected STRING for language, got %s", schema.Properties["language"].Type)
	}
	score := schema.Properties["score"]
	if score.Type != "INTEGER" {
		t.Fatalf("expected INTEGER for score, got %s", score.Type)
	}
	if score.Minimum == nil || *score.Minimum != 0 || score.Maximum == nil || *score.Maximum != 100 {
		t.Fatalf("expected score bounds 0..100, got %v..%v", score.Minimum, score.Maximum)
	}
	if len(schema.Properties["type"].Enum) != 2 {
		t.Fatalf("expected 2 enum values, got %d", len(schema.Properties["type"].Enum))
	}
	options := schema.Properties["options"]
	if options.Type != "ARRAY" {
		t.Fatalf("expected ARRAY for options, got %s", options.Type)
	}
	if options.Items.Type != "STRING" {
		t.Fatalf("expected STRING for options items, got %s", options.Items.Type)
	}
	if options.MinItems == nil || *options.MinItems != 4 || options.MaxItems == nil || *options.MaxItems != 4 {
		t.Fatalf("expected options to hold exactly 4 items, got %v..%v", options.MinItems, options.MaxItems)
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(schema.Required))
	}
}

func TestBuildGeminiSchema_PropertyOrdering(t *testing.T) {
	schema := buildGeminiSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"quiz":        map[string]any{"type": "array"},
			"language":    map[string]any{"type": "string"},
			"explanation": map[string]any{"type": "string"},
			"extra":       map[string]any{"type": "string"},
			"aside":       map[string]any{"type": "string"},
		},
		"required": []any{"language", "explanation", "quiz", "missing"},
	})

	want := []string{"language", "explanation", "quiz", "aside", "extra"}
	if !reflect.DeepEqual(schema.PropertyOrdering, want) {
		t.Fatalf("PropertyOrdering = %v, want %v", schema.PropertyOrdering, want)
	}
}

func newTestGeminiProvider(t *testing.T, handler http.HandlerFunc) *GeminiProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewGeminiProvider(context.Background(), GeminiConfig{
		APIKey:  "g-test",
		Model:   "gemini-flash",
		BaseURL: server.URL,
	})
	if err != nil {
		t.Fatalf("NewGeminiProvider: %v", err)
	}
	return p
}

func geminiReply(text, finish string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content":      map[string]any{"role": "model", "parts": []map[string]any{{"text": text}}},
				"finishReason": finish,
			}},
			"usageMetadata": map[string]any{
				"promptTokenCount":     12,
				"candidatesTokenCount": 8,
				"totalTokenCount":      20,
			},
			"modelVersion": "gemini-2.5-flash-001",
		})
	}
}

func TestGeminiProvider_HappyPath(t *testing.T) {
	var path string
	p := newTestGeminiProvider(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		geminiReply(`{"isCorrect":true,"feedback":"ok","score":90}`, "STOP")(w, r)
	})

	resp, err := p.Generate(context.Background(), Request{
		System:    "Grade the answer.",
		Messages:  UserMessage("def f(): pass"),
		MaxTokens: 256,
		Schema: &Schema{Name: "gemini-grade", Definition: map[string]any{
			"type":     "object",
			"required": []any{"isCorrect", "score"},
		}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(path, "gemini-2.5-flash") {
		t.Fatalf("expected resolved model in request path, got %q", path)
	}
	if resp.Model != "gemini-2.5-flash-001" {
		t.Fatalf("expected served model version, got %q", resp.Model)
	}
	if resp.Usage.TotalTokens != 20 || resp.Usage.InputTokens != 12 {
		t.Fatalf("unexpected usage: %+v", resp.Usage)
	}
}

func TestGeminiProvider_Truncated(t *testing.T) {
	p := newTestGeminiProvider(t, geminiReply(`{"language":"Ru`, "MAX_TOKENS"))
	_, err := p.Generate(context.Background(), Request{Messages: UserMessage("x"), MaxTokens: 4})

	var trunc *ErrMaxTokensExceeded
	if !errors.As(err, &trunc) {
		t.Fatalf("expected ErrMaxTokensExceeded, got: %T (%v)", err, err)
	}
}

func TestGeminiProvider_ServerError(t *testing.T) {
	p := newTestGeminiProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":{"code":503,"message":"overloaded","status":"UNAVAILABLE"}}`))
	})
	_, err := p.Generate(context.Background(), Request{Messages: UserMessage("x"), MaxTokens: 4})

	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T (%v)", err, err)
	}
}

func TestGeminiProvider_RateLimit(t *testing.T) {
	p := newTestGeminiProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"message":"quota","status":"RESOURCE_EXHAUSTED","details":[` +
			`{"@type":"type.googleapis.com/google.rpc.RetryInfo","retryDelay":"12s"}]}}`))
	})
	_, err := p.Generate(context.Background(), Request{Messages: UserMessage("x"), MaxTokens: 4})

	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T (%v)", err, err)
	}
	if rl.RetryAfter != 12*time.Second {
		t.Fatalf("RetryAfter = %s, want 12s", rl.RetryAfter)
	}
}

func TestGeminiProvider_Temperature(t *testing.T) {
	zero := 0.0
	tests := []struct {
		name        string
		temperature *float64
		wantSent    bool
	}{
		{"explicit zero is sent", &zero, true},
		{"nil leaves the default", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sent map[string]any
			p := newTestGeminiProvider(t, func(w http.ResponseWriter, r *http.Request) {
				json.NewDecoder(r.Body).Decode(&sent)
				geminiReply("ok", "STOP")(w, r)
			})

			_, err := p.Generate(context.Background(), Request{
				Messages:    UserMessage("grade this"),
				MaxTokens:   64,
				Temperature: tt.temperature,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			gen, _ := sent["generationConfig"].(map[string]any)
			temp, ok := gen["temperature"]
			if ok != tt.wantSent {
				t.Fatalf("temperature sent = %v, want %v (config %v)", ok, tt.wantSent, gen)
			}
			if ok && temp != float64(0) {
				t.Fatalf("expected temperature 0, got %v", temp)
			}
		})
	}
}
