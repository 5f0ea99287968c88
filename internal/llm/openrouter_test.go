package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewOpenRouterProvider(t *testing.T) {
	tests := []struct {
		name      string
		cfg       OpenRouterConfig
		wantModel string
		wantErr   bool
	}{
		{
			name:      "vendor model ID kept verbatim",
			cfg:       OpenRouterConfig{APIKey: "sk-or-test", Model: "anthropic/claude-3-haiku"},
			wantModel: "anthropic/claude-3-haiku",
		},
		{
			name:      "friendly names are not mapped",
			cfg:       OpenRouterConfig{APIKey: "sk-or-test", Model: "gpt-mini"},
			wantModel: "gpt-mini",
		},
		{
			name:    "missing key",
			cfg:     OpenRouterConfig{Model: "openai/gpt-4o"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewOpenRouterProvider(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.ModelID() != tt.wantModel {
				t.Errorf("ModelID() = %q, want %q", p.ModelID(), tt.wantModel)
			}
		})
	}
}

func TestOpenRouterProvider_SendsAttribution(t *testing.T) {
	var headers http.Header
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers = r.Header.Clone()
		json.NewDecoder(r.Body).Decode(&body)
		openAIReply(`{"ok":true}`, "stop")(w, r)
	}))
	t.Cleanup(server.Close)

	p, err := NewOpenRouterProvider(OpenRouterConfig{
		APIKey:  "sk-or-test",
		Model:   "openai/gpt-4o-mini",
		BaseURL: server.URL + "/v1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := p.Generate(context.Background(), Request{Messages: UserMessage("hi"), MaxTokens: 16})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"ok":true}` {
		t.Errorf("content = %s", resp.Content)
	}
	if body["model"] != "openai/gpt-4o-mini" {
		t.Errorf("model sent = %v", body["model"])
	}

	want := map[string]string{
		"X-Title":       openRouterTitle,
		"HTTP-Referer":  openRouterReferer,
		"Authorization": "Bearer sk-or-test",
	}
	for k, v := range want {
		if got := headers.Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
}
