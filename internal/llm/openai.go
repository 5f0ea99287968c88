package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

var openaiModels = map[string]string{
	"gpt":      "gpt-4o",
	"gpt-mini": "gpt-4o-mini",
}

// OpenAIProvider talks to the Chat Completions API. OpenRouter reuses it
// with a different base URL.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	cfg.Model = resolveModel(cfg.Model, openaiModels)
	return newOpenAIProviderRaw(cfg, nil)
}

// newOpenAIProviderRaw passes cfg.Model through untouched. A nil
// httpClient keeps the SDK default.
func newOpenAIProviderRaw(cfg OpenAIConfig, httpClient *http.Client) (*OpenAIProvider, error) {
	switch {
	case cfg.APIKey == "":
		return nil, errors.New("openai API key is required")
	case cfg.Model == "":
		return nil, errors.New("openai model is required")
	}

	cc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		cc.BaseURL = cfg.BaseURL
	}
	if httpClient != nil {
		cc.HTTPClient = httpClient
	}
	return &OpenAIProvider{client: openai.NewClientWithConfig(cc), model: cfg.Model}, nil
}

func (p *OpenAIProvider) ModelID() string { return p.model }

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	chat, err := p.chatRequest(req)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.CreateChatCompletion(ctx, chat)
	if err != nil {
		return nil, mapOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, &ErrInvalidResponse{Err: errors.New("response has no choices")}
	}

	choice := resp.Choices[0]
	content := json.RawMessage(stripJSONFence(choice.Message.Content))
	if choice.FinishReason == openai.FinishReasonLength {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}
	if err := req.Schema.Validate(content); err != nil {
		return nil, err
	}

	return &Response{
		Content:    content,
		Model:      resp.Model,
		StopReason: "end",
		Usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

func (p *OpenAIProvider) chatRequest(req Request) (openai.ChatCompletionRequest, error) {
	chat := openai.ChatCompletionRequest{
		Model:               p.model,
		MaxCompletionTokens: req.MaxTokens,
	}
	if req.Temperature != nil {
		chat.Temperature = openAITemperature(*req.Temperature)
	}

	if req.System != "" {
		chat.Messages = append(chat.Messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		chat.Messages = append(chat.Messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	if req.Schema == nil {
		return chat, nil
	}
	def, err := json.Marshal(req.Schema.Definition)
	if err != nil {
		return chat, fmt.Errorf("marshal schema %s: %w", req.Schema.Name, err)
	}
	chat.ResponseFormat = &openai.ChatCompletionResponseFormat{
		Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
		JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
			Name:   req.Schema.Name,
			Schema: json.RawMessage(def),
			Strict: true,
		},
	}
	return chat, nil
}

// mapOpenAIError classifies both structured API errors and bare HTTP
// failures by status code.
func mapOpenAIError(err error) error {
	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	if status == http.StatusTooManyRequests {
		return &ErrRateLimit{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}

// openAITemperature converts t for the wire. The request field is dropped
// when zero, so zero goes out as the smallest positive float32.
func openAITemperature(t float64) float32 {
	if t <= 0 {
		return math.SmallestNonzeroFloat32
	}
	return float32(t)
}
