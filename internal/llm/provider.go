package llm

import (
	"context"
	"encoding/json"
)

// Provider sends one request to a model and returns its reply.
//
// When the request carries a Schema the provider asks the model for
// structured output and validates the reply before returning it, so
// Response.Content is always a JSON document that matches the schema.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the configured model, after friendly-name resolution.
	ModelID() string
}

type Request struct {
	System   string
	Messages []Message

	// Schema, when set, selects the provider's native structured output.
	// Without it Content is the model's text as is.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Nil leaves the provider default; an explicit
	// zero is sent as zero.
	Temperature *float64
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserMessage is a single-turn conversation holding content.
func UserMessage(content string) []Message {
	return []Message{{Role: RoleUser, Content: content}}
}

// Schema is a named JSON Schema for structured output.
type Schema struct {
	// Name is sent to providers that require one. Kebab-case, unique per
	// definition: compiled validators are cached per *Schema.
	Name        string
	Description string
	Definition  map[string]any

	// Reply, when set, is what replies are validated against instead of
	// Definition. Strict structured output needs every property required,
	// while a reply may leave out fields that do not apply to it.
	Reply map[string]any
}

// replyDefinition is the definition a reply must satisfy.
func (s *Schema) replyDefinition() map[string]any {
	if s.Reply != nil {
		return s.Reply
	}
	return s.Definition
}

type Response struct {
	Content json.RawMessage
	Usage   Usage

	// Model is the model that actually served the request, which may be a
	// dated snapshot of ModelID.
	Model string

	// StopReason is "end" for every reply returned without error; a
	// truncated reply is reported as *ErrMaxTokensExceeded instead.
	StopReason string
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
