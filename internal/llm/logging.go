package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/abhisek/codemaster/internal/store"
)

// Warnings receives problems that must not fail a request. The TUI points
// it elsewhere while it owns the terminal.
var Warnings io.Writer = os.Stderr

// LoggingProvider appends one store event per Generate call.
type LoggingProvider struct {
	inner Provider
	name  string
	repo  store.EventRepo
}

// WithLogging labels events with the provider name. A nil repo leaves p
// unwrapped.
func WithLogging(p Provider, name string, repo store.EventRepo) Provider {
	if repo == nil {
		return p
	}
	return &LoggingProvider{inner: p, name: name, repo: repo}
}

func (l *LoggingProvider) ModelID() string { return l.inner.ModelID() }

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	ev := store.LLMRequestEventData{
		Provider:    l.name,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		Trace:       TraceFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if resp != nil {
		if resp.Model != "" {
			ev.Model = resp.Model
		}
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
		ev.ResponseBody = string(partialContent(err))
	}

	// The deadline may already have fired; the event is still written.
	if logErr := l.repo.AppendLLMRequest(context.WithoutCancel(ctx), ev); logErr != nil {
		fmt.Fprintf(Warnings, "warning: could not record LLM event: %v\n", logErr)
	}
	return resp, err
}

// partialContent is whatever the model did send before the call failed.
func partialContent(err error) json.RawMessage {
	var invalid *ErrInvalidResponse
	if errors.As(err, &invalid) {
		return invalid.Content
	}
	var cut *ErrMaxTokensExceeded
	if errors.As(err, &cut) {
		return cut.Content
	}
	return nil
}

// transcript renders a request as labelled blocks for `codemaster llm view`.
func transcript(req Request) string {
	var b strings.Builder
	block := func(label, body string) {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", label, body)
	}

	if req.System != "" {
		block("system", req.System)
	}
	for _, m := range req.Messages {
		block(string(m.Role), m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			block("schema: "+req.Schema.Name, string(def))
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}
