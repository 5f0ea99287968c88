package tutor

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/codemaster/internal/llm"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Purpose labels recorded with every LLM event.
const (
	PurposeModule     = "module-gen"
	PurposeEvaluation = "code-eval"
)

// Client builds module generation and code grading requests and parses
// their results. It holds no per-module state.
type Client struct {
	provider llm.Provider
	config   Config
}

// NewClient creates a Client backed by provider.
func NewClient(provider llm.Provider, cfg Config) *Client {
	return &Client{provider: provider, config: cfg}
}

// RequestModule generates a learning module for source. A blank source is
// an *InputError; any upstream or payload failure is a *GenerationError.
// No partial module is ever returned.
func (c *Client) RequestModule(ctx context.Context, source string) (*Module, error) {
	if strings.TrimSpace(source) == "" {
		return nil, &InputError{Message: MsgEmptySource}
	}

	id := uuid.NewString()
	ctx = llm.WithTrace(llm.WithPurpose(ctx, PurposeModule), id)

	req := llm.Request{
		System:      moduleSystemPrompt,
		Messages:    llm.UserMessage(buildModuleMessage(source, c.config)),
		Schema:      ModuleSchema,
		MaxTokens:   c.config.ModuleMaxTokens,
		Temperature: lo.ToPtr(c.config.Temperature),
	}

	resp, err := c.provider.Generate(ctx, req)
	if err != nil {
		return nil, generationFailed(fmt.Errorf("LLM generation failed: %w", err))
	}

	mod, err := parseModule(resp.Content)
	if err != nil {
		return nil, generationFailed(err)
	}
	mod.ID = id
	mod.Source = source
	return mod, nil
}

// RequestEvaluation grades a code answer. It never fails: on any error it
// returns a negative result with a generic message so the quiz can still
// reach feedback. trace groups the call with its module, and may be empty.
func (c *Client) RequestEvaluation(ctx context.Context, trace string, in EvaluationInput) EvaluationResult {
	ctx = llm.WithPurpose(ctx, PurposeEvaluation)
	if trace != "" {
		ctx = llm.WithTrace(ctx, trace)
	}

	req := llm.Request{
		System:      evaluationSystemPrompt,
		Messages:    llm.UserMessage(buildEvaluationMessage(in)),
		Schema:      EvaluationSchema,
		MaxTokens:   c.config.EvalMaxTokens,
		Temperature: lo.ToPtr(0.0),
	}

	resp, err := c.provider.Generate(ctx, req)
	if err != nil {
		fmt.Fprintf(llm.Warnings, "warning: code evaluation failed: %v\n", err)
		return FailedEvaluation()
	}

	res, err := parseEvaluation(resp.Content)
	if err != nil {
		fmt.Fprintf(llm.Warnings, "warning: code evaluation failed: %v\n", err)
		return FailedEvaluation()
	}
	return res
}

// FailedEvaluation is the result used whenever grading cannot complete.
func FailedEvaluation() EvaluationResult {
	return EvaluationResult{IsCorrect: false, Feedback: MsgEvaluationFailed, Score: 0}
}
