package tutor

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

// moduleOutput is the raw LLM module payload before validation.
type moduleOutput struct {
	Language    string           `json:"language" validate:"notblank"`
	Explanation string           `json:"explanation" validate:"notblank"`
	Tutorial    string           `json:"tutorial" validate:"notblank"`
	Example     string           `json:"example" validate:"notblank"`
	Quiz        []questionOutput `json:"quiz" validate:"required,min=1,dive"`
}

// questionOutput is one raw quiz entry. Pointers distinguish a missing
// field from its zero value.
type questionOutput struct {
	Type               string   `json:"type" validate:"oneof=choice code"`
	Question           string   `json:"question" validate:"notblank"`
	Explanation        string   `json:"explanation" validate:"notblank"`
	Options            []string `json:"options"`
	CorrectAnswerIndex *int     `json:"correctAnswerIndex"`
	Task               string   `json:"task"`
	StarterCode        *string  `json:"starterCode"`
	Solution           string   `json:"solution"`
}

// evaluationOutput is the raw LLM grading payload.
type evaluationOutput struct {
	IsCorrect *bool  `json:"isCorrect" validate:"required"`
	Feedback  string `json:"feedback"`
	Score     *int   `json:"score" validate:"required"`
}

// choiceOptionCount is the number of options every choice question carries.
const choiceOptionCount = 4

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	err := v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	if err != nil {
		panic(fmt.Sprintf("register notblank validation: %v", err))
	}
	v.RegisterStructValidation(validateQuestionVariant, questionOutput{})
	return v
}

// validateQuestionVariant enforces the fields each question type requires.
func validateQuestionVariant(sl validator.StructLevel) {
	q := sl.Current().Interface().(questionOutput)

	switch Kind(q.Type) {
	case KindChoice:
		if len(q.Options) != choiceOptionCount {
			sl.ReportError(q.Options, "options", "Options", "len", fmt.Sprint(choiceOptionCount))
		} else if lo.SomeBy(q.Options, isBlank) {
			sl.ReportError(q.Options, "options", "Options", "notblank", "")
		}
		if q.CorrectAnswerIndex == nil {
			sl.ReportError(q.CorrectAnswerIndex, "correctAnswerIndex", "CorrectAnswerIndex", "required", "")
		} else if *q.CorrectAnswerIndex < 0 || *q.CorrectAnswerIndex >= len(q.Options) {
			sl.ReportError(*q.CorrectAnswerIndex, "correctAnswerIndex", "CorrectAnswerIndex", "range", "")
		}
	case KindCode:
		if q.StarterCode == nil {
			sl.ReportError(q.StarterCode, "starterCode", "StarterCode", "required", "")
		}
		if isBlank(q.Task) {
			sl.ReportError(q.Task, "task", "Task", "notblank", "")
		}
	}
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }

// parseModule decodes and validates a module payload. Downstream code only
// ever sees the typed result.
func parseModule(raw json.RawMessage) (*Module, error) {
	var out moduleOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("parse module: %w", err)
	}
	if err := validate.Struct(out); err != nil {
		return nil, fmt.Errorf("invalid module: %w", err)
	}

	return &Module{
		Language:    strings.TrimSpace(out.Language),
		Explanation: out.Explanation,
		Tutorial:    out.Tutorial,
		Example:     out.Example,
		Quiz:        lo.Map(out.Quiz, func(q questionOutput, _ int) Question { return q.toQuestion() }),
	}, nil
}

func (q questionOutput) toQuestion() Question {
	if Kind(q.Type) == KindChoice {
		return &ChoiceQuestion{
			Text:         q.Question,
			Options:      q.Options,
			CorrectIndex: *q.CorrectAnswerIndex,
			Why:          q.Explanation,
		}
	}
	return &CodeQuestion{
		Text:        q.Question,
		Task:        q.Task,
		StarterCode: *q.StarterCode,
		Solution:    strings.TrimSpace(q.Solution),
		Why:         q.Explanation,
	}
}

// parseEvaluation decodes a grading payload, clamping the score to 0..100.
func parseEvaluation(raw json.RawMessage) (EvaluationResult, error) {
	var out evaluationOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return EvaluationResult{}, fmt.Errorf("parse evaluation: %w", err)
	}
	if err := validate.Struct(out); err != nil {
		return EvaluationResult{}, fmt.Errorf("invalid evaluation: %w", err)
	}
	return EvaluationResult{
		IsCorrect: *out.IsCorrect,
		Feedback:  out.Feedback,
		Score:     min(max(*out.Score, 0), 100),
	}, nil
}
