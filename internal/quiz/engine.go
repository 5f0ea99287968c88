package quiz

import (
	"context"
	"errors"
	"strings"

	"github.com/abhisek/codemaster/internal/tutor"
)

var (
	ErrNoAnswer         = errors.New("select an option first")
	ErrBlankCode        = errors.New("write some code first")
	ErrAlreadySubmitted = errors.New("answer already submitted")
	ErrEvaluating       = errors.New("evaluation in progress")
	ErrNotSubmitted     = errors.New("submit an answer first")
	ErrFinished         = errors.New("quiz is finished")
	ErrStaleEvaluation  = errors.New("evaluation does not match the pending submission")
)

// Phase is the state of the current question.
type Phase int

const (
	PhaseAnswering  Phase = iota // Collecting an answer
	PhaseEvaluating              // Code answer sent for grading
	PhaseFeedback                // Verdict shown
	PhaseFinished                // Advanced past the last question
)

func (p Phase) String() string {
	switch p {
	case PhaseAnswering:
		return "answering"
	case PhaseEvaluating:
		return "evaluating"
	case PhaseFeedback:
		return "feedback"
	case PhaseFinished:
		return "finished"
	}
	return "unknown"
}

// EvaluationRequest is a code answer awaiting grading. It must be handed
// back to Resolve with the grader's result.
type EvaluationRequest struct {
	Trace string
	Input tutor.EvaluationInput
}

// Grader grades code answers. It must not fail; *tutor.Client satisfies it.
type Grader interface {
	RequestEvaluation(ctx context.Context, trace string, in tutor.EvaluationInput) tutor.EvaluationResult
}

// Engine runs a quiz over a module's questions. It performs no I/O: code
// answers leave through Submit and come back through Resolve.
//
// Not safe for concurrent use.
type Engine struct {
	module *tutor.Module

	index int
	phase Phase
	score int

	// Answer state for the current question. Which one is meaningful
	// depends on the question kind.
	selected int
	code     string

	// Set while PhaseEvaluating.
	pending *EvaluationRequest

	// Set in PhaseFeedback.
	correct      bool
	result       *tutor.EvaluationResult
	showSolution bool
}

// New creates an engine positioned on the first question. The module is
// read, never modified. A module with no questions starts finished.
func New(mod *tutor.Module) *Engine {
	e := &Engine{module: mod}
	e.Reset()
	return e
}

// Reset returns to the first question with all answer state cleared and
// the score zeroed. Valid from any phase; a pending evaluation is dropped.
func (e *Engine) Reset() {
	e.index = 0
	e.score = 0
	e.enterQuestion()
}

// enterQuestion clears per-question state for e.index and seeds code
// questions with their starter code.
func (e *Engine) enterQuestion() {
	e.phase = PhaseAnswering
	e.selected = -1
	e.code = ""
	e.pending = nil
	e.correct = false
	e.result = nil
	e.showSolution = false

	if e.index >= len(e.module.Quiz) {
		e.phase = PhaseFinished
		return
	}
	if q, ok := e.Current().(*tutor.CodeQuestion); ok {
		e.code = q.StarterCode
	}
}

// SelectOption chooses option i on a choice question. It is a no-op
// returning false unless an answer is being collected and i is in range.
func (e *Engine) SelectOption(i int) bool {
	if e.phase != PhaseAnswering {
		return false
	}
	q, ok := e.Current().(*tutor.ChoiceQuestion)
	if !ok || i < 0 || i >= len(q.Options) {
		return false
	}
	e.selected = i
	return true
}

// EditCode replaces the code answer. It is a no-op returning false unless
// an answer to a code question is being collected.
func (e *Engine) EditCode(text string) bool {
	if e.phase != PhaseAnswering {
		return false
	}
	if _, ok := e.Current().(*tutor.CodeQuestion); !ok {
		return false
	}
	e.code = text
	return true
}

// Submit submits the current answer. A choice answer is graded at once
// and nil is returned. A code answer moves the engine to PhaseEvaluating
// and returns the request to grade.
func (e *Engine) Submit() (*EvaluationRequest, error) {
	if err := e.checkAnswering(); err != nil {
		return nil, err
	}

	switch q := e.Current().(type) {
	case *tutor.ChoiceQuestion:
		if e.selected < 0 {
			return nil, ErrNoAnswer
		}
		e.showFeedback(q.IsCorrect(e.selected), nil)
		return nil, nil

	case *tutor.CodeQuestion:
		if strings.TrimSpace(e.code) == "" {
			return nil, ErrBlankCode
		}
		e.pending = &EvaluationRequest{
			Trace: e.module.ID,
			Input: tutor.EvaluationInput{
				Task:        q.Instructions(),
				UserCode:    e.code,
				Language:    e.module.Language,
				ContextCode: e.module.Source,
			},
		}
		e.phase = PhaseEvaluating
		return e.pending, nil
	}
	return nil, ErrFinished
}

func (e *Engine) checkAnswering() error {
	switch e.phase {
	case PhaseEvaluating:
		return ErrEvaluating
	case PhaseFeedback:
		return ErrAlreadySubmitted
	case PhaseFinished:
		return ErrFinished
	}
	return nil
}

// Resolve completes a code submission with the grader's result. req must
// be the request returned by the latest Submit.
func (e *Engine) Resolve(req *EvaluationRequest, res tutor.EvaluationResult) error {
	if e.phase != PhaseEvaluating || req == nil || req != e.pending {
		return ErrStaleEvaluation
	}
	e.pending = nil
	e.showFeedback(res.IsCorrect, &res)
	return nil
}

func (e *Engine) showFeedback(correct bool, res *tutor.EvaluationResult) {
	e.phase = PhaseFeedback
	e.correct = correct
	e.result = res
	if correct {
		e.score++
	}
}

// SubmitAndWait submits the current answer and, for code questions,
// grades it synchronously with g.
func (e *Engine) SubmitAndWait(ctx context.Context, g Grader) error {
	req, err := e.Submit()
	if err != nil || req == nil {
		return err
	}
	return e.Resolve(req, g.RequestEvaluation(ctx, req.Trace, req.Input))
}

// Advance moves past the current question once its feedback is shown.
// Advancing past the last question finishes the quiz.
func (e *Engine) Advance() error {
	switch e.phase {
	case PhaseFinished:
		return ErrFinished
	case PhaseEvaluating:
		return ErrEvaluating
	case PhaseAnswering:
		return ErrNotSubmitted
	}
	e.index++
	e.enterQuestion()
	if e.phase == PhaseFinished {
		e.index = len(e.module.Quiz) - 1
	}
	return nil
}

// RevealSolution shows the reference solution of an incorrectly answered
// code question. It returns false when there is nothing to reveal. Once
// shown, the solution stays visible until the question changes.
func (e *Engine) RevealSolution() bool {
	if !e.CanRevealSolution() {
		return false
	}
	e.showSolution = true
	return true
}

// CanRevealSolution reports whether RevealSolution would succeed.
func (e *Engine) CanRevealSolution() bool {
	if e.phase != PhaseFeedback || e.correct {
		return false
	}
	q, ok := e.Current().(*tutor.CodeQuestion)
	return ok && q.HasSolution()
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase { return e.phase }

// Index returns the 0-based index of the current question. It stays on
// the last question once finished.
func (e *Engine) Index() int { return e.index }

// Total returns the number of questions.
func (e *Engine) Total() int { return len(e.module.Quiz) }

// Score returns the number of correct answers so far.
func (e *Engine) Score() int { return e.score }

// Finished reports whether the quiz is complete.
func (e *Engine) Finished() bool { return e.phase == PhaseFinished }

// Perfect reports whether a finished quiz was answered entirely correctly.
func (e *Engine) Perfect() bool { return e.Finished() && e.score == e.Total() }

// Current returns the current question, or nil once finished.
func (e *Engine) Current() tutor.Question {
	if e.phase == PhaseFinished || e.index >= len(e.module.Quiz) {
		return nil
	}
	return e.module.Quiz[e.index]
}

// Module returns the module being quizzed.
func (e *Engine) Module() *tutor.Module { return e.module }

// Selected returns the selected option of a choice question.
func (e *Engine) Selected() (int, bool) { return e.selected, e.selected >= 0 }

// Code returns the current code answer.
func (e *Engine) Code() string { return e.code }

// FeedbackVisible reports whether the current answer's verdict is shown.
func (e *Engine) FeedbackVisible() bool { return e.phase == PhaseFeedback }

// LastCorrect reports the verdict of the current question. Only
// meaningful while feedback is visible.
func (e *Engine) LastCorrect() bool { return e.correct }

// Result returns the grader's result for a code question, or nil.
func (e *Engine) Result() *tutor.EvaluationResult { return e.result }

// SolutionVisible reports whether the reference solution is shown.
func (e *Engine) SolutionVisible() bool { return e.showSolution }
