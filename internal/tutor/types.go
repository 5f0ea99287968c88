package tutor

// Kind discriminates the two question variants.
type Kind string

const (
	KindChoice Kind = "choice"
	KindCode   Kind = "code"
)

// Module is the generated bundle of explanation, tutorial, example, and
// quiz for one source snippet. It is immutable once returned.
type Module struct {
	// ID correlates every LLM call made for this module.
	ID string

	// Language is the detected source language label, e.g. "Python".
	Language string

	Explanation string
	Tutorial    string
	Example     string

	// Quiz is in presentation order.
	Quiz []Question

	// Source is the snippet the module was generated from. It is passed
	// back to the grader as context for code questions.
	Source string
}

// Question is one quiz entry. It is implemented only by *ChoiceQuestion
// and *CodeQuestion.
type Question interface {
	Kind() Kind
	// Prompt is the question text.
	Prompt() string
	// Explanation is shown once the question has been answered.
	Explanation() string

	isQuestion()
}

// ChoiceQuestion asks the learner to pick one of several options.
type ChoiceQuestion struct {
	Text         string
	Options      []string
	CorrectIndex int
	Why          string
}

func (q *ChoiceQuestion) Kind() Kind          { return KindChoice }
func (q *ChoiceQuestion) Prompt() string      { return q.Text }
func (q *ChoiceQuestion) Explanation() string { return q.Why }
func (q *ChoiceQuestion) isQuestion()         {}

// IsCorrect reports whether option i is the correct answer.
func (q *ChoiceQuestion) IsCorrect(i int) bool { return i == q.CorrectIndex }

// CodeQuestion asks the learner to write code, graded by the model.
type CodeQuestion struct {
	Text        string
	Task        string
	StarterCode string
	// Solution is the optional reference solution. Empty means none.
	Solution string
	Why      string
}

func (q *CodeQuestion) Kind() Kind          { return KindCode }
func (q *CodeQuestion) Prompt() string      { return q.Text }
func (q *CodeQuestion) Explanation() string { return q.Why }
func (q *CodeQuestion) isQuestion()         {}

// HasSolution reports whether a reference solution is available.
func (q *CodeQuestion) HasSolution() bool { return q.Solution != "" }

// Instructions returns the task text, falling back to the prompt.
func (q *CodeQuestion) Instructions() string {
	if q.Task != "" {
		return q.Task
	}
	return q.Text
}

// EvaluationInput is what the grader needs to judge a code answer.
type EvaluationInput struct {
	Task        string
	UserCode    string
	Language    string
	ContextCode string
}

// EvaluationResult is the grader's verdict on a code answer.
type EvaluationResult struct {
	IsCorrect bool
	Feedback  string
	// Score is in [0, 100].
	Score int
}
