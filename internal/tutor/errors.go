package tutor

import "fmt"

const (
	// MsgEmptySource is shown when generation is requested with no code.
	MsgEmptySource = "Please paste some code first!"

	// MsgGenerationFailed is the single message surfaced for any
	// generation failure.
	MsgGenerationFailed = "Failed to generate learning module. Please try again."

	// MsgEvaluationFailed is the feedback of the default result returned
	// when grading fails.
	MsgEvaluationFailed = "Evaluation failed. Please try again."
)

// InputError reports unusable user input. It never reaches the network.
type InputError struct {
	Message string
}

func (e *InputError) Error() string { return e.Message }

// GenerationError reports that no module could be produced, either
// because the upstream call failed or because its payload did not match
// the expected shape.
type GenerationError struct {
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *GenerationError) Unwrap() error { return e.Err }

func generationFailed(err error) *GenerationError {
	return &GenerationError{Message: MsgGenerationFailed, Err: err}
}
