package workspace

import (
	"time"

	"github.com/abhisek/codemaster/internal/quiz"
	"github.com/abhisek/codemaster/internal/tutor"
)

// moduleReadyMsg carries the result of a generation request. seq ties it
// to the request that produced it so results outliving a Clear All are
// dropped.
type moduleReadyMsg struct {
	seq    int
	module *tutor.Module
	err    error
}

// evaluationDoneMsg carries the grade for a submitted code answer.
type evaluationDoneMsg struct {
	req    *quiz.EvaluationRequest
	result tutor.EvaluationResult
}

// spinnerTickMsg animates the loading spinner.
type spinnerTickMsg time.Time
