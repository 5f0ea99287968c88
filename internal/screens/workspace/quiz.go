package workspace

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codemaster/internal/quiz"
	"github.com/abhisek/codemaster/internal/screen"
	"github.com/abhisek/codemaster/internal/tutor"
)

// handleQuizKey drives the quiz engine from the quiz tab.
func (s *Screen) handleQuizKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.engine == nil {
		return s, nil
	}
	key := msg.String()

	switch key {
	case "pgup", "pgdown":
		s.scroll(key)
		return s, nil
	}

	switch s.engine.Phase() {
	case quiz.PhaseAnswering:
		if _, ok := s.engine.Current().(*tutor.ChoiceQuestion); ok {
			return s.handleChoiceKey(key)
		}
		return s.handleCodeKey(msg)

	case quiz.PhaseFeedback:
		switch key {
		case "enter":
			if s.engine.Advance() == nil {
				s.offset[TabQuiz] = 0
				s.syncAnswer()
			}
		case "ctrl+o":
			s.engine.RevealSolution()
		}

	case quiz.PhaseFinished:
		if key == "r" || key == "R" {
			s.engine.Reset()
			s.offset[TabQuiz] = 0
			s.syncAnswer()
		}
	}

	// PhaseEvaluating ignores input until the grade arrives.
	return s, nil
}

func (s *Screen) handleChoiceKey(key string) (screen.Screen, tea.Cmd) {
	sel, ok := s.engine.Selected()
	switch key {
	case "a", "b", "c", "d":
		s.engine.SelectOption(int(key[0] - 'a'))
	case "1", "2", "3", "4":
		s.engine.SelectOption(int(key[0] - '1'))
	case "up", "k":
		if !ok {
			sel = 1
		}
		s.engine.SelectOption(sel - 1)
	case "down", "j":
		if !ok {
			sel = -1
		}
		s.engine.SelectOption(sel + 1)
	case "enter":
		// ErrNoAnswer leaves the question open.
		_, _ = s.engine.Submit()
	}
	return s, nil
}

func (s *Screen) handleCodeKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if msg.String() != "ctrl+s" {
		var cmd tea.Cmd
		s.answer, cmd = s.answer.Update(msg)
		s.engine.EditCode(s.answer.Value())
		return s, cmd
	}

	s.engine.EditCode(s.answer.Value())
	req, err := s.engine.Submit()
	if err != nil || req == nil {
		return s, nil
	}
	s.answer.SetReadOnly(true)

	t := s.opts.Tutor
	if t == nil {
		_ = s.engine.Resolve(req, tutor.FailedEvaluation())
		return s, nil
	}
	grade := func() tea.Msg {
		return evaluationDoneMsg{req: req, result: t.RequestEvaluation(context.Background(), req.Trace, req.Input)}
	}
	return s, tea.Batch(grade, s.startSpinner())
}

// handleEvaluation applies a grade. Grades for a submission that was
// reset or cleared meanwhile are stale and dropped.
func (s *Screen) handleEvaluation(msg evaluationDoneMsg) (screen.Screen, tea.Cmd) {
	if s.engine == nil {
		return s, nil
	}
	if err := s.engine.Resolve(msg.req, msg.result); err != nil {
		return s, nil
	}
	s.answer.SetReadOnly(true)
	return s, nil
}
