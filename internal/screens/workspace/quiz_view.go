package workspace

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/codemaster/internal/content"
	"github.com/abhisek/codemaster/internal/quiz"
	"github.com/abhisek/codemaster/internal/tutor"
	"github.com/abhisek/codemaster/internal/ui/components"
	"github.com/abhisek/codemaster/internal/ui/theme"
)

func (s *Screen) renderQuiz(width int) string {
	e := s.engine
	if e == nil || e.Total() == 0 {
		return theme.Hint.Render("This module has no quiz.")
	}
	if e.Finished() {
		return renderFinished(e, width)
	}

	var b strings.Builder
	b.WriteString(components.QuizProgress(e.Index(), e.Total(), width).View())
	b.WriteString("\n\n")
	b.WriteString(components.RenderMarkdown(e.Current().Prompt(), width))
	b.WriteString("\n\n")

	switch q := e.Current().(type) {
	case *tutor.ChoiceQuestion:
		sel, _ := e.Selected()
		b.WriteString(components.OptionList{
			Options:  q.Options,
			Selected: sel,
			Revealed: e.FeedbackVisible(),
			Correct:  q.CorrectIndex,
		}.View(width))
	case *tutor.CodeQuestion:
		b.WriteString(s.renderCodeQuestion(q, width))
	}

	switch e.Phase() {
	case quiz.PhaseEvaluating:
		b.WriteString("\n")
		b.WriteString(components.Spinner(s.frame, "Evaluating your code..."))
	case quiz.PhaseFeedback:
		b.WriteString("\n")
		b.WriteString(s.renderFeedback(width))
	}

	return b.String()
}

func (s *Screen) renderCodeQuestion(q *tutor.CodeQuestion, width int) string {
	var b strings.Builder
	if q.Task != "" && q.Task != q.Text {
		b.WriteString(theme.Heading3.Render("Task"))
		b.WriteString("\n")
		b.WriteString(components.RenderMarkdown(q.Task, width))
		b.WriteString("\n\n")
	}
	b.WriteString(s.answer.View())
	b.WriteString("\n")
	return b.String()
}

func (s *Screen) renderFeedback(width int) string {
	e := s.engine
	var b strings.Builder

	if e.LastCorrect() {
		b.WriteString(theme.Correct.Render("✓ Correct!"))
	} else {
		b.WriteString(theme.Incorrect.Render("✗ Incorrect"))
	}

	if res := e.Result(); res != nil {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("   Score: %d/100", res.Score)))
		if res.Feedback != "" {
			b.WriteString("\n\n")
			b.WriteString(components.RenderMarkdown(res.Feedback, width))
		}
	}

	if why := e.Current().Explanation(); why != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Heading3.Render("Explanation"))
		b.WriteString("\n")
		b.WriteString(components.RenderMarkdown(why, width))
	}

	if q, ok := e.Current().(*tutor.CodeQuestion); ok && e.SolutionVisible() {
		b.WriteString("\n\n")
		b.WriteString(theme.Heading3.Render("Reference Solution"))
		b.WriteString("\n")
		b.WriteString(components.RenderBlocks(solutionBlocks(q.Solution, e.Module().Language), width))
	} else if e.CanRevealSolution() {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("Press Ctrl+O to see the reference solution."))
	}

	label := "Next Question"
	if e.Index() == e.Total()-1 {
		label = "Finish Quiz"
	}
	b.WriteString("\n\n")
	b.WriteString(components.NewButton(label, "Enter", true).View())
	return b.String()
}

func renderFinished(e *quiz.Engine, width int) string {
	msg := "Good effort! Keep practicing."
	if e.Perfect() {
		msg = "Perfect! You've mastered this concept."
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("Quiz Completed!"))
	b.WriteString("\n\n")
	b.WriteString(theme.Strong.Width(width).Align(lipgloss.Center).Render(fmt.Sprintf("%d / %d", e.Score(), e.Total())))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Width(width).Render(msg))
	b.WriteString("\n\n")
	b.WriteString(components.NewButton("Try Again", "R", true).View())
	return b.String()
}

// solutionBlocks shows a reference solution as one code block labeled with
// the module language. A solution the model already fenced is parsed as
// Markdown instead. Backticks in the code and spaces in the label are kept
// as is.
func solutionBlocks(code, lang string) []content.Block {
	if strings.HasPrefix(strings.TrimSpace(code), "```") {
		return content.Parse(code)
	}
	label := strings.TrimSpace(lang)
	if label == "" {
		label = content.DefaultCodeLabel
	}
	return []content.Block{{Kind: content.BlockCode, Label: label, Code: strings.Trim(code, "\n")}}
}
