package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/codemaster/internal/ui/theme"
)

// ProgressBar shows how far through a fixed number of steps the user is.
type ProgressBar struct {
	Label   string
	Current int
	Total   int
	Width   int
}

// QuizProgress builds the "Question n of m" bar for a zero-based index.
func QuizProgress(index, total, width int) ProgressBar {
	return ProgressBar{
		Label:   fmt.Sprintf("Question %d of %d", index+1, total),
		Current: index + 1,
		Total:   total,
		Width:   width,
	}
}

func (p ProgressBar) View() string {
	label := ""
	if p.Label != "" {
		label = theme.Hint.Render(p.Label) + "  "
	}

	bar := max(p.Width-lipgloss.Width(label), 4)
	filled := 0
	if p.Total > 0 {
		filled = bar * min(max(p.Current, 0), p.Total) / p.Total
	}

	return label +
		theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", bar-filled))
}
