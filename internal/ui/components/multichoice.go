package components

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/codemaster/internal/ui/theme"
)

// OptionLabels are the letters shown beside the four answer options.
var OptionLabels = []string{"A", "B", "C", "D"}

// OptionList renders the options of a multiple-choice question. It holds no
// selection state of its own; the caller passes what the quiz engine reports.
type OptionList struct {
	Options []string

	// Selected is the chosen option, or -1.
	Selected int

	// Revealed switches to feedback colouring: the correct option green and
	// a wrong pick red.
	Revealed bool
	Correct  int
}

// View renders the option list at the given width.
func (o OptionList) View(width int) string {
	s := ""
	for i, opt := range o.Options {
		label := "?"
		if i < len(OptionLabels) {
			label = OptionLabels[i]
		}
		prefix := "  "
		if i == o.Selected {
			prefix = "▸ "
		}

		line := lipgloss.NewStyle().Width(width).Render(fmt.Sprintf("%s%s)  %s", prefix, label, opt))

		switch {
		case o.Revealed && i == o.Correct:
			s += theme.Correct.Render(line) + "\n"
		case o.Revealed && i == o.Selected:
			s += theme.Incorrect.Render(line) + "\n"
		case o.Revealed:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		case i == o.Selected:
			s += theme.Selected.Render(line) + "\n"
		default:
			s += theme.Unselected.Render(line) + "\n"
		}
	}
	return s
}
