package components

import "github.com/abhisek/codemaster/internal/ui/theme"

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner renders frame n of a braille spinner followed by label.
func Spinner(n int, label string) string {
	if n < 0 {
		n = -n
	}
	return theme.Selected.Render(spinnerFrames[n%len(spinnerFrames)]) + " " + theme.Hint.Render(label)
}
