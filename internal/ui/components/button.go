package components

import (
	"github.com/abhisek/codemaster/internal/ui/theme"
)

// Button is a styled button label with a key hint.
type Button struct {
	Label    string
	Key      string
	Active   bool
	Disabled bool
}

// NewButton creates a new button.
func NewButton(label, key string, active bool) Button {
	return Button{
		Label:  label,
		Key:    key,
		Active: active,
	}
}

// View renders the button.
func (b Button) View() string {
	label := b.Label
	if b.Key != "" {
		label += " (" + b.Key + ")"
	}
	switch {
	case b.Disabled:
		return theme.ButtonDisabled.Render(label)
	case b.Active:
		return theme.ButtonActive.Render("▸ " + label)
	}
	return theme.ButtonInactive.Render(label)
}
