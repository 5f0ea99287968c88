// Package screen defines the contract between the router and the
// individual full-screen views.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codemaster/internal/ui/layout"
)

// Screen is one view on the router stack. View receives the area left
// between the header and footer.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string

	// Title is shown in the centre of the header.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider supplies the right-hand side of the header. The nearest
// provider on the stack wins, so a screen pushed on top of one keeps its
// status visible.
type StatusProvider interface {
	HeaderStatus() string
}
