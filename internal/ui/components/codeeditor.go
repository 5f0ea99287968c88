package components

import (
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codemaster/internal/ui/theme"
)

// CodeEditor wraps bubbles/textarea for multi-line code entry.
type CodeEditor struct {
	Model    textarea.Model
	readOnly bool
}

// NewCodeEditor creates an unbounded, focused editor.
func NewCodeEditor(placeholder string, width, height int) CodeEditor {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetWidth(width)
	ta.SetHeight(height)
	ta.Focus()

	return CodeEditor{Model: ta}
}

// Update forwards input to the textarea unless the editor is read-only.
func (e CodeEditor) Update(msg tea.Msg) (CodeEditor, tea.Cmd) {
	if e.readOnly {
		return e, nil
	}
	var cmd tea.Cmd
	e.Model, cmd = e.Model.Update(msg)
	return e, cmd
}

// View renders the editor inside a panel.
func (e CodeEditor) View() string {
	border := theme.Primary
	if e.readOnly {
		border = theme.Border
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Render(e.Model.View())
}

// Value returns the editor text.
func (e CodeEditor) Value() string {
	return e.Model.Value()
}

// SetValue replaces the editor text.
func (e *CodeEditor) SetValue(s string) {
	e.Model.SetValue(s)
}

// SetSize resizes the text area.
func (e *CodeEditor) SetSize(width, height int) {
	e.Model.SetWidth(width)
	e.Model.SetHeight(height)
}

// SetReadOnly blocks or allows edits.
func (e *CodeEditor) SetReadOnly(ro bool) {
	e.readOnly = ro
	if ro {
		e.Model.Blur()
	} else {
		e.Model.Focus()
	}
}

// ReadOnly reports whether edits are blocked.
func (e CodeEditor) ReadOnly() bool {
	return e.readOnly
}
