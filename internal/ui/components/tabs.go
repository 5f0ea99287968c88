package components

import (
	"fmt"
	"strings"

	"github.com/abhisek/codemaster/internal/ui/theme"
)

// Tabs is a horizontal tab strip. Disabled tabs are drawn dimmed and
// cannot be activated.
type Tabs struct {
	Labels   []string
	Active   int
	Disabled bool
}

// NewTabs creates a tab strip with the first tab active.
func NewTabs(labels ...string) Tabs {
	return Tabs{Labels: labels}
}

// Next activates the following tab, wrapping around.
func (t *Tabs) Next() {
	if t.Disabled || len(t.Labels) == 0 {
		return
	}
	t.Active = (t.Active + 1) % len(t.Labels)
}

// Prev activates the preceding tab, wrapping around.
func (t *Tabs) Prev() {
	if t.Disabled || len(t.Labels) == 0 {
		return
	}
	t.Active = (t.Active - 1 + len(t.Labels)) % len(t.Labels)
}

// Select activates tab i. Out of range indexes are ignored.
func (t *Tabs) Select(i int) {
	if t.Disabled || i < 0 || i >= len(t.Labels) {
		return
	}
	t.Active = i
}

// View renders the tab strip.
func (t Tabs) View() string {
	parts := make([]string, 0, len(t.Labels))
	for i, label := range t.Labels {
		text := fmt.Sprintf("%d %s", i+1, label)
		switch {
		case t.Disabled:
			parts = append(parts, theme.TabDisabled.Render(text))
		case i == t.Active:
			parts = append(parts, theme.TabActive.Render(text))
		default:
			parts = append(parts, theme.TabInactive.Render(text))
		}
	}
	return strings.Join(parts, " ")
}
