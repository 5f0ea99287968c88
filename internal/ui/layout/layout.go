// Package layout draws the chrome around the active screen.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/codemaster/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	// Rows taken by the bordered header and footer bars.
	HeaderHeight = 3
	FooterHeight = 3
)

const appName = "CodeMaster AI"

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// ContentHeight is what remains for the screen between header and footer.
func ContentHeight(totalHeight int) int {
	return max(totalHeight-HeaderHeight-FooterHeight, 0)
}

func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("Terminal too small!\n\nResize to at least %d x %d\n(currently %d x %d)",
			MinWidth, MinHeight, width, height))
}

var bar = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border)

// RenderHeader draws the app name on the left, the screen title centred
// and status on the right. An empty status is omitted.
func RenderHeader(title, status string, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  " + appName)
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)

	inner := max(width-4, 0)
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)

	leftGap := max((inner-cw)/2-lw, 1)
	rightGap := max(inner-lw-leftGap-cw-rw, 1)

	line := left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right
	return bar.Width(width).Render(line)
}

// RenderFooter draws as many hints as fit on one line, dropping from the
// end.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	avail := width - 6
	line := " "
	for i, h := range hints {
		part := keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
		sep := " "
		if i > 0 {
			sep = "   "
		}
		if lipgloss.Width(line+sep+part) > avail {
			break
		}
		line += sep + part
	}
	return bar.Width(width).Render(line)
}

// RenderFrame stacks header, content and footer, padding content so the
// footer sits on the last rows.
func RenderFrame(header, content, footer string, width, height int) string {
	rest := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(rest).MaxHeight(rest).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
