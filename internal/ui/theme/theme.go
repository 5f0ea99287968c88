// Package theme holds the shared palette and styles. Colors assume a dark
// terminal background.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

var (
	Primary   = lipgloss.Color("#818CF8") // indigo, focus and headings
	Secondary = lipgloss.Color("#2DD4BF") // teal, progress and subheadings
	Accent    = lipgloss.Color("#FBBF24") // amber, badges and status
	Success   = lipgloss.Color("#4ADE80")
	Error     = lipgloss.Color("#FB7185")
	Text      = lipgloss.Color("#F1F5F9")
	TextDim   = lipgloss.Color("#94A3B8")
	BgDark    = lipgloss.Color("#0B1120")
	BgCard    = lipgloss.Color("#1E293B")
	BgCode    = lipgloss.Color("#0F172A")
	CodeText  = lipgloss.Color("#E2E8F0")
	Border    = lipgloss.Color("#475569")
)

func fg(c color.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

// Text styles used by the Markdown renderer and screens.
var (
	Title    = fg(Primary).Bold(true).Align(lipgloss.Center)
	Subtitle = fg(TextDim).Align(lipgloss.Center)
	Body     = fg(Text)
	Hint     = fg(TextDim).Italic(true)
	Heading2 = fg(Primary).Bold(true)
	Heading3 = fg(Secondary).Bold(true)
	Strong   = fg(Text).Bold(true)
	Bullet   = fg(Accent)

	CodeLabel = lipgloss.NewStyle().Foreground(BgDark).Background(Secondary).Bold(true).Padding(0, 1)
	CodeBlock = lipgloss.NewStyle().Foreground(CodeText).Background(BgCode).Padding(0, 1)
	Badge     = lipgloss.NewStyle().Foreground(BgDark).Background(Accent).Bold(true).Padding(0, 1)

	Panel = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Border).Padding(0, 1)
)

// Answer and selection states.
var (
	Selected   = fg(Primary).Bold(true)
	Unselected = fg(Text)
	Correct    = fg(Success).Bold(true)
	Incorrect  = fg(Error).Bold(true)
	ErrorText  = fg(Error)
)

// Widgets.
var (
	ProgressFilled = lipgloss.NewStyle().Background(Secondary)
	ProgressEmpty  = lipgloss.NewStyle().Background(Border)

	ButtonActive   = lipgloss.NewStyle().Foreground(Text).Background(Primary).Bold(true).Padding(0, 2)
	ButtonInactive = lipgloss.NewStyle().Background(BgCard).Border(lipgloss.RoundedBorder()).BorderForeground(Border).Padding(0, 2)
	ButtonDisabled = lipgloss.NewStyle().Foreground(TextDim).Background(BgCard).Padding(0, 2)

	TabActive   = lipgloss.NewStyle().Foreground(Text).Background(Primary).Bold(true).Padding(0, 2)
	TabInactive = fg(TextDim).Padding(0, 2)
	TabDisabled = fg(Border).Padding(0, 2)
)
