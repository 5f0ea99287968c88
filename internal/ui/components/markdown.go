package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/codemaster/internal/content"
	"github.com/abhisek/codemaster/internal/ui/theme"
)

// RenderMarkdown renders generated learning text as styled terminal output.
func RenderMarkdown(text string, width int) string {
	return RenderBlocks(content.Parse(text), width)
}

// RenderBlocks renders parsed blocks. Code blocks are shown verbatim under
// their language label; prose lines are wrapped to width.
func RenderBlocks(blocks []content.Block, width int) string {
	if width < 10 {
		width = 10
	}

	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		switch b.Kind {
		case content.BlockCode:
			parts = append(parts, renderCode(b, width))
		default:
			parts = append(parts, renderProse(b.Lines, width))
		}
	}
	return strings.Join(parts, "\n\n")
}

func renderCode(b content.Block, width int) string {
	label := theme.CodeLabel.Render(strings.ToUpper(b.Label))
	body := theme.CodeBlock.Width(width).Render(b.Code)
	return label + "\n" + body
}

func renderProse(lines []content.Line, width int) string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		switch l.Kind {
		case content.LineHeading2:
			out = append(out, theme.Heading2.Width(width).Render(l.Text()))
		case content.LineHeading3:
			out = append(out, theme.Heading3.Width(width).Render(l.Text()))
		case content.LineBullet:
			bullet := theme.Bullet.Render("• ")
			body := lipgloss.NewStyle().Width(width - 2).Render(renderSpans(l.Spans))
			out = append(out, lipgloss.JoinHorizontal(lipgloss.Top, bullet, body))
		default:
			out = append(out, lipgloss.NewStyle().Width(width).Render(renderSpans(l.Spans)))
		}
	}
	return strings.Join(out, "\n")
}

func renderSpans(spans []content.Span) string {
	var b strings.Builder
	for _, s := range spans {
		if s.Bold {
			b.WriteString(theme.Strong.Render(s.Text))
		} else {
			b.WriteString(theme.Body.Render(s.Text))
		}
	}
	return b.String()
}
