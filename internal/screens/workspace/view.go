package workspace

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/codemaster/internal/ui/components"
	"github.com/abhisek/codemaster/internal/ui/theme"
)

var tips = []string{
	"Paste a function, a class, or a whole file.",
	"Any language works; it is detected for you.",
	"The quiz mixes multiple choice with coding tasks.",
}

func (s *Screen) View(width, height int) string {
	lw, rw := paneWidths(width)

	left := s.renderInputPane(lw, height)
	right := s.renderOutputPane(rw, height)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

func (s *Screen) renderInputPane(width, height int) string {
	var b strings.Builder

	title := "Source Code"
	if s.focus == focusSource {
		title = "▸ " + title
	}
	b.WriteString(theme.Heading2.Render(title))
	b.WriteString("\n")
	b.WriteString(s.source.View())
	b.WriteString("\n")

	generate := components.NewButton("Generate", "Ctrl+S", s.focus == focusSource)
	generate.Disabled = s.status == StatusLoading
	if generate.Disabled {
		generate.Label = "Generating..."
		generate.Key = ""
	}
	clearAll := components.NewButton("Clear All", "Ctrl+X", false)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, generate.View(), " ", clearAll.View()))

	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(theme.ErrorText.Render(s.notice))
	}

	return lipgloss.NewStyle().Width(width).MaxHeight(height).Render(b.String())
}

func (s *Screen) renderOutputPane(width, height int) string {
	style := theme.Panel.Width(width).Height(height - 2).MaxHeight(height)
	if s.focus == focusOutput {
		style = style.BorderForeground(theme.Primary)
	}
	inner := width - 4

	switch s.status {
	case StatusLoading:
		return style.Render(s.renderLoading(inner, height-2))
	case StatusError:
		return style.Render(s.renderError(inner))
	case StatusSuccess:
		return style.Render(s.renderModule(inner))
	}
	return style.Render(renderIdle(inner))
}

func renderIdle(width int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("Ready to Learn?"))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Width(width).Render(
		"Paste code on the left and press Ctrl+S. You will get an explanation, a step-by-step tutorial, an advanced example and a quiz."))
	b.WriteString("\n\n")
	b.WriteString(theme.Heading3.Render("Tips"))
	for _, t := range tips {
		b.WriteString("\n")
		b.WriteString(theme.Bullet.Render("• ") + theme.Hint.Render(t))
	}
	return b.String()
}

func (s *Screen) renderLoading(width, height int) string {
	body := components.Spinner(s.frame, "Generating Learning Module...") + "\n\n" +
		theme.Hint.Render("Analyzing code, writing the tutorial and building your quiz.")
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(body)
}

func (s *Screen) renderError(width int) string {
	var b strings.Builder
	b.WriteString("\n" + theme.Incorrect.Render("Something went wrong") + "\n\n")
	b.WriteString(theme.ErrorText.Width(width).Render(s.errMsg))
	if s.errDetail != "" {
		b.WriteString("\n" + theme.Hint.Width(width).Render(s.errDetail))
	}
	b.WriteString("\n\n" + theme.Hint.Render("Edit your code if needed and press Ctrl+S to try again."))
	return b.String()
}

func (s *Screen) renderModule(width int) string {
	badge := theme.Badge.Render(strings.ToUpper(s.module.Language) + " MODULE")
	head := badge + "\n\n" + s.tabs.View() + "\n"

	body := s.renderTab(width)
	lines := strings.Split(body, "\n")
	off := min(s.offset[s.tabs.Active], max(len(lines)-1, 0))
	end := min(off+s.bodyHeight(), len(lines))
	return head + "\n" + strings.Join(lines[off:end], "\n")
}

// bodyHeight is the number of tab body lines that fit in the output pane.
func (s *Screen) bodyHeight() int {
	// Panel border plus badge, tabs and spacing.
	return max(s.height-2-5, 3)
}

func (s *Screen) renderTab(width int) string {
	if s.module == nil {
		return ""
	}
	switch s.tabs.Active {
	case TabExplanation:
		return components.RenderMarkdown(s.module.Explanation, width)
	case TabTutorial:
		return components.RenderMarkdown(s.module.Tutorial, width)
	case TabExample:
		return components.RenderMarkdown(s.module.Example, width)
	}
	return s.renderQuiz(width)
}
