// Package activity shows the recent LLM calls recorded in the event store.
package activity

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/codemaster/internal/llm"
	"github.com/abhisek/codemaster/internal/router"
	"github.com/abhisek/codemaster/internal/screen"
	"github.com/abhisek/codemaster/internal/store"
	"github.com/abhisek/codemaster/internal/ui/layout"
	"github.com/abhisek/codemaster/internal/ui/theme"
)

// Limit is the number of events loaded.
const Limit = 50

type activityLoadedMsg struct {
	Events []store.LLMEvent
	Usage  []store.LLMUsage
	Err    error
}

// ActivityScreen lists recent LLM requests with their token use and latency.
type ActivityScreen struct {
	eventRepo store.EventRepo
	events    []store.LLMEvent
	usage     []store.LLMUsage
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*ActivityScreen)(nil)
var _ screen.KeyHintProvider = (*ActivityScreen)(nil)

// New creates a new ActivityScreen.
func New(eventRepo store.EventRepo) *ActivityScreen {
	return &ActivityScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *ActivityScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		ctx := context.Background()

		events, err := repo.QueryLLMEvents(ctx, store.QueryOpts{Limit: Limit})
		if err != nil {
			return activityLoadedMsg{Err: err}
		}

		// Usage is a summary line; the list still renders without it.
		usage, err := repo.LLMUsageByPurpose(ctx)
		if err != nil {
			usage = nil
		}
		return activityLoadedMsg{Events: events, Usage: usage}
	}
}

func (s *ActivityScreen) Title() string {
	return "LLM Activity"
}

func (s *ActivityScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ActivityScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case activityLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.events = msg.Events
			s.usage = msg.Usage
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.events)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *ActivityScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading activity...")
	}
	if len(s.events) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No LLM calls yet. Generate a module to get started!")
	}

	var b strings.Builder
	b.WriteString("\n")
	if summary := s.summary(); summary != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Accent).Render(summary)))
		b.WriteString("\n\n")
	}

	for i, ev := range s.events {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		status := "ok"
		if !ev.Success {
			status = "FAIL"
		}
		line := fmt.Sprintf("%s%s  %-10s  %-22s  %6d in  %6d out  %6dms  %s",
			prefix, ev.Timestamp.Format("Jan 02 15:04:05"), ev.Purpose, ev.Model,
			ev.InputTokens, ev.OutputTokens, ev.LatencyMs, status)

		style := lipgloss.NewStyle().Foreground(statusColor(ev.Success))
		if i == s.selected {
			style = style.Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, d := range details(ev) {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("    "+d)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

// summary totals calls, tokens and estimated cost across purposes.
func (s *ActivityScreen) summary() string {
	if len(s.usage) == 0 {
		return ""
	}
	parts := make([]string, 0, len(s.usage))
	for _, u := range s.usage {
		parts = append(parts, fmt.Sprintf("%s: %d calls", u.Purpose, u.Calls))
	}

	var cost float64
	for _, ev := range s.events {
		if c, ok := llm.EstimateCost(ev.Model, ev.InputTokens, ev.OutputTokens); ok {
			cost += c
		}
	}
	return strings.Join(parts, "   ") + fmt.Sprintf("   est. $%.4f (last %d)", cost, len(s.events))
}

func details(ev store.LLMEvent) []string {
	out := []string{fmt.Sprintf("#%d  provider %s", ev.ID, ev.Provider)}
	if ev.Trace != "" {
		out = append(out, "module "+ev.Trace)
	}
	if ev.ErrorMessage != "" {
		out = append(out, "error: "+ev.ErrorMessage)
	}
	return out
}

func statusColor(ok bool) color.Color {
	if ok {
		return theme.Text
	}
	return theme.Error
}
