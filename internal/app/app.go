package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codemaster/internal/router"
	"github.com/abhisek/codemaster/internal/screen"
	"github.com/abhisek/codemaster/internal/screens/activity"
	"github.com/abhisek/codemaster/internal/screens/workspace"
	"github.com/abhisek/codemaster/internal/store"
	"github.com/abhisek/codemaster/internal/ui/layout"
)

// Options holds the dependencies injected into the TUI.
type Options struct {
	EventRepo store.EventRepo

	// Tutor is nil when no LLM provider could be configured, in which
	// case TutorErr says why.
	Tutor    workspace.Tutor
	TutorErr error

	// Source pre-fills the code editor.
	Source string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel with the workspace screen.
func newAppModel(opts Options) AppModel {
	wsOpts := workspace.Options{
		Tutor:       opts.Tutor,
		Unavailable: opts.TutorErr,
	}
	if opts.EventRepo != nil {
		repo := opts.EventRepo
		wsOpts.Activity = func() screen.Screen { return activity.New(repo) }
	}

	ws := workspace.New(wsOpts)
	if opts.Source != "" {
		ws.SetSource(opts.Source)
	}
	return AppModel{
		router: router.New(ws),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current terminal size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.headerStatus(), m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// headerStatus reports the workspace module badge and score, which stay
// visible while other screens are stacked on top.
func (m AppModel) headerStatus() string {
	for i := m.router.Depth() - 1; i >= 0; i-- {
		if p, ok := m.router.At(i).(screen.StatusProvider); ok {
			return p.HeaderStatus()
		}
	}
	return ""
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
