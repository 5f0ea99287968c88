// Package workspace is the main screen: a source editor on the left and
// the generated learning module on the right.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codemaster/internal/llm"
	"github.com/abhisek/codemaster/internal/quiz"
	"github.com/abhisek/codemaster/internal/router"
	"github.com/abhisek/codemaster/internal/screen"
	"github.com/abhisek/codemaster/internal/tutor"
	"github.com/abhisek/codemaster/internal/ui/components"
	"github.com/abhisek/codemaster/internal/ui/layout"
)

// Tutor generates modules and grades code answers. *tutor.Client
// satisfies it.
type Tutor interface {
	RequestModule(ctx context.Context, source string) (*tutor.Module, error)
	quiz.Grader
}

// Options configures the workspace.
type Options struct {
	// Tutor may be nil when no LLM provider is configured; generation
	// then fails with Unavailable.
	Tutor       Tutor
	Unavailable error

	// Activity builds the screen pushed by ctrl+l. Nil disables it.
	Activity func() screen.Screen
}

// Screen implements screen.Screen for the workspace.
type Screen struct {
	opts Options

	status    Status
	seq       int
	errMsg    string
	errDetail string
	notice    string

	module *tutor.Module
	engine *quiz.Engine

	source components.CodeEditor
	answer components.CodeEditor
	tabs   components.Tabs
	offset [4]int
	focus  focus

	ticking bool
	frame   int

	width, height int
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
	_ screen.StatusProvider  = (*Screen)(nil)
)

// New creates the workspace in the idle state.
func New(opts Options) *Screen {
	s := &Screen{
		opts:   opts,
		source: components.NewCodeEditor("Paste your code here...", 40, 10),
		answer: components.NewCodeEditor("Write your solution...", 40, 8),
		tabs:   components.NewTabs(tabLabels...),
	}
	s.tabs.Disabled = true
	s.answer.SetReadOnly(true)
	return s
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return "Workspace"
}

// Status returns the generation request state.
func (s *Screen) Status() Status { return s.status }

// Module returns the loaded module, or nil.
func (s *Screen) Module() *tutor.Module { return s.module }

// Engine returns the quiz engine for the loaded module, or nil.
func (s *Screen) Engine() *quiz.Engine { return s.engine }

// Error returns the current inline error message.
func (s *Screen) Error() string { return s.errMsg }

// ErrorDetail names the provider failure behind Error, if known.
func (s *Screen) ErrorDetail() string { return s.errDetail }

// Notice returns the current input hint, such as the empty source warning.
func (s *Screen) Notice() string { return s.notice }

// ActiveTab returns the selected content tab.
func (s *Screen) ActiveTab() int { return s.tabs.Active }

// SetSource replaces the source editor text.
func (s *Screen) SetSource(src string) { s.source.SetValue(src) }

// HeaderStatus summarises the module for the header bar.
func (s *Screen) HeaderStatus() string {
	if s.module == nil {
		return ""
	}
	badge := strings.ToUpper(s.module.Language) + " MODULE"
	if s.engine == nil || s.engine.Total() == 0 {
		return badge
	}
	return fmt.Sprintf("%s  ·  Score %d/%d", badge, s.engine.Score(), s.engine.Total())
}

func (s *Screen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{}
	if s.focus == focusSource {
		if s.status != StatusLoading {
			hints = append(hints, layout.KeyHint{Key: "Ctrl+S", Description: "Generate"})
		}
	} else {
		hints = append(hints, s.outputHints()...)
	}
	if s.module != nil {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+E", Description: "Switch pane"})
	}
	hints = append(hints, layout.KeyHint{Key: "Ctrl+X", Description: "Clear all"})
	if s.opts.Activity != nil {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+L", Description: "LLM log"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (s *Screen) outputHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Tab", Description: "Next tab"}}
	if s.tabs.Active != TabQuiz || s.engine == nil {
		return append(hints, layout.KeyHint{Key: "↑↓", Description: "Scroll"})
	}

	switch s.engine.Phase() {
	case quiz.PhaseAnswering:
		if _, ok := s.engine.Current().(*tutor.ChoiceQuestion); ok {
			return append(hints,
				layout.KeyHint{Key: "A-D", Description: "Choose"},
				layout.KeyHint{Key: "Enter", Description: "Submit"})
		}
		return append(hints, layout.KeyHint{Key: "Ctrl+S", Description: "Submit code"})
	case quiz.PhaseFeedback:
		if s.engine.CanRevealSolution() {
			hints = append(hints, layout.KeyHint{Key: "Ctrl+O", Description: "Solution"})
		}
		return append(hints, layout.KeyHint{Key: "Enter", Description: "Next"})
	case quiz.PhaseFinished:
		return append(hints, layout.KeyHint{Key: "R", Description: "Try again"})
	}
	return hints
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.resize(msg.Width, msg.Height)
		return s, nil

	case moduleReadyMsg:
		return s.handleModule(msg)

	case evaluationDoneMsg:
		return s.handleEvaluation(msg)

	case spinnerTickMsg:
		return s.handleTick()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s.forwardInput(msg)
}

// forwardInput sends non-key input such as pastes to the focused editor.
func (s *Screen) forwardInput(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.focus == focusSource {
		var cmd tea.Cmd
		s.source, cmd = s.source.Update(msg)
		return s, cmd
	}
	if s.answerEditable() {
		var cmd tea.Cmd
		s.answer, cmd = s.answer.Update(msg)
		s.engine.EditCode(s.answer.Value())
		return s, cmd
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "ctrl+x":
		s.clearAll()
		return s, nil
	case "ctrl+l":
		if s.opts.Activity == nil {
			return s, nil
		}
		next := s.opts.Activity()
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	case "ctrl+e":
		if s.module != nil {
			s.toggleFocus()
		}
		return s, nil
	case "f1", "f2", "f3", "f4":
		s.tabs.Select(int(msg.String()[1] - '1'))
		if s.module != nil {
			s.setFocus(focusOutput)
		}
		return s, nil
	}

	if s.focus == focusSource {
		if msg.String() == "ctrl+s" {
			return s.generate()
		}
		var cmd tea.Cmd
		s.source, cmd = s.source.Update(msg)
		s.notice = ""
		return s, cmd
	}

	switch msg.String() {
	case "tab":
		s.tabs.Next()
		s.setFocus(focusOutput)
		return s, nil
	case "shift+tab":
		s.tabs.Prev()
		s.setFocus(focusOutput)
		return s, nil
	}

	if s.tabs.Active == TabQuiz {
		return s.handleQuizKey(msg)
	}
	s.scroll(msg.String())
	return s, nil
}

// generate starts a module request for the source editor text. It is
// ignored while a request is outstanding.
func (s *Screen) generate() (screen.Screen, tea.Cmd) {
	if s.status == StatusLoading {
		return s, nil
	}

	src := s.source.Value()
	if strings.TrimSpace(src) == "" {
		s.notice = tutor.MsgEmptySource
		return s, nil
	}
	s.notice = ""

	if s.opts.Tutor == nil {
		s.status = StatusError
		s.errMsg = unavailableMessage(s.opts.Unavailable)
		return s, nil
	}

	s.status = StatusLoading
	s.errMsg = ""
	s.errDetail = ""
	s.module = nil
	s.engine = nil
	s.tabs.Disabled = true
	s.seq++

	seq := s.seq
	t := s.opts.Tutor
	request := func() tea.Msg {
		mod, err := t.RequestModule(context.Background(), src)
		return moduleReadyMsg{seq: seq, module: mod, err: err}
	}
	return s, tea.Batch(request, s.startSpinner())
}

func unavailableMessage(err error) string {
	if err == nil {
		return "AI features are unavailable: no LLM provider is configured."
	}
	return "AI features are unavailable: " + err.Error()
}

func (s *Screen) handleModule(msg moduleReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.seq != s.seq || s.status != StatusLoading {
		return s, nil
	}

	if msg.err != nil {
		s.status = StatusError
		var inputErr *tutor.InputError
		var genErr *tutor.GenerationError
		switch {
		case errors.As(msg.err, &inputErr):
			s.status = StatusIdle
			s.notice = inputErr.Message
		case errors.As(msg.err, &genErr):
			s.errMsg = genErr.Message
			s.errDetail = llm.Describe(genErr.Err)
		default:
			s.errMsg = tutor.MsgGenerationFailed
			s.errDetail = llm.Describe(msg.err)
		}
		return s, nil
	}

	s.status = StatusSuccess
	s.module = msg.module
	s.engine = quiz.New(msg.module)
	s.tabs.Disabled = false
	s.tabs.Active = TabExplanation
	s.offset = [4]int{}
	s.syncAnswer()
	s.setFocus(focusOutput)
	return s, nil
}

// clearAll discards the module and quiz and returns to idle. The source
// text is kept so it can be edited and regenerated.
func (s *Screen) clearAll() {
	s.status = StatusIdle
	s.seq++
	s.errMsg = ""
	s.errDetail = ""
	s.notice = ""
	s.module = nil
	s.engine = nil
	s.tabs.Disabled = true
	s.tabs.Active = TabExplanation
	s.offset = [4]int{}
	s.answer.SetValue("")
	s.setFocus(focusSource)
}

func (s *Screen) toggleFocus() {
	if s.focus == focusSource {
		s.setFocus(focusOutput)
	} else {
		s.setFocus(focusSource)
	}
}

func (s *Screen) setFocus(f focus) {
	s.focus = f
	s.source.SetReadOnly(f != focusSource)
	s.answer.SetReadOnly(!s.answerEditable())
}

// answerEditable reports whether keys should reach the code answer editor.
func (s *Screen) answerEditable() bool {
	if s.focus != focusOutput || s.tabs.Active != TabQuiz || s.engine == nil {
		return false
	}
	if s.engine.Phase() != quiz.PhaseAnswering {
		return false
	}
	_, ok := s.engine.Current().(*tutor.CodeQuestion)
	return ok
}

// syncAnswer loads the engine's code for the current question into the
// answer editor.
func (s *Screen) syncAnswer() {
	if s.engine == nil {
		s.answer.SetValue("")
		return
	}
	s.answer.SetValue(s.engine.Code())
	s.answer.SetReadOnly(!s.answerEditable())
}

func (s *Screen) startSpinner() tea.Cmd {
	if s.ticking {
		return nil
	}
	s.ticking = true
	return spinnerTick()
}

func (s *Screen) handleTick() (screen.Screen, tea.Cmd) {
	evaluating := s.engine != nil && s.engine.Phase() == quiz.PhaseEvaluating
	if s.status != StatusLoading && !evaluating {
		s.ticking = false
		return s, nil
	}
	s.frame++
	return s, spinnerTick()
}

func spinnerTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (s *Screen) resize(width, height int) {
	s.width = width
	s.height = layout.ContentHeight(height)

	lw, rw := paneWidths(width)
	s.source.SetSize(lw-4, max(s.height-6, 3))
	s.answer.SetSize(rw-6, 8)
}

// paneWidths splits the content width between the source and output panes.
func paneWidths(width int) (left, right int) {
	left = width * 2 / 5
	if left < 30 {
		left = 30
	}
	right = width - left - 1
	if right < 20 {
		right = 20
	}
	return left, right
}

// scroll moves the active prose tab. Offsets are clamped against the
// rendered body so paging never runs past the end.
func (s *Screen) scroll(key string) {
	page := max(s.bodyHeight()-1, 1)
	off := s.offset[s.tabs.Active]
	switch key {
	case "up", "k":
		off--
	case "down", "j":
		off++
	case "pgup":
		off -= page
	case "pgdown", " ":
		off += page
	case "home", "g":
		off = 0
	case "end", "G":
		off = s.maxOffset()
	default:
		return
	}
	s.offset[s.tabs.Active] = min(max(off, 0), s.maxOffset())
}

func (s *Screen) maxOffset() int {
	_, rw := paneWidths(s.width)
	total := strings.Count(s.renderTab(rw-4), "\n") + 1
	return max(total-s.bodyHeight(), 0)
}
