// Package router keeps the stack of screens shown by the TUI.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codemaster/internal/screen"
)

// PushScreenMsg puts Screen on top of the stack.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg returns to the screen underneath. The bottom screen is
// never popped.
type PopScreenMsg struct{}

// Router owns the screen stack. Key, paste and mouse input goes to the top
// screen only; every other message is broadcast so requests started by a
// covered screen still land there.
type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

func (r *Router) Active() screen.Screen { return r.stack[len(r.stack)-1] }

func (r *Router) Depth() int { return len(r.stack) }

// At returns the screen at depth i counted from the bottom, or nil.
func (r *Router) At(i int) screen.Screen {
	if i < 0 || i >= len(r.stack) {
		return nil
	}
	return r.stack[i]
}

func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		r.stack = append(r.stack, msg.Screen)
		return msg.Screen.Init()
	case PopScreenMsg:
		if len(r.stack) > 1 {
			r.stack = r.stack[:len(r.stack)-1]
		}
		return nil
	case tea.KeyMsg, tea.PasteMsg, tea.MouseMsg:
		top := len(r.stack) - 1
		var cmd tea.Cmd
		r.stack[top], cmd = r.stack[top].Update(msg)
		return cmd
	}

	cmds := make([]tea.Cmd, len(r.stack))
	for i := range r.stack {
		r.stack[i], cmds[i] = r.stack[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
