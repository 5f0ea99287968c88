package activity

import (
	"context"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/codemaster/internal/router"
	"github.com/abhisek/codemaster/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "activity.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func load(t *testing.T, s *ActivityScreen) {
	t.Helper()
	msg := s.Init()()
	_, cmd := s.Update(msg)
	assert.Nil(t, cmd)
}

func TestEmptyActivity(t *testing.T) {
	s := New(openStore(t).EventRepo())
	assert.Contains(t, s.View(100, 20), "Loading activity")

	load(t, s)

	assert.Contains(t, s.View(100, 20), "No LLM calls yet")
}

func TestActivityListsEvents(t *testing.T) {
	repo := openStore(t).EventRepo()
	ctx := context.Background()
	require.NoError(t, repo.AppendLLMRequest(ctx, store.LLMRequestEventData{
		Provider: "gemini", Model: "gemini-2.5-pro", Purpose: "module-gen", Trace: "mod-1",
		InputTokens: 1200, OutputTokens: 3400, LatencyMs: 8000, Success: true,
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, store.LLMRequestEventData{
		Provider: "gemini", Model: "gemini-2.5-pro", Purpose: "code-eval", Trace: "mod-1",
		Success: false, ErrorMessage: "deadline exceeded",
	}))

	s := New(repo)
	load(t, s)

	view := s.View(140, 30)
	assert.Contains(t, view, "module-gen")
	assert.Contains(t, view, "code-eval")
	assert.Contains(t, view, "FAIL")
	assert.NotContains(t, view, "deadline exceeded")

	// Newest first: the failed evaluation is selected.
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Contains(t, s.View(140, 30), "deadline exceeded")

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 1, s.selected)
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 1, s.selected)
}

func TestEscPops(t *testing.T) {
	s := New(openStore(t).EventRepo())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.Equal(t, router.PopScreenMsg{}, cmd())
}
