package layout

import (
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestRenderFooter_DropsHintsThatDoNotFit(t *testing.T) {
	hints := []KeyHint{
		{Key: "Ctrl+S", Description: "Generate"},
		{Key: "Ctrl+X", Description: "Clear"},
		{Key: "Ctrl+L", Description: "Activity"},
	}

	wide := RenderFooter(hints, 120)
	assert.Contains(t, wide, "Activity")
	assert.Equal(t, FooterHeight, lipgloss.Height(wide))

	narrow := RenderFooter(hints, 30)
	assert.Contains(t, narrow, "Generate")
	assert.NotContains(t, narrow, "Activity")
	assert.Equal(t, FooterHeight, lipgloss.Height(narrow))
}

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("Workspace", "Score 1/4", 100)
	assert.Contains(t, h, "CodeMaster AI")
	assert.Contains(t, h, "Workspace")
	assert.Contains(t, h, "Score 1/4")
	assert.Equal(t, HeaderHeight, lipgloss.Height(h))
}

func TestRenderFrame_FillsHeight(t *testing.T) {
	frame := RenderFrame(RenderHeader("T", "", 80), "body", RenderFooter(nil, 80), 80, 30)
	assert.Equal(t, 30, lipgloss.Height(frame))
}

func TestContentHeight(t *testing.T) {
	assert.Equal(t, 18, ContentHeight(24))
	assert.Equal(t, 0, ContentHeight(4))
}
