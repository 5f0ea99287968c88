package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupCost(t *testing.T) {
	tests := []struct {
		model string
		want  *ModelCost
	}{
		{"gpt-4o", &ModelCost{2.5, 10}},
		{"gpt-4o-mini-2024-07-18", &ModelCost{0.15, 0.6}},
		{"claude-sonnet-4-20250514", &ModelCost{3, 15}},
		{"claude-haiku-4-5-20251001", &ModelCost{1, 5}},
		{"openai/gpt-4o-mini", &ModelCost{0.15, 0.6}},
		{"google/gemini-2.5-flash:free", &ModelCost{0.3, 2.5}},
		{" GPT-4.1 ", &ModelCost{2, 8}},
		{"mock", nil},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			assert.Equal(t, tt.want, LookupCost(tt.model))
		})
	}
}

func TestEstimateCost(t *testing.T) {
	cost, ok := EstimateCost("gpt-4o", 1_000_000, 100_000)
	require.True(t, ok)
	assert.InDelta(t, 3.5, cost, 1e-9)

	_, ok = EstimateCost("unknown-model", 10, 10)
	assert.False(t, ok)
}
