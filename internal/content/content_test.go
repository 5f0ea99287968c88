package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_BoldSpan(t *testing.T) {
	blocks := Parse("**x**")
	require.Len(t, blocks, 1)
	require.Equal(t, BlockProse, blocks[0].Kind)
	require.Len(t, blocks[0].Lines, 1)
	assert.Equal(t, []Span{{Text: "x", Bold: true}}, blocks[0].Lines[0].Spans)
}

func TestParse_TaggedFenceIsVerbatim(t *testing.T) {
	blocks := Parse("Intro\n```python\n## not a heading\n* **not bold**\n```\nOutro")
	require.Len(t, blocks, 3)

	code := blocks[1]
	assert.Equal(t, BlockCode, code.Kind)
	assert.Equal(t, "python", code.Label)
	assert.Equal(t, "## not a heading\n* **not bold**", code.Code)

	assert.Equal(t, "Intro", blocks[0].Lines[0].Text())
	assert.Equal(t, "Outro", blocks[2].Lines[0].Text())
}

func TestParse_UntaggedFenceGetsDefaultLabel(t *testing.T) {
	blocks := Parse("```\nx := 1\n```")
	require.Len(t, blocks, 1)
	assert.Equal(t, DefaultCodeLabel, blocks[0].Label)
	assert.Equal(t, "x := 1", blocks[0].Code)
}

func TestParse_InlineFenceKeepsBody(t *testing.T) {
	blocks := Parse("```x = 1```")
	require.Len(t, blocks, 1)
	assert.Equal(t, DefaultCodeLabel, blocks[0].Label)
	assert.Equal(t, "x = 1", blocks[0].Code)
}

func TestParse_UnterminatedFenceRunsToEnd(t *testing.T) {
	blocks := Parse("Before **b**\n```go\nfunc main() {\n\t// **kept**\n}\n")
	require.Len(t, blocks, 2)

	assert.Equal(t, BlockProse, blocks[0].Kind)
	assert.Equal(t, []Span{{Text: "Before "}, {Text: "b", Bold: true}}, blocks[0].Lines[0].Spans)

	assert.Equal(t, BlockCode, blocks[1].Kind)
	assert.Equal(t, "go", blocks[1].Label)
	assert.Equal(t, "func main() {\n\t// **kept**\n}", blocks[1].Code)
}

func TestParse_OddFenceCountIsolatesLastRegion(t *testing.T) {
	blocks := Parse("a\n```\none\n```\nb\n```js\ntwo")
	require.Len(t, blocks, 4)
	assert.Equal(t, "one", blocks[1].Code)
	assert.Equal(t, "b", blocks[2].Lines[0].Text())
	assert.Equal(t, "js", blocks[3].Label)
	assert.Equal(t, "two", blocks[3].Code)
}

func TestParse_LineKinds(t *testing.T) {
	blocks := Parse("### Small\n## Big\n* item with **bold**\nplain\n\nafter blank")
	require.Len(t, blocks, 1)
	lines := blocks[0].Lines
	require.Len(t, lines, 6)

	assert.Equal(t, LineHeading3, lines[0].Kind)
	assert.Equal(t, "Small", lines[0].Text())
	assert.Equal(t, LineHeading2, lines[1].Kind)
	assert.Equal(t, "Big", lines[1].Text())

	assert.Equal(t, LineBullet, lines[2].Kind)
	assert.Equal(t, []Span{{Text: "item with "}, {Text: "bold", Bold: true}}, lines[2].Spans)

	assert.Equal(t, LineText, lines[3].Kind)
	assert.Empty(t, lines[4].Spans, "blank line is kept as a break")
	assert.Equal(t, "after blank", lines[5].Text())
}

func TestParse_DashLineIsNotABullet(t *testing.T) {
	line := Parse("- item")[0].Lines[0]
	assert.Equal(t, LineText, line.Kind)
	assert.Equal(t, "- item", line.Text())
}

func TestParse_BoldInsideHeading(t *testing.T) {
	blocks := Parse("## The **key** idea")
	line := blocks[0].Lines[0]
	assert.Equal(t, LineHeading2, line.Kind)
	assert.Equal(t, []Span{{Text: "The "}, {Text: "key", Bold: true}, {Text: " idea"}}, line.Spans)
}

func TestParse_BoldIsNonGreedyAndLineBound(t *testing.T) {
	line := Parse("**a** and **b**")[0].Lines[0]
	assert.Equal(t, []Span{{Text: "a", Bold: true}, {Text: " and "}, {Text: "b", Bold: true}}, line.Spans)

	lines := Parse("**open\nclose**")[0].Lines
	assert.Equal(t, "**open", lines[0].Text())
	assert.False(t, lines[0].Spans[0].Bold)
}

func TestParse_MarkersNeedTrailingSpace(t *testing.T) {
	lines := Parse("##NoSpace\n*emphasis*")[0].Lines
	assert.Equal(t, LineText, lines[0].Kind)
	assert.Equal(t, LineText, lines[1].Kind)
}

func TestParse_Empty(t *testing.T) {
	assert.Empty(t, Parse(""))
	assert.Empty(t, Parse("\n\n"))
}
