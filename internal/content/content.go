// Package content parses the Markdown subset used in generated learning
// material into display blocks.
//
// Parsing is a one-shot projection: fenced code blocks are isolated first
// and kept verbatim, then the remaining prose is split into lines that are
// classified as headings, bullets, or text, with **bold** spans resolved
// inside each line.
package content

import (
	"regexp"
	"strings"
)

// BlockKind distinguishes prose from fenced code.
type BlockKind int

const (
	BlockProse BlockKind = iota
	BlockCode
)

// DefaultCodeLabel labels a fenced block that has no language tag.
const DefaultCodeLabel = "code"

// Block is one display block.
type Block struct {
	Kind BlockKind

	// Label and Code are set for BlockCode. Code is the trimmed body,
	// with no markup interpreted.
	Label string
	Code  string

	// Lines is set for BlockProse.
	Lines []Line
}

// LineKind classifies a prose line.
type LineKind int

const (
	LineText LineKind = iota
	LineHeading2
	LineHeading3
	LineBullet
)

// Line is a single prose line. A LineText with no spans is a blank line.
type Line struct {
	Kind  LineKind
	Spans []Span
}

// Span is a run of text within a line.
type Span struct {
	Text string
	Bold bool
}

// Text returns the line's text without markup.
func (l Line) Text() string {
	var b strings.Builder
	for _, s := range l.Spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

var (
	// fenceRe matches a fenced region. An unterminated fence runs to the
	// end of the input.
	fenceRe = regexp.MustCompile("(?s)```.*?(?:```|\\z)")

	// fenceTagRe matches the opening fence and an optional language tag
	// that ends the line.
	fenceTagRe = regexp.MustCompile("^```([A-Za-z0-9_+#.-]*)[ \t]*(?:\r?\n|$)")

	boldRe = regexp.MustCompile(`\*\*(.*?)\*\*`)
)

// Parse converts text into display blocks, left to right.
func Parse(text string) []Block {
	var blocks []Block

	last := 0
	for _, loc := range fenceRe.FindAllStringIndex(text, -1) {
		blocks = appendProse(blocks, text[last:loc[0]])
		blocks = append(blocks, parseFence(text[loc[0]:loc[1]]))
		last = loc[1]
	}
	blocks = appendProse(blocks, text[last:])

	return blocks
}

// parseFence builds a code block from a fenced segment including its
// delimiters.
func parseFence(seg string) Block {
	label := DefaultCodeLabel
	body := strings.TrimPrefix(seg, "```")

	if m := fenceTagRe.FindStringSubmatch(seg); m != nil {
		if m[1] != "" {
			label = m[1]
		}
		body = seg[len(m[0]):]
	}
	body = strings.TrimSuffix(body, "```")

	return Block{Kind: BlockCode, Label: label, Code: strings.TrimSpace(body)}
}

// appendProse parses a non-fenced segment and appends it unless it is
// blank. Leading and trailing blank lines are dropped.
func appendProse(blocks []Block, seg string) []Block {
	seg = strings.Trim(strings.ReplaceAll(seg, "\r\n", "\n"), "\n")
	if strings.TrimSpace(seg) == "" {
		return blocks
	}

	raw := strings.Split(seg, "\n")
	lines := make([]Line, 0, len(raw))
	for _, l := range raw {
		lines = append(lines, parseLine(l))
	}
	return append(blocks, Block{Kind: BlockProse, Lines: lines})
}

// parseLine applies the line-level rules in order: level-3 heading,
// level-2 heading, bullet, then bold spans within whatever text remains.
func parseLine(l string) Line {
	kind := LineText
	switch {
	case strings.HasPrefix(l, "### "):
		kind, l = LineHeading3, l[len("### "):]
	case strings.HasPrefix(l, "## "):
		kind, l = LineHeading2, l[len("## "):]
	case strings.HasPrefix(l, "* "):
		kind, l = LineBullet, l[len("* "):]
	}
	return Line{Kind: kind, Spans: parseSpans(l)}
}

func parseSpans(l string) []Span {
	var spans []Span
	add := func(text string, bold bool) {
		if text != "" {
			spans = append(spans, Span{Text: text, Bold: bold})
		}
	}

	last := 0
	for _, m := range boldRe.FindAllStringSubmatchIndex(l, -1) {
		add(l[last:m[0]], false)
		add(l[m[2]:m[3]], true)
		last = m[1]
	}
	add(l[last:], false)

	return spans
}
