package layout

import (
	"strings"
	"testing"
	"unicode/utf8"

	"funeral-docs-be/pkg/markup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedMeasurer gives every rune the same width.
type fixedMeasurer struct{}

func (fixedMeasurer) Width(text string, _ markup.Style, _ float64) float64 {
	return float64(utf8.RuneCountInString(text)) * 5
}

// smallPage has 30pt of content width and 100pt of usable height.
func smallPage() Page {
	return Page{
		Width:          50,
		Height:         130,
		MarginTop:      10,
		MarginBottom:   10,
		MarginLeft:     10,
		MarginRight:    10,
		HeaderHeight:   10,
		BaseLineHeight: 10,
	}
}

func countKind(ops []Op, kind OpKind) int {
	n := 0
	for _, op := range ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

func TestPaginateBreaksPages(t *testing.T) {
	page := smallPage()
	words := make([]string, 25)
	for i := range words {
		words[i] = "aaaa"
	}
	blocks := []markup.Block{{
		Kind:  markup.KindParagraph,
		Spans: []markup.Span{{Text: strings.Join(words, " ")}},
	}}

	res := Paginate(blocks, page, fixedMeasurer{})

	assert.Equal(t, 3, res.Pages)
	assert.Equal(t, 3, countKind(res.Ops, OpPageBreak))
	assert.Equal(t, 25, countKind(res.Ops, OpText))
	assert.InDelta(t, 254.0, res.Height, 0.001)

	perPage := map[int]int{}
	for _, op := range res.Ops {
		if op.Kind != OpText {
			continue
		}
		perPage[op.Page]++
		assert.LessOrEqual(t, op.Y+10, page.Limit(), "line on page %d at y=%v", op.Page, op.Y)
		assert.GreaterOrEqual(t, op.Y, page.Top())
	}
	assert.Equal(t, map[int]int{0: 10, 1: 10, 2: 5}, perPage)
}

func TestPaginateEmptyInput(t *testing.T) {
	res := Paginate(nil, smallPage(), fixedMeasurer{})
	assert.Equal(t, 1, res.Pages)
	require.Len(t, res.Ops, 1)
	assert.Equal(t, OpPageBreak, res.Ops[0].Kind)
	assert.Zero(t, res.Height)
}

func TestPaginateOverlongWord(t *testing.T) {
	blocks := []markup.Block{{
		Kind:  markup.KindParagraph,
		Spans: []markup.Span{{Text: "aaaaaaaaaa bbbbbbbbbb"}},
	}}

	res := Paginate(blocks, smallPage(), fixedMeasurer{})

	var texts []string
	for _, op := range res.Ops {
		if op.Kind == OpText {
			texts = append(texts, op.Text)
		}
	}
	assert.Equal(t, []string{"aaaaaaaaaa", "bbbbbbbbbb"}, texts)
}

func TestPaginateEmptyHeaderKeepsSpacing(t *testing.T) {
	page := smallPage()
	blocks := []markup.Block{{Kind: markup.KindHeader, Level: 1}}

	res := Paginate(blocks, page, fixedMeasurer{})

	lh := page.lineHeight(20)
	assert.Zero(t, countKind(res.Ops, OpText))
	assert.InDelta(t, lh*0.25, res.Height, 0.001)
}

func TestPaginateHeaderSpacingBelowTop(t *testing.T) {
	page := Letter()
	blocks := []markup.Block{
		{Kind: markup.KindParagraph, Spans: []markup.Span{{Text: "intro"}}},
		{Kind: markup.KindHeader, Level: 2, Spans: []markup.Span{{Text: "Service"}}},
	}

	res := Paginate(blocks, page, fixedMeasurer{})

	var header Op
	for _, op := range res.Ops {
		if op.Kind == OpText && op.Text == "Service" {
			header = op
		}
	}
	require.Equal(t, "Service", header.Text)
	assert.Equal(t, markup.Bold, header.Style)
	assert.Equal(t, 16.0, header.Size)

	// paragraph line, paragraph gap, then half a header line before the header
	want := page.Top() + page.BaseLineHeight + page.BaseLineHeight*0.4 + page.lineHeight(16)*0.5
	assert.InDelta(t, want, header.Y, 0.001)
}

func TestPaginateListGlyphAndIndent(t *testing.T) {
	page := Letter()
	blocks := []markup.Block{
		{Kind: markup.KindListItem, List: markup.Bulleted, Spans: []markup.Span{{Text: "Flowers"}}},
		{Kind: markup.KindListItem, List: markup.Numbered, Ordinal: 3, Depth: 1, Spans: []markup.Span{{Text: "Call"}}},
	}

	res := Paginate(blocks, page, fixedMeasurer{})

	var texts []Op
	for _, op := range res.Ops {
		if op.Kind == OpText {
			texts = append(texts, op)
		}
	}
	require.Len(t, texts, 4)

	assert.Equal(t, "•", texts[0].Text)
	assert.Equal(t, page.MarginLeft, texts[0].X)
	assert.Equal(t, "Flowers", texts[1].Text)
	assert.Equal(t, page.MarginLeft+listIndent, texts[1].X)

	assert.Equal(t, "3.", texts[2].Text)
	assert.Equal(t, page.MarginLeft+listIndent, texts[2].X)
	assert.Equal(t, "Call", texts[3].Text)
	assert.Equal(t, page.MarginLeft+2*listIndent, texts[3].X)
}

func TestPaginateDecoratedLinesGetBoxes(t *testing.T) {
	blocks := []markup.Block{
		{Kind: markup.KindAdmonition, Admonition: markup.AdmonitionWarning, Spans: []markup.Span{{Text: "Permit due"}}},
		{Kind: markup.KindBlockquote, Spans: []markup.Span{{Text: "Rest"}}},
	}

	res := Paginate(blocks, Letter(), fixedMeasurer{})

	var decos []Decoration
	for _, op := range res.Ops {
		if op.Kind == OpBox {
			decos = append(decos, op.Decoration)
		}
	}
	assert.Equal(t, []Decoration{DecorationWarning, DecorationQuote}, decos)
}

func TestPaginateKeepsStyledRuns(t *testing.T) {
	blocks := markup.Parse("a **bold**move here")

	res := Paginate(blocks, Letter(), fixedMeasurer{})

	var got []Op
	for _, op := range res.Ops {
		if op.Kind == OpText {
			got = append(got, op)
		}
	}
	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].Text)
	assert.Equal(t, " bold", got[1].Text)
	assert.Equal(t, markup.Bold, got[1].Style)
	assert.Equal(t, "move here", got[2].Text)
	assert.InDelta(t, got[1].X+fixedMeasurer{}.Width(got[1].Text, 0, 0), got[2].X, 0.001)
}

func TestPaginateRule(t *testing.T) {
	page := Letter()
	res := Paginate([]markup.Block{{Kind: markup.KindRule}}, page, fixedMeasurer{})
	require.Equal(t, OpRule, res.Ops[0].Kind)
	assert.Equal(t, page.ContentWidth(), res.Ops[0].W)
	assert.InDelta(t, page.BaseLineHeight, res.Height, 0.001)
}
