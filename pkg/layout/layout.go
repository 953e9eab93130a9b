package layout

import (
	"strconv"
	"strings"

	"funeral-docs-be/pkg/markup"
)

type OpKind int

const (
	OpText OpKind = iota
	OpRule
	OpBox
	OpPageBreak
)

// Decoration marks lines that belong to a quote or admonition.
type Decoration string

const (
	DecorationNone    Decoration = ""
	DecorationQuote   Decoration = "quote"
	DecorationInfo    Decoration = "info"
	DecorationWarning Decoration = "warning"
	DecorationSuccess Decoration = "success"
)

// Op is one placed drawing operation. Y is the top of the line box.
type Op struct {
	Kind       OpKind
	Page       int
	Text       string
	X, Y       float64
	W, H       float64
	Size       float64
	Style      markup.Style
	Decoration Decoration
}

// State is the layout cursor. It is passed by value between steps.
type State struct {
	Page int
	Y    float64
}

// Result is the output of Paginate.
type Result struct {
	Ops   []Op
	Pages int
	// Height is the total vertical space consumed by content.
	Height float64
}

// Paginate lays blocks onto pages. Every page, including the last, is closed
// by an OpPageBreak, so the number of breaks equals the page count.
func Paginate(blocks []markup.Block, page Page, m Measurer) Result {
	if m == nil {
		m = ApproxMeasurer{}
	}
	e := engine{page: page, m: m}
	st := State{Page: 0, Y: page.Top()}
	var ops []Op
	height := 0.0

	for _, b := range blocks {
		var placed []Op
		var used float64
		st, placed, used = e.block(st, b)
		ops = append(ops, placed...)
		height += used
	}

	ops = append(ops, Op{Kind: OpPageBreak, Page: st.Page})
	return Result{Ops: ops, Pages: st.Page + 1, Height: height}
}

type engine struct {
	page Page
	m    Measurer
}

type segment struct {
	text  string
	style markup.Style
	width float64
}

type line struct {
	segments []segment
	width    float64
}

func (e engine) block(st State, b markup.Block) (State, []Op, float64) {
	before := st
	var ops []Op
	used := 0.0

	advance := func(dy float64) {
		st.Y += dy
		used += dy
	}

	switch b.Kind {
	case markup.KindRule:
		h := e.page.BaseLineHeight
		var brk []Op
		st, brk = e.ensureRoom(st, h)
		ops = append(ops, brk...)
		ops = append(ops, Op{
			Kind: OpRule,
			Page: st.Page,
			X:    e.page.MarginLeft,
			Y:    st.Y + h/2,
			W:    e.page.ContentWidth(),
		})
		advance(h)
		return st, ops, used

	case markup.KindHeader:
		font := FontFor(b)
		lh := e.page.lineHeight(font.Size)
		if st.Y > e.page.Top() {
			advance(lh * 0.5)
		}
		var lines []Op
		st, lines, used = e.flow(st, b, font, 0, DecorationNone, used)
		ops = append(ops, lines...)
		advance(lh * 0.25)
		return st, ops, used
	}

	font := FontFor(b)
	indent := 0.0
	deco := DecorationNone
	switch b.Kind {
	case markup.KindListItem:
		indent = listIndent * float64(b.Depth+1)
	case markup.KindBlockquote:
		indent = quoteIndent
		deco = DecorationQuote
	case markup.KindAdmonition:
		indent = quoteIndent
		deco = admonitionDecoration(b.Admonition)
	}

	var lines []Op
	st, lines, used = e.flow(st, b, font, indent, deco, used)
	ops = append(ops, lines...)

	gap := e.page.BaseLineHeight * 0.4
	if b.Kind == markup.KindListItem {
		gap = e.page.BaseLineHeight * 0.15
	}
	if st != before {
		advance(gap)
	}
	return st, ops, used
}

// flow wraps the block's spans and places each line, breaking pages as needed.
func (e engine) flow(st State, b markup.Block, font Font, indent float64, deco Decoration, used float64) (State, []Op, float64) {
	base := markup.Style(0)
	if font.Bold {
		base = markup.Bold
	}
	avail := e.page.ContentWidth() - indent
	if deco != DecorationNone {
		avail -= quotePad
	}
	lines := e.wrap(b.Spans, base, font.Size, avail)
	lh := e.page.lineHeight(font.Size)
	x0 := e.page.MarginLeft + indent
	if deco != DecorationNone {
		x0 += quotePad
	}

	var ops []Op
	for i, ln := range lines {
		var brk []Op
		st, brk = e.ensureRoom(st, lh)
		ops = append(ops, brk...)

		if deco != DecorationNone {
			ops = append(ops, Op{
				Kind:       OpBox,
				Page:       st.Page,
				X:          e.page.MarginLeft + indent - quotePad,
				Y:          st.Y,
				W:          avail + 2*quotePad,
				H:          lh,
				Decoration: deco,
			})
		}
		if i == 0 && b.Kind == markup.KindListItem {
			ops = append(ops, Op{
				Kind: OpText,
				Page: st.Page,
				Text: listGlyph(b),
				X:    e.page.MarginLeft + listIndent*float64(b.Depth),
				Y:    st.Y,
				Size: font.Size,
			})
		}

		x := x0
		for _, seg := range ln.segments {
			ops = append(ops, Op{
				Kind:       OpText,
				Page:       st.Page,
				Text:       seg.text,
				X:          x,
				Y:          st.Y,
				Size:       font.Size,
				Style:      seg.style,
				Decoration: deco,
			})
			x += seg.width
		}
		st.Y += lh
		used += lh
	}
	return st, ops, used
}

// ensureRoom closes the current page when a line of height h would cross the limit.
func (e engine) ensureRoom(st State, h float64) (State, []Op) {
	if st.Y+h <= e.page.Limit() || st.Y <= e.page.Top() {
		return st, nil
	}
	brk := Op{Kind: OpPageBreak, Page: st.Page}
	return State{Page: st.Page + 1, Y: e.page.Top()}, []Op{brk}
}

type word struct {
	text  string
	style markup.Style
	// glued words continue the previous word without a space
	glued bool
}

func splitWords(spans []markup.Span, base markup.Style) []word {
	var words []word
	prevEndedSpace := true
	for _, sp := range spans {
		style := sp.Style | base
		startsSpace := strings.HasPrefix(sp.Text, " ")
		fields := strings.Fields(sp.Text)
		for i, f := range fields {
			glued := i == 0 && !startsSpace && !prevEndedSpace
			words = append(words, word{text: f, style: style, glued: glued})
		}
		if len(sp.Text) > 0 {
			prevEndedSpace = strings.HasSuffix(sp.Text, " ")
		}
	}
	return words
}

// wrap is a greedy word wrap. A word wider than avail gets a line to itself.
func (e engine) wrap(spans []markup.Span, base markup.Style, size, avail float64) []line {
	words := splitWords(spans, base)
	var (
		lines []line
		cur   line
	)
	for _, w := range words {
		ww := e.m.Width(w.text, w.style, size)
		space := 0.0
		if len(cur.segments) > 0 && !w.glued {
			space = e.m.Width(" ", w.style, size)
		}
		if len(cur.segments) > 0 && cur.width+space+ww > avail && !w.glued {
			lines = append(lines, cur)
			cur = line{}
			space = 0
		}
		cur = appendWord(cur, w, ww, space)
	}
	if len(cur.segments) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

func appendWord(ln line, w word, ww, space float64) line {
	text := w.text
	width := ww
	if space > 0 {
		text = " " + text
		width += space
	}
	if n := len(ln.segments); n > 0 && ln.segments[n-1].style == w.style {
		ln.segments[n-1].text += text
		ln.segments[n-1].width += width
	} else {
		ln.segments = append(ln.segments, segment{text: text, style: w.style, width: width})
	}
	ln.width += width
	return ln
}

func listGlyph(b markup.Block) string {
	if b.List == markup.Numbered {
		return strconv.Itoa(b.Ordinal) + "."
	}
	return "•"
}

func admonitionDecoration(k markup.AdmonitionKind) Decoration {
	switch k {
	case markup.AdmonitionWarning:
		return DecorationWarning
	case markup.AdmonitionSuccess:
		return DecorationSuccess
	default:
		return DecorationInfo
	}
}
