package markup

// Style is a bitmask of inline text formats.
type Style uint8

const (
	Bold Style = 1 << iota
	Italic
	Underline
	Strike
)

func (s Style) Has(f Style) bool {
	return s&f != 0
}

// Span is a run of text sharing one inline style.
type Span struct {
	Text  string
	Style Style
}

// Kind identifies a block-level token.
type Kind int

const (
	KindParagraph Kind = iota
	KindHeader
	KindListItem
	KindBlockquote
	KindRule
	KindAdmonition
)

func (k Kind) String() string {
	switch k {
	case KindParagraph:
		return "paragraph"
	case KindHeader:
		return "header"
	case KindListItem:
		return "list_item"
	case KindBlockquote:
		return "blockquote"
	case KindRule:
		return "rule"
	case KindAdmonition:
		return "admonition"
	}
	return "unknown"
}

type ListKind int

const (
	Bulleted ListKind = iota
	Numbered
)

type AdmonitionKind string

const (
	AdmonitionInfo    AdmonitionKind = "info"
	AdmonitionWarning AdmonitionKind = "warning"
	AdmonitionSuccess AdmonitionKind = "success"
)

// Block is one block-level token. Only the fields relevant to Kind are set.
type Block struct {
	Kind       Kind
	Level      int // header level 1-4
	List       ListKind
	Ordinal    int // numbered list ordinal
	Depth      int // list nesting depth, 0 for top level
	Admonition AdmonitionKind
	Spans      []Span
}

// Text returns the block's text without inline formatting.
func (b Block) Text() string {
	return SpansText(b.Spans)
}

// SpansText concatenates span texts.
func SpansText(spans []Span) string {
	n := 0
	for _, s := range spans {
		n += len(s.Text)
	}
	buf := make([]byte, 0, n)
	for _, s := range spans {
		buf = append(buf, s.Text...)
	}
	return string(buf)
}
