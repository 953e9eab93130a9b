package markup

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	fenceStartRe = regexp.MustCompile("^```[a-zA-Z]*\\s*\n")
	fenceEndRe   = regexp.MustCompile("\n?```\\s*$")
	blankRunRe   = regexp.MustCompile(`\n{3,}`)
)

// Normalize cleans model output before parsing: unifies line endings,
// strips a wrapping code fence and collapses long blank runs.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = fenceStartRe.ReplaceAllString(text, "")
		text = fenceEndRe.ReplaceAllString(text, "")
		text = strings.TrimSpace(text)
	}
	return blankRunRe.ReplaceAllString(text, "\n\n")
}

// Source writes blocks back to markup. Parsing the result yields the same
// block structure, which is what edit and re-render flows rely on.
func Source(blocks []Block) string {
	var sb strings.Builder
	for i, b := range blocks {
		if i > 0 {
			// consecutive list items stay in one list
			if b.Kind == KindListItem && blocks[i-1].Kind == KindListItem {
				sb.WriteString("\n")
			} else {
				sb.WriteString("\n\n")
			}
		}
		writeBlock(&sb, b)
	}
	return sb.String()
}

func writeBlock(sb *strings.Builder, b Block) {
	switch b.Kind {
	case KindHeader:
		level := b.Level
		if level < 1 {
			level = 1
		}
		sb.WriteString(strings.Repeat("#", level))
		if text := SpansSource(b.Spans); text != "" {
			sb.WriteString(" ")
			sb.WriteString(text)
		}
	case KindRule:
		sb.WriteString("---")
	case KindListItem:
		sb.WriteString(strings.Repeat("  ", b.Depth))
		if b.List == Numbered {
			ordinal := b.Ordinal
			if ordinal < 1 {
				ordinal = 1
			}
			sb.WriteString(strconv.Itoa(ordinal))
			sb.WriteString(". ")
		} else {
			sb.WriteString("- ")
		}
		sb.WriteString(SpansSource(b.Spans))
	case KindBlockquote:
		sb.WriteString("> ")
		sb.WriteString(SpansSource(b.Spans))
	case KindAdmonition:
		sb.WriteString("> [!")
		sb.WriteString(strings.ToUpper(string(b.Admonition)))
		sb.WriteString("]")
		if text := SpansSource(b.Spans); text != "" {
			sb.WriteString(" ")
			sb.WriteString(text)
		}
	default:
		sb.WriteString(SpansSource(b.Spans))
	}
}

// SpansSource writes spans with their inline delimiters.
func SpansSource(spans []Span) string {
	var sb strings.Builder
	for _, s := range spans {
		open, close := delimitersFor(s.Style)
		sb.WriteString(open)
		sb.WriteString(s.Text)
		sb.WriteString(close)
	}
	return sb.String()
}

func delimitersFor(st Style) (string, string) {
	var open, close string
	if st.Has(Strike) {
		open += "~~"
		close = "~~" + close
	}
	if st.Has(Underline) {
		open += "__"
		close = "__" + close
	}
	switch {
	case st.Has(Bold) && st.Has(Italic):
		open += "***"
		close = "***" + close
	case st.Has(Bold):
		open += "**"
		close = "**" + close
	case st.Has(Italic):
		open += "*"
		close = "*" + close
	}
	return open, close
}

// PlainText is the stored mirror of a document body: canonical markup that
// parses back to the same blocks.
func PlainText(blocks []Block) string {
	return Source(blocks)
}

// Canonical parses text and returns its plain-text mirror.
func Canonical(text string) string {
	return PlainText(Parse(Normalize(text)))
}
