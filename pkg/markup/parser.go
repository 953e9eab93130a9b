package markup

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	headerRe     = regexp.MustCompile(`^(#{1,6})\s*(.*)$`)
	ruleRe       = regexp.MustCompile(`^(-{3,}|_{3,})$`)
	bulletRe     = regexp.MustCompile(`^(\s*)[-*+]\s+(.*)$`)
	numberedRe   = regexp.MustCompile(`^(\s*)(\d+)[.)]\s+(.*)$`)
	quoteRe      = regexp.MustCompile(`^\s*>\s?(.*)$`)
	calloutRe    = regexp.MustCompile(`(?i)^\[!(info|note|tip|important|warning|caution|danger|success|check)\]\s*(.*)$`)
	fenceOpenRe  = regexp.MustCompile(`(?i)^:::\s*(info|note|tip|warning|caution|danger|success)\s*$`)
	fenceCloseRe = regexp.MustCompile(`^:::\s*$`)
)

const maxListDepth = 4

// Parser turns the document markup dialect into blocks.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse is shorthand for NewParser().Parse(text).
func Parse(text string) []Block {
	return NewParser().Parse(text)
}

// Parse never fails: anything it does not recognise becomes paragraph text.
func (p *Parser) Parse(text string) []Block {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")

	var (
		blocks []Block
		para   []string
		quote  []string
		// current quote/admonition accumulation
		quoteKind  Kind
		admonition AdmonitionKind
		fenced     bool
	)

	flushPara := func() {
		if len(para) == 0 {
			return
		}
		joined := strings.Join(para, " ")
		para = nil
		if spans := ParseInline(joined); len(spans) > 0 {
			blocks = append(blocks, Block{Kind: KindParagraph, Spans: spans})
		}
	}
	flushQuote := func() {
		if quote == nil {
			return
		}
		joined := strings.TrimSpace(strings.Join(quote, " "))
		quote = nil
		spans := ParseInline(joined)
		if quoteKind == KindAdmonition {
			blocks = append(blocks, Block{Kind: KindAdmonition, Admonition: admonition, Spans: spans})
		} else if len(spans) > 0 {
			blocks = append(blocks, Block{Kind: KindBlockquote, Spans: spans})
		}
	}

	for _, raw := range lines {
		line := strings.TrimRight(raw, " \t")
		trimmed := strings.TrimSpace(line)

		if fenced {
			if fenceCloseRe.MatchString(trimmed) {
				flushQuote()
				fenced = false
				continue
			}
			if trimmed != "" {
				quote = append(quote, trimmed)
			}
			continue
		}

		if trimmed == "" {
			flushPara()
			flushQuote()
			continue
		}

		if m := fenceOpenRe.FindStringSubmatch(trimmed); m != nil {
			flushPara()
			flushQuote()
			fenced = true
			quoteKind = KindAdmonition
			admonition = admonitionKind(m[1])
			quote = []string{}
			continue
		}

		if m := quoteRe.FindStringSubmatch(line); m != nil {
			flushPara()
			body := strings.TrimSpace(m[1])
			if c := calloutRe.FindStringSubmatch(body); c != nil {
				flushQuote()
				quoteKind = KindAdmonition
				admonition = admonitionKind(c[1])
				quote = []string{}
				if c[2] != "" {
					quote = append(quote, c[2])
				}
				continue
			}
			if quote == nil {
				quoteKind = KindBlockquote
				quote = []string{}
			}
			if body != "" {
				quote = append(quote, body)
			}
			continue
		}
		flushQuote()

		if ruleRe.MatchString(trimmed) {
			flushPara()
			blocks = append(blocks, Block{Kind: KindRule})
			continue
		}

		if m := headerRe.FindStringSubmatch(trimmed); m != nil {
			flushPara()
			level := len(m[1])
			if level > 4 {
				level = 4
			}
			blocks = append(blocks, Block{
				Kind:  KindHeader,
				Level: level,
				Spans: ParseInline(strings.TrimSpace(strings.TrimRight(m[2], "#"))),
			})
			continue
		}

		if m := numberedRe.FindStringSubmatch(line); m != nil {
			flushPara()
			ordinal, err := strconv.Atoi(m[2])
			if err != nil {
				ordinal = 1
			}
			blocks = append(blocks, Block{
				Kind:    KindListItem,
				List:    Numbered,
				Ordinal: ordinal,
				Depth:   listDepth(m[1]),
				Spans:   ParseInline(strings.TrimSpace(m[3])),
			})
			continue
		}

		if m := bulletRe.FindStringSubmatch(line); m != nil {
			flushPara()
			blocks = append(blocks, Block{
				Kind:  KindListItem,
				List:  Bulleted,
				Depth: listDepth(m[1]),
				Spans: ParseInline(strings.TrimSpace(m[2])),
			})
			continue
		}

		para = append(para, trimmed)
	}

	flushPara()
	flushQuote()
	return blocks
}

func listDepth(indent string) int {
	width := 0
	for _, r := range indent {
		if r == '\t' {
			width += 4
		} else {
			width++
		}
	}
	depth := width / 2
	if depth > maxListDepth {
		depth = maxListDepth
	}
	return depth
}

func admonitionKind(tag string) AdmonitionKind {
	switch strings.ToLower(tag) {
	case "warning", "caution", "danger", "important":
		return AdmonitionWarning
	case "success", "check", "tip":
		return AdmonitionSuccess
	default:
		return AdmonitionInfo
	}
}

type delimiter struct {
	token string
	style Style
}

// Longer delimiters are tried first so ** never reads as two italics.
var delimiters = []delimiter{
	{"***", Bold | Italic},
	{"**", Bold},
	{"__", Underline},
	{"~~", Strike},
	{"*", Italic},
}

// ParseInline splits text into styled spans. Unmatched delimiters stay literal.
func ParseInline(text string) []Span {
	return mergeSpans(parseInline(text, 0))
}

func parseInline(text string, base Style) []Span {
	var (
		spans []Span
		plain strings.Builder
	)
	flush := func() {
		if plain.Len() > 0 {
			spans = append(spans, Span{Text: plain.String(), Style: base})
			plain.Reset()
		}
	}

	var stars []int
	if strings.IndexByte(text, '*') >= 0 {
		stars = loneStars(text)
	}
	// A token missing after one position is missing after every later one.
	missing := make(map[string]bool, len(delimiters))

	i := 0
	for i < len(text) {
		matched := false
		for _, d := range delimiters {
			if missing[d.token] || !strings.HasPrefix(text[i:], d.token) {
				continue
			}
			start := i + len(d.token)
			end := -1
			if d.token == "*" {
				// an italic opener never sits inside a run of stars
				if start < len(text) && text[start] != '*' {
					if next := stars[start]; next >= 0 {
						end = next - start
					}
				}
			} else if end = strings.Index(text[start:], d.token); end < 0 {
				missing[d.token] = true
			}
			if end <= 0 {
				continue
			}
			flush()
			spans = append(spans, parseInline(text[start:start+end], base|d.style)...)
			i = start + end + len(d.token)
			matched = true
			break
		}
		if matched {
			continue
		}
		plain.WriteByte(text[i])
		i++
	}
	flush()
	return spans
}

// loneStars returns, for every position, the index of the first '*' at or
// after it that can close an italic span, or -1. Runs of "**" are skipped
// in pairs so italic text may contain bold text.
func loneStars(text string) []int {
	next := make([]int, len(text)+2)
	next[len(text)], next[len(text)+1] = -1, -1
	for j := len(text) - 1; j >= 0; j-- {
		switch {
		case text[j] != '*':
			next[j] = next[j+1]
		case j+1 < len(text) && text[j+1] == '*':
			next[j] = next[j+2]
		default:
			next[j] = j
		}
	}
	return next
}

func mergeSpans(spans []Span) []Span {
	out := make([]Span, 0, len(spans))
	for _, s := range spans {
		if s.Text == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Style == s.Style {
			out[n-1].Text += s.Text
			continue
		}
		out = append(out, s)
	}
	return out
}
