package render

import (
	"html"
	"strconv"
	"strings"

	"funeral-docs-be/pkg/markup"
)

const stylesheet = `@page { size: Letter; margin: 0.75in 0.75in 0.9in 0.75in; }
body { font-family: Helvetica, Arial, sans-serif; font-size: 11pt; line-height: 1.4; color: #111827; }
header.doc { text-align: center; border-bottom: 1px solid #d1d5db; margin-bottom: 16pt; padding-bottom: 6pt; }
header.doc h1 { font-size: 13pt; margin: 0; }
header.doc p { font-size: 9pt; color: #6b7280; margin: 2pt 0 0 0; }
h1 { font-size: 20pt; } h2 { font-size: 16pt; } h3 { font-size: 14pt; } h4 { font-size: 12pt; }
h1, h2, h3, h4 { margin: 0.5em 0 0.25em 0; }
p { margin: 0 0 0.4em 0; }
ul, ol { margin: 0 0 0.4em 0; padding-left: 18pt; }
hr { border: none; border-top: 1px solid #c8c8c8; margin: 8pt 0; }
blockquote { margin: 0 0 0.4em 0; padding: 4pt 8pt; background: #f3f4f6; border-left: 3px solid #9ca3af; }
.admonition { margin: 0 0 0.4em 0; padding: 6pt 8pt; border-left: 3px solid; }
.admonition.info { background: #e2eefc; border-color: #3b82f6; }
.admonition.warning { background: #fef3dc; border-color: #d97706; }
.admonition.success { background: #e1f5e6; border-color: #16a34a; }
`

// HTML writes a standalone, print-ready page for the engine backend.
func HTML(src Source) string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html><html><head><meta charset=\"utf-8\"><title>")
	sb.WriteString(html.EscapeString(src.Title))
	sb.WriteString("</title><style>")
	sb.WriteString(stylesheet)
	sb.WriteString("</style></head><body>")

	sb.WriteString(`<header class="doc"><h1>`)
	sb.WriteString(html.EscapeString(src.Title))
	sb.WriteString("</h1><p>")
	if src.Subject != "" {
		sb.WriteString(html.EscapeString(src.Subject))
		sb.WriteString(" | ")
	}
	sb.WriteString(html.EscapeString(dateLine(src.Meta)))
	sb.WriteString("</p></header>")

	writeBlocks(&sb, src.Blocks)
	sb.WriteString("</body></html>")
	return sb.String()
}

func writeBlocks(sb *strings.Builder, blocks []markup.Block) {
	var open []string // stack of open list tags
	closeTo := func(depth int) {
		for len(open) > depth {
			sb.WriteString("</" + open[len(open)-1] + ">")
			open = open[:len(open)-1]
		}
	}

	for _, b := range blocks {
		if b.Kind != markup.KindListItem {
			closeTo(0)
		}
		switch b.Kind {
		case markup.KindHeader:
			tag := "h" + strconv.Itoa(clampLevel(b.Level))
			sb.WriteString("<" + tag + ">")
			writeSpans(sb, b.Spans)
			sb.WriteString("</" + tag + ">")
		case markup.KindRule:
			sb.WriteString("<hr>")
		case markup.KindBlockquote:
			sb.WriteString("<blockquote>")
			writeSpans(sb, b.Spans)
			sb.WriteString("</blockquote>")
		case markup.KindAdmonition:
			sb.WriteString(`<div class="admonition ` + string(b.Admonition) + `">`)
			writeSpans(sb, b.Spans)
			sb.WriteString("</div>")
		case markup.KindListItem:
			tag := "ul"
			if b.List == markup.Numbered {
				tag = "ol"
			}
			closeTo(b.Depth + 1)
			if len(open) == b.Depth+1 && open[b.Depth] != tag {
				closeTo(b.Depth)
			}
			for len(open) < b.Depth+1 {
				if b.List == markup.Numbered && len(open) == b.Depth {
					sb.WriteString(`<ol start="` + strconv.Itoa(max(b.Ordinal, 1)) + `">`)
				} else {
					sb.WriteString("<" + tag + ">")
				}
				open = append(open, tag)
			}
			sb.WriteString("<li>")
			writeSpans(sb, b.Spans)
			sb.WriteString("</li>")
		default:
			sb.WriteString("<p>")
			writeSpans(sb, b.Spans)
			sb.WriteString("</p>")
		}
	}
	closeTo(0)
}

func writeSpans(sb *strings.Builder, spans []markup.Span) {
	for _, s := range spans {
		var tags []string
		if s.Style.Has(markup.Bold) {
			tags = append(tags, "strong")
		}
		if s.Style.Has(markup.Italic) {
			tags = append(tags, "em")
		}
		if s.Style.Has(markup.Underline) {
			tags = append(tags, "u")
		}
		if s.Style.Has(markup.Strike) {
			tags = append(tags, "s")
		}
		for _, t := range tags {
			sb.WriteString("<" + t + ">")
		}
		sb.WriteString(html.EscapeString(s.Text))
		for i := len(tags) - 1; i >= 0; i-- {
			sb.WriteString("</" + tags[i] + ">")
		}
	}
}

func clampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > 4 {
		return 4
	}
	return level
}
