package lexical

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Converter turns editor JSON into the document markup dialect.
type Converter struct{}

func NewConverter() *Converter {
	return &Converter{}
}

// Convert decodes an editor state and writes it as markup.
func (c *Converter) Convert(state string) (string, error) {
	var root EditorState
	if err := json.Unmarshal([]byte(state), &root); err != nil {
		return "", fmt.Errorf("parse editor state: %w", err)
	}
	if root.Root.Type != "root" {
		return "", fmt.Errorf("parse editor state: missing root node")
	}

	var sb strings.Builder
	for _, child := range root.Root.Children {
		c.block(child, &sb)
	}
	return strings.TrimSpace(sb.String()), nil
}

// ToMarkup converts content that decodes as an editor state and returns
// anything else unchanged.
func ToMarkup(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "{") {
		return content
	}
	md, err := NewConverter().Convert(trimmed)
	if err != nil {
		return content
	}
	return md
}

func (c *Converter) block(node Node, sb *strings.Builder) {
	switch node.Type {
	case "paragraph":
		c.inline(node.Children, sb)
		sb.WriteString("\n\n")

	case "heading":
		level := 1
		if len(node.Tag) == 2 && node.Tag[0] == 'h' && node.Tag[1] >= '1' && node.Tag[1] <= '6' {
			level = int(node.Tag[1] - '0')
		}
		sb.WriteString(strings.Repeat("#", level) + " ")
		c.inline(node.Children, sb)
		sb.WriteString("\n\n")

	case "quote":
		sb.WriteString("> ")
		c.inline(node.Children, sb)
		sb.WriteString("\n\n")

	case "list":
		c.list(node, sb, 0)
		sb.WriteString("\n")

	case "horizontalrule":
		sb.WriteString("---\n\n")

	case "table":
		c.table(node, sb)

	default:
		for _, child := range node.Children {
			c.block(child, sb)
		}
	}
}

func (c *Converter) inline(nodes []Node, sb *strings.Builder) {
	for _, node := range nodes {
		switch node.Type {
		case "text":
			c.text(node, sb)
		case "linebreak":
			sb.WriteString(" ")
		case "link", "autolink":
			// Links keep their text only; the PDF has nowhere to click.
			c.inline(node.Children, sb)
		default:
			c.inline(node.Children, sb)
		}
	}
}

func (c *Converter) text(node Node, sb *strings.Builder) {
	format := 0
	switch f := node.Format.(type) {
	case float64:
		format = int(f)
	case int:
		format = f
	}

	var open []string
	if format&FormatBold != 0 {
		open = append(open, "**")
	}
	if format&FormatItalic != 0 {
		open = append(open, "*")
	}
	if format&FormatUnderline != 0 {
		open = append(open, "__")
	}
	if format&FormatStrikethrough != 0 {
		open = append(open, "~~")
	}

	for _, d := range open {
		sb.WriteString(d)
	}
	sb.WriteString(node.Text)
	for i := len(open) - 1; i >= 0; i-- {
		sb.WriteString(open[i])
	}
}

func (c *Converter) list(node Node, sb *strings.Builder, depth int) {
	index := 1
	if node.Start > 0 {
		index = node.Start
	}

	for _, item := range node.Children {
		if item.Type != "listitem" {
			continue
		}

		var content []Node
		var nested []Node
		for _, child := range item.Children {
			if child.Type == "list" {
				nested = append(nested, child)
			} else {
				content = append(content, child)
			}
		}

		// Items that only wrap a nested list carry no marker of their own.
		if len(content) > 0 {
			sb.WriteString(strings.Repeat("  ", depth))
			switch node.ListType {
			case "number":
				fmt.Fprintf(sb, "%d. ", index)
				index++
			case "check":
				if item.Checked {
					sb.WriteString("- [x] ")
				} else {
					sb.WriteString("- [ ] ")
				}
			default:
				sb.WriteString("- ")
			}
			c.inline(content, sb)
			sb.WriteString("\n")
		}
		for _, n := range nested {
			c.list(n, sb, depth+1)
		}
	}
}

// table has no markup counterpart, so each row becomes a paragraph with
// cells separated by " | ".
func (c *Converter) table(node Node, sb *strings.Builder) {
	for _, row := range node.Children {
		if row.Type != "tablerow" {
			continue
		}
		cells := make([]string, 0, len(row.Children))
		for _, cell := range row.Children {
			var cellSb strings.Builder
			for _, content := range cell.Children {
				c.inline(content.Children, &cellSb)
			}
			cells = append(cells, strings.TrimSpace(cellSb.String()))
		}
		sb.WriteString(strings.Join(cells, " | "))
		sb.WriteString("\n\n")
	}
}
