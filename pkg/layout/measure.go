package layout

import "funeral-docs-be/pkg/markup"

// Measurer reports the rendered width of text in points.
type Measurer interface {
	Width(text string, style markup.Style, size float64) float64
}

// ApproxMeasurer estimates Helvetica widths without loading font metrics.
// It is used where the final engine does its own line breaking.
type ApproxMeasurer struct{}

func (ApproxMeasurer) Width(text string, style markup.Style, size float64) float64 {
	em := 0.0
	for _, r := range text {
		em += runeWidth(r)
	}
	if style.Has(markup.Bold) {
		em *= 1.06
	}
	return em * size
}

func runeWidth(r rune) float64 {
	switch {
	case r == ' ':
		return 0.278
	case r == 'i' || r == 'j' || r == 'l' || r == '.' || r == ',' || r == '\'' || r == '|' || r == '!' || r == ':' || r == ';':
		return 0.25
	case r == 'f' || r == 't' || r == 'r' || r == '(' || r == ')' || r == '-':
		return 0.333
	case r == 'm' || r == 'w':
		return 0.833
	case r == 'M' || r == 'W':
		return 0.9
	case r >= 'A' && r <= 'Z':
		return 0.667
	case r >= '0' && r <= '9':
		return 0.556
	default:
		return 0.52
	}
}
