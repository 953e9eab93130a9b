package layout

import "funeral-docs-be/pkg/markup"

// Page describes the printable geometry in points.
type Page struct {
	Width        float64
	Height       float64
	MarginTop    float64
	MarginBottom float64
	MarginLeft   float64
	MarginRight  float64
	// HeaderHeight is reserved below the top margin for the running header.
	HeaderHeight float64
	// BaseLineHeight is the line height of body text; other sizes scale from it.
	BaseLineHeight float64
}

// Letter is US Letter with 0.75in margins.
func Letter() Page {
	return Page{
		Width:          612,
		Height:         792,
		MarginTop:      54,
		MarginBottom:   54,
		MarginLeft:     54,
		MarginRight:    54,
		HeaderHeight:   44,
		BaseLineHeight: 15.4,
	}
}

func (p Page) ContentWidth() float64 {
	return p.Width - p.MarginLeft - p.MarginRight
}

// Top is where the cursor starts on every page.
func (p Page) Top() float64 {
	return p.MarginTop + p.HeaderHeight
}

// Limit is the lowest y any line may reach.
func (p Page) Limit() float64 {
	return p.Height - p.MarginBottom
}

// Usable is the vertical space available for content on one page.
func (p Page) Usable() float64 {
	return p.Limit() - p.Top()
}

const (
	BodySize    = 11.0
	listIndent  = 18.0
	quoteIndent = 12.0
	quotePad    = 6.0
)

// Font is the resolved size and weight for a block.
type Font struct {
	Size float64
	Bold bool
}

// FontFor maps a block to its size from the static header table.
func FontFor(b markup.Block) Font {
	if b.Kind != markup.KindHeader {
		return Font{Size: BodySize}
	}
	switch b.Level {
	case 1:
		return Font{Size: 20, Bold: true}
	case 2:
		return Font{Size: 16, Bold: true}
	case 3:
		return Font{Size: 14, Bold: true}
	default:
		return Font{Size: 12, Bold: true}
	}
}

func (p Page) lineHeight(size float64) float64 {
	return p.BaseLineHeight * size / BodySize
}
