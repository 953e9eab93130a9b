package render

import (
	"bytes"
	"context"
	"fmt"

	"funeral-docs-be/pkg/layout"
	"funeral-docs-be/pkg/markup"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/encoding/charmap"
)

const fontFamily = "Helvetica"

type rgb struct{ r, g, b int }

var decorationFill = map[layout.Decoration]rgb{
	layout.DecorationQuote:   {243, 244, 246},
	layout.DecorationInfo:    {226, 238, 252},
	layout.DecorationWarning: {254, 243, 220},
	layout.DecorationSuccess: {225, 245, 230},
}

var decorationBar = map[layout.Decoration]rgb{
	layout.DecorationQuote:   {156, 163, 175},
	layout.DecorationInfo:    {59, 130, 246},
	layout.DecorationWarning: {217, 119, 6},
	layout.DecorationSuccess: {22, 163, 74},
}

// DirectRenderer draws the paginated layout straight into a PDF with gofpdf.
type DirectRenderer struct {
	page layout.Page
}

var _ Renderer = (*DirectRenderer)(nil)

func NewDirectRenderer() *DirectRenderer {
	return &DirectRenderer{page: layout.Letter()}
}

func (d *DirectRenderer) Name() string { return NameDirect }

func (d *DirectRenderer) Render(ctx context.Context, src Source) (out []byte, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkEncodable(src); err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("direct render panic: %v", r)
		}
	}()

	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(d.page.MarginLeft, d.page.MarginTop, d.page.MarginRight)
	pdf.SetTitle(src.Title, true)
	pdf.SetSubject(src.Subject, true)
	pdf.SetCreator("funeral-docs", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	res := layout.Paginate(src.Blocks, d.page, &fpdfMeasurer{pdf: pdf, tr: tr})

	for i := 0; i < res.Pages; i++ {
		pdf.AddPage()
	}
	for _, op := range res.Ops {
		if op.Kind == layout.OpPageBreak {
			continue
		}
		pdf.SetPage(op.Page + 1)
		d.draw(pdf, tr, op)
	}

	// page totals are only known once layout is done
	for i := 1; i <= res.Pages; i++ {
		pdf.SetPage(i)
		d.stamp(pdf, tr, src.Meta, i, res.Pages)
	}

	if pdf.Err() {
		return nil, fmt.Errorf("direct render: %w", pdf.Error())
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("direct render output: %w", err)
	}
	return buf.Bytes(), nil
}

func (d *DirectRenderer) draw(pdf *gofpdf.Fpdf, tr func(string) string, op layout.Op) {
	switch op.Kind {
	case layout.OpRule:
		pdf.SetDrawColor(200, 200, 200)
		pdf.SetLineWidth(0.75)
		pdf.Line(op.X, op.Y, op.X+op.W, op.Y)

	case layout.OpBox:
		fill := decorationFill[op.Decoration]
		pdf.SetFillColor(fill.r, fill.g, fill.b)
		pdf.Rect(op.X, op.Y, op.W, op.H, "F")
		bar := decorationBar[op.Decoration]
		pdf.SetFillColor(bar.r, bar.g, bar.b)
		pdf.Rect(op.X, op.Y, 2.5, op.H, "F")

	case layout.OpText:
		pdf.SetFont(fontFamily, fontStyle(op.Style), op.Size)
		pdf.SetTextColor(17, 24, 39)
		baseline := op.Y + op.Size*1.05
		text := tr(op.Text)
		pdf.Text(op.X, baseline, text)

		if op.Style.Has(markup.Underline) || op.Style.Has(markup.Strike) {
			w := pdf.GetStringWidth(text)
			pdf.SetDrawColor(17, 24, 39)
			pdf.SetLineWidth(op.Size / 20)
			if op.Style.Has(markup.Underline) {
				pdf.Line(op.X, baseline+op.Size*0.15, op.X+w, baseline+op.Size*0.15)
			}
			if op.Style.Has(markup.Strike) {
				pdf.Line(op.X, baseline-op.Size*0.3, op.X+w, baseline-op.Size*0.3)
			}
		}
	}
}

func (d *DirectRenderer) stamp(pdf *gofpdf.Fpdf, tr func(string) string, meta Meta, page, total int) {
	width := d.page.ContentWidth()

	pdf.SetTextColor(17, 24, 39)
	pdf.SetFont(fontFamily, "B", 13)
	pdf.SetXY(d.page.MarginLeft, d.page.MarginTop)
	pdf.CellFormat(width, 16, tr(meta.Title), "", 0, "C", false, 0, "")

	sub := dateLine(meta)
	if meta.Subject != "" {
		sub = meta.Subject + "  |  " + sub
	}
	pdf.SetTextColor(107, 114, 128)
	pdf.SetFont(fontFamily, "", 9)
	pdf.SetXY(d.page.MarginLeft, d.page.MarginTop+16)
	pdf.CellFormat(width, 12, tr(sub), "", 0, "C", false, 0, "")

	pdf.SetDrawColor(209, 213, 219)
	pdf.SetLineWidth(0.5)
	lineY := d.page.MarginTop + d.page.HeaderHeight - 8
	pdf.Line(d.page.MarginLeft, lineY, d.page.MarginLeft+width, lineY)

	pdf.SetXY(d.page.MarginLeft, d.page.Limit()+14)
	pdf.CellFormat(width, 12, fmt.Sprintf("Page %d of %d", page, total), "", 0, "C", false, 0, "")
}

// checkEncodable fails when any text falls outside cp1252, the encoding of
// the core fonts. gofpdf would otherwise drop those runes silently.
func checkEncodable(src Source) error {
	enc := charmap.Windows1252.NewEncoder()
	texts := []string{src.Title, src.Subject}
	for _, b := range src.Blocks {
		texts = append(texts, b.Text())
	}
	for _, text := range texts {
		if _, err := enc.String(text); err != nil {
			return fmt.Errorf("direct render: %w: %q", ErrUnsupportedText, text)
		}
	}
	return nil
}

func fontStyle(s markup.Style) string {
	style := ""
	if s.Has(markup.Bold) {
		style += "B"
	}
	if s.Has(markup.Italic) {
		style += "I"
	}
	return style
}

// fpdfMeasurer measures with the core font metrics gofpdf embeds.
type fpdfMeasurer struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func (m *fpdfMeasurer) Width(text string, style markup.Style, size float64) float64 {
	m.pdf.SetFont(fontFamily, fontStyle(style), size)
	return m.pdf.GetStringWidth(m.tr(text))
}
