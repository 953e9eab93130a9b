package render

import (
	"context"
	"errors"
	"time"

	"funeral-docs-be/pkg/markup"
)

const (
	NameDirect = "direct"
	NameEngine = "engine"
)

var ErrEmptyOutput = errors.New("renderer produced no output")

// ErrUnsupportedText reports characters the core PDF fonts cannot draw.
var ErrUnsupportedText = errors.New("text has characters outside the core font encoding")

// Meta is the running header stamped on every page.
type Meta struct {
	Title   string
	Subject string
	Date    time.Time
}

// Source is a parsed document ready to be rendered.
type Source struct {
	Meta
	Blocks []markup.Block
}

// Renderer turns a parsed document into PDF bytes.
type Renderer interface {
	Name() string
	Render(ctx context.Context, src Source) ([]byte, error)
}

// FromText parses markup text and renders it. Both the LLM flow and the
// edit flow go through here.
func FromText(ctx context.Context, r Renderer, meta Meta, text string) ([]byte, error) {
	blocks := markup.Parse(markup.Normalize(text))
	out, err := r.Render(ctx, Source{Meta: meta, Blocks: blocks})
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrEmptyOutput
	}
	return out, nil
}

func dateLine(m Meta) string {
	d := m.Date
	if d.IsZero() {
		d = time.Now()
	}
	return "Generated " + d.Format("January 2, 2006")
}
