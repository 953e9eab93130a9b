package render

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// EngineRenderer prints the HTML rendition through headless Chrome.
// The browser is started on first use and shared until Close.
type EngineRenderer struct {
	bin     string
	timeout time.Duration

	mu      sync.Mutex
	browser *rod.Browser
}

var _ Renderer = (*EngineRenderer)(nil)

// NewEngineRenderer uses the Chrome binary at bin, or lets rod resolve one
// when bin is empty.
func NewEngineRenderer(bin string, timeout time.Duration) *EngineRenderer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &EngineRenderer{bin: bin, timeout: timeout}
}

func (e *EngineRenderer) Name() string { return NameEngine }

func (e *EngineRenderer) Render(ctx context.Context, src Source) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	browser, err := e.connect()
	if err != nil {
		return nil, err
	}

	page, err := browser.Context(ctx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	defer page.Close()

	if err := page.SetDocumentContent(HTML(src)); err != nil {
		return nil, fmt.Errorf("set content: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait load: %w", err)
	}

	stream, err := page.PDF(&proto.PagePrintToPDF{
		PaperWidth:          floatPtr(8.5),
		PaperHeight:         floatPtr(11),
		MarginTop:           floatPtr(0),
		MarginBottom:        floatPtr(0.5),
		MarginLeft:          floatPtr(0),
		MarginRight:         floatPtr(0),
		PrintBackground:     true,
		PreferCSSPageSize:   true,
		DisplayHeaderFooter: true,
		HeaderTemplate:      "<span></span>",
		FooterTemplate: `<div style="font-size:8pt;color:#6b7280;width:100%;text-align:center;">` +
			`Page <span class="pageNumber"></span> of <span class="totalPages"></span></div>`,
	})
	if err != nil {
		return nil, fmt.Errorf("print pdf: %w", err)
	}
	return io.ReadAll(stream)
}

func (e *EngineRenderer) connect() (*rod.Browser, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.browser != nil {
		return e.browser, nil
	}

	l := launcher.New().Headless(true).NoSandbox(true)
	if e.bin != "" {
		l = l.Bin(e.bin)
	}
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chrome: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect chrome: %w", err)
	}
	e.browser = browser
	return browser, nil
}

// Close shuts the shared browser down.
func (e *EngineRenderer) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.browser == nil {
		return nil
	}
	err := e.browser.Close()
	e.browser = nil
	return err
}

func floatPtr(v float64) *float64 { return &v }
