package slidedeck

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-slidedeck/internal/fileutil"
	"github.com/alnah/go-slidedeck/internal/hints"
	"github.com/alnah/go-slidedeck/internal/process"
)

// pagePrinter prints a rendered deck document to PDF.
type pagePrinter interface {
	Print(ctx context.Context, htmlContent string, size *paperSize) ([]byte, error)
	Close() error
}

// fileRenderer prints an HTML file already on disk. Tests replace it to run
// without a browser.
type fileRenderer interface {
	PrintFile(ctx context.Context, filePath string, size *paperSize) ([]byte, error)
	Close() error
}

var (
	_ pagePrinter  = (*chromePrinter)(nil)
	_ fileRenderer = (*chromeRenderer)(nil)
)

// paperSize is the page size of the printed deck, in inches.
type paperSize struct {
	WidthInches  float64
	HeightInches float64
}

// fontsReadyScript resolves once every @font-face in the page has loaded.
const fontsReadyScript = `() => document.fonts.ready.then(() => true)`

// chromeRenderer drives one headless Chrome through rod. The browser starts
// on first use; rod downloads Chromium when none is installed.
type chromeRenderer struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
}

func newChromeRenderer(timeout time.Duration) *chromeRenderer {
	return &chromeRenderer{timeout: timeout}
}

// newLauncher honors ROD_BROWSER_BIN and turns the sandbox off where
// Chrome cannot create one.
func newLauncher() *launcher.Launcher {
	l := launcher.New()
	bin := os.Getenv("ROD_BROWSER_BIN")
	if bin != "" {
		l = l.Bin(bin)
	}
	if bin != "" || os.Getenv("ROD_NO_SANDBOX") == "1" || hints.InCI() || hints.IsInContainer() {
		l = l.NoSandbox(true)
	}
	return l
}

func (r *chromeRenderer) start() error {
	if r.browser != nil {
		return nil
	}

	l := newLauncher()
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.launcher = l

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		r.reap()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.browser = browser
	return nil
}

// Close shuts the browser down and kills what is left of its process tree.
func (r *chromeRenderer) Close() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	r.reap()
	return err
}

func (r *chromeRenderer) reap() {
	if r.launcher == nil {
		return
	}
	if pid := r.launcher.PID(); pid > 0 {
		process.KillProcessGroup(pid)
	}
	r.launcher.Kill()
	r.launcher.Cleanup()
	r.launcher = nil
}

// pageTimeout is the time left before ctx expires, or fallback when ctx has
// no deadline.
func pageTimeout(ctx context.Context, fallback time.Duration) (time.Duration, error) {
	deadline, ok := ctx.Deadline()
	if !ok {
		return fallback, nil
	}
	left := time.Until(deadline)
	if left <= 0 {
		return 0, context.DeadlineExceeded
	}
	return left, nil
}

// PrintFile loads filePath, waits for its fonts and prints one PDF page per
// slide.
func (r *chromeRenderer) PrintFile(ctx context.Context, filePath string, size *paperSize) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	timeout, err := pageTimeout(ctx, r.timeout)
	if err != nil {
		return nil, err
	}
	if err := r.start(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	p := page.Context(ctx).Timeout(timeout)
	if err := p.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if _, err := p.Eval(fontsReadyScript); err != nil {
		return nil, fmt.Errorf("%w: waiting for fonts: %v", ErrPageLoad, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stream, err := p.PDF(printParams(size))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	pdf, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return pdf, nil
}

// printParams sets the paper to the slide size with no margins, so each
// <section class="slide"> fills exactly one page.
func printParams(size *paperSize) *proto.PagePrintToPDF {
	width, height := DefaultPageWidth, DefaultPageHeight
	if size != nil && size.WidthInches > 0 && size.HeightInches > 0 {
		width, height = size.WidthInches, size.HeightInches
	}
	zero := 0.0
	return &proto.PagePrintToPDF{
		PaperWidth:        &width,
		PaperHeight:       &height,
		MarginTop:         &zero,
		MarginBottom:      &zero,
		MarginLeft:        &zero,
		MarginRight:       &zero,
		PrintBackground:   true,
		PreferCSSPageSize: true,
	}
}

// chromePrinter hands the document to the renderer through a temporary
// file. A file:// URL lets the page load fonts from local paths.
type chromePrinter struct {
	renderer fileRenderer
}

func newChromePrinter(timeout time.Duration) *chromePrinter {
	return &chromePrinter{renderer: newChromeRenderer(timeout)}
}

// Print renders htmlContent to PDF.
func (c *chromePrinter) Print(ctx context.Context, htmlContent string, size *paperSize) ([]byte, error) {
	path, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()
	return c.renderer.PrintFile(ctx, path, size)
}

// Close releases the browser.
func (c *chromePrinter) Close() error {
	if c.renderer == nil {
		return nil
	}
	return c.renderer.Close()
}
