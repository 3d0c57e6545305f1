package slidedeck

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/afero"

	"github.com/alnah/go-slidedeck/internal/assets"
)

// defaultTimeout bounds page load and printing of a whole deck.
const defaultTimeout = 60 * time.Second

// Option configures a Builder.
type Option func(*Builder)

// builderConfig holds internal configuration for Builder.
type builderConfig struct {
	timeout   time.Duration
	assetPath string
	styleName string
	extraCSS  string
}

// WithTimeout sets the browser timeout for loading and printing the deck.
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("slidedeck: WithTimeout duration must be positive")
	}
	return func(b *Builder) {
		b.cfg.timeout = d
	}
}

// WithAssetPath sets a directory whose styles/ and images/ override the
// embedded assets.
func WithAssetPath(path string) Option {
	return func(b *Builder) {
		b.cfg.assetPath = path
	}
}

// WithStyleName selects the stylesheet by name (default "deck").
func WithStyleName(name string) Option {
	return func(b *Builder) {
		b.cfg.styleName = name
	}
}

// WithCSS appends CSS after the stylesheet.
func WithCSS(css string) Option {
	return func(b *Builder) {
		b.cfg.extraCSS = css
	}
}

// Builder renders decks to HTML and PDF.
// Create with NewBuilder, use Build, and Close when done.
type Builder struct {
	cfg         builderConfig
	assetLoader assets.Loader
	printer     pagePrinter
	now         func() time.Time
	baseCSS     string
}

// NewBuilder creates a Builder with the embedded stylesheet.
// Returns error if the asset path or the stylesheet cannot be loaded.
func NewBuilder(opts ...Option) (*Builder, error) {
	b := &Builder{
		cfg: builderConfig{
			timeout:   defaultTimeout,
			styleName: assets.DefaultStyleName,
		},
		now: time.Now,
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.assetLoader == nil {
		resolver, err := assets.NewResolver(afero.NewOsFs(), b.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		b.assetLoader = resolver
	}

	css, err := b.assetLoader.LoadStyle(b.cfg.styleName)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrStyleNotFound, b.cfg.styleName, err)
	}
	b.baseCSS = css
	if b.cfg.extraCSS != "" {
		b.baseCSS += "\n" + b.cfg.extraCSS
	}

	// Create PDF converter if not injected (e.g., by tests)
	if b.printer == nil {
		b.printer = newChromePrinter(b.cfg.timeout)
	}

	return b, nil
}

// LoadImage returns an Image element source from the builder's assets.
func (b *Builder) LoadImage(name string) (*assets.Image, error) {
	return b.assetLoader.LoadImage(name)
}

// RenderHTML renders the deck as a standalone HTML document.
func (b *Builder) RenderHTML(deck *Deck, st *Style, title string) (string, error) {
	if deck.Len() == 0 {
		return "", ErrEmptyDeck
	}
	if err := st.Validate(); err != nil {
		return "", err
	}
	return newHTMLRenderer(st, b.baseCSS).render(deck, title)
}

// Build renders the deck to PDF, one page per slide, and stamps the
// metadata into the document information dictionary.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (b *Builder) Build(ctx context.Context, deck *Deck, st *Style, meta Metadata) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := meta.Validate(); err != nil {
		return nil, err
	}

	htmlContent, err := b.RenderHTML(deck, st, meta.Title)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdf, err := b.printer.Print(ctx, htmlContent, &paperSize{
		WidthInches:  st.PageWidth,
		HeightInches: st.PageHeight,
	})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}

	stamped, err := stampInfo(pdf, meta, b.now())
	if err != nil {
		return nil, err
	}

	pages := countPages(pdf)
	if pages == 0 {
		pages = deck.Len()
	}
	return &Result{
		HTML:   []byte(htmlContent),
		PDF:    stamped,
		Pages:  pages,
		Slides: deck.Len(),
	}, nil
}

// Close releases resources (headless Chrome browser).
func (b *Builder) Close() error {
	if b.printer != nil {
		return b.printer.Close()
	}
	return nil
}
