package talk

import (
	"context"
	"strings"
	"time"

	slidedeck "github.com/alnah/go-slidedeck"
	"github.com/alnah/go-slidedeck/internal/assets"
	"github.com/alnah/go-slidedeck/internal/logo"
	"github.com/alnah/go-slidedeck/internal/timeline"
	"github.com/alnah/go-slidedeck/internal/vcs"
)

// Default talk content.
const (
	DefaultTitle   = "Slides in Matplotlib"
	DefaultAuthor  = "Elliott Sales de Andrade"
	DefaultEvent   = "SciPy 2023"
	DefaultDemoURL = "https://github.com/QuLogic/scipy2023-lightning-mpl-slides"
	DefaultImage   = assets.SampleImageName
	DefaultYears   = 5
)

// DefaultLinks are the gallery pages the examples come from.
var DefaultLinks = []string{
	"https://matplotlib.org/stable/gallery/misc/logos2.html",
	"https://matplotlib.org/stable/gallery/lines_bars_and_markers/timeline.html",
}

// TagLister reads (name, date) tags from a checkout.
type TagLister func(ctx context.Context, checkout string) ([]timeline.RawTag, error)

// ImageLoader loads a named image asset.
type ImageLoader interface {
	LoadImage(name string) (*assets.Image, error)
}

// Config is everything the producers need besides the style.
type Config struct {
	Checkout string // git checkout whose tags feed the timeline

	Title  string
	Author string
	Event  string

	// The timeline highlights the span between the previous and the current
	// event and shows WindowYears before the current one.
	LastEvent   time.Time
	ThisEvent   time.Time
	WindowYears int
	Timeline    timeline.Params

	Links   []string
	DemoURL string
	Image   string // image asset shown on the last setup page

	ListTags TagLister   // defaults to git
	Images   ImageLoader // defaults to the embedded assets
}

// DefaultConfig returns the talk as presented, reading tags from checkout.
func DefaultConfig(checkout string) Config {
	return Config{
		Checkout:    checkout,
		Title:       DefaultTitle,
		Author:      DefaultAuthor,
		Event:       DefaultEvent,
		LastEvent:   time.Date(2023, time.July, 12, 0, 0, 0, 0, time.UTC),
		ThisEvent:   time.Date(2024, time.July, 10, 0, 0, 0, 0, time.UTC),
		WindowYears: DefaultYears,
		Timeline:    timeline.DefaultParams(),
		Links:       DefaultLinks,
		DemoURL:     DefaultDemoURL,
		Image:       DefaultImage,
	}
}

func (c Config) listTags() TagLister {
	if c.ListTags != nil {
		return c.ListTags
	}
	return vcs.ListTags
}

func (c Config) imageName() string {
	if c.Image != "" {
		return c.Image
	}
	return DefaultImage
}

func (c Config) images() ImageLoader {
	if c.Images != nil {
		return c.Images
	}
	return assets.Embedded()
}

// Steps returns the producers in presentation order.
func Steps(cfg Config) []slidedeck.Step {
	return []slidedeck.Step{
		{Name: "title", Produce: Title(cfg)},
		{Name: "examples", Produce: Examples(cfg)},
		{Name: "why", Produce: Why()},
		{Name: "general", Produce: General(cfg)},
		{Name: "end", Produce: End(cfg)},
	}
}

// Stamp returns the small logo the decoration pass adds to every slide.
func Stamp(st *slidedeck.Style) slidedeck.Element {
	w, h := st.RectPoints(st.LogoRect)
	return slidedeck.Chart{
		Rect: st.LogoRect,
		SVG:  logo.Icon(logo.StampOptions(min(w, h))),
	}
}

// textFont joins the deck font stack for SVG text.
func textFont(st *slidedeck.Style) string {
	return strings.Join(st.FontFamily, ", ")
}
