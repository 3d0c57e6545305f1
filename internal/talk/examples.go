package talk

import (
	"context"
	"fmt"

	slidedeck "github.com/alnah/go-slidedeck"
	"github.com/alnah/go-slidedeck/internal/logo"
	"github.com/alnah/go-slidedeck/internal/timeline"
)

var (
	logoRect     = slidedeck.Rect{X: 0.05, Y: 0.05, W: 0.9, H: 0.7}
	timelineRect = slidedeck.Rect{X: 0.05, Y: 0.11, W: 0.9, H: 0.7}
)

// Examples produces the two gallery examples and the slide linking to them.
func Examples(cfg Config) slidedeck.Producer {
	return func(ctx context.Context, st *slidedeck.Style) ([]*slidedeck.Slide, error) {
		history, err := releaseHistory(ctx, cfg, st)
		if err != nil {
			return nil, err
		}
		return []*slidedeck.Slide{
			logoExample(st),
			history,
			galleryLinks(cfg, st),
		}, nil
	}
}

func logoExample(st *slidedeck.Style) *slidedeck.Slide {
	w, h := st.RectPoints(logoRect)
	s := &slidedeck.Slide{Heading: "Example: Logo"}
	return s.Add(slidedeck.Chart{Rect: logoRect, SVG: logo.Icon(logo.ExampleOptions(min(w, h)))})
}

// releaseHistory lays out the checkout's releases on a timeline.
func releaseHistory(ctx context.Context, cfg Config, st *slidedeck.Style) (*slidedeck.Slide, error) {
	tags, err := cfg.listTags()(ctx, cfg.Checkout)
	if err != nil {
		return nil, err
	}
	releases, err := timeline.ParseReleases(tags)
	if err != nil {
		return nil, err
	}
	timeline.SortByDate(releases)

	params := cfg.Timeline
	if params == (timeline.Params{}) {
		params = timeline.DefaultParams()
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	entries := timeline.Layout(releases, params)

	years := cfg.WindowYears
	if years <= 0 {
		years = DefaultYears
	}
	w, h := st.RectPoints(timelineRect)
	opts := timeline.DefaultChartOptions(w, h, cfg.ThisEvent)
	opts.Window = timeline.TrailingWindow(cfg.ThisEvent, years)
	if !cfg.LastEvent.IsZero() && cfg.LastEvent.Before(cfg.ThisEvent) {
		opts.Highlight = timeline.Span{From: cfg.LastEvent, To: cfg.ThisEvent}
	}
	opts.FontFamily = textFont(st)
	opts.LineWidth = st.LineWidth
	opts.TickWidth = st.TickWidth
	opts.TickLength = st.TickSize
	opts.TextColor = slidedeck.ResolveColor(st.TextColor)

	svg, err := timeline.RenderSVG(entries, opts)
	if err != nil {
		return nil, fmt.Errorf("rendering release history: %w", err)
	}

	s := &slidedeck.Slide{
		Heading: "Example: Release History",
		Notes:   fmt.Sprintf("%d releases from %s", len(entries), cfg.Checkout),
	}
	return s.Add(slidedeck.Chart{Rect: timelineRect, SVG: svg}), nil
}

// galleryLinks lists each example's gallery page with a QR code beside it.
func galleryLinks(cfg Config, st *slidedeck.Style) *slidedeck.Slide {
	s := &slidedeck.Slide{Heading: "Examples"}
	s.Add(slidedeck.Text{
		Pos:     slidedeck.Point{X: 0.05, Y: 0.7},
		Content: "Both are examples from Matplotlib gallery",
		Style:   st.Body(),
	})

	for i, link := range cfg.Links {
		offset := float64(i)
		s.Add(
			slidedeck.Text{
				Pos:     slidedeck.Point{X: 0.05, Y: 0.6 - 0.3*offset},
				Content: link,
				Style:   st.Sized(st.AxesLabelSize),
				URL:     link,
			},
			slidedeck.QRCode{
				Rect:    slidedeck.Rect{X: 0.7, Y: 0.35 - 0.35*offset, W: 0.3, H: 0.3},
				Content: link,
			},
		)
	}
	return s
}
