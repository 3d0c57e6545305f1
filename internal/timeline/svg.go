package timeline

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"math"
	"time"
)

// ErrEmptyWindow indicates a chart window with no extent.
var ErrEmptyWindow = errors.New("timeline window is empty")

// Colors of the tab10 palette used by the chart.
const (
	TabRed  = "#d62728"
	TabBlue = "#1f77b4"
)

// ChartOptions controls the SVG rendering of a layout.
// Lengths are in points; the SVG viewBox is Width x Height.
type ChartOptions struct {
	Width  float64
	Height float64

	Window    Span // visible date range; entries outside are clipped
	Highlight Span // shaded band, skipped when zero

	FontFamily    string
	LabelSize     float64
	TickLabelSize float64
	TickWidth     float64
	TickLength    float64
	LineWidth     float64
	MarkerSize    float64
	Margin        float64 // vertical data margin as a fraction of the level range

	StemColor      string
	HighlightColor string
	TextColor      string
}

// DefaultChartOptions returns the look of the release history slide for a
// chart of the given size, showing the trailing five years before end.
func DefaultChartOptions(width, height float64, end time.Time) ChartOptions {
	return ChartOptions{
		Width:          width,
		Height:         height,
		Window:         TrailingWindow(end, 5),
		FontFamily:     "sans-serif",
		LabelSize:      24,
		TickLabelSize:  24,
		TickWidth:      2,
		TickLength:     7,
		LineWidth:      3,
		MarkerSize:     10,
		Margin:         0.1,
		StemColor:      TabRed,
		HighlightColor: TabBlue,
		TextColor:      "#7f7f7f",
	}
}

// MarkStyle is the resolved styling of one entry.
type MarkStyle struct {
	StemWidth    float64
	StemOpacity  float64
	MarkerRadius float64
	MarkerFill   string
	LabelWeight  string
}

// StyleFor returns how an entry is drawn. Feature releases get a heavier,
// opaque stem, a larger red marker and a bold label.
func StyleFor(e Entry, o ChartOptions) MarkStyle {
	if e.Feature {
		return MarkStyle{
			StemWidth:    o.LineWidth,
			StemOpacity:  1,
			MarkerRadius: o.MarkerSize * 0.65,
			MarkerFill:   o.StemColor,
			LabelWeight:  "bold",
		}
	}
	return MarkStyle{
		StemWidth:    o.LineWidth * 2 / 3,
		StemOpacity:  0.5,
		MarkerRadius: o.MarkerSize / 2,
		MarkerFill:   "white",
		LabelWeight:  "normal",
	}
}

// chart maps data coordinates onto the SVG canvas.
type chart struct {
	o          ChartOptions
	plotHeight float64
	yLo, yHi   float64
}

func newChart(entries []Entry, o ChartOptions) chart {
	lo, hi := 0.0, 0.0
	for _, e := range entries {
		lo = math.Min(lo, e.Level)
		hi = math.Max(hi, e.Level)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	lo -= o.Margin * span
	hi += o.Margin * span

	return chart{
		o:          o,
		plotHeight: o.Height - o.TickLength - 1.6*o.TickLabelSize,
		yLo:        lo,
		yHi:        hi,
	}
}

func (c chart) x(t time.Time) float64 {
	total := c.o.Window.To.Sub(c.o.Window.From)
	return float64(t.Sub(c.o.Window.From)) / float64(total) * c.o.Width
}

func (c chart) y(level float64) float64 {
	return c.plotHeight - (level-c.yLo)/(c.yHi-c.yLo)*c.plotHeight
}

// RenderSVG draws the entries as a stem chart.
func RenderSVG(entries []Entry, o ChartOptions) ([]byte, error) {
	if !o.Window.To.After(o.Window.From) {
		return nil, fmt.Errorf("%w: %s to %s", ErrEmptyWindow,
			o.Window.From.Format(DateLayout), o.Window.To.Format(DateLayout))
	}
	if o.Width <= 0 || o.Height <= 0 {
		return nil, fmt.Errorf("%w: size %gx%g", ErrInvalidParams, o.Width, o.Height)
	}

	var visible []Entry
	for _, e := range entries {
		if o.Window.Contains(e.Release.Date) {
			visible = append(visible, e)
		}
	}
	c := newChart(visible, o)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="100%%" height="100%%" font-family="%s">`+"\n",
		num(o.Width), num(o.Height), html.EscapeString(o.FontFamily))
	fmt.Fprintf(&buf, `  <defs><clipPath id="timeline-plot"><rect x="0" y="0" width="%s" height="%s"/></clipPath></defs>`+"\n",
		num(o.Width), num(c.plotHeight))

	buf.WriteString(`  <g clip-path="url(#timeline-plot)">` + "\n")
	renderHighlight(&buf, c)
	for _, e := range visible {
		renderStem(&buf, c, e)
	}
	fmt.Fprintf(&buf, `    <line x1="0" y1="%s" x2="%s" y2="%s" stroke="black" stroke-width="%s"/>`+"\n",
		num(c.y(0)), num(o.Width), num(c.y(0)), num(o.LineWidth))
	for _, e := range visible {
		renderMarker(&buf, c, e)
	}
	for _, e := range visible {
		renderLabel(&buf, c, e)
	}
	buf.WriteString("  </g>\n")

	renderAxis(&buf, c)
	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func renderHighlight(buf *bytes.Buffer, c chart) {
	h := c.o.Highlight
	if h.IsZero() || !h.To.After(h.From) {
		return
	}
	x0 := math.Max(c.x(h.From), 0)
	x1 := math.Min(c.x(h.To), c.o.Width)
	if x1 <= x0 {
		return
	}
	fmt.Fprintf(buf, `    <rect class="highlight" x="%s" y="0" width="%s" height="%s" fill="%s" fill-opacity="0.5"/>`+"\n",
		num(x0), num(x1-x0), num(c.plotHeight), c.o.HighlightColor)
}

func renderStem(buf *bytes.Buffer, c chart, e Entry) {
	s := StyleFor(e, c.o)
	x := c.x(e.Release.Date)
	fmt.Fprintf(buf, `    <line class="stem" x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-opacity="%s" stroke-width="%s"/>`+"\n",
		num(x), num(c.y(0)), num(x), num(c.y(e.Level)), c.o.StemColor, num(s.StemOpacity), num(s.StemWidth))
}

func renderMarker(buf *bytes.Buffer, c chart, e Entry) {
	s := StyleFor(e, c.o)
	fmt.Fprintf(buf, `    <circle class="marker" cx="%s" cy="%s" r="%s" fill="%s" stroke="black" stroke-width="1.5"/>`+"\n",
		num(c.x(e.Release.Date)), num(c.y(0)), num(s.MarkerRadius), s.MarkerFill)
}

func renderLabel(buf *bytes.Buffer, c chart, e Entry) {
	s := StyleFor(e, c.o)
	x := c.x(e.Release.Date) - 3
	y := c.y(e.Level)
	baseline := "text-after-edge"
	if e.Level > 0 {
		y -= 3
	} else {
		y += 3
		baseline = "text-before-edge"
	}
	fmt.Fprintf(buf, `    <text class="label" x="%s" y="%s" font-size="%s" font-weight="%s" fill="%s" dominant-baseline="%s" stroke="white" stroke-opacity="0.7" stroke-width="6" paint-order="stroke">%s</text>`+"\n",
		num(x), num(y), num(c.o.LabelSize), s.LabelWeight, c.o.TextColor, baseline, html.EscapeString(e.Release.Version.String()))
}

// renderAxis draws the bottom spine and a tick on every January 1st in the
// window.
func renderAxis(buf *bytes.Buffer, c chart) {
	o := c.o
	fmt.Fprintf(buf, `  <line x1="0" y1="%s" x2="%s" y2="%s" stroke="black" stroke-width="%s"/>`+"\n",
		num(c.plotHeight), num(o.Width), num(c.plotHeight), num(o.LineWidth))

	for _, tick := range YearTicks(o.Window) {
		x := c.x(tick)
		fmt.Fprintf(buf, `  <line class="tick" x1="%s" y1="%s" x2="%s" y2="%s" stroke="black" stroke-width="%s"/>`+"\n",
			num(x), num(c.plotHeight), num(x), num(c.plotHeight+o.TickLength), num(o.TickWidth))
		fmt.Fprintf(buf, `  <text class="tick-label" x="%s" y="%s" font-size="%s" fill="%s" text-anchor="middle" dominant-baseline="text-before-edge">%d</text>`+"\n",
			num(x), num(c.plotHeight+o.TickLength+0.3*o.TickLabelSize), num(o.TickLabelSize), o.TextColor, tick.Year())
	}
}

// YearTicks returns the January 1st dates that fall inside the span.
func YearTicks(s Span) []time.Time {
	var ticks []time.Time
	for year := s.From.Year(); year <= s.To.Year(); year++ {
		t := time.Date(year, time.January, 1, 0, 0, 0, 0, s.From.Location())
		if s.Contains(t) {
			ticks = append(ticks, t)
		}
	}
	return ticks
}

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	for len(s) > 1 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	if s == "-0" {
		s = "0"
	}
	return s
}
