// Package logo draws the Matplotlib logo as SVG: a polar bar chart icon and,
// optionally, the "matplotlib" wordmark with the icon standing in for the o.
package logo

import (
	"bytes"
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"
)

// MPLBlue is the logo's border and wordmark color.
const MPLBlue = "#11557c"

const (
	iconSize        = 200.0 // icon viewBox edge
	rMax            = 9.0   // outer radius of the polar axes, in data units
	backgroundR     = 9.58  // white disc behind the bars, slightly past the border
	barEdge         = "#4d4d4d"
	gridColor       = "#e6e6e6"
	barAlpha        = 0.6
	wordmarkSkewDeg = 4.25
)

// The seven bars: radii in data units and angular widths as fractions of π/4.
var (
	barRadii  = [...]float64{2, 6, 8, 7, 4, 5, 8}
	barWidths = [...]float64{0.4, 0.4, 0.6, 0.8, 0.2, 0.5, 0.3}
)

// Options controls the line weights of the icon. Widths are in points for an
// icon rendered Diameter points across.
type Options struct {
	Diameter    float64
	BarWidth    float64
	GridWidth   float64
	BorderWidth float64
	RGrid       []float64 // radii of the grid circles, in data units
}

// StampOptions is the small logo placed in the corner of every slide.
func StampOptions(diameter float64) Options {
	return Options{Diameter: diameter, BarWidth: 0.3, GridWidth: 0.3, BorderWidth: 0.3, RGrid: []float64{5}}
}

// ExampleOptions is the large logo of the "Example: Logo" slide.
func ExampleOptions(diameter float64) Options {
	return Options{Diameter: diameter, BarWidth: 3, GridWidth: 3, BorderWidth: 3, RGrid: []float64{1, 3, 5, 7}}
}

// unitsPerPoint converts points to viewBox units for a rendered size.
func unitsPerPoint(viewBox, rendered float64) float64 {
	if rendered <= 0 {
		return 1
	}
	return viewBox / rendered
}

// Icon renders the polar bar chart icon as a standalone square SVG.
func Icon(o Options) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s">`+"\n", f(iconSize), f(iconSize))
	writeIcon(&buf, o, iconSize/2, iconSize/2, iconSize/2, unitsPerPoint(iconSize, o.Diameter))
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// writeIcon draws the icon centered at (cx, cy) inside a circle of radius
// rad, all in viewBox units.
func writeIcon(buf *bytes.Buffer, o Options, cx, cy, rad, upp float64) {
	unit := rad / backgroundR
	lw := func(pt float64) string { return f(pt * upp) }
	at := func(r, theta float64) (float64, float64) {
		return cx + r*unit*math.Cos(theta), cy - r*unit*math.Sin(theta)
	}

	fmt.Fprintf(buf, `  <g class="logo-icon">`+"\n")
	fmt.Fprintf(buf, `    <circle cx="%s" cy="%s" r="%s" fill="white"/>`+"\n", f(cx), f(cy), f(backgroundR*unit))

	// Grid below the bars: circles at RGrid, spokes every 45 degrees.
	for _, r := range o.RGrid {
		fmt.Fprintf(buf, `    <circle class="grid" cx="%s" cy="%s" r="%s" fill="none" stroke="%s" stroke-width="%s"/>`+"\n",
			f(cx), f(cy), f(r*unit), gridColor, lw(o.GridWidth))
	}
	for i := 0; i < 8; i++ {
		x, y := at(rMax, float64(i)*math.Pi/4)
		fmt.Fprintf(buf, `    <line class="grid" x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s"/>`+"\n",
			f(cx), f(cy), f(x), f(y), gridColor, lw(o.GridWidth))
	}

	for i, r := range barRadii {
		theta := 2 * math.Pi * float64(i) / float64(len(barRadii))
		width := math.Pi / 4 * barWidths[i]
		x0, y0 := at(r, theta)
		x1, y1 := at(r, theta+width)
		red, green, blue := Jet(r / 10)
		fmt.Fprintf(buf, `    <path class="bar" d="M%s %sL%s %sA%s %s 0 0 0 %s %sZ" fill="rgb(%d,%d,%d)" fill-opacity="%s" stroke="%s" stroke-width="%s"/>`+"\n",
			f(cx), f(cy), f(x0), f(y0), f(r*unit), f(r*unit), f(x1), f(y1),
			channel(red), channel(green), channel(blue), f(barAlpha), barEdge, lw(o.BarWidth))
	}

	fmt.Fprintf(buf, `    <circle class="border" cx="%s" cy="%s" r="%s" fill="none" stroke="%s" stroke-width="%s"/>`+"\n",
		f(cx), f(cy), f(rMax*unit), MPLBlue, lw(o.BorderWidth))
	buf.WriteString("  </g>\n")
}

// WordmarkOptions controls the full logo with text. Icon.Diameter is
// ignored; line widths are relative to the rendered Height in points.
type WordmarkOptions struct {
	Icon   Options
	Height float64
	Font   string // CSS font family of the wordmark
}

// Wordmark renders "matplotlib" five times as wide as it is tall, with the
// icon drawn over the o.
func Wordmark(o WordmarkOptions) []byte {
	const (
		height = iconSize
		width  = 5 * iconSize
	)
	font := o.Font
	if font == "" {
		font = "sans-serif"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s">`+"\n", f(width), f(height))
	fmt.Fprintf(&buf, `  <text x="0" y="%s" font-family="%s" font-size="%s" fill="%s" textLength="%s" lengthAdjust="spacingAndGlyphs" transform="skewX(%s)">matplotlib</text>`+"\n",
		f(0.88*height), html.EscapeString(font), f(0.8*height), MPLBlue, f(width*0.97), f(-wordmarkSkewDeg))

	// Icon box in figure fractions (0.535, 0.12, 0.17, 0.75), origin bottom-left.
	boxW, boxH := 0.17*width, 0.75*height
	cx := 0.535*width + boxW/2
	cy := height - (0.12*height + boxH/2)
	rad := math.Min(boxW, boxH) / 2
	writeIcon(&buf, o.Icon, cx, cy, rad, unitsPerPoint(height, o.Height))

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// Jet samples Matplotlib's jet colormap at x in [0, 1].
func Jet(x float64) (r, g, b float64) {
	x = math.Max(0, math.Min(1, x))
	r = interp(x, []float64{0, 0.35, 0.66, 0.89, 1}, []float64{0, 0, 1, 1, 0.5})
	g = interp(x, []float64{0, 0.125, 0.375, 0.64, 0.91, 1}, []float64{0, 0, 1, 1, 0, 0})
	b = interp(x, []float64{0, 0.11, 0.34, 0.65, 1}, []float64{0.5, 1, 1, 0, 0})
	return r, g, b
}

// interp is piecewise-linear interpolation over ascending xs.
func interp(x float64, xs, ys []float64) float64 {
	for i := 1; i < len(xs); i++ {
		if x <= xs[i] {
			t := (x - xs[i-1]) / (xs[i] - xs[i-1])
			return ys[i-1] + t*(ys[i]-ys[i-1])
		}
	}
	return ys[len(ys)-1]
}

func channel(v float64) int {
	return int(math.Round(v * 255))
}

// f formats a coordinate with at most two decimals.
func f(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
