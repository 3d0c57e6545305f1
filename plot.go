package slidedeck

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// plotMargin is the fraction of the data range added on each side of an axis.
const plotMargin = 0.05

// plotSVG renders a line plot whose axes box fills a w x h point canvas. Ticks
// and their labels hang outside the box, so the SVG must not clip overflow.
func plotSVG(p LinePlot, st *Style, w, h float64) ([]byte, error) {
	if len(p.Y) == 0 {
		return nil, fmt.Errorf("%w: line plot has no data", ErrInvalidElement)
	}

	xlo, xhi := expand(0, float64(len(p.Y)-1))
	ylo, yhi := expand(minMax(p.Y))
	sx := func(v float64) float64 { return (v - xlo) / (xhi - xlo) * w }
	sy := func(v float64) float64 { return h - (v-ylo)/(yhi-ylo)*h }

	color := ResolveColor(p.Style.Color)
	if color == "" {
		color = ResolveColor("tab:blue")
	}
	width := p.Style.Width
	if width <= 0 {
		width = st.LineWidth
	}
	textColor := ResolveColor(st.TextColor)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" overflow="visible">`+"\n", fnum(w), fnum(h))

	points := make([]string, len(p.Y))
	for i, y := range p.Y {
		points[i] = fnum(sx(float64(i))) + "," + fnum(sy(y))
	}
	fmt.Fprintf(&buf, `  <polyline fill="none" stroke="%s" stroke-width="%s" stroke-linejoin="round" points="%s"/>`+"\n",
		color, fnum(width), strings.Join(points, " "))

	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%s" height="%s" fill="none" stroke="black" stroke-width="%s"/>`+"\n",
		fnum(w), fnum(h), fnum(st.AxesLineWidth))

	for _, t := range niceTicks(xlo, xhi) {
		x := sx(t)
		fmt.Fprintf(&buf, `  <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="black" stroke-width="%s"/>`+"\n",
			fnum(x), fnum(h), fnum(x), fnum(h+st.TickSize), fnum(st.TickWidth))
		fmt.Fprintf(&buf, `  <text x="%s" y="%s" font-size="%s" fill="%s" text-anchor="middle" dominant-baseline="text-before-edge">%s</text>`+"\n",
			fnum(x), fnum(h+st.TickSize+0.2*st.TickLabelSize), fnum(st.TickLabelSize), textColor, tickLabel(t))
	}
	for _, t := range niceTicks(ylo, yhi) {
		y := sy(t)
		fmt.Fprintf(&buf, `  <line x1="0" y1="%s" x2="%s" y2="%s" stroke="black" stroke-width="%s"/>`+"\n",
			fnum(y), fnum(-st.TickSize), fnum(y), fnum(st.TickWidth))
		fmt.Fprintf(&buf, `  <text x="%s" y="%s" font-size="%s" fill="%s" text-anchor="end" dominant-baseline="central">%s</text>`+"\n",
			fnum(-st.TickSize-0.3*st.TickLabelSize), fnum(y), fnum(st.TickLabelSize), textColor, tickLabel(t))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func minMax(vs []float64) (lo, hi float64) {
	lo, hi = vs[0], vs[0]
	for _, v := range vs[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// expand widens a data range by plotMargin on each side. Degenerate ranges
// are widened by one unit.
func expand(lo, hi float64) (float64, float64) {
	span := hi - lo
	if span == 0 {
		return lo - 1, hi + 1
	}
	return lo - plotMargin*span, hi + plotMargin*span
}

// niceTicks returns round tick positions inside [lo, hi], at most about
// eight of them, using steps of 1, 2, 2.5 or 5 times a power of ten.
func niceTicks(lo, hi float64) []float64 {
	const maxTicks = 8
	raw := (hi - lo) / maxTicks
	if raw <= 0 || math.IsNaN(raw) || math.IsInf(raw, 0) {
		return nil
	}
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	step := 10 * mag
	for _, m := range []float64{1, 2, 2.5, 5} {
		if m*mag >= raw {
			step = m * mag
			break
		}
	}

	var ticks []float64
	eps := step * 1e-9
	for v := math.Ceil(lo/step) * step; v <= hi+eps; v += step {
		// Snap to the step grid to avoid accumulated float error.
		ticks = append(ticks, math.Round(v/step)*step)
	}
	return ticks
}

// tickLabel formats a tick value with a typographic minus sign.
func tickLabel(v float64) string {
	if math.Abs(v) < 1e-12 {
		return "0"
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if len(s) > 8 {
		s = strconv.FormatFloat(v, 'g', 6, 64)
	}
	return strings.Replace(s, "-", "−", 1)
}
