package slidedeck

import (
	"fmt"
	"strings"
)

// Page geometry of a slide: 1920x1080 pixels at 100 DPI.
const (
	DefaultPageWidth  = 19.2 // inches
	DefaultPageHeight = 10.8 // inches
	DefaultDPI        = 100
	pointsPerInch     = 72
)

// MPLBlue is the blue of the logo wordmark.
const MPLBlue = "#11557c"

// tabColors is the tab10 palette, addressable as "tab:<name>".
var tabColors = map[string]string{
	"tab:blue":   "#1f77b4",
	"tab:orange": "#ff7f0e",
	"tab:green":  "#2ca02c",
	"tab:red":    "#d62728",
	"tab:purple": "#9467bd",
	"tab:brown":  "#8c564b",
	"tab:pink":   "#e377c2",
	"tab:gray":   "#7f7f7f",
	"tab:grey":   "#7f7f7f",
	"tab:olive":  "#bcbd22",
	"tab:cyan":   "#17becf",
}

// ResolveColor maps tab10 names to hex colors and passes anything else through.
func ResolveColor(c string) string {
	if hex, ok := tabColors[strings.ToLower(c)]; ok {
		return hex
	}
	return c
}

// FontFace is a font file loaded into the deck with @font-face.
type FontFace struct {
	Family string
	Path   string
	Weight string
}

// Style holds every presentation constant of a deck. It is built once at
// startup and passed to each slide producer; producers must not modify it.
type Style struct {
	PageWidth  float64 // inches
	PageHeight float64 // inches
	DPI        int

	FontFamily     []string // text font followed by fallbacks (e.g. emoji)
	LogoFontFamily string
	FontWeight     string
	FontSize       float64 // points
	TextColor      string

	HeadingColor string
	HeadingSize  float64
	HeadingPos   Point

	MonoFamily string
	CodeSize   float64
	CodeTheme  string // chroma style name

	AxesLineWidth float64
	AxesLabelSize float64
	TickLabelSize float64
	TickWidth     float64
	TickSize      float64
	LineWidth     float64

	LogoColor string
	LogoRect  Rect // where the decoration pass stamps the logo

	Fonts []FontFace
}

// DefaultStyle returns the style of the talk.
func DefaultStyle() *Style {
	return &Style{
		PageWidth:      DefaultPageWidth,
		PageHeight:     DefaultPageHeight,
		DPI:            DefaultDPI,
		FontFamily:     []string{"Carlito", "Segoe UI Emoji"},
		LogoFontFamily: "Calibri",
		FontWeight:     "bold",
		FontSize:       64,
		TextColor:      "tab:grey",
		HeadingColor:   "tab:blue",
		HeadingSize:    72,
		HeadingPos:     Point{X: 0.05, Y: 0.85},
		MonoFamily:     "DejaVu Sans Mono, monospace",
		CodeSize:       48,
		CodeTheme:      "friendly",
		AxesLineWidth:  3,
		AxesLabelSize:  40,
		TickLabelSize:  32,
		TickWidth:      2,
		TickSize:       7,
		LineWidth:      3,
		LogoColor:      MPLBlue,
		LogoRect:       Rect{X: 0.825, Y: 0.825, W: 0.2, H: 0.15},
	}
}

// Validate checks that all sizes are usable.
func (s *Style) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: nil style", ErrInvalidStyle)
	}
	sizes := []struct {
		name  string
		value float64
	}{
		{"page width", s.PageWidth},
		{"page height", s.PageHeight},
		{"DPI", float64(s.DPI)},
		{"font size", s.FontSize},
		{"heading size", s.HeadingSize},
		{"code size", s.CodeSize},
		{"axes line width", s.AxesLineWidth},
		{"tick label size", s.TickLabelSize},
		{"line width", s.LineWidth},
	}
	for _, sz := range sizes {
		if sz.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidStyle, sz.name, sz.value)
		}
	}
	if len(s.FontFamily) == 0 || s.FontFamily[0] == "" {
		return fmt.Errorf("%w: font family is required", ErrInvalidStyle)
	}
	if s.LogoRect.W <= 0 || s.LogoRect.H <= 0 {
		return fmt.Errorf("%w: logo box must have a positive size", ErrInvalidStyle)
	}
	return nil
}

// WidthPoints returns the page width in points.
func (s *Style) WidthPoints() float64 { return s.PageWidth * pointsPerInch }

// HeightPoints returns the page height in points.
func (s *Style) HeightPoints() float64 { return s.PageHeight * pointsPerInch }

// RectPoints returns the size of a figure-fraction box in points.
func (s *Style) RectPoints(r Rect) (w, h float64) {
	return r.W * s.WidthPoints(), r.H * s.HeightPoints()
}

// Body returns the default text style.
func (s *Style) Body() TextStyle {
	return TextStyle{Size: s.FontSize, Weight: s.FontWeight, Color: s.TextColor}
}

// Sized returns the default text style at the given size.
func (s *Style) Sized(size float64) TextStyle {
	ts := s.Body()
	ts.Size = size
	return ts
}

// CodeStyle returns the style of code blocks: monospace, top aligned.
func (s *Style) CodeStyle() TextStyle {
	return TextStyle{
		Font:      s.MonoFamily,
		Size:      s.CodeSize,
		Weight:    "normal",
		Color:     s.TextColor,
		VAlign:    VAlignTop,
		Monospace: true,
	}
}

// Heading returns the slide title element.
func (s *Style) Heading(text string) Text {
	return Text{
		Pos:     s.HeadingPos,
		Content: text,
		Style: TextStyle{
			Size:   s.HeadingSize,
			Weight: s.FontWeight,
			Color:  s.HeadingColor,
		},
	}
}

// HeadingAt returns a heading vertically centered on pos, for slides whose
// top band is laid out separately.
func (s *Style) HeadingAt(text string, pos Point) Text {
	h := s.Heading(text)
	h.Pos = pos
	h.Style.VAlign = VAlignCenter
	return h
}

// PRAuthor returns the pull request attribution shown in the bottom-right
// corner. A positive pr links the text to the pull request.
func (s *Style) PRAuthor(pr int, authors ...string) Text {
	handles := make([]string, len(authors))
	for i, a := range authors {
		handles[i] = "@" + a
	}
	t := Text{
		Pos:     Point{X: 0.95, Y: 0.05},
		Content: "PR by " + strings.Join(handles, ", "),
		Style: TextStyle{
			Size:   32,
			Weight: s.FontWeight,
			Color:  s.TextColor,
			Alpha:  0.7,
			HAlign: AlignRight,
		},
	}
	if pr > 0 {
		t.URL = fmt.Sprintf("https://github.com/matplotlib/matplotlib/pull/%d", pr)
	}
	return t
}
