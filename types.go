package slidedeck

import (
	"fmt"
	"time"
)

// Point is a position in figure fractions, origin at the bottom-left corner.
type Point struct {
	X float64
	Y float64
}

// Rect is a box in figure fractions: left, bottom, width, height.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// HAlign is the horizontal anchor of text relative to its position.
type HAlign string

// Horizontal alignments.
const (
	AlignLeft   HAlign = "left"
	AlignCenter HAlign = "center"
	AlignRight  HAlign = "right"
)

// VAlign is the vertical anchor of text relative to its position.
type VAlign string

// Vertical alignments. Baseline is the default, as in plotting libraries.
const (
	VAlignBaseline VAlign = "baseline"
	VAlignBottom   VAlign = "bottom"
	VAlignCenter   VAlign = "center"
	VAlignTop      VAlign = "top"
)

// TextStyle describes how a piece of text is drawn.
// Zero fields inherit the deck defaults from Style.
type TextStyle struct {
	Font      string  // CSS font family; empty for the deck text font
	Size      float64 // points
	Weight    string  // "normal" or "bold"
	Color     string  // CSS color or tab10 name such as "tab:blue"
	Alpha     float64 // 0 means opaque
	HAlign    HAlign
	VAlign    VAlign
	Monospace bool
}

// LineStyle describes a plotted line.
type LineStyle struct {
	Color string
	Width float64 // points
}

// Element is something drawn on a slide.
type Element interface {
	element()
}

// Text is a single run of text, optionally linked.
type Text struct {
	Pos     Point
	Content string
	Style   TextStyle
	URL     string
}

// Code is a block of syntax-highlighted source code.
type Code struct {
	Pos      Point
	Source   string
	Language string
	Style    TextStyle
}

// Markdown is a block of formatted prose (lists, emphasis, inline code).
type Markdown struct {
	Pos    Point
	Width  float64 // figure fraction
	Source string
	Style  TextStyle
}

// Image is a raster or vector image scaled to fit its box.
type Image struct {
	Rect     Rect
	Data     []byte
	MIMEType string
}

// QRCode encodes content as a scannable square code.
type QRCode struct {
	Rect    Rect
	Content string
}

// Chart is a pre-rendered SVG drawing stretched over its box.
type Chart struct {
	Rect Rect
	SVG  []byte
}

// LinePlot draws Y against its index inside a framed axes.
type LinePlot struct {
	Rect  Rect
	Y     []float64
	Style LineStyle
}

func (Text) element()     {}
func (Code) element()     {}
func (Markdown) element() {}
func (Image) element()    {}
func (QRCode) element()   {}
func (Chart) element()    {}
func (LinePlot) element() {}

// Slide is one page of the deck.
type Slide struct {
	Heading     string    // drawn in the heading style when non-empty
	Elements    []Element // content, drawn in order
	Decorations []Element // added by the decoration pass, drawn last
	Plain       bool      // skip decorations (e.g. the title page)
	Notes       string    // speaker notes, kept in the HTML only
}

// Add appends elements to the slide and returns it.
func (s *Slide) Add(elems ...Element) *Slide {
	s.Elements = append(s.Elements, elems...)
	return s
}

// Metadata is the document information attached to the PDF.
type Metadata struct {
	Author   string
	Title    string
	Subject  string
	Keywords string
	Creator  string
	Created  time.Time // zero means the build time
}

// Validate checks that the metadata can be written.
func (m Metadata) Validate() error {
	if m.Title == "" {
		return fmt.Errorf("%w: title is required", ErrMetadata)
	}
	return nil
}

// Result holds the output of a build.
type Result struct {
	HTML []byte
	PDF  []byte
	// Pages is the page count read from the printed PDF. When the PDF hides
	// its page objects in compressed streams it falls back to Slides.
	Pages int
	// Slides is the number of slides in the deck. A slide whose content
	// overflows prints on more than one page.
	Slides int
}
