package slidedeck

import (
	"encoding/base64"
	"fmt"
	"html"
	"strings"
)

// htmlRenderer turns a deck into one HTML document, a <section> per slide.
type htmlRenderer struct {
	st       *Style
	baseCSS  string
	markdown *markdownRenderer
}

func newHTMLRenderer(st *Style, baseCSS string) *htmlRenderer {
	return &htmlRenderer{
		st:       st,
		baseCSS:  baseCSS,
		markdown: newMarkdownRenderer(st.CodeTheme),
	}
}

// render builds the full HTML document for the deck.
func (r *htmlRenderer) render(deck *Deck, title string) (string, error) {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(title))
	b.WriteString("<style>\n")
	b.WriteString(r.baseCSS)
	b.WriteString(buildFontFaceCSS(r.st.Fonts))
	b.WriteString(buildPageCSS(r.st))
	b.WriteString("</style>\n</head>\n<body>\n")

	for i, s := range deck.Slides {
		if err := r.renderSlide(&b, i+1, s); err != nil {
			return "", fmt.Errorf("%w: slide %d: %w", ErrHTMLRender, i+1, err)
		}
	}

	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}

func (r *htmlRenderer) renderSlide(b *strings.Builder, n int, s *Slide) error {
	fmt.Fprintf(b, "<section class=\"slide\" id=\"slide-%d\">\n", n)

	if s.Heading != "" {
		if err := r.renderElement(b, r.st.Heading(s.Heading)); err != nil {
			return err
		}
	}
	for _, e := range s.Elements {
		if err := r.renderElement(b, e); err != nil {
			return err
		}
	}
	for _, e := range s.Decorations {
		if err := r.renderElement(b, e); err != nil {
			return err
		}
	}
	if s.Notes != "" {
		fmt.Fprintf(b, "<aside class=\"notes\" hidden>%s</aside>\n", html.EscapeString(s.Notes))
	}

	b.WriteString("</section>\n")
	return nil
}

func (r *htmlRenderer) renderElement(b *strings.Builder, e Element) error {
	switch el := e.(type) {
	case Text:
		return r.renderText(b, el)
	case Code:
		return r.renderCode(b, el)
	case Markdown:
		return r.renderMarkdown(b, el)
	case Image:
		return r.renderImage(b, el)
	case QRCode:
		svg, err := qrCodeSVG(el.Content)
		if err != nil {
			return err
		}
		writeFigure(b, el.Rect, string(svg))
		return nil
	case Chart:
		if len(el.SVG) == 0 {
			return fmt.Errorf("%w: empty chart", ErrInvalidElement)
		}
		writeFigure(b, el.Rect, string(el.SVG))
		return nil
	case LinePlot:
		w, h := r.st.RectPoints(el.Rect)
		svg, err := plotSVG(el, r.st, w, h)
		if err != nil {
			return err
		}
		writeFigure(b, el.Rect, string(svg))
		return nil
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidElement, e)
	}
}

func (r *htmlRenderer) renderText(b *strings.Builder, t Text) error {
	content := html.EscapeString(t.Content)
	if t.URL != "" {
		content = fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(t.URL), content)
	}
	fmt.Fprintf(b, "<div class=\"el el-text\" style=\"%s\">%s</div>\n",
		joinCSS(anchorCSS(t.Pos, t.Style.HAlign, t.Style.VAlign), textStyleCSS(t.Style)), content)
	return nil
}

func (r *htmlRenderer) renderCode(b *strings.Builder, c Code) error {
	highlighted, err := highlightCode(c.Source, c.Language, r.st.CodeTheme)
	if err != nil {
		return err
	}
	v := c.Style.VAlign
	if v == "" {
		v = VAlignTop
	}
	fmt.Fprintf(b, "<div class=\"el el-code\" style=\"%s\">%s</div>\n",
		joinCSS(anchorCSS(c.Pos, c.Style.HAlign, v), textStyleCSS(c.Style)), highlighted)
	return nil
}

func (r *htmlRenderer) renderMarkdown(b *strings.Builder, m Markdown) error {
	body, err := r.markdown.render(m.Source)
	if err != nil {
		return err
	}
	v := m.Style.VAlign
	if v == "" {
		v = VAlignTop
	}
	css := anchorCSS(m.Pos, m.Style.HAlign, v)
	if m.Width > 0 {
		css = joinCSS(css, "width:"+percent(m.Width))
	}
	fmt.Fprintf(b, "<div class=\"el el-markdown\" style=\"%s\">%s</div>\n",
		joinCSS(css, textStyleCSS(m.Style)), body)
	return nil
}

func (r *htmlRenderer) renderImage(b *strings.Builder, img Image) error {
	if len(img.Data) == 0 || img.MIMEType == "" {
		return fmt.Errorf("%w: image needs data and a MIME type", ErrInvalidElement)
	}
	src := "data:" + img.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
	writeFigure(b, img.Rect, fmt.Sprintf(`<img src="%s" alt="">`, src))
	return nil
}

// writeFigure wraps pre-rendered markup in a box covering the rectangle.
func writeFigure(b *strings.Builder, rect Rect, inner string) {
	fmt.Fprintf(b, "<div class=\"el el-figure\" style=\"%s\">%s</div>\n", rectCSS(rect), inner)
}

func joinCSS(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ";")
}
