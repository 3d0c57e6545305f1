package slidedeck

import (
	"bytes"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// markdownRenderer converts the prose of Markdown elements to HTML fragments.
type markdownRenderer struct {
	md goldmark.Markdown
}

// newMarkdownRenderer creates a renderer with GFM extensions and inline-styled
// code highlighting in the given chroma theme.
func newMarkdownRenderer(theme string) *markdownRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
			highlighting.NewHighlighting(
				highlighting.WithStyle(theme),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(false),
				),
			),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)
	return &markdownRenderer{md: md}
}

// render converts Markdown source to an HTML fragment.
func (r *markdownRenderer) render(source string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("%w: markdown: %v", ErrHTMLRender, err)
	}
	return buf.String(), nil
}
