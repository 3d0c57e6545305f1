package talk

import (
	"context"

	slidedeck "github.com/alnah/go-slidedeck"
	"github.com/alnah/go-slidedeck/internal/logo"
)

// wordmarkRect keeps the wordmark's 5:1 aspect on a 16:9 page.
var wordmarkRect = slidedeck.Rect{X: 0.15, Y: 0.55, W: 0.7, H: 0.7 * 19.2 / 10.8 / 5}

// Title produces the title page. It is Plain: the wordmark already shows
// the logo.
func Title(cfg Config) slidedeck.Producer {
	return func(ctx context.Context, st *slidedeck.Style) ([]*slidedeck.Slide, error) {
		_, h := st.RectPoints(wordmarkRect)

		s := &slidedeck.Slide{Plain: true}
		s.Add(slidedeck.Chart{
			Rect: wordmarkRect,
			SVG: logo.Wordmark(logo.WordmarkOptions{
				Icon:   logo.StampOptions(0),
				Height: h,
				Font:   st.LogoFontFamily,
			}),
		})

		center := func(y float64, text string, ts slidedeck.TextStyle) slidedeck.Text {
			ts.HAlign = slidedeck.AlignCenter
			return slidedeck.Text{Pos: slidedeck.Point{X: 0.5, Y: y}, Content: text, Style: ts}
		}

		heading := st.Sized(st.HeadingSize)
		heading.Color = st.HeadingColor
		s.Add(center(0.4, cfg.Title, heading))
		if cfg.Author != "" {
			s.Add(center(0.25, cfg.Author, st.Body()))
		}
		if cfg.Event != "" {
			s.Add(center(0.15, cfg.Event, st.Sized(st.AxesLabelSize)))
		}
		return []*slidedeck.Slide{s}, nil
	}
}
