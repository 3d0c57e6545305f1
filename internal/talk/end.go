package talk

import (
	"context"

	slidedeck "github.com/alnah/go-slidedeck"
)

// End produces the closing slides.
func End(cfg Config) slidedeck.Producer {
	return func(ctx context.Context, st *slidedeck.Style) ([]*slidedeck.Slide, error) {
		centered := func(y float64, text string, size float64) slidedeck.Text {
			ts := st.Body()
			if size > 0 {
				ts.Size = size
			}
			ts.HAlign = slidedeck.AlignCenter
			return slidedeck.Text{Pos: slidedeck.Point{X: 0.5, Y: y}, Content: text, Style: ts}
		}

		done := (&slidedeck.Slide{}).Add(centered(0.5, "🎉 And that's all we need! 🎉", 0))
		question := (&slidedeck.Slide{}).Add(centered(0.5, "Was that a good idea?", 0))
		demo := (&slidedeck.Slide{}).Add(centered(0.5, "Demo", 0))
		if cfg.DemoURL != "" {
			link := centered(0.4, cfg.DemoURL, st.CodeSize)
			link.URL = cfg.DemoURL
			demo.Add(link)
		}

		return []*slidedeck.Slide{done, question, demo}, nil
	}
}
