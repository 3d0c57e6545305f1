package talk

import (
	"context"

	slidedeck "github.com/alnah/go-slidedeck"
)

const whySlides = `- Figures in the talk are the same code as in the docs
- Slides diff, review and merge like any other source
- One command rebuilds the whole deck`

const whyNotSlides = `- No animations or transitions
- Layout is done by hand, in figure coordinates
- Speaker notes live outside the PDF`

// Why produces the motivation slides.
func Why() slidedeck.Producer {
	return func(ctx context.Context, st *slidedeck.Style) ([]*slidedeck.Slide, error) {
		body := st.Sized(st.AxesLabelSize)
		at := slidedeck.Point{X: 0.05, Y: 0.75}

		pro := &slidedeck.Slide{Heading: "Why slides in Matplotlib?"}
		pro.Add(slidedeck.Markdown{Pos: at, Width: 0.9, Source: whySlides, Style: body})

		con := &slidedeck.Slide{Heading: "Why not?"}
		con.Add(slidedeck.Markdown{Pos: at, Width: 0.9, Source: whyNotSlides, Style: body})

		return []*slidedeck.Slide{pro, con}, nil
	}
}
