// Package slidedeck composes slides and renders them to a multi-page PDF
// using headless Chrome.
//
// # Quick Start
//
// Assemble a deck from producers, build it, and write the PDF:
//
//	st := slidedeck.DefaultStyle()
//	deck, err := slidedeck.Assemble(ctx, st, nil, slidedeck.Step{
//	    Name: "hello",
//	    Produce: func(ctx context.Context, st *slidedeck.Style) ([]*slidedeck.Slide, error) {
//	        s := &slidedeck.Slide{Heading: "Hello"}
//	        s.Add(slidedeck.Text{Pos: slidedeck.Point{X: 0.05, Y: 0.7}, Content: "World", Style: st.Body()})
//	        return []*slidedeck.Slide{s}, nil
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	b, err := slidedeck.NewBuilder()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer b.Close()
//
//	res, err := b.Build(ctx, deck, st, slidedeck.Metadata{Title: "Talk", Author: "Me"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = slidedeck.WriteDeck(afero.NewOsFs(), "slides.pdf", res.PDF)
//
// # Coordinates
//
// Elements are placed in figure fractions: (0, 0) is the bottom-left corner
// of the slide and (1, 1) the top-right. Text is anchored at its position
// according to TextStyle.HAlign and TextStyle.VAlign; boxes (images, charts,
// plots, QR codes) are given as Rect{X, Y, W, H} with X, Y at the
// bottom-left.
//
// # Build Pipeline
//
//  1. Assemble runs producers in order and stamps the decoration (usually
//     the logo) on every slide that is not Plain
//  2. Builder.RenderHTML emits one <section class="slide"> per slide, with
//     @font-face rules for the selected fonts and an @page rule at the
//     slide size
//  3. Chrome prints the page with zero margins, one slide per PDF page
//  4. The document information dictionary (Title, Author, ...) is written
//     by an incremental update appended to Chrome's output
//  5. PostProcessor linearizes the draft with qpdf, or copies it unchanged
//     when qpdf is not installed
package slidedeck
