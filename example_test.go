package slidedeck_test

import (
	"context"
	"fmt"
	"strings"

	slidedeck "github.com/alnah/go-slidedeck"
)

// Example assembles a two-slide deck and renders it to HTML.
// For PDF output, call Build instead (requires Chrome).
func Example() {
	titles := func(_ context.Context, st *slidedeck.Style) ([]*slidedeck.Slide, error) {
		title := &slidedeck.Slide{Plain: true}
		title.Add(slidedeck.Text{
			Pos:     slidedeck.Point{X: 0.5, Y: 0.5},
			Content: "Hello",
			Style:   st.Sized(st.HeadingSize),
		})
		body := &slidedeck.Slide{Heading: "Agenda"}
		body.Add(slidedeck.Markdown{
			Pos:    slidedeck.Point{X: 0.05, Y: 0.75},
			Width:  0.9,
			Source: "- one\n- two",
			Style:  st.Body(),
		})
		return []*slidedeck.Slide{title, body}, nil
	}

	st := slidedeck.DefaultStyle()
	deck, err := slidedeck.Assemble(context.Background(), st, nil,
		slidedeck.Step{Name: "intro", Produce: titles})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	b, err := slidedeck.NewBuilder()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer b.Close()

	html, err := b.RenderHTML(deck, st, "Example")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(strings.Count(html, `<section class="slide"`), "slides")
	// Output: 2 slides
}

// ExampleAssemble shows the decoration pass: every slide except Plain ones
// receives the stamp.
func ExampleAssemble() {
	produce := func(_ context.Context, _ *slidedeck.Style) ([]*slidedeck.Slide, error) {
		return []*slidedeck.Slide{
			{Heading: "Title", Plain: true},
			{Heading: "Body"},
			{Heading: "End"},
		}, nil
	}
	stamp := slidedeck.Text{Pos: slidedeck.Point{X: 0.9, Y: 0.9}, Content: "logo"}

	deck, err := slidedeck.Assemble(context.Background(), slidedeck.DefaultStyle(), stamp,
		slidedeck.Step{Name: "all", Produce: produce})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, s := range deck.Slides {
		fmt.Printf("%s: %d decorations\n", s.Heading, len(s.Decorations))
	}
	// Output:
	// Title: 0 decorations
	// Body: 1 decorations
	// End: 1 decorations
}

// ExampleResolveColor maps the tab: palette to hex.
func ExampleResolveColor() {
	fmt.Println(slidedeck.ResolveColor("tab:blue"))
	fmt.Println(slidedeck.ResolveColor("black"))
	// Output:
	// #1f77b4
	// black
}
