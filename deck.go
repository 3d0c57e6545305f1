package slidedeck

import (
	"context"
	"fmt"
)

// Producer generates one or more slides from the shared style.
// Producers fail only on bad input (an unreadable checkout, malformed tags).
type Producer func(ctx context.Context, st *Style) ([]*Slide, error)

// Step is a named producer, so failures can say which part of the talk broke.
type Step struct {
	Name    string
	Produce Producer
}

// Deck is the ordered list of slides of a talk.
type Deck struct {
	Slides []*Slide
}

// Len returns the number of slides, which is the number of PDF pages.
func (d *Deck) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Slides)
}

// Assemble runs the steps in order and concatenates their slides. Every
// slide that is not Plain receives the stamp as a decoration; a nil stamp
// skips the decoration pass.
func Assemble(ctx context.Context, st *Style, stamp Element, steps ...Step) (*Deck, error) {
	if err := st.Validate(); err != nil {
		return nil, err
	}

	deck := &Deck{}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		slides, err := step.Produce(ctx, st)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrProducer, step.Name, err)
		}
		deck.Slides = append(deck.Slides, slides...)
	}

	if deck.Len() == 0 {
		return nil, ErrEmptyDeck
	}

	if stamp != nil {
		Decorate(deck, stamp)
	}
	return deck, nil
}

// Decorate adds the stamp to every slide that is not Plain.
func Decorate(deck *Deck, stamp Element) {
	for _, s := range deck.Slides {
		if s.Plain {
			continue
		}
		s.Decorations = append(s.Decorations, stamp)
	}
}
