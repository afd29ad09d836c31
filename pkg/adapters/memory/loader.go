package memory

import (
	"context"

	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/tree"
)

// Loader implements ports.DeckLoader over a deck held in memory.
type Loader struct {
	deck domain.Deck
}

// NewLoader creates a loader serving slides. Typed Go containers are normalized.
func NewLoader(title string, slides any) *Loader {
	collection, _ := tree.Normalize(slides).([]any)
	if collection == nil {
		collection = []any{}
	}
	return &Loader{deck: domain.Deck{Title: title, Slides: collection}}
}

// Load returns the deck. Each call gets its own copy of the slides.
func (l *Loader) Load(ctx context.Context) (*domain.Deck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	slides, _ := tree.Normalize(l.deck.Slides).([]any)
	return &domain.Deck{Title: l.deck.Title, Slides: slides}, nil
}
