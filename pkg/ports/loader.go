package ports

import (
	"context"

	"github.com/aretw0/easel/pkg/domain"
)

// DeckLoader defines how an authored deck is obtained.
type DeckLoader interface {
	Load(ctx context.Context) (*domain.Deck, error)
}

// Watchable defines an interface for loaders that can notify about source changes.
type Watchable interface {
	// Watch returns a channel that is signaled when the deck source changes.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
