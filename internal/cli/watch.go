package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/ports"
)

// WatchableLoader is a deck source that reports changes.
type WatchableLoader interface {
	ports.DeckLoader
	ports.Watchable
}

// Watch calls fn with the loaded deck once, then again after every change,
// until ctx is done. A deck that fails to load is logged and the loop waits
// for the next change, so a broken save does not end the session.
func Watch(ctx context.Context, loader WatchableLoader, logger *slog.Logger, fn func(*domain.Deck) error) error {
	changes, err := loader.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to watch deck: %w", err)
	}

	for {
		d, err := loader.Load(ctx)
		switch {
		case err == nil:
			if err := fn(d); err != nil {
				return err
			}
		case errors.Is(err, context.Canceled):
			return nil
		default:
			logger.Error("deck reload failed, waiting for a fix", "err", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			logger.Info("change detected, reloading deck")
		}
	}
}
