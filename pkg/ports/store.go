package ports

import (
	"context"

	"github.com/aretw0/easel/pkg/domain"
)

// SnapshotStore defines the interface for persisting editing sessions.
type SnapshotStore interface {
	// Save persists the snapshot under snap.ID, replacing any previous one.
	Save(ctx context.Context, snap *domain.Snapshot) error

	// Load retrieves the snapshot for a session ID.
	// Returns domain.ErrSnapshotNotFound if the session does not exist.
	Load(ctx context.Context, id string) (*domain.Snapshot, error)

	// Delete removes the snapshot for a session ID. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of every stored session.
	List(ctx context.Context) ([]string, error)
}
