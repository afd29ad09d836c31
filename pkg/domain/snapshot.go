package domain

import "time"

// Snapshot is the persisted form of one editing session.
// Cursor state (selected slide/element) is deliberately not part of it.
type Snapshot struct {
	// ID identifies the editing session.
	ID string `json:"id"`

	// Collection is the full slide tree ([]any of []any of element maps).
	Collection any `json:"collection"`

	// Version is the store version the Collection was taken at.
	Version uint64 `json:"version"`

	UpdatedAt time.Time `json:"updated_at"`
}

// NewSnapshot creates a snapshot for id with the given collection.
func NewSnapshot(id string, collection any) *Snapshot {
	if collection == nil {
		collection = []any{}
	}
	return &Snapshot{
		ID:         id,
		Collection: collection,
		UpdatedAt:  time.Now().UTC(),
	}
}
