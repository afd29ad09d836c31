package domain

import "errors"

// ErrSnapshotNotFound is returned when a session ID cannot be found in the store.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// ErrInvalidPath is returned when a path cannot be parsed or contains unsupported keys.
var ErrInvalidPath = errors.New("invalid path")

// ErrDeckNotFound is returned when a deck source does not exist.
var ErrDeckNotFound = errors.New("deck not found")

// ErrSnapshotExists is returned when creating a session whose ID is already taken.
var ErrSnapshotExists = errors.New("snapshot already exists")
