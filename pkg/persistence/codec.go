package persistence

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/tree"
)

// Encode serializes snap as JSON.
func Encode(snap *domain.Snapshot) ([]byte, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot %s: %w", snap.ID, err)
	}
	return data, nil
}

// Decode parses a snapshot produced by Encode. Numbers are decoded exactly:
// integers come back as int, everything else as float64.
func Decode(data []byte) (*domain.Snapshot, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var snap domain.Snapshot
	if err := dec.Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	snap.Collection = tree.Normalize(snap.Collection)
	if snap.Collection == nil {
		snap.Collection = []any{}
	}
	return &snap, nil
}

// Clone returns a deep copy of snap by running it through the codec.
func Clone(snap *domain.Snapshot) (*domain.Snapshot, error) {
	data, err := Encode(snap)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}
