package persistence_test

import (
	"testing"

	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_KeepsIntegers(t *testing.T) {
	snap := domain.NewSnapshot("s1", []any{
		[]any{map[string]any{"type": "Box", "props": map[string]any{"score": 3, "percent": 42, "ratio": 0.5}}},
	})
	snap.Version = 4

	data, err := persistence.Encode(snap)
	require.NoError(t, err)

	decoded, err := persistence.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, snap.Collection, decoded.Collection)
	assert.Equal(t, uint64(4), decoded.Version)
	assert.True(t, snap.UpdatedAt.Equal(decoded.UpdatedAt))
}

func TestClone_IsDeep(t *testing.T) {
	props := map[string]any{"checked": true}
	snap := domain.NewSnapshot("s1", []any{[]any{map[string]any{"type": "Box", "props": props}}})

	clone, err := persistence.Clone(snap)
	require.NoError(t, err)

	props["checked"] = false
	el := clone.Collection.([]any)[0].([]any)[0].(map[string]any)
	assert.Equal(t, true, el["props"].(map[string]any)["checked"])
}

func TestDecode_Errors(t *testing.T) {
	_, err := persistence.Decode([]byte("{"))
	assert.Error(t, err)

	snap, err := persistence.Decode([]byte(`{"id":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, []any{}, snap.Collection)
}
