package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/easel/pkg/adapters/memory"
	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunSnapshotStoreContract(t, memory.NewStore())
}

func TestMemoryStore_Isolation(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	slide := []any{map[string]any{"type": "Box"}}
	require.NoError(t, store.Save(ctx, domain.NewSnapshot("s", []any{slide})))

	slide[0] = "mutated after save"

	loaded, err := store.Load(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, []any{[]any{map[string]any{"type": "Box"}}}, loaded.Collection)
}
