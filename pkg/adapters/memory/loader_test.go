package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/easel/pkg/adapters/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Load(t *testing.T) {
	loader := memory.NewLoader("demo", [][]map[string]any{
		{{"type": "Typography", "props": map[string]any{"text": "hello"}}},
	})

	d, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "demo", d.Title)
	require.Len(t, d.Slides, 1)

	// Editing one loaded copy does not affect the next.
	d.Slides[0] = []any{}
	again, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, again.Slides[0], 1)
}

func TestLoader_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := memory.NewLoader("x", nil).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
