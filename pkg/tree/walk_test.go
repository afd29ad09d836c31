package tree_test

import (
	"testing"

	"github.com/aretw0/easel/pkg/tree"
	"github.com/stretchr/testify/assert"
)

func TestForEachElement_Order(t *testing.T) {
	c := []any{
		[]any{
			map[string]any{"type": "a"},
			map[string]any{"type": "b"},
		},
		"not a slide",
		[]any{
			"not an element",
			map[string]any{"type": "c"},
		},
	}

	type visit struct {
		typ          string
		slide, index int
	}
	var got []visit
	tree.ForEachElement(c, func(el map[string]any, si, ei int) {
		got = append(got, visit{el["type"].(string), si, ei})
	})

	assert.Equal(t, []visit{
		{"a", 0, 0},
		{"b", 0, 1},
		{"c", 2, 1},
	}, got)
	assert.Equal(t, 3, tree.ElementCount(c))
}

func TestForEachElement_NotACollection(t *testing.T) {
	called := false
	tree.ForEachElement(map[string]any{"x": 1}, func(map[string]any, int, int) { called = true })
	tree.ForEachElement(nil, func(map[string]any, int, int) { called = true })
	assert.False(t, called)
	assert.Zero(t, tree.ElementCount(nil))
}
