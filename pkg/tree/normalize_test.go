package tree_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/easel/pkg/tree"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	in := map[any]any{
		"slides": [][]any{{map[string]any{"score": json.Number("2")}}},
		"ratio":  json.Number("0.5"),
		"typed":  []map[string]any{{"a": 1}},
		"bytes":  []byte("raw"),
	}
	want := map[string]any{
		"slides": []any{[]any{map[string]any{"score": 2}}},
		"ratio":  0.5,
		"typed":  []any{map[string]any{"a": 1}},
		"bytes":  []byte("raw"),
	}
	assert.Equal(t, want, tree.Normalize(in))
}

func TestNormalize_NestedChildren(t *testing.T) {
	in := [][]map[string]any{
		{
			{"type": "Box", "props": map[string]any{"children": []map[string]any{{"type": "Typography"}}}},
		},
	}

	assert.Equal(t, []any{
		[]any{
			map[string]any{"type": "Box", "props": map[string]any{"children": []any{map[string]any{"type": "Typography"}}}},
		},
	}, tree.Normalize(in))
	assert.Equal(t, map[string]any{"1": "x"}, tree.Normalize(map[any]any{1: "x"}))
}

func TestNumber(t *testing.T) {
	tests := []struct {
		in   any
		want float64
		ok   bool
	}{
		{3, 3, true},
		{2.5, 2.5, true},
		{float32(3), 3, true},
		{uint(3), 3, true},
		{json.Number("7"), 7, true},
		{"42", 42, true},
		{"abc", 0, false},
		{nil, 0, false},
		{true, 0, false},
	}
	for _, tt := range tests {
		got, ok := tree.Number(tt.in)
		assert.Equal(t, tt.ok, ok, "%v", tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, "%v", tt.in)
		}
	}
}
