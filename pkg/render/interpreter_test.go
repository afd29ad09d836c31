package render_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/aretw0/easel/internal/logging"
	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry() *render.Registry {
	reg := render.NewRegistry()
	reg.Register("Box", func(props map[string]any, children []render.Output) render.Output {
		return render.Output{Type: "Box", Children: children}
	})
	reg.Register("Typography", func(props map[string]any, children []render.Output) render.Output {
		text, _ := props["text"].(string)
		return render.Output{Type: "Typography", Text: text, Children: children}
	})
	return reg
}

func TestRender_List(t *testing.T) {
	node := []any{
		map[string]any{"type": "Typography", "props": map[string]any{"text": "one"}},
		map[string]any{"type": "Typography", "props": map[string]any{"text": "two"}},
	}
	out := render.Render(node, testRegistry())

	assert.True(t, out.IsFragment())
	require.Len(t, out.Children, 2)
	assert.Equal(t, "one", out.Children[0].Text)
	assert.Equal(t, "two", out.Children[1].Text)
}

func TestRender_Empty(t *testing.T) {
	assert.True(t, render.Render(nil, testRegistry()).IsEmpty())
	assert.True(t, render.Render([]any{}, testRegistry()).IsEmpty())
	assert.True(t, render.Render("", testRegistry()).IsEmpty())
}

func TestRender_EmptyObjectIsQuiet(t *testing.T) {
	var buf bytes.Buffer
	var missing []string
	in := render.NewInterpreter(testRegistry(),
		render.WithLogger(logging.NewWithWriter(&buf, slog.LevelDebug, false)),
		render.WithHooks(domain.Hooks{OnMissingRenderer: func(name string) { missing = append(missing, name) }}),
	)

	assert.True(t, in.Render(map[string]any{}).IsEmpty())
	out := in.Render([]any{map[string]any{}, map[string]any{"type": "Typography", "props": map[string]any{"text": "x"}}})
	require.Len(t, out.Children, 2)
	assert.True(t, out.Children[0].IsEmpty())
	assert.Equal(t, "x", out.Children[1].Text)

	assert.Empty(t, missing)
	assert.NotContains(t, buf.String(), "no renderer for type")
}

func TestRender_NestedChildren(t *testing.T) {
	node := map[string]any{
		"type": "Box",
		"props": map[string]any{
			"children": []any{
				map[string]any{"type": "Typography", "props": map[string]any{"text": "inside"}},
				"plain text",
				map[string]any{
					"type":  "Box",
					"props": map[string]any{"children": map[string]any{"type": "Typography", "props": map[string]any{"text": "deep"}}},
				},
			},
		},
	}
	out := render.Render(node, testRegistry())

	assert.Equal(t, "Box", out.Type)
	require.Len(t, out.Children, 3)
	assert.Equal(t, "inside", out.Children[0].Text)
	assert.Equal(t, domain.TextType, out.Children[1].Type)
	assert.Equal(t, "plain text", out.Children[1].Text)
	require.Len(t, out.Children[2].Children, 1)
	assert.Equal(t, "deep", out.Children[2].Children[0].Text)
	assert.Equal(t, "inside\nplain text\ndeep", render.PlainText(out))
}

func TestRender_UnknownTypeDoesNotAbortSiblings(t *testing.T) {
	var buf bytes.Buffer
	var missing []string
	in := render.NewInterpreter(testRegistry(),
		render.WithLogger(logging.NewWithWriter(&buf, slog.LevelDebug, false)),
		render.WithHooks(domain.Hooks{OnMissingRenderer: func(name string) { missing = append(missing, name) }}),
	)

	node := []any{
		map[string]any{"type": "Typography", "props": map[string]any{"text": "before"}},
		map[string]any{"type": "Hologram", "props": map[string]any{}},
		map[string]any{"props": map[string]any{"text": "untyped"}},
		map[string]any{"type": "Typography", "props": map[string]any{"text": "after"}},
	}

	var out render.Output
	assert.NotPanics(t, func() { out = in.Render(node) })

	require.Len(t, out.Children, 4)
	assert.Equal(t, "before", out.Children[0].Text)
	assert.True(t, out.Children[1].IsEmpty())
	assert.True(t, out.Children[2].IsEmpty())
	assert.Equal(t, "after", out.Children[3].Text)
	assert.Equal(t, []string{"Hologram", ""}, missing)
	assert.Contains(t, buf.String(), "no renderer for type")
	assert.Contains(t, buf.String(), "type=Hologram")
}

func TestRender_Deterministic(t *testing.T) {
	node := []any{
		map[string]any{"type": "Box", "props": map[string]any{"children": []any{"a", 1, true}}},
	}
	in := render.NewInterpreter(testRegistry())
	assert.Equal(t, in.Render(node), in.Render(node))
}

func TestRender_PathPropAndTransform(t *testing.T) {
	var seen []domain.Path
	reg := render.NewRegistry()
	reg.Register("Leaf", func(props map[string]any, _ []render.Output) render.Output {
		seen = append(seen, props["$path"].(domain.Path))
		return render.Output{Type: "Leaf", Props: map[string]any{"label": props["label"]}}
	})
	reg.Register("Box", func(props map[string]any, children []render.Output) render.Output {
		seen = append(seen, props["$path"].(domain.Path))
		return render.Output{Type: "Box", Children: children}
	})

	original := map[string]any{"label": "x"}
	slide := []any{
		map[string]any{"type": "Box", "props": map[string]any{"children": []any{
			map[string]any{"type": "Leaf", "props": original},
		}}},
	}

	in := render.NewInterpreter(reg,
		render.WithPathProp("$path"),
		render.WithTransform(func(typeName string, _ domain.Path, props map[string]any) map[string]any {
			if typeName == "Leaf" {
				props["label"] = "computed"
			}
			return props
		}),
	)
	out := in.RenderAt(slide, domain.P(3))

	assert.Equal(t, []domain.Path{
		domain.P(3, 0, "props", "children", 0),
		domain.P(3, 0),
	}, seen)
	assert.Equal(t, "computed", out.Children[0].Children[0].Props["label"])
	assert.Equal(t, map[string]any{"label": "x"}, original, "caller props must not change")
}

func TestRender_TypedContainers(t *testing.T) {
	node := []map[string]any{{"type": "Typography", "props": map[string]any{"text": "typed"}}}
	out := render.Render(node, testRegistry())
	require.Len(t, out.Children, 1)
	assert.Equal(t, "typed", out.Children[0].Text)
}

func TestRegistry_Types(t *testing.T) {
	assert.Equal(t, []string{"Box", "Typography"}, testRegistry().Types())
	_, ok := testRegistry().Lookup("Nope")
	assert.False(t, ok)
}

func TestFlatten(t *testing.T) {
	out := render.Output{Children: []render.Output{
		{Type: "A"},
		{Children: []render.Output{{Type: "B"}, {Type: "C"}}},
	}}
	flat := render.Flatten(out.Children)
	require.Len(t, flat, 3)
	assert.Equal(t, "C", flat[2].Type)
}
