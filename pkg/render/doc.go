/*
Package render interprets a tagged node tree against a registry of renderers.

A node is either a list of nodes, a scalar leaf, or an object {type, props}.
The Interpreter walks the tree depth first, renders props.children before their
parent and hands both to the renderer registered for the node's type:

	reg := render.NewRegistry()
	reg.Register("Box", func(props map[string]any, children []render.Output) render.Output {
		return render.Output{Type: "Box", Children: children}
	})

	out := render.NewInterpreter(reg).Render(slide)

A type with no renderer yields an empty Output and a diagnostic; sibling nodes
keep rendering.
*/
package render
