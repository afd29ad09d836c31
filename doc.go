/*
Package easel edits and renders collections of positioned, interactive elements
organized into slides.

A Collection is an untyped tree: a list of slides, each a list of elements
shaped as {type, props}. Elements are addressed by Paths (slide index, element
index, "props", field, ...) and every edit produces a new Collection that shares
untouched subtrees with the previous one. Rendering walks the tree and
dispatches each node to a renderer registered for its type.

# Layers

  - pkg/tree: safe get/set/insert/remove over nested values, plus element traversal.
  - pkg/store: the editing store (cursors, field bindings, bulk edits, memoized scores).
  - pkg/render: the renderer registry and the interpreter.
  - pkg/widgets: a reference markdown catalog (RadioGroup, CheckboxGroup, Box, Typography).
  - pkg/session, pkg/adapters: persistent multi-session editing over HTTP or MCP.

# Usage

	ed, err := easel.Open(ctx, "./quiz.yaml")
	if err != nil {
		log.Fatal(err)
	}

	s := ed.Store()
	s.SetScoreForAll(5)
	s.PatchValue(domain.PropPath(0, 0, "answers"), "A")

	fmt.Println(s.TotalScore(), s.CurrentScore())
	fmt.Println(ed.Markdown(0))
*/
package easel
