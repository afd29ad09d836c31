package loam

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/easel/internal/testutils"
	"github.com/aretw0/loam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Load(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)

	files := map[string]string{
		"intro.md": `---
order: 1
title: Welcome
---
Answer the questions below.`,
		"quiz.md": `---
order: 2
elements:
  - type: RadioGroup
    props:
      options: [A, B]
      correctAnswers: [A]
      score: 2
---
`,
		"appendix.json": `{"order": 2, "elements": [{"type": "Box"}]}`,
		"draft.md": `---
order: 0
hidden: true
---
Not ready`,
	}
	testutils.WriteFiles(t, tmpDir, files)

	loader := New(loam.NewTypedRepository[SlideMetadata](repo), "demo")
	d, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "demo", d.Title)
	require.Len(t, d.Slides, 3)

	intro := d.Slides[0].([]any)
	require.Len(t, intro, 2)
	assert.Equal(t, map[string]any{"variant": "h1", "text": "Welcome"}, intro[0].(map[string]any)["props"])
	assert.Equal(t, "Answer the questions below.", intro[1].(map[string]any)["props"].(map[string]any)["text"])

	// Same order: ties break on document ID.
	appendix := d.Slides[1].([]any)
	assert.Equal(t, "Box", appendix[0].(map[string]any)["type"])

	quiz := d.Slides[2].([]any)
	require.Len(t, quiz, 1)
	props := quiz[0].(map[string]any)["props"].(map[string]any)
	assert.Equal(t, 2, props["score"], "strict numbers are normalized to int")
	assert.Equal(t, []any{"A"}, props["correctAnswers"])
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "one.md"), []byte("---\norder: 1\n---\nHello"), 0644))

	loader, err := Open(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(dir), loader.Title)

	d, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, d.Slides, 1)

	slide := d.Slides[0].([]any)
	require.Len(t, slide, 1)
	assert.Equal(t, map[string]any{"variant": "body", "text": "Hello"}, slide[0].(map[string]any)["props"])
}

func TestTrimExtension(t *testing.T) {
	assert.Equal(t, "slides/intro", trimExtension("slides/intro.md"))
	assert.Equal(t, "plain", trimExtension("plain"))
}
