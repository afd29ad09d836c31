package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/easel/pkg/adapters/memory"
	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *session.Manager) {
	t.Helper()
	mgr := session.NewManager(memory.NewStore())
	_, err := mgr.Create(context.Background(), "deck", []any{
		[]any{
			map[string]any{
				"type": "RadioGroup",
				"props": map[string]any{
					"label":          "Pick one",
					"options":        []any{"A", "B"},
					"score":          1,
					"correctAnswers": []any{"B"},
					"checked":        true,
				},
			},
		},
	})
	require.NoError(t, err)
	return NewServer(mgr, "deck"), mgr
}

func TestGetAndPatchValue(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	got, err := s.handleGetValue(ctx, mcp.CallToolRequest{}, map[string]interface{}{"path": "0.0.props.label"})
	require.NoError(t, err)
	assert.Equal(t, ValueResponse{Path: "0.0.props.label", Value: "Pick one", Found: true}, got)

	res, err := s.handlePatchValue(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"path":  "0.0.props.answers",
		"value": `["B"]`,
	})
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Equal(t, uint64(1), res.Version)

	got, err = s.handleGetValue(ctx, mcp.CallToolRequest{}, map[string]interface{}{"path": "0.0.props.answers"})
	require.NoError(t, err)
	assert.Equal(t, []any{"B"}, got.Value)

	scores, err := s.handleScores(ctx, mcp.CallToolRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, ScoresResponse{Total: 1, Current: 1}, scores)
}

func TestPatchValue_LiteralString(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	_, err := s.handlePatchValue(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"path":  "0.0.props.label",
		"value": "plain words",
	})
	require.NoError(t, err)

	got, err := s.handleGetValue(ctx, mcp.CallToolRequest{}, map[string]interface{}{"path": "0.0.props.label"})
	require.NoError(t, err)
	assert.Equal(t, "plain words", got.Value)
}

func TestPatchValue_Rejected(t *testing.T) {
	s, _ := newTestServer(t)

	res, err := s.handlePatchValue(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"path":  "0.0.type.x",
		"value": "1",
	})
	require.NoError(t, err)
	assert.False(t, res.Applied)
	assert.Equal(t, uint64(0), res.Version)
}

func TestPatchValue_InvalidPath(t *testing.T) {
	s, _ := newTestServer(t)

	_, err := s.handlePatchValue(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{
		"path":  "0..1",
		"value": "1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPath)
}

func TestAddAndRemoveElement(t *testing.T) {
	s, mgr := newTestServer(t)
	ctx := context.Background()

	res, err := s.handleAddElement(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"path":  "0",
		"index": float64(1),
		"value": `{"type":"Typography","props":{"text":"Hi","variant":"h1"}}`,
	})
	require.NoError(t, err)
	assert.True(t, res.Applied)

	snap, err := mgr.Snapshot(ctx, "deck")
	require.NoError(t, err)
	slide := snap.Collection.([]any)[0].([]any)
	require.Len(t, slide, 2)
	assert.Equal(t, "Typography", slide[1].(map[string]any)["type"])

	res, err = s.handleRemoveElement(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"path":  "0",
		"index": float64(0),
	})
	require.NoError(t, err)
	assert.True(t, res.Applied)

	_, err = s.handleRemoveElement(ctx, mcp.CallToolRequest{}, map[string]interface{}{
		"path":  "0",
		"index": 0.5,
	})
	assert.Error(t, err)
}

func TestBulkTools(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	res, err := s.handleSetScoreForAll(ctx, mcp.CallToolRequest{}, map[string]interface{}{"score": float64(3)})
	require.NoError(t, err)
	assert.Equal(t, MutationResponse{Applied: true, Count: 1, Version: 1}, res)

	res, err = s.handleUncheckAll(ctx, mcp.CallToolRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, MutationResponse{Applied: true, Count: 1, Version: 2}, res)

	scores, err := s.handleScores(ctx, mcp.CallToolRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, float64(3), scores.Total)
	assert.Equal(t, float64(0), scores.Current)

	_, err = s.handleSetScoreForAll(ctx, mcp.CallToolRequest{}, map[string]interface{}{"score": "lots"})
	assert.Error(t, err)
}

func TestRenderSlide(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	res, err := s.handleRenderSlide(ctx, mcp.CallToolRequest{}, map[string]interface{}{})
	require.NoError(t, err)
	assert.Equal(t, "**Pick one** _(1 pt)_\n\n- ( ) A\n- ( ) B", res.Markdown)

	_, err = s.handleRenderSlide(ctx, mcp.CallToolRequest{}, map[string]interface{}{"slide": float64(4)})
	assert.Error(t, err)
}

func TestUnknownSession(t *testing.T) {
	mgr := session.NewManager(memory.NewStore())
	s := NewServer(mgr, "missing")

	_, err := s.handleScores(context.Background(), mcp.CallToolRequest{}, nil)
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestCollectionResource(t *testing.T) {
	s, _ := newTestServer(t)

	resp := s.MCPServer().HandleMessage(context.Background(), []byte(`{
		"jsonrpc": "2.0",
		"id": 1,
		"method": "resources/read",
		"params": {"uri": "easel://collection"}
	}`))

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(data), `\"type\":\"RadioGroup\"`)
}
