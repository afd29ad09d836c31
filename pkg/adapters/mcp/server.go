package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/aretw0/easel"
	"github.com/aretw0/easel/internal/logging"
	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/render"
	"github.com/aretw0/easel/pkg/session"
	"github.com/aretw0/easel/pkg/store"
	"github.com/aretw0/easel/pkg/tree"
	"github.com/aretw0/easel/pkg/widgets"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// CollectionURI is the resource holding the session's Collection as JSON.
const CollectionURI = "easel://collection"

// ValueResponse is the result of get_value.
type ValueResponse struct {
	Path  string `json:"path" jsonschema_description:"The dotted path that was read"`
	Value any    `json:"value" jsonschema_description:"The value found at path, null when absent"`
	Found bool   `json:"found" jsonschema_description:"Whether the path exists"`
}

// MutationResponse is the result of every write tool.
type MutationResponse struct {
	Applied bool   `json:"applied" jsonschema_description:"Whether the collection changed"`
	Count   int    `json:"count,omitempty" jsonschema_description:"Elements touched by a bulk operation"`
	Version uint64 `json:"version" jsonschema_description:"Collection version after the call"`
}

// ScoresResponse is the result of scores.
type ScoresResponse struct {
	Total   float64 `json:"total" jsonschema_description:"Sum of every element score"`
	Current float64 `json:"current" jsonschema_description:"Sum of the scores of correctly answered elements"`
}

// RenderResponse is the result of render_slide.
type RenderResponse struct {
	Slide    int    `json:"slide"`
	Markdown string `json:"markdown" jsonschema_description:"The slide rendered as markdown"`
}

// Server exposes one editing session as MCP tools.
type Server struct {
	sessions  *session.Manager
	sessionID string
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates an MCP server bound to session id of sessions.
func NewServer(sessions *session.Manager, id string, opts ...Option) *Server {
	s := &Server{
		sessions:  sessions,
		sessionID: id,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("easel-mcp", strings.TrimSpace(easel.Version),
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("get_value",
		mcp.WithDescription("Read the value at a dotted path of the collection, e.g. 0.1.props.score."),
		mcp.WithString("path", mcp.Description("Dotted path; empty for the whole collection")),
		mcp.WithOutputSchema[ValueResponse](),
	), mcp.NewStructuredToolHandler(s.handleGetValue))

	s.mcpServer.AddTool(mcp.NewTool("patch_value",
		mcp.WithDescription("Write a value at a dotted path. Paths that do not fit the collection are ignored."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Dotted path")),
		mcp.WithString("value", mcp.Required(), mcp.Description("JSON-encoded value")),
		mcp.WithOutputSchema[MutationResponse](),
	), mcp.NewStructuredToolHandler(s.handlePatchValue))

	s.mcpServer.AddTool(mcp.NewTool("add_element",
		mcp.WithDescription("Insert a value into the list at path. A missing list is created."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Dotted path of the list, e.g. 0 for the first slide")),
		mcp.WithNumber("index", mcp.Description("Insert position, clamped to the list bounds")),
		mcp.WithString("value", mcp.Required(), mcp.Description("JSON-encoded element")),
		mcp.WithOutputSchema[MutationResponse](),
	), mcp.NewStructuredToolHandler(s.handleAddElement))

	s.mcpServer.AddTool(mcp.NewTool("remove_element",
		mcp.WithDescription("Remove the list item at index."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Dotted path of the list")),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("Index to remove")),
		mcp.WithOutputSchema[MutationResponse](),
	), mcp.NewStructuredToolHandler(s.handleRemoveElement))

	s.mcpServer.AddTool(mcp.NewTool("uncheck_all",
		mcp.WithDescription("Set props.checked to false on every element that has it."),
		mcp.WithOutputSchema[MutationResponse](),
	), mcp.NewStructuredToolHandler(s.handleUncheckAll))

	s.mcpServer.AddTool(mcp.NewTool("set_score_for_all",
		mcp.WithDescription("Set props.score on every element. Negative scores are stored as 0."),
		mcp.WithNumber("score", mcp.Required(), mcp.Description("Score to assign")),
		mcp.WithOutputSchema[MutationResponse](),
	), mcp.NewStructuredToolHandler(s.handleSetScoreForAll))

	s.mcpServer.AddTool(mcp.NewTool("scores",
		mcp.WithDescription("Total and current score of the collection."),
		mcp.WithOutputSchema[ScoresResponse](),
	), mcp.NewStructuredToolHandler(s.handleScores))

	s.mcpServer.AddTool(mcp.NewTool("render_slide",
		mcp.WithDescription("Render a slide as markdown."),
		mcp.WithNumber("slide", mcp.Description("Slide index, defaults to 0")),
		mcp.WithOutputSchema[RenderResponse](),
	), mcp.NewStructuredToolHandler(s.handleRenderSlide))
}

func (s *Server) handleGetValue(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ValueResponse, error) {
	path, err := pathArg(args)
	if err != nil {
		return ValueResponse{}, err
	}
	resp := ValueResponse{Path: path.String()}
	err = s.sessions.WithSession(ctx, s.sessionID, func(st *store.Store) error {
		resp.Value, resp.Found = st.Lookup(path)
		return nil
	})
	return resp, err
}

func (s *Server) handlePatchValue(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (MutationResponse, error) {
	path, err := pathArg(args)
	if err != nil {
		return MutationResponse{}, err
	}
	value, err := valueArg(args)
	if err != nil {
		return MutationResponse{}, err
	}
	return s.mutate(ctx, func(st *store.Store) (bool, int) {
		return st.PatchValue(path, value), 0
	})
}

func (s *Server) handleAddElement(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (MutationResponse, error) {
	path, err := pathArg(args)
	if err != nil {
		return MutationResponse{}, err
	}
	value, err := valueArg(args)
	if err != nil {
		return MutationResponse{}, err
	}
	index, err := intArg(args, "index", 0)
	if err != nil {
		return MutationResponse{}, err
	}
	return s.mutate(ctx, func(st *store.Store) (bool, int) {
		return st.AddElement(path, index, value), 0
	})
}

func (s *Server) handleRemoveElement(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (MutationResponse, error) {
	path, err := pathArg(args)
	if err != nil {
		return MutationResponse{}, err
	}
	index, err := intArg(args, "index", -1)
	if err != nil {
		return MutationResponse{}, err
	}
	return s.mutate(ctx, func(st *store.Store) (bool, int) {
		return st.RemoveElement(path, index), 0
	})
}

func (s *Server) handleUncheckAll(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (MutationResponse, error) {
	return s.mutate(ctx, func(st *store.Store) (bool, int) {
		n := st.UncheckAll()
		return n > 0, n
	})
}

func (s *Server) handleSetScoreForAll(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (MutationResponse, error) {
	score, ok := tree.Number(args["score"])
	if !ok {
		return MutationResponse{}, fmt.Errorf("score must be a number")
	}
	return s.mutate(ctx, func(st *store.Store) (bool, int) {
		n := st.SetScoreForAll(score)
		return n > 0, n
	})
}

func (s *Server) handleScores(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ScoresResponse, error) {
	var resp ScoresResponse
	err := s.sessions.WithSession(ctx, s.sessionID, func(st *store.Store) error {
		resp.Total = st.TotalScore()
		resp.Current = st.CurrentScore()
		return nil
	})
	return resp, err
}

func (s *Server) handleRenderSlide(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (RenderResponse, error) {
	slide, err := intArg(args, "slide", 0)
	if err != nil {
		return RenderResponse{}, err
	}
	resp := RenderResponse{Slide: slide}
	err = s.sessions.WithSession(ctx, s.sessionID, func(st *store.Store) error {
		node, ok := st.Lookup(domain.P(slide))
		if !ok {
			return fmt.Errorf("slide %d not found", slide)
		}
		interp := widgets.NewInterpreter(st, render.WithLogger(s.logger))
		resp.Markdown = widgets.Markdown(interp.RenderAt(node, domain.P(slide)))
		return nil
	})
	return resp, err
}

func (s *Server) mutate(ctx context.Context, apply func(*store.Store) (bool, int)) (MutationResponse, error) {
	var resp MutationResponse
	err := s.sessions.WithSession(ctx, s.sessionID, func(st *store.Store) error {
		resp.Applied, resp.Count = apply(st)
		resp.Version = st.Version()
		return nil
	})
	if err != nil {
		return MutationResponse{}, err
	}
	if !resp.Applied {
		s.logger.Debug("MCP write ignored", "session_id", s.sessionID)
	}
	return resp, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(CollectionURI, "Current Collection",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		snap, err := s.sessions.Snapshot(ctx, s.sessionID)
		if err != nil {
			return nil, fmt.Errorf("failed to load session: %w", err)
		}
		jsonBytes, err := json.Marshal(snap.Collection)
		if err != nil {
			return nil, fmt.Errorf("failed to encode collection: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      CollectionURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

func pathArg(args map[string]interface{}) (domain.Path, error) {
	return domain.DecodePath(args["path"])
}

// valueArg decodes the JSON-encoded "value" argument.
// A plain string that is not valid JSON is taken literally.
func valueArg(args map[string]interface{}) (any, error) {
	raw, ok := args["value"].(string)
	if !ok {
		return tree.Normalize(args["value"]), nil
	}
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return raw, nil
	}
	return tree.Normalize(v), nil
}

func intArg(args map[string]interface{}, key string, def int) (int, error) {
	raw, present := args[key]
	if !present || raw == nil {
		return def, nil
	}
	n, ok := tree.Number(raw)
	if !ok || n != math.Trunc(n) {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return int(n), nil
}
