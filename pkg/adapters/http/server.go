package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/aretw0/easel/internal/logging"
	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/render"
	"github.com/aretw0/easel/pkg/session"
	"github.com/aretw0/easel/pkg/store"
	"github.com/aretw0/easel/pkg/tree"
	"github.com/aretw0/easel/pkg/widgets"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait    = 10 * time.Second
	streamBuffer = 64
)

// Server serves the editing sessions of a session.Manager over JSON.
type Server struct {
	Sessions *session.Manager

	metrics  *Metrics
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics shares a Metrics instance, typically one whose Hooks were also
// handed to the session.Manager.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) {
		if m != nil {
			s.metrics = m
		}
	}
}

// NewServer creates a Server over sessions.
func NewServer(sessions *session.Manager, opts ...Option) *Server {
	s := &Server{
		Sessions: sessions,
		logger:   logging.NewNop(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}
	return s
}

// NewHandler creates the HTTP handler for the session API.
func NewHandler(sessions *session.Manager, opts ...Option) http.Handler {
	return NewServer(sessions, opts...).Routes()
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.listSessions)
		r.Post("/", s.createSession)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.getSession)
			r.Delete("/", s.deleteSession)
			r.Get("/value", s.getValue)
			r.Post("/patch", s.patchValue)
			r.Post("/elements", s.addElement)
			r.Post("/elements/remove", s.removeElement)
			r.Post("/slides", s.addSlide)
			r.Post("/slides/remove", s.removeSlide)
			r.Post("/uncheck", s.uncheckAll)
			r.Post("/score", s.setScoreForAll)
			r.Get("/scores", s.scores)
			r.Get("/render", s.renderSlide)
			r.Get("/ws", s.stream)
		})
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.metrics.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
		s.logger.Debug("http request",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", time.Since(start),
		)
	})
}

type createRequest struct {
	ID         string `json:"id"`
	Collection any    `json:"collection"`
}

type writeRequest struct {
	Path  any `json:"path"`
	Value any `json:"value"`
	Index int `json:"index"`
}

type scoreRequest struct {
	Score float64 `json:"score"`
}

// MutationResponse reports the outcome of a write.
type MutationResponse struct {
	Applied bool   `json:"applied"`
	Count   int    `json:"count,omitempty"`
	Version uint64 `json:"version"`
}

// ScoresResponse carries the aggregate scores of a session.
type ScoresResponse struct {
	Total   float64 `json:"total"`
	Current float64 `json:"current"`
	Version uint64  `json:"version"`
}

// RenderResponse carries one rendered slide.
type RenderResponse struct {
	Slide    int           `json:"slide"`
	Output   render.Output `json:"output"`
	Markdown string        `json:"markdown"`
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	WriteJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decodeBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	snap, err := s.Sessions.Create(r.Context(), req.ID, tree.Normalize(req.Collection))
	if err != nil {
		s.writeError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, snap)
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Sessions.Snapshot(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, snap)
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.Sessions.Snapshot(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.Sessions.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getValue(w http.ResponseWriter, r *http.Request) {
	path, err := domain.ParsePath(r.URL.Query().Get("path"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	var (
		value any
		found bool
	)
	err = s.Sessions.WithSession(r.Context(), chi.URLParam(r, "id"), func(st *store.Store) error {
		value, found = st.Lookup(path)
		return nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"path":  path.String(),
		"value": value,
		"found": found,
	})
}

func (s *Server) patchValue(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(st *store.Store, req writeRequest, path domain.Path) bool {
		return st.PatchValue(path, req.Value)
	})
}

func (s *Server) addElement(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(st *store.Store, req writeRequest, path domain.Path) bool {
		return st.AddElement(path, req.Index, req.Value)
	})
}

func (s *Server) removeElement(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(st *store.Store, req writeRequest, path domain.Path) bool {
		return st.RemoveElement(path, req.Index)
	})
}

func (s *Server) addSlide(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(st *store.Store, req writeRequest, _ domain.Path) bool {
		return st.AddSlide(req.Index)
	})
}

func (s *Server) removeSlide(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(st *store.Store, req writeRequest, _ domain.Path) bool {
		return st.RemoveSlide(req.Index)
	})
}

func (s *Server) uncheckAll(w http.ResponseWriter, r *http.Request) {
	var resp MutationResponse
	err := s.Sessions.WithSession(r.Context(), chi.URLParam(r, "id"), func(st *store.Store) error {
		resp.Count = st.UncheckAll()
		resp.Applied = resp.Count > 0
		resp.Version = st.Version()
		return nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, resp)
}

func (s *Server) setScoreForAll(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := decodeBody(r, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	var resp MutationResponse
	err := s.Sessions.WithSession(r.Context(), chi.URLParam(r, "id"), func(st *store.Store) error {
		resp.Count = st.SetScoreForAll(req.Score)
		resp.Applied = resp.Count > 0
		resp.Version = st.Version()
		return nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, resp)
}

func (s *Server) scores(w http.ResponseWriter, r *http.Request) {
	var resp ScoresResponse
	err := s.Sessions.WithSession(r.Context(), chi.URLParam(r, "id"), func(st *store.Store) error {
		resp.Total = st.TotalScore()
		resp.Current = st.CurrentScore()
		resp.Version = st.Version()
		return nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, resp)
}

func (s *Server) renderSlide(w http.ResponseWriter, r *http.Request) {
	slide := 0
	if raw := r.URL.Query().Get("slide"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid slide %q", raw))
			return
		}
		slide = n
	}

	resp := RenderResponse{Slide: slide}
	found := false
	err := s.Sessions.WithSession(r.Context(), chi.URLParam(r, "id"), func(st *store.Store) error {
		node, ok := st.Lookup(domain.P(slide))
		if !ok {
			return nil
		}
		found = true
		interp := widgets.NewInterpreter(st,
			render.WithLogger(s.logger),
			render.WithHooks(s.metrics.Hooks()),
		)
		resp.Output = interp.RenderAt(node, domain.P(slide))
		resp.Markdown = widgets.Markdown(resp.Output)
		return nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !found {
		WriteJSONError(w, http.StatusNotFound, fmt.Sprintf("slide %d not found", slide))
		return
	}
	WriteJSON(w, http.StatusOK, resp)
}

// stream pushes every persisted change of the session to a websocket client.
func (s *Server) stream(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.Sessions.Snapshot(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}

	changes := make(chan domain.Change, streamBuffer)
	cancel := s.Sessions.Subscribe(id, func(c domain.Change) {
		select {
		case changes <- c:
		default:
			s.logger.Warn("change stream full, dropping change", "session_id", id, "version", c.Version)
		}
	})
	defer cancel()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "session_id", id, "err", err)
		return
	}
	defer conn.Close()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case c := <-changes:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(c); err != nil {
				s.logger.Debug("websocket write failed", "session_id", id, "err", err)
				return
			}
		}
	}
}

func (s *Server) mutate(w http.ResponseWriter, r *http.Request, apply func(*store.Store, writeRequest, domain.Path) bool) {
	var req writeRequest
	if err := decodeBody(r, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	path, err := domain.DecodePath(tree.Normalize(req.Path))
	if err != nil {
		s.writeError(w, err)
		return
	}
	req.Value = tree.Normalize(req.Value)

	var resp MutationResponse
	err = s.Sessions.WithSession(r.Context(), chi.URLParam(r, "id"), func(st *store.Store) error {
		resp.Applied = apply(st, req, path)
		resp.Version = st.Version()
		return nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, resp)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrSnapshotNotFound):
		WriteJSONError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrSnapshotExists):
		WriteJSONError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidPath):
		WriteJSONError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("request failed", "err", err)
		WriteJSONError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// WriteJSON writes payload as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteJSONError writes {"error": msg}.
func WriteJSONError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"error": msg})
}
