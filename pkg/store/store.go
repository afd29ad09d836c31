package store

import (
	"log/slog"

	"github.com/aretw0/easel/internal/logging"
	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/tree"
)

// NoElement is the element cursor value meaning "nothing selected".
const NoElement = -1

// Store holds the current Collection, the selection cursors and the memoized aggregates.
type Store struct {
	collection tree.Value
	version    uint64

	selectedSlide   int
	selectedElement int

	total   memo
	current memo

	observers    []observer
	nextObserver int

	logger *slog.Logger
	hooks  domain.Hooks
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the structured logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.Hooks) Option {
	return func(s *Store) {
		s.hooks = hooks
	}
}

// WithVersion starts the version counter at v, e.g. when restoring a snapshot.
func WithVersion(v uint64) Option {
	return func(s *Store) {
		s.version = v
	}
}

// New creates a Store around initial. A nil initial value starts an empty Collection.
func New(initial tree.Value, opts ...Option) *Store {
	s := &Store{
		collection:      normalizeCollection(initial),
		selectedElement: NoElement,
		logger:          logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Collection returns the current Collection value. Callers must treat it as read-only.
func (s *Store) Collection() tree.Value {
	return s.collection
}

// Version returns a counter that changes on every accepted mutation.
func (s *Store) Version() uint64 {
	return s.version
}

// GetValue reads the value at path, or def when the path does not resolve.
func (s *Store) GetValue(path domain.Path, def tree.Value) tree.Value {
	return tree.Get(s.collection, path, def)
}

// Lookup reads the value at path and reports whether it exists.
func (s *Store) Lookup(path domain.Path) (tree.Value, bool) {
	return tree.Lookup(s.collection, path)
}

// PatchValue writes value at path. It reports false, leaving the Collection
// untouched, when the path does not fit the tree or when a non-numeric value
// targets props.score. Negative scores are stored as 0.
func (s *Store) PatchValue(path domain.Path, value tree.Value) bool {
	value, ok := sanitize(path, value)
	if !ok {
		s.reject(domain.OpPatch, path)
		return false
	}
	next, ok := tree.Set(s.collection, path, value)
	if !ok {
		s.reject(domain.OpPatch, path)
		return false
	}
	s.commit(next, domain.OpPatch, path)
	return true
}

// PatchValues applies all writes as a single mutation: one new Collection,
// one version bump, one change notification. Writes that do not fit are skipped.
// It reports whether at least one write was applied.
func (s *Store) PatchValues(writes ...tree.Write) bool {
	return s.applyBatch(domain.OpBatch, writes) > 0
}

// AddElement inserts value into the list at path (clamped to [0, len]).
// A missing list is created.
func (s *Store) AddElement(path domain.Path, index int, value tree.Value) bool {
	value, _ = sanitize(nil, value)
	existing, _ := tree.Get(s.collection, path, nil).([]any)
	count := len(existing)
	next, ok := tree.InsertOrCreate(s.collection, path, index, value)
	if !ok {
		s.reject(domain.OpInsert, path)
		return false
	}
	s.elementInserted(path, index, count)
	s.commit(next, domain.OpInsert, path)
	return true
}

// RemoveElement removes the list item at index. Out-of-range indices are a no-op.
func (s *Store) RemoveElement(path domain.Path, index int) bool {
	next, ok := tree.Remove(s.collection, path, index)
	if !ok {
		s.reject(domain.OpRemove, path)
		return false
	}
	s.elementRemoved(path, index)
	s.commit(next, domain.OpRemove, path)
	return true
}

// Replace installs collection as the new current value.
func (s *Store) Replace(collection tree.Value) {
	s.commit(normalizeCollection(collection), domain.OpReplace)
}

func (s *Store) applyBatch(op domain.Op, writes []tree.Write) int {
	if len(writes) == 0 {
		return 0
	}
	normalized := make([]tree.Write, 0, len(writes))
	paths := make([]domain.Path, 0, len(writes))
	for _, w := range writes {
		v, ok := sanitize(w.Path, w.Value)
		if !ok {
			continue
		}
		normalized = append(normalized, tree.Write{Path: w.Path, Value: v})
		paths = append(paths, w.Path)
	}

	next, applied := tree.SetMany(s.collection, normalized)
	if applied < len(writes) {
		s.logger.Debug("batch write skipped paths", "op", op, "requested", len(writes), "applied", applied)
	}
	if applied == 0 {
		return 0
	}
	s.commit(next, op, paths...)
	return applied
}

func (s *Store) commit(next tree.Value, op domain.Op, paths ...domain.Path) {
	s.collection = next
	s.version++
	s.clampCursors()

	change := domain.Change{Version: s.version, Op: op, Paths: paths}
	s.logger.Debug("collection changed", "op", op, "version", s.version, "paths", len(paths))

	if s.hooks.OnChange != nil {
		s.hooks.OnChange(change)
	}
	s.notify(change)
}

func (s *Store) reject(op domain.Op, path domain.Path) {
	s.logger.Debug("write ignored: path does not fit collection", "op", op, "path", path.String())
	if s.hooks.OnRejected != nil {
		s.hooks.OnRejected(op, path)
	}
}

func normalizeCollection(v tree.Value) tree.Value {
	if v == nil {
		return []any{}
	}
	return tree.Normalize(v)
}
