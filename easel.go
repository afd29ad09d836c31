package easel

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/easel/internal/logging"
	"github.com/aretw0/easel/internal/validator"
	loamAdapter "github.com/aretw0/easel/pkg/adapters/loam"
	"github.com/aretw0/easel/pkg/deck"
	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/ports"
	"github.com/aretw0/easel/pkg/render"
	"github.com/aretw0/easel/pkg/store"
	"github.com/aretw0/easel/pkg/widgets"
)

// Editor is the high-level entry point: one store, one interpreter and the
// registry they render with.
type Editor struct {
	store    *store.Store
	registry *render.Registry
	interp   *render.Interpreter
	logger   *slog.Logger
	Name     string
}

type config struct {
	logger   *slog.Logger
	hooks    domain.Hooks
	registry func(*store.Store) *render.Registry
	name     string
}

// Option defines a functional option for configuring the Editor.
type Option func(*config)

// WithLogger sets a structured logger for the store and the interpreter.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.Hooks) Option {
	return func(c *config) {
		c.hooks = hooks
	}
}

// WithRegistry replaces the default widget catalog. The constructor receives
// the editor's store so renderers can bind fields.
func WithRegistry(build func(*store.Store) *render.Registry) Option {
	return func(c *config) {
		c.registry = build
	}
}

// WithName labels the editor (and its log lines).
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// New creates an Editor over initial. A nil initial value starts an empty Collection.
func New(initial any, opts ...Option) *Editor {
	cfg := config{
		logger:   logging.NewNop(),
		registry: widgets.NewRegistry,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logging.NewNop()
	}

	logger := cfg.logger
	if cfg.name != "" {
		logger = logger.With("deck", cfg.name)
	}

	s := store.New(initial, store.WithLogger(logger), store.WithHooks(cfg.hooks))
	registry := cfg.registry(s)

	return &Editor{
		store:    s,
		registry: registry,
		interp: render.NewInterpreter(registry,
			render.WithLogger(logger),
			render.WithHooks(cfg.hooks),
			render.WithPathProp(widgets.PathProp),
		),
		logger: logger,
		Name:   cfg.name,
	}
}

// FromLoader loads a deck through loader and opens an Editor over it.
func FromLoader(ctx context.Context, loader ports.DeckLoader, opts ...Option) (*Editor, error) {
	d, err := loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	if d.Title != "" {
		opts = append([]Option{WithName(d.Title)}, opts...)
	}
	return New(d.Collection(), opts...), nil
}

// Open loads the deck at path: a YAML/JSON file, or a directory read through Loam.
func Open(ctx context.Context, path string, opts ...Option) (*Editor, error) {
	loader, err := LoaderFor(path)
	if err != nil {
		return nil, err
	}
	return FromLoader(ctx, loader, opts...)
}

// LoaderFor picks the deck loader matching path.
func LoaderFor(path string) (ports.DeckLoader, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrDeckNotFound, path)
		}
		return nil, err
	}
	if info.IsDir() {
		return loamAdapter.Open(path)
	}
	return deck.NewFileLoader(path), nil
}

// Store returns the editing store.
func (e *Editor) Store() *store.Store {
	return e.store
}

// Registry returns the renderer registry.
func (e *Editor) Registry() *render.Registry {
	return e.registry
}

// RenderSlide renders slide i. Out-of-range slides render empty.
func (e *Editor) RenderSlide(i int) render.Output {
	slide, ok := e.store.Lookup(domain.P(i))
	if !ok {
		return render.Output{}
	}
	return e.interp.RenderAt(slide, domain.P(i))
}

// RenderCurrentSlide renders the selected slide.
func (e *Editor) RenderCurrentSlide() render.Output {
	return e.RenderSlide(e.store.SelectedSlide())
}

// Markdown renders slide i as a markdown document.
func (e *Editor) Markdown(i int) string {
	return widgets.Markdown(e.RenderSlide(i))
}

// Validate runs the authoring checks against the registered types.
func (e *Editor) Validate() error {
	return validator.ValidateCollection(e.store.Collection(), e.registry.Types())
}

// Snapshot captures the current Collection for persistence under id.
func (e *Editor) Snapshot(id string) *domain.Snapshot {
	snap := domain.NewSnapshot(id, e.store.Collection())
	snap.Version = e.store.Version()
	return snap
}
