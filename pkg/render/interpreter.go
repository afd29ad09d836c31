package render

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/easel/internal/logging"
	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/tree"
)

// TransformFunc computes the props handed to a renderer.
// It receives a private copy of the props and may modify it.
type TransformFunc func(typeName string, path domain.Path, props map[string]any) map[string]any

// Interpreter renders node trees. It holds configuration only, never per-call state,
// so one Interpreter can serve any number of Render calls.
type Interpreter struct {
	registry  *Registry
	logger    *slog.Logger
	hooks     domain.Hooks
	pathProp  string
	transform TransformFunc
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithLogger sets the logger used for missing-renderer diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(in *Interpreter) {
		if logger != nil {
			in.logger = logger
		}
	}
}

// WithHooks registers observability hooks (OnMissingRenderer).
func WithHooks(hooks domain.Hooks) Option {
	return func(in *Interpreter) {
		in.hooks = hooks
	}
}

// WithPathProp makes the interpreter pass each node's Path to its renderer
// under key. Renderers use it to bind store fields.
func WithPathProp(key string) Option {
	return func(in *Interpreter) {
		in.pathProp = key
	}
}

// WithTransform installs a hook that computes props before dispatch.
func WithTransform(fn TransformFunc) Option {
	return func(in *Interpreter) {
		in.transform = fn
	}
}

// NewInterpreter creates an interpreter over registry.
func NewInterpreter(registry *Registry, opts ...Option) *Interpreter {
	in := &Interpreter{
		registry: registry,
		logger:   logging.NewNop(),
	}
	if in.registry == nil {
		in.registry = NewRegistry()
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Render renders node with the root path.
func (in *Interpreter) Render(node any) Output {
	return in.RenderAt(node, domain.Path{})
}

// RenderAt renders node as if it lived at base inside a Collection.
func (in *Interpreter) RenderAt(node any, base domain.Path) Output {
	return in.render(node, base)
}

// Render is a convenience for a one-off render against registry.
func Render(node any, registry *Registry) Output {
	return NewInterpreter(registry).Render(node)
}

func (in *Interpreter) render(node any, path domain.Path) Output {
	switch n := node.(type) {
	case nil:
		return Output{}
	case []any:
		return Output{Children: in.renderList(n, path)}
	case map[string]any:
		return in.renderElement(n, path)
	case string:
		if n == "" {
			return Output{}
		}
		return Output{Type: domain.TextType, Text: n}
	case bool, float64, float32, int, int64, int32, uint, uint64, uint32:
		return Output{Type: domain.TextType, Text: fmt.Sprint(n)}
	default:
		normalized := tree.Normalize(node)
		switch normalized.(type) {
		case []any, map[string]any:
			return in.render(normalized, path)
		}
		in.logger.Warn("unrenderable node", "path", path.String(), "kind", fmt.Sprintf("%T", node))
		return Output{}
	}
}

func (in *Interpreter) renderList(items []any, path domain.Path) []Output {
	if len(items) == 0 {
		return nil
	}
	out := make([]Output, len(items))
	for i, item := range items {
		out[i] = in.render(item, path.Append(i))
	}
	return out
}

func (in *Interpreter) renderElement(node map[string]any, path domain.Path) Output {
	if len(node) == 0 {
		return Output{}
	}
	typeName, _ := node[domain.KeyType].(string)
	fn, ok := in.registry.Lookup(typeName)
	if !ok {
		in.logger.Warn("no renderer for type", "type", typeName, "path", path.String())
		if in.hooks.OnMissingRenderer != nil {
			in.hooks.OnMissingRenderer(typeName)
		}
		return Output{}
	}

	props, _ := node[domain.KeyProps].(map[string]any)
	childPath := path.Append(domain.KeyProps, domain.KeyChildren)

	var children []Output
	switch c := props[domain.KeyChildren].(type) {
	case nil:
	case []any:
		children = in.renderList(c, childPath)
	default:
		if single := in.render(c, childPath); !single.IsEmpty() {
			children = []Output{single}
		}
	}

	return fn(in.computeProps(typeName, path, props), children)
}

func (in *Interpreter) computeProps(typeName string, path domain.Path, props map[string]any) map[string]any {
	if in.pathProp == "" && in.transform == nil {
		return props
	}
	computed := make(map[string]any, len(props)+1)
	for k, v := range props {
		computed[k] = v
	}
	if in.pathProp != "" {
		computed[in.pathProp] = path
	}
	if in.transform != nil {
		computed = in.transform(typeName, path, computed)
	}
	return computed
}
