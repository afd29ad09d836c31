package render

import (
	"sort"
	"sync"
)

// Renderer produces the output for one node from its props and its rendered children.
type Renderer func(props map[string]any, children []Output) Output

// Registry maps type tags to renderers.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		renderers: make(map[string]Renderer),
	}
}

// Register adds a renderer for typeName.
// If a renderer with the same name exists, it is overwritten.
func (r *Registry) Register(typeName string, fn Renderer) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderers[typeName] = fn
	return r
}

// Lookup returns the renderer for typeName.
func (r *Registry) Lookup(typeName string) (Renderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.renderers[typeName]
	return fn, ok
}

// Types returns the registered type tags, sorted.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		types = append(types, name)
	}
	sort.Strings(types)
	return types
}
