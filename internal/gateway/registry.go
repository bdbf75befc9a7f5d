package gateway

import (
	"sync"

	"github.com/sandevgo/coregate/internal/core"
)

// Registry maps module names to handlers. Built at startup from an
// explicit handler slice; Register stays available for dynamic modules.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]core.Handler
}

func NewRegistry(handlers []core.Handler) *Registry {
	r := &Registry{
		handlers: make(map[string]core.Handler, len(handlers)),
	}
	for _, h := range handlers {
		r.handlers[h.Name()] = h
	}
	return r
}

// Register associates a name with a handler. Re-registration overwrites.
func (r *Registry) Register(name string, handler core.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = handler
}

// Resolve returns the handler for a module name. A miss is not an error;
// the gateway turns it into a structured error response.
func (r *Registry) Resolve(name string) (core.Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[name]
	return h, ok
}

func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	return names
}
