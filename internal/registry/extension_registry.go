package registry

import (
	"fmt"
	"sync"

	"github.com/toyz/autoval/internal/comparable"
	"github.com/toyz/autoval/internal/extension"
)

// Registry keeps extension factories in registration order. The order is
// the order extensions are asked about a value type and the order their
// classes are chained.
type Registry struct {
	mu        sync.RWMutex
	names     []string
	factories map[string]extension.Factory
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]extension.Factory),
	}
}

// NewDefaultRegistry creates a registry holding the builtin extensions
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	if err := r.Register(comparable.ExtensionName, comparable.New); err != nil {
		panic(err)
	}
	return r
}

// Register adds a factory under name
func (r *Registry) Register(name string, factory extension.Factory) error {
	if name == "" {
		return fmt.Errorf("extension name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("extension '%s' has a nil factory", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("extension '%s' already registered", name)
	}

	r.names = append(r.names, name)
	r.factories[name] = factory
	return nil
}

// Get returns the factory registered under name
func (r *Registry) Get(name string) (extension.Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, exists := r.factories[name]
	return factory, exists
}

// Names returns registered extension names in registration order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

// Instantiate creates one fresh instance of every registered extension
func (r *Registry) Instantiate() []extension.Extension {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]extension.Extension, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.factories[name]())
	}
	return out
}

var _ ExtensionRegistry = (*Registry)(nil)
