package drc

import (
	"errors"
	"fmt"
	"sync"
)

// ErrDuplicateProvider is returned when a provider name is registered twice.
var ErrDuplicateProvider = errors.New("provider already registered")

// Registry maps provider names to factories. Registration order is kept so
// providers always run in the same order.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	order     []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a provider factory. Each name can be registered once.
func (r *Registry) Register(name string, factory Factory) error {
	if name == "" {
		return errors.New("provider name is empty")
	}
	if factory == nil {
		return fmt.Errorf("provider %q: nil factory", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateProvider, name)
	}
	r.factories[name] = factory
	r.order = append(r.order, name)
	return nil
}

// MustRegister is like Register but panics on error. Use it when wiring
// built-in providers at startup.
func (r *Registry) MustRegister(name string, factory Factory) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

// Get retrieves a provider factory by name.
func (r *Registry) Get(name string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[name]
	return f, ok
}

// New creates a provider by name.
func (r *Registry) New(name string) (Provider, error) {
	f, ok := r.Get(name)
	if !ok {
		return nil, &UnknownProviderError{Name: name, Available: r.Names()}
	}
	return f(), nil
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Count returns the number of registered providers.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// CreateAll instantiates every provider in registration order.
func (r *Registry) CreateAll() []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Provider, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.factories[name]())
	}
	return out
}

// UnknownProviderError is returned when an unknown provider is requested.
type UnknownProviderError struct {
	Name      string
	Available []string
}

func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("unknown provider %q\nAvailable providers: %v\nHint: run 'boardcheck providers' to list them", e.Name, e.Available)
}
