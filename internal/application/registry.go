package application

import (
	"fmt"
	"slices"
	"sync"

	"marktrans/internal/domain"
)

// DefaultName is the registry name used when callers do not pick one.
const DefaultName = "default"

// Factory builds the Translator for a registry name on first use.
type Factory func(name string) (*Translator, error)

// Registry holds named Translators for an application. It is owned by the
// caller's wiring; nothing in this module keeps a global instance.
type Registry struct {
	mu        sync.Mutex
	factory   Factory
	instances map[string]*Translator
}

// NewRegistry returns an empty registry. factory may be nil, in which case
// only explicitly registered names resolve.
func NewRegistry(factory Factory) *Registry {
	return &Registry{
		factory:   factory,
		instances: make(map[string]*Translator),
	}
}

func (r *Registry) Register(name string, t *Translator) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.instances[name]; ok {
		return fmt.Errorf("register %q: %w", name, domain.ErrTranslatorRegistered)
	}
	r.instances[name] = t
	return nil
}

func (r *Registry) Get(name string) (*Translator, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.instances[name]
	return t, ok
}

// Instance returns the Translator registered under name, building it with
// the factory the first time. Later calls return the same instance.
func (r *Registry) Instance(name string) (*Translator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.instances[name]; ok {
		return t, nil
	}
	if r.factory == nil {
		return nil, fmt.Errorf("instance %q: %w", name, domain.ErrTranslatorNotRegistered)
	}
	t, err := r.factory(name)
	if err != nil {
		return nil, fmt.Errorf("build translator %q: %w", name, err)
	}
	r.instances[name] = t
	return t, nil
}

// Remove drops name from the registry and reports whether it was present.
func (r *Registry) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.instances[name]
	delete(r.instances, name)
	return ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.instances))
	for name := range r.instances {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
