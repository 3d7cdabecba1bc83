package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/vk/wetware/internal/component"
)

// ErrUnknownComponentType is returned when a type name has no registered
// factory.
var ErrUnknownComponentType = errors.New("unknown component type")

// Module is the interface that all core modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Factory builds a fresh component instance under the given name.
type Factory func(name string) component.Component

// Registry holds the component factories for a single application instance.
type Registry struct {
	factories map[string]Factory
}

// New creates a Registry and registers the given modules into it.
func New(modules ...Module) *Registry {
	r := &Registry{factories: make(map[string]Factory)}
	for _, m := range modules {
		m.Register(r)
	}
	return r
}

// RegisterFactory binds a type name to a factory. Type names are matched
// case-insensitively; registering the same name twice is a programming error.
func (r *Registry) RegisterFactory(typeName string, f Factory) {
	key := strings.ToLower(typeName)
	if _, exists := r.factories[key]; exists {
		panic(fmt.Sprintf("component type '%s' already registered", key))
	}
	slog.Debug("Registering component type.", "type", key)
	r.factories[key] = f
}

// New constructs a component of the given type.
func (r *Registry) New(typeName, name string) (component.Component, error) {
	f, ok := r.factories[strings.ToLower(typeName)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownComponentType, typeName)
	}
	return f(name), nil
}

// Has reports whether typeName is registered.
func (r *Registry) Has(typeName string) bool {
	_, ok := r.factories[strings.ToLower(typeName)]
	return ok
}

// Types returns the registered type names in sorted order.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.factories))
	for k := range r.factories {
		types = append(types, k)
	}
	sort.Strings(types)
	return types
}
