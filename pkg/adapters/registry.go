package adapters

import (
	"fmt"
	"sort"
	"strings"
)

// Registry manages all available adapters
type Registry struct {
	adapters map[string]Adapter
}

// NewRegistry creates a new adapter registry
func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{
		adapters: make(map[string]Adapter),
	}
	for _, a := range adapters {
		r.Register(a)
	}
	return r
}

// Register adds an adapter to the registry
func (r *Registry) Register(adapter Adapter) {
	r.adapters[strings.ToLower(adapter.Name())] = adapter
}

// Get retrieves an adapter by name
func (r *Registry) Get(name string) (Adapter, error) {
	adapter, exists := r.adapters[strings.ToLower(name)]
	if !exists {
		return nil, fmt.Errorf("adapter %s not found (available: %s)", name, strings.Join(r.List(), ", "))
	}
	return adapter, nil
}

// List returns all available adapter names, sorted
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasAdapter checks if an adapter is registered
func (r *Registry) HasAdapter(name string) bool {
	_, exists := r.adapters[strings.ToLower(name)]
	return exists
}
