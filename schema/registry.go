package schema

import (
	"fmt"
	"sync"
)

// Entity describes one queryable entity: its fields and its associations
// to other entities.
type Entity struct {
	Name         string
	Fields       map[string]PrimitiveType
	Associations map[string]string // association name -> target entity name
}

// Registry manages entity definitions and implements Reflector.
// Writes happen during application initialization; reads are safe
// for concurrent use afterwards.
type Registry struct {
	entities map[string]*Entity
	mu       sync.RWMutex
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		entities: make(map[string]*Entity),
	}
}

// Register registers an entity definition
func (r *Registry) Register(e *Entity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.Name == "" {
		return fmt.Errorf("entity name must not be empty")
	}
	if _, exists := r.entities[e.Name]; exists {
		return fmt.Errorf("entity %s is already registered", e.Name)
	}

	r.entities[e.Name] = e
	return nil
}

// Get retrieves an entity by name
func (r *Registry) Get(name string) (*Entity, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, exists := r.entities[name]
	return e, exists
}

// List returns the names of all registered entities
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entities))
	for name := range r.entities {
		names = append(names, name)
	}
	return names
}

// Field implements Reflector
func (r *Registry) Field(entity, name string) (PrimitiveType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, exists := r.entities[entity]
	if !exists {
		return 0, false
	}
	typ, exists := e.Fields[name]
	return typ, exists
}

// Association implements Reflector
func (r *Registry) Association(entity, name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, exists := r.entities[entity]
	if !exists {
		return "", false
	}
	target, exists := e.Associations[name]
	return target, exists
}

// Validate checks that every association points at a registered entity.
// Called after all entities are registered to allow forward references.
func (r *Registry) Validate() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for name, e := range r.entities {
		for assoc, target := range e.Associations {
			if _, exists := r.entities[target]; !exists {
				return fmt.Errorf("entity %s: association %s targets unknown entity %s", name, assoc, target)
			}
		}
	}
	return nil
}
