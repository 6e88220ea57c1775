package predicate

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// CompositeSuffixes are the derived-variant suffixes generated for every
// composable basic predicate.
var CompositeSuffixes = []string{"all", "any"}

// Registry holds the effective predicate set: the fixed basic table, the
// composite variants derived from it, and custom predicates registered at
// initialization. Reads are safe for concurrent use.
type Registry struct {
	basics  map[string]Spec
	customs map[string]Custom
	mu      sync.RWMutex
}

// NewRegistry creates a registry seeded with the basic predicate table
func NewRegistry() *Registry {
	r := &Registry{
		basics:  make(map[string]Spec, len(basicSpecs)),
		customs: make(map[string]Custom),
	}
	for _, spec := range basicSpecs {
		r.basics[spec.Name] = spec
	}
	return r
}

// RegisterCustom registers a custom predicate. Intended for application
// initialization, before any parsing starts.
func (r *Registry) RegisterCustom(name string, arity int, render RenderFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name == "" {
		return fmt.Errorf("custom predicate name must not be empty")
	}
	if render == nil {
		return fmt.Errorf("custom predicate %s: render hook must not be nil", name)
	}
	if arity < 1 {
		return fmt.Errorf("custom predicate %s: arity must be at least 1", name)
	}
	if _, exists := r.basics[name]; exists {
		return fmt.Errorf("predicate %s is already defined", name)
	}
	if base, _, ok := SplitComposite(name); ok {
		if spec, exists := r.basics[base]; exists && spec.Composable {
			return fmt.Errorf("predicate %s is already defined", name)
		}
	}
	if _, exists := r.customs[name]; exists {
		return fmt.Errorf("custom predicate %s is already registered", name)
	}

	r.customs[name] = Custom{Name: name, Arity: arity, Render: render}
	return nil
}

// Basic retrieves a basic predicate spec by name
func (r *Registry) Basic(name string) (Spec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	spec, exists := r.basics[name]
	return spec, exists
}

// Custom retrieves a custom predicate by name
func (r *Registry) Custom(name string) (Custom, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, exists := r.customs[name]
	return c, exists
}

// BasicNames returns the names of all basic predicates
func (r *Registry) BasicNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.basics))
	for name := range r.basics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CompositeNames returns the names of all derived _all/_any variants
func (r *Registry) CompositeNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var names []string
	for name, spec := range r.basics {
		if !spec.Composable {
			continue
		}
		for _, suffix := range CompositeSuffixes {
			names = append(names, name+"_"+suffix)
		}
	}
	sort.Strings(names)
	return names
}

// Names returns the full effective predicate name set after applying the
// filter: basics, composites and customs.
func (r *Registry) Names(filter Filter) ([]string, error) {
	all := append(r.BasicNames(), r.CompositeNames()...)

	r.mu.RLock()
	for name := range r.customs {
		all = append(all, name)
	}
	r.mu.RUnlock()
	sort.Strings(all)

	return filter.apply(r, all)
}

// Lookup finds the predicate matching a filter key: every name in the
// effective set that is a suffix of the key is a candidate, and the
// longest one wins, so a key ending in cont_all resolves to cont_all
// rather than cont.
func (r *Registry) Lookup(key string, filter Filter) (string, error) {
	effective, err := r.Names(filter)
	if err != nil {
		return "", err
	}

	best := ""
	for _, name := range effective {
		if key != name && !strings.HasSuffix(key, "_"+name) {
			continue
		}
		if len(name) > len(best) {
			best = name
		}
	}
	if best == "" {
		return "", &NotFoundError{Key: key}
	}
	return best, nil
}

// SplitComposite splits a derived predicate name into its base predicate
// and variant suffix. Returns ok=false for non-composite names.
func SplitComposite(name string) (base, suffix string, ok bool) {
	for _, s := range CompositeSuffixes {
		if strings.HasSuffix(name, "_"+s) {
			return strings.TrimSuffix(name, "_"+s), s, true
		}
	}
	return "", "", false
}
