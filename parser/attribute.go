package parser

import (
	"strings"

	"github.com/sieveql/sieve/ast"
	"github.com/sieveql/sieve/schema"
)

// MaxAssociationDepth bounds how many association hops an attribute path
// may take. Paths are attacker-controllable, so resolution refuses to
// recurse past this depth.
const MaxAssociationDepth = 8

// ResolveAttribute resolves an underscore-joined attribute path against an
// entity. Leading segments are consumed greedily as association hops,
// preferring the longest chain of valid associations; the remaining
// segments, joined, must then name a field on the entity reached. No
// trailing remainder is tolerated: callers strip any predicate suffix
// before resolving.
func ResolveAttribute(path, entity string, r schema.Reflector) (ast.Attribute, bool) {
	segments := strings.Split(path, "_")
	return resolveSegments(segments, entity, r, 0)
}

func resolveSegments(segments []string, entity string, r schema.Reflector, depth int) (ast.Attribute, bool) {
	if len(segments) == 0 || depth > MaxAssociationDepth {
		return ast.Attribute{}, false
	}

	// Association hops first, longest candidate name first. Backtracks to
	// shorter association names, and eventually to a plain field, when a
	// hop leads nowhere.
	for i := len(segments) - 1; i >= 1; i-- {
		name := strings.Join(segments[:i], "_")
		target, ok := r.Association(entity, name)
		if !ok {
			continue
		}
		attr, ok := resolveSegments(segments[i:], target, r, depth+1)
		if !ok {
			continue
		}
		parent := make([]string, 0, len(attr.Parent)+1)
		parent = append(parent, name)
		parent = append(parent, attr.Parent...)
		return ast.Attribute{Parent: parent, Name: attr.Name, Type: attr.Type}, true
	}

	// Terminal field: the remaining segments must name a field exactly.
	// A leftover segment means the path does not exist.
	name := strings.Join(segments, "_")
	if typ, ok := r.Field(entity, name); ok {
		return ast.Attribute{Name: name, Type: typ}, true
	}

	return ast.Attribute{}, false
}
