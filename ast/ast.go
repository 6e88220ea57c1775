// Package ast defines the filter AST produced by the parser and consumed
// by the compiler: Attribute, Condition, Grouping and Sort nodes. Nodes
// are plain value types built once during parsing and never mutated;
// equality is structural.
package ast

import (
	"strings"

	"github.com/sieveql/sieve/schema"
)

// Combinator selects how sibling expressions merge.
type Combinator int

const (
	CombinatorAnd Combinator = iota
	CombinatorOr
)

// String returns the string representation of the combinator
func (c Combinator) String() string {
	if c == CombinatorOr {
		return "or"
	}
	return "and"
}

// Direction is a sort direction.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// String returns the string representation of the direction
func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Attribute identifies one field reachable from the query root by a fixed
// navigation path. Parent is the ordered association chain; empty means
// the field lives on the root entity.
type Attribute struct {
	Parent []string
	Name   string
	Type   schema.PrimitiveType
}

// String returns the underscore-joined path of the attribute
func (a Attribute) String() string {
	if len(a.Parent) == 0 {
		return a.Name
	}
	return strings.Join(a.Parent, "_") + "_" + a.Name
}

// Equal reports structural equality with another attribute
func (a Attribute) Equal(b Attribute) bool {
	if a.Name != b.Name || a.Type != b.Type || len(a.Parent) != len(b.Parent) {
		return false
	}
	for i := range a.Parent {
		if a.Parent[i] != b.Parent[i] {
			return false
		}
	}
	return true
}

// Condition states that one or more attributes satisfy a predicate against
// a set of values. Multiple attributes arise from keys joining field paths
// with _and_/_or_ tokens; Combinator governs how they merge.
type Condition struct {
	Attributes []Attribute
	Predicate  string
	Combinator Combinator
	Values     []any
}

// Grouping is a node in the filter tree: conditions and nested groupings
// merged under one combinator. An empty grouping is legal and compiles to
// a neutral always-true expression.
type Grouping struct {
	Combinator Combinator
	Conditions []Condition
	Groupings  []Grouping
}

// Sort orders results by one attribute.
type Sort struct {
	Attribute Attribute
	Direction Direction
}
