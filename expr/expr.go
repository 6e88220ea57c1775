// Package expr defines the boolean expression tree the compiler produces
// and its SQL rendering with parameterized values.
package expr

import "strings"

// Op represents a comparison operator
type Op int

const (
	OpEqual Op = iota
	OpNotEqual
	OpGreaterThan
	OpGreaterThanOrEqual
	OpLessThan
	OpLessThanOrEqual
)

// String returns the string representation of the operator
func (o Op) String() string {
	switch o {
	case OpEqual:
		return "="
	case OpNotEqual:
		return "!="
	case OpGreaterThan:
		return ">"
	case OpGreaterThanOrEqual:
		return ">="
	case OpLessThan:
		return "<"
	case OpLessThanOrEqual:
		return "<="
	default:
		return "UNKNOWN"
	}
}

// Column is a field reference: the association path from the query root
// plus the field name. The query executor uses Path to decide which joins
// to perform before applying the expression.
type Column struct {
	Path []string
	Name string
}

// Ident returns the underscore-joined identifier of the column
func (c Column) Ident() string {
	if len(c.Path) == 0 {
		return c.Name
	}
	return strings.Join(c.Path, "_") + "." + c.Name
}

// Node is one node of a boolean expression tree.
type Node interface {
	node()
}

// True is the neutral expression: it matches everything. Empty groupings
// and empty combination folds reduce to it.
type True struct{}

// And combines sub-expressions conjunctively.
type And struct {
	Nodes []Node
}

// Or combines sub-expressions disjunctively.
type Or struct {
	Nodes []Node
}

// Comparison applies a binary comparison operator to a column and a value.
type Comparison struct {
	Col   Column
	Op    Op
	Value any
}

// In tests set membership. Negated renders NOT IN.
type In struct {
	Col     Column
	Values  []any
	Negated bool
}

// Match tests a column against a LIKE pattern. Insensitive folds case on
// both sides; Negated renders NOT LIKE.
type Match struct {
	Col         Column
	Pattern     string
	Negated     bool
	Insensitive bool
}

// Null tests a column for NULL. Negated renders IS NOT NULL.
type Null struct {
	Col     Column
	Negated bool
}

func (True) node()       {}
func (And) node()        {}
func (Or) node()         {}
func (Comparison) node() {}
func (In) node()         {}
func (Match) node()      {}
func (Null) node()       {}

var patternEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapePattern escapes LIKE metacharacters in a literal value so it can
// be embedded in a pattern. Raw patterns (the matches predicate) bypass it.
func EscapePattern(s string) string {
	return patternEscaper.Replace(s)
}
