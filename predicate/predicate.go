// Package predicate defines the predicate registry: the table of basic
// predicates with their type and value constraints, derived _all/_any
// composite variants, externally registered custom predicates, and
// longest-suffix lookup against filter keys.
package predicate

import (
	"github.com/sieveql/sieve/expr"
	"github.com/sieveql/sieve/schema"
)

// Spec describes one basic predicate: which field types it applies to,
// which values it accepts, and whether _all/_any variants are derived
// from it. A nil AllowedTypes or AllowedValues means unrestricted.
type Spec struct {
	Name          string
	AllowedTypes  []schema.PrimitiveType
	AllowedValues []any
	Composable    bool
}

// AllowsType reports whether the predicate applies to a field type
func (s Spec) AllowsType(t schema.PrimitiveType) bool {
	if s.AllowedTypes == nil {
		return true
	}
	for _, allowed := range s.AllowedTypes {
		if allowed == t {
			return true
		}
	}
	return false
}

// AllowsValue reports whether a value is in the predicate's value domain
func (s Spec) AllowsValue(v any) bool {
	if s.AllowedValues == nil {
		return true
	}
	for _, allowed := range s.AllowedValues {
		if allowed == v {
			return true
		}
	}
	return false
}

// RenderFunc constructs the expression fragment for a custom predicate,
// given the resolved column and the supplied values.
type RenderFunc func(col expr.Column, values []any) (expr.Node, error)

// Custom is an externally registered predicate: a name, the minimum
// number of values it requires, and an opaque render hook.
type Custom struct {
	Name   string
	Arity  int
	Render RenderFunc
}

var (
	textTypes = []schema.PrimitiveType{
		schema.TypeString,
		schema.TypeText,
	}

	orderableTypes = []schema.PrimitiveType{
		schema.TypeInteger,
		schema.TypeBigInt,
		schema.TypeFloat,
		schema.TypeDecimal,
		schema.TypeDate,
		schema.TypeTime,
		schema.TypeDateTime,
		schema.TypeID,
	}

	booleanTypes = []schema.PrimitiveType{
		schema.TypeBoolean,
	}

	booleanValues = []any{
		true, false,
		"true", "false",
		"1", "0",
		1, 0,
	}
)

// basicSpecs is the fixed table of basic predicates.
var basicSpecs = []Spec{
	{Name: "eq", Composable: true},
	{Name: "not_eq", Composable: true},
	{Name: "cont", AllowedTypes: textTypes, Composable: true},
	{Name: "not_cont", AllowedTypes: textTypes, Composable: true},
	{Name: "lt", AllowedTypes: orderableTypes, Composable: true},
	{Name: "lteq", AllowedTypes: orderableTypes, Composable: true},
	{Name: "gt", AllowedTypes: orderableTypes, Composable: true},
	{Name: "gteq", AllowedTypes: orderableTypes, Composable: true},
	{Name: "in"},
	{Name: "not_in"},
	{Name: "matches", AllowedTypes: textTypes, Composable: true},
	{Name: "does_not_match", AllowedTypes: textTypes, Composable: true},
	{Name: "start", AllowedTypes: textTypes, Composable: true},
	{Name: "not_start", AllowedTypes: textTypes, Composable: true},
	{Name: "end", AllowedTypes: textTypes, Composable: true},
	{Name: "not_end", AllowedTypes: textTypes, Composable: true},
	{Name: "true", AllowedTypes: booleanTypes, AllowedValues: booleanValues},
	{Name: "not_true", AllowedTypes: booleanTypes, AllowedValues: booleanValues},
	{Name: "false", AllowedTypes: booleanTypes, AllowedValues: booleanValues},
	{Name: "not_false", AllowedTypes: booleanTypes, AllowedValues: booleanValues},
	{Name: "blank"},
	{Name: "null"},
	{Name: "not_null"},
	{Name: "present"},
}
