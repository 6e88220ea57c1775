// Package compiler walks a Grouping AST bottom-up and produces a single
// boolean expression tree, validating each condition's predicate against
// the field's type and value domain on the way.
package compiler

import (
	"fmt"

	"github.com/sieveql/sieve/ast"
	"github.com/sieveql/sieve/expr"
	"github.com/sieveql/sieve/predicate"
)

// Compile compiles a Grouping tree into one boolean expression. The first
// validation error found anywhere in the tree is returned and no partial
// expression is produced.
func Compile(g ast.Grouping, registry *predicate.Registry) (expr.Node, error) {
	c := &compiler{registry: registry}
	return c.grouping(g)
}

type compiler struct {
	registry *predicate.Registry
}

func (c *compiler) grouping(g ast.Grouping) (expr.Node, error) {
	nodes := make([]expr.Node, 0, len(g.Conditions)+len(g.Groupings))
	var firstErr error

	// All siblings are compiled before the first error is surfaced, so
	// reporting is deterministic across the whole level.
	for _, condition := range g.Conditions {
		node, err := c.condition(condition)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		nodes = append(nodes, node)
	}
	for _, child := range g.Groupings {
		node, err := c.grouping(child)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		nodes = append(nodes, node)
	}

	if firstErr != nil {
		return nil, firstErr
	}
	return combine(g.Combinator, nodes), nil
}

// condition produces one sub-expression per attribute and folds them with
// the condition's own combinator.
func (c *compiler) condition(condition ast.Condition) (expr.Node, error) {
	nodes := make([]expr.Node, 0, len(condition.Attributes))
	var firstErr error

	for _, attr := range condition.Attributes {
		node, err := c.predicate(attr, condition.Predicate, condition.Values)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		nodes = append(nodes, node)
	}

	if firstErr != nil {
		return nil, firstErr
	}
	return combine(condition.Combinator, nodes), nil
}

// predicate dispatches on the predicate name: custom predicates first,
// then composite _all/_any expansion, then the basic table.
func (c *compiler) predicate(attr ast.Attribute, name string, values []any) (expr.Node, error) {
	col := expr.Column{Path: attr.Parent, Name: attr.Name}

	if custom, ok := c.registry.Custom(name); ok {
		if len(values) < custom.Arity {
			return nil, &TooFewValuesError{Key: attr.String(), Arity: custom.Arity}
		}
		return custom.Render(col, values)
	}

	if base, suffix, ok := predicate.SplitComposite(name); ok {
		if spec, found := c.registry.Basic(base); found && spec.Composable {
			return c.composite(attr, base, suffix, values)
		}
	}

	return c.basic(attr, name, values)
}

// composite expands an _all/_any predicate into one base-predicate
// sub-expression per value, combined by AND or OR respectively. Each
// expansion runs the base predicate's own validation.
func (c *compiler) composite(attr ast.Attribute, base, suffix string, values []any) (expr.Node, error) {
	nodes := make([]expr.Node, 0, len(values))
	var firstErr error

	for _, value := range values {
		node, err := c.basic(attr, base, []any{value})
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		nodes = append(nodes, node)
	}

	if firstErr != nil {
		return nil, firstErr
	}
	if suffix == "any" {
		return combine(ast.CombinatorOr, nodes), nil
	}
	return combine(ast.CombinatorAnd, nodes), nil
}

func (c *compiler) basic(attr ast.Attribute, name string, values []any) (expr.Node, error) {
	spec, ok := c.registry.Basic(name)
	if !ok {
		return nil, &predicate.NotFoundError{Key: name}
	}

	if !spec.AllowsType(attr.Type) {
		return nil, &InvalidTypeError{Field: attr.String(), Predicate: name}
	}

	var first any
	if len(values) > 0 {
		first = values[0]
	}
	if spec.AllowedValues != nil && !spec.AllowsValue(first) {
		return nil, &InvalidValueError{Field: attr.String(), Value: first}
	}

	col := expr.Column{Path: attr.Parent, Name: attr.Name}

	switch name {
	case "eq":
		return expr.Comparison{Col: col, Op: expr.OpEqual, Value: first}, nil
	case "not_eq":
		return expr.Comparison{Col: col, Op: expr.OpNotEqual, Value: first}, nil
	case "lt":
		return expr.Comparison{Col: col, Op: expr.OpLessThan, Value: first}, nil
	case "lteq":
		return expr.Comparison{Col: col, Op: expr.OpLessThanOrEqual, Value: first}, nil
	case "gt":
		return expr.Comparison{Col: col, Op: expr.OpGreaterThan, Value: first}, nil
	case "gteq":
		return expr.Comparison{Col: col, Op: expr.OpGreaterThanOrEqual, Value: first}, nil

	case "in":
		return expr.In{Col: col, Values: values}, nil
	case "not_in":
		return expr.In{Col: col, Values: values, Negated: true}, nil

	case "cont":
		return expr.Match{Col: col, Pattern: containsPattern(first), Insensitive: true}, nil
	case "not_cont":
		return expr.Match{Col: col, Pattern: containsPattern(first), Insensitive: true, Negated: true}, nil

	// matches passes the pattern through untouched; only the cont/start/end
	// family escapes LIKE metacharacters.
	case "matches":
		return expr.Match{Col: col, Pattern: stringValue(first)}, nil
	case "does_not_match":
		return expr.Match{Col: col, Pattern: stringValue(first), Negated: true}, nil

	case "start":
		return expr.Match{Col: col, Pattern: expr.EscapePattern(stringValue(first)) + "%"}, nil
	case "not_start":
		return expr.Match{Col: col, Pattern: expr.EscapePattern(stringValue(first)) + "%", Negated: true}, nil
	case "end":
		return expr.Match{Col: col, Pattern: "%" + expr.EscapePattern(stringValue(first))}, nil
	case "not_end":
		return expr.Match{Col: col, Pattern: "%" + expr.EscapePattern(stringValue(first)), Negated: true}, nil

	// Boolean shortcuts rewrite to eq/not_eq against literal booleans.
	case "true":
		return expr.Comparison{Col: col, Op: expr.OpEqual, Value: true}, nil
	case "not_true":
		return expr.Comparison{Col: col, Op: expr.OpNotEqual, Value: true}, nil
	case "false":
		return expr.Comparison{Col: col, Op: expr.OpEqual, Value: false}, nil
	case "not_false":
		return expr.Comparison{Col: col, Op: expr.OpNotEqual, Value: false}, nil

	case "null":
		return expr.Null{Col: col}, nil
	case "not_null":
		return expr.Null{Col: col, Negated: true}, nil

	case "blank":
		return expr.Or{Nodes: []expr.Node{
			expr.Null{Col: col},
			expr.Comparison{Col: col, Op: expr.OpEqual, Value: ""},
		}}, nil
	case "present":
		return expr.And{Nodes: []expr.Node{
			expr.Null{Col: col, Negated: true},
			expr.Comparison{Col: col, Op: expr.OpNotEqual, Value: ""},
		}}, nil

	default:
		return nil, &predicate.NotFoundError{Key: name}
	}
}

// combine folds sub-expressions under a combinator. Zero nodes reduce to
// the neutral true expression, one node to itself.
func combine(combinator ast.Combinator, nodes []expr.Node) expr.Node {
	switch len(nodes) {
	case 0:
		return expr.True{}
	case 1:
		return nodes[0]
	}
	if combinator == ast.CombinatorOr {
		return expr.Or{Nodes: nodes}
	}
	return expr.And{Nodes: nodes}
}

func containsPattern(v any) string {
	return "%" + expr.EscapePattern(stringValue(v)) + "%"
}

func stringValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
