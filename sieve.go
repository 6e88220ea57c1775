// Package sieve compiles flat, string-keyed filter parameters (as decoded
// from an HTTP query string) into a validated boolean query AST against a
// typed schema, and renders that AST into a composable predicate
// expression for a query executor.
//
// The pipeline is pure and synchronous: parse -> validate -> compile, with
// no shared mutable state, so concurrent calls need no synchronization.
package sieve

import (
	"go.uber.org/zap"

	"github.com/sieveql/sieve/ast"
	"github.com/sieveql/sieve/compiler"
	"github.com/sieveql/sieve/expr"
	"github.com/sieveql/sieve/parser"
	"github.com/sieveql/sieve/predicate"
	"github.com/sieveql/sieve/schema"
)

// DefaultRegistry is the process-wide predicate registry. Custom
// predicates registered during initialization land here; it is read-only
// afterwards and safe for concurrent use.
var DefaultRegistry = predicate.NewRegistry()

// RegisterPredicate registers a custom predicate on the default registry.
// Call during application initialization, before any parsing starts.
func RegisterPredicate(name string, arity int, render predicate.RenderFunc) error {
	return DefaultRegistry.RegisterCustom(name, arity, render)
}

// Config is threaded explicitly through every call; there is no ambient
// configuration state.
type Config struct {
	// OnlyPredicates restricts the effective predicate set to these names;
	// the group tokens basic/composite expand to their member predicates.
	OnlyPredicates []string

	// ExceptPredicates removes these names from the effective predicate
	// set. Mutually exclusive with OnlyPredicates.
	ExceptPredicates []string

	// IgnoreErrors drops conditions with unresolved attributes or
	// predicates instead of failing the parse.
	IgnoreErrors bool

	// MaxDepth bounds grouping nesting; zero uses the parser default.
	MaxDepth int

	// Registry overrides the default predicate registry.
	Registry *predicate.Registry

	// Logger enables debug logging; nil disables it.
	Logger *zap.Logger
}

func (c Config) registry() *predicate.Registry {
	if c.Registry != nil {
		return c.Registry
	}
	return DefaultRegistry
}

func (c Config) logger() *zap.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return zap.NewNop()
}

func (c Config) options() parser.Options {
	return parser.Options{
		Filter: predicate.Filter{
			Only:   c.OnlyPredicates,
			Except: c.ExceptPredicates,
		},
		IgnoreErrors: c.IgnoreErrors,
		MaxDepth:     c.MaxDepth,
	}
}

// Parse builds the Grouping AST and sort list for a filter-parameter tree
// rooted at the named entity.
func Parse(params map[string]any, entity string, reflector schema.Reflector, cfg Config) (ast.Grouping, []ast.Sort, error) {
	root, sorts, err := parser.Parse(params, entity, reflector, cfg.registry(), cfg.options())
	if err != nil {
		return ast.Grouping{}, nil, err
	}

	cfg.logger().Debug("parsed filter params",
		zap.String("entity", entity),
		zap.Int("conditions", len(root.Conditions)),
		zap.Int("groupings", len(root.Groupings)),
		zap.Int("sorts", len(sorts)))

	return root, sorts, nil
}

// Compile compiles a Grouping AST into a boolean expression tree.
func Compile(root ast.Grouping, cfg Config) (expr.Node, error) {
	return compiler.Compile(root, cfg.registry())
}

// ParseAndCompile runs the full pipeline: params in, expression tree and
// sort list out.
func ParseAndCompile(params map[string]any, entity string, reflector schema.Reflector, cfg Config) (expr.Node, []ast.Sort, error) {
	root, sorts, err := Parse(params, entity, reflector, cfg)
	if err != nil {
		return nil, nil, err
	}
	node, err := Compile(root, cfg)
	if err != nil {
		return nil, nil, err
	}
	return node, sorts, nil
}
