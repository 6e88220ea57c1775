// Package parser turns a nested filter-parameter tree into the Grouping
// AST and an ordered sort list, resolving every attribute path against a
// schema Reflector and every predicate suffix against a predicate
// Registry.
package parser

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sieveql/sieve/ast"
	"github.com/sieveql/sieve/predicate"
	"github.com/sieveql/sieve/schema"
)

// Reserved parameter keys.
const (
	KeyCombinator = "m"
	KeyConditions = "c"
	KeyGroupings  = "g"
	KeySorts      = "s"
)

// DefaultMaxDepth bounds grouping nesting when Options.MaxDepth is unset.
const DefaultMaxDepth = 16

// Options configures one parse call.
type Options struct {
	// Filter restricts the effective predicate set.
	Filter predicate.Filter

	// IgnoreErrors drops conditions whose attribute or predicate cannot be
	// resolved instead of failing the whole parse. Malformed values still
	// abort.
	IgnoreErrors bool

	// MaxDepth bounds grouping nesting; zero means DefaultMaxDepth.
	MaxDepth int
}

type parser struct {
	entity    string
	reflector schema.Reflector
	registry  *predicate.Registry
	opts      Options
	sorts     []ast.Sort
}

// Parse consumes a full filter-parameter tree and produces the Grouping
// AST plus the flat, input-ordered sort list. Any condition, nested group
// or sort failure aborts the whole parse with that error; there is no
// partial result.
func Parse(params map[string]any, entity string, reflector schema.Reflector, registry *predicate.Registry, opts Options) (ast.Grouping, []ast.Sort, error) {
	if err := opts.Filter.Validate(); err != nil {
		return ast.Grouping{}, nil, err
	}
	if opts.MaxDepth == 0 {
		opts.MaxDepth = DefaultMaxDepth
	}

	p := &parser{
		entity:    entity,
		reflector: reflector,
		registry:  registry,
		opts:      opts,
	}

	root, err := p.parseGrouping(params, 0)
	if err != nil {
		return ast.Grouping{}, nil, err
	}
	return root, p.sorts, nil
}

func (p *parser) parseGrouping(params map[string]any, depth int) (ast.Grouping, error) {
	if depth > p.opts.MaxDepth {
		return ast.Grouping{}, ErrMaxDepthExceeded
	}

	combinator, err := parseCombinator(params[KeyCombinator])
	if err != nil {
		return ast.Grouping{}, err
	}

	if raw, ok := params[KeySorts]; ok {
		if err := p.parseSorts(raw); err != nil {
			return ast.Grouping{}, err
		}
	}

	conditionParams, err := conditionEntries(params)
	if err != nil {
		return ast.Grouping{}, err
	}

	grouping := ast.Grouping{Combinator: combinator}

	// Every sibling entry is evaluated before the first error is surfaced,
	// in sorted-key order, so error reporting does not depend on map
	// iteration order.
	keys := make([]string, 0, len(conditionParams))
	for key := range conditionParams {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var firstErr error
	for _, key := range keys {
		condition, err := p.parseCondition(key, conditionParams[key])
		if err != nil {
			if p.opts.IgnoreErrors && droppable(err) {
				continue
			}
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		grouping.Conditions = append(grouping.Conditions, condition)
	}

	if raw, ok := params[KeyGroupings]; ok {
		children, err := groupingEntries(raw)
		if err != nil {
			return ast.Grouping{}, err
		}
		for _, child := range children {
			sub, err := p.parseGrouping(child, depth+1)
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			grouping.Groupings = append(grouping.Groupings, sub)
		}
	}

	if firstErr != nil {
		return ast.Grouping{}, firstErr
	}
	return grouping, nil
}

// conditionEntries picks the condition map for one grouping level: the
// value of the conditions key when present, otherwise every non-reserved
// flat key.
func conditionEntries(params map[string]any) (map[string]any, error) {
	if raw, ok := params[KeyConditions]; ok {
		entries, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("conditions key %q must hold a map, got %T", KeyConditions, raw)
		}
		return entries, nil
	}

	entries := make(map[string]any)
	for key, value := range params {
		switch key {
		case KeyCombinator, KeyConditions, KeyGroupings, KeySorts:
			continue
		}
		entries[key] = value
	}
	return entries, nil
}

// groupingEntries coerces the nested-groupings value into a list of
// parameter trees.
func groupingEntries(raw any) ([]map[string]any, error) {
	switch v := raw.(type) {
	case []map[string]any:
		return v, nil
	case []any:
		children := make([]map[string]any, 0, len(v))
		for _, elem := range v {
			child, ok := elem.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("grouping entry must be a map, got %T", elem)
			}
			children = append(children, child)
		}
		return children, nil
	case map[string]any:
		return []map[string]any{v}, nil
	default:
		return nil, fmt.Errorf("groupings key %q must hold a list, got %T", KeyGroupings, raw)
	}
}

func parseCombinator(raw any) (ast.Combinator, error) {
	if raw == nil {
		return ast.CombinatorAnd, nil
	}
	s, ok := raw.(string)
	if !ok {
		return 0, fmt.Errorf("combinator must be a string, got %T", raw)
	}
	switch strings.ToLower(s) {
	case "and", "":
		return ast.CombinatorAnd, nil
	case "or":
		return ast.CombinatorOr, nil
	default:
		return 0, fmt.Errorf("unknown combinator %q", s)
	}
}

// droppable reports whether ignore-errors mode may swallow an error and
// drop its condition. Only unresolved attributes and predicates qualify.
func droppable(err error) bool {
	var attrErr *AttributeNotFoundError
	if errors.As(err, &attrErr) {
		return true
	}
	var predErr *predicate.NotFoundError
	return errors.As(err, &predErr)
}
