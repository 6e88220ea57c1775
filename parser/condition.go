package parser

import (
	"regexp"
	"strings"

	"github.com/sieveql/sieve/ast"
	"github.com/sieveql/sieve/predicate"
)

// combinatorToken splits a key's attribute portion into the field paths it
// joins, e.g. name_or_title -> [name, title].
var combinatorToken = regexp.MustCompile(`_and_|_or_`)

// parseCondition turns one filter key/value pair into a Condition.
func (p *parser) parseCondition(key string, value any) (ast.Condition, error) {
	// The predicate is matched as the longest suffix of the full key, and
	// stripping it isolates the attribute portion. Attribute resolution
	// accepts no remainder, so a stray segment next to a valid field still
	// fails. A failed lookup is reported only after the attributes resolve,
	// so an unknown path names the path rather than the predicate.
	name, lookupErr := p.registry.Lookup(key, p.opts.Filter)

	attrPortion := key
	if lookupErr == nil {
		attrPortion = strings.TrimSuffix(key, "_"+name)
	} else if unfiltered, err := p.registry.Lookup(key, predicate.Filter{}); err == nil {
		// A filtered-out predicate still marks where the attribute ends, so
		// the error below names the predicate, not the attribute.
		attrPortion = strings.TrimSuffix(key, "_"+unfiltered)
	}

	combinator := ast.CombinatorAnd
	if strings.Contains(attrPortion, "_or_") {
		combinator = ast.CombinatorOr
	}

	segments := combinatorToken.Split(attrPortion, -1)
	attributes := make([]ast.Attribute, 0, len(segments))
	for _, segment := range segments {
		attr, ok := ResolveAttribute(segment, p.entity, p.reflector)
		if !ok {
			return ast.Condition{}, &AttributeNotFoundError{Key: key}
		}
		attributes = append(attributes, attr)
	}

	if lookupErr != nil {
		return ast.Condition{}, lookupErr
	}

	values, err := normalizeValues(key, value)
	if err != nil {
		return ast.Condition{}, err
	}

	return ast.Condition{
		Attributes: attributes,
		Predicate:  name,
		Combinator: combinator,
		Values:     values,
	}, nil
}

// normalizeValues wraps a scalar into a single-element slice and rejects
// empty values, whether scalar or inside a sequence.
func normalizeValues(key string, value any) ([]any, error) {
	switch v := value.(type) {
	case nil:
		return nil, &ValueIsEmptyError{Key: key}

	case string:
		if v == "" {
			return nil, &ValueIsEmptyError{Key: key}
		}
		return []any{v}, nil

	case []string:
		if len(v) == 0 {
			return nil, &ValueIsEmptyError{Key: key}
		}
		values := make([]any, 0, len(v))
		for _, s := range v {
			if s == "" {
				return nil, &ValueIsEmptyError{Key: key}
			}
			values = append(values, s)
		}
		return values, nil

	case []any:
		if len(v) == 0 {
			return nil, &ValueIsEmptyError{Key: key}
		}
		for _, elem := range v {
			if s, ok := elem.(string); ok && s == "" {
				return nil, &ValueIsEmptyError{Key: key}
			}
			if elem == nil {
				return nil, &ValueIsEmptyError{Key: key}
			}
		}
		return v, nil

	default:
		return []any{v}, nil
	}
}
