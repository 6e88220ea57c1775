package parser

import (
	"fmt"
	"strings"

	"github.com/sieveql/sieve/ast"
)

// parseSorts consumes the sort key's value: one token or a sequence of
// tokens of the form "<path> <asc|desc>". Tokens are appended to the flat
// sort list in input order.
func (p *parser) parseSorts(raw any) error {
	switch v := raw.(type) {
	case string:
		return p.parseSortToken(v)
	case []string:
		for _, token := range v {
			if err := p.parseSortToken(token); err != nil {
				return err
			}
		}
		return nil
	case []any:
		for _, elem := range v {
			token, ok := elem.(string)
			if !ok {
				return fmt.Errorf("sort entry must be a string, got %T", elem)
			}
			if err := p.parseSortToken(token); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("sort key %q must hold a string or list of strings, got %T", KeySorts, raw)
	}
}

func (p *parser) parseSortToken(token string) error {
	fields := strings.Fields(token)
	if len(fields) == 0 {
		return &AttributeNotFoundError{Key: token}
	}

	direction := ast.Ascending
	if len(fields) > 1 {
		switch strings.ToLower(fields[1]) {
		case "asc":
			direction = ast.Ascending
		case "desc":
			direction = ast.Descending
		default:
			return fmt.Errorf("unknown sort direction %q in %q", fields[1], token)
		}
	}

	attr, ok := ResolveAttribute(fields[0], p.entity, p.reflector)
	if !ok {
		return &AttributeNotFoundError{Key: token}
	}

	p.sorts = append(p.sorts, ast.Sort{Attribute: attr, Direction: direction})
	return nil
}
