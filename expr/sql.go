package expr

import (
	"fmt"
	"strings"
)

// ToSQL renders an expression tree to a SQL fragment with positional
// placeholders and the argument list to bind.
func ToSQL(n Node) (string, []any, error) {
	paramCounter := 1
	args := make([]any, 0)
	sql, err := nodeToSQL(n, &paramCounter, &args)
	if err != nil {
		return "", nil, err
	}
	return sql, args, nil
}

// nodeToSQL converts a node to SQL with parameterized values
func nodeToSQL(n Node, paramCounter *int, args *[]any) (string, error) {
	switch node := n.(type) {
	case True:
		return "TRUE", nil

	case And:
		return combineToSQL(node.Nodes, " AND ", paramCounter, args)

	case Or:
		return combineToSQL(node.Nodes, " OR ", paramCounter, args)

	case Comparison:
		*args = append(*args, node.Value)
		sql := fmt.Sprintf("%s %s $%d", node.Col.Ident(), node.Op, *paramCounter)
		*paramCounter++
		return sql, nil

	case In:
		if len(node.Values) == 0 {
			// IN with an empty set never matches; NOT IN always does
			if node.Negated {
				return "TRUE", nil
			}
			return "FALSE", nil
		}
		placeholders := make([]string, len(node.Values))
		for i, v := range node.Values {
			*args = append(*args, v)
			placeholders[i] = fmt.Sprintf("$%d", *paramCounter)
			*paramCounter++
		}
		op := "IN"
		if node.Negated {
			op = "NOT IN"
		}
		return fmt.Sprintf("%s %s (%s)", node.Col.Ident(), op, strings.Join(placeholders, ", ")), nil

	case Match:
		*args = append(*args, node.Pattern)
		op := "LIKE"
		if node.Insensitive {
			op = "ILIKE"
		}
		if node.Negated {
			op = "NOT " + op
		}
		sql := fmt.Sprintf("%s %s $%d", node.Col.Ident(), op, *paramCounter)
		*paramCounter++
		return sql, nil

	case Null:
		if node.Negated {
			return fmt.Sprintf("%s IS NOT NULL", node.Col.Ident()), nil
		}
		return fmt.Sprintf("%s IS NULL", node.Col.Ident()), nil

	default:
		return "", fmt.Errorf("unsupported expression node: %T", n)
	}
}

// combineToSQL renders a combination fold. Zero nodes reduce to the
// neutral TRUE; a single node renders without parentheses.
func combineToSQL(nodes []Node, connector string, paramCounter *int, args *[]any) (string, error) {
	if len(nodes) == 0 {
		return "TRUE", nil
	}

	parts := make([]string, 0, len(nodes))
	for _, child := range nodes {
		sql, err := nodeToSQL(child, paramCounter, args)
		if err != nil {
			return "", err
		}
		switch child.(type) {
		case And, Or:
			sql = fmt.Sprintf("(%s)", sql)
		}
		parts = append(parts, sql)
	}

	if len(parts) == 1 {
		return parts[0], nil
	}
	return strings.Join(parts, connector), nil
}
