package expr

import (
	"testing"
)

func TestOp_String(t *testing.T) {
	tests := []struct {
		op       Op
		expected string
	}{
		{OpEqual, "="},
		{OpNotEqual, "!="},
		{OpGreaterThan, ">"},
		{OpGreaterThanOrEqual, ">="},
		{OpLessThan, "<"},
		{OpLessThanOrEqual, "<="},
	}

	for _, tt := range tests {
		result := tt.op.String()
		if result != tt.expected {
			t.Errorf("Op.String() = %s, want %s", result, tt.expected)
		}
	}
}

func TestToSQL_Comparison(t *testing.T) {
	sql, args, err := ToSQL(Comparison{
		Col:   Column{Name: "status"},
		Op:    OpEqual,
		Value: "published",
	})
	if err != nil {
		t.Fatalf("ToSQL failed: %v", err)
	}

	expectedSQL := "status = $1"
	if sql != expectedSQL {
		t.Errorf("Expected SQL: %s, got: %s", expectedSQL, sql)
	}
	if len(args) != 1 || args[0] != "published" {
		t.Errorf("Expected args [published], got %v", args)
	}
}

func TestToSQL_ColumnWithPath(t *testing.T) {
	sql, _, err := ToSQL(Comparison{
		Col:   Column{Path: []string{"post"}, Name: "title"},
		Op:    OpEqual,
		Value: "x",
	})
	if err != nil {
		t.Fatalf("ToSQL failed: %v", err)
	}

	expectedSQL := "post.title = $1"
	if sql != expectedSQL {
		t.Errorf("Expected SQL: %s, got: %s", expectedSQL, sql)
	}
}

func TestToSQL_True(t *testing.T) {
	sql, args, err := ToSQL(True{})
	if err != nil {
		t.Fatalf("ToSQL failed: %v", err)
	}
	if sql != "TRUE" {
		t.Errorf("Expected TRUE, got %s", sql)
	}
	if len(args) != 0 {
		t.Errorf("Expected no args, got %v", args)
	}
}

func TestToSQL_In(t *testing.T) {
	sql, args, err := ToSQL(In{
		Col:    Column{Name: "id"},
		Values: []any{1, 2, 3},
	})
	if err != nil {
		t.Fatalf("ToSQL failed: %v", err)
	}

	expectedSQL := "id IN ($1, $2, $3)"
	if sql != expectedSQL {
		t.Errorf("Expected SQL: %s, got: %s", expectedSQL, sql)
	}
	if len(args) != 3 {
		t.Errorf("Expected 3 args, got %d", len(args))
	}
}

func TestToSQL_InEmpty(t *testing.T) {
	sql, _, err := ToSQL(In{Col: Column{Name: "id"}})
	if err != nil {
		t.Fatalf("ToSQL failed: %v", err)
	}
	if sql != "FALSE" {
		t.Errorf("IN with empty set should render FALSE, got %s", sql)
	}

	sql, _, err = ToSQL(In{Col: Column{Name: "id"}, Negated: true})
	if err != nil {
		t.Fatalf("ToSQL failed: %v", err)
	}
	if sql != "TRUE" {
		t.Errorf("NOT IN with empty set should render TRUE, got %s", sql)
	}
}

func TestToSQL_Match(t *testing.T) {
	tests := []struct {
		name     string
		match    Match
		expected string
	}{
		{"like", Match{Col: Column{Name: "name"}, Pattern: "go%"}, "name LIKE $1"},
		{"not like", Match{Col: Column{Name: "name"}, Pattern: "go%", Negated: true}, "name NOT LIKE $1"},
		{"ilike", Match{Col: Column{Name: "name"}, Pattern: "%go%", Insensitive: true}, "name ILIKE $1"},
		{"not ilike", Match{Col: Column{Name: "name"}, Pattern: "%go%", Negated: true, Insensitive: true}, "name NOT ILIKE $1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := ToSQL(tt.match)
			if err != nil {
				t.Fatalf("ToSQL failed: %v", err)
			}
			if sql != tt.expected {
				t.Errorf("Expected SQL: %s, got: %s", tt.expected, sql)
			}
			if len(args) != 1 || args[0] != tt.match.Pattern {
				t.Errorf("Expected pattern arg %q, got %v", tt.match.Pattern, args)
			}
		})
	}
}

func TestToSQL_Null(t *testing.T) {
	sql, args, err := ToSQL(Null{Col: Column{Name: "deleted_at"}})
	if err != nil {
		t.Fatalf("ToSQL failed: %v", err)
	}
	if sql != "deleted_at IS NULL" {
		t.Errorf("Expected IS NULL, got %s", sql)
	}
	if len(args) != 0 {
		t.Errorf("Expected no args, got %v", args)
	}

	sql, _, err = ToSQL(Null{Col: Column{Name: "deleted_at"}, Negated: true})
	if err != nil {
		t.Fatalf("ToSQL failed: %v", err)
	}
	if sql != "deleted_at IS NOT NULL" {
		t.Errorf("Expected IS NOT NULL, got %s", sql)
	}
}

func TestToSQL_NestedCombinations(t *testing.T) {
	node := And{Nodes: []Node{
		Comparison{Col: Column{Name: "a"}, Op: OpEqual, Value: 1},
		Or{Nodes: []Node{
			Comparison{Col: Column{Name: "b"}, Op: OpGreaterThan, Value: 2},
			Comparison{Col: Column{Name: "c"}, Op: OpLessThan, Value: 3},
		}},
	}}

	sql, args, err := ToSQL(node)
	if err != nil {
		t.Fatalf("ToSQL failed: %v", err)
	}

	expectedSQL := "a = $1 AND (b > $2 OR c < $3)"
	if sql != expectedSQL {
		t.Errorf("Expected SQL: %s, got: %s", expectedSQL, sql)
	}
	if len(args) != 3 {
		t.Errorf("Expected 3 args, got %d", len(args))
	}
}

func TestToSQL_EmptyCombination(t *testing.T) {
	sql, _, err := ToSQL(And{})
	if err != nil {
		t.Fatalf("ToSQL failed: %v", err)
	}
	if sql != "TRUE" {
		t.Errorf("Empty AND should render TRUE, got %s", sql)
	}
}

func TestToSQL_SingleElementCombination(t *testing.T) {
	sql, _, err := ToSQL(Or{Nodes: []Node{
		Comparison{Col: Column{Name: "a"}, Op: OpEqual, Value: 1},
	}})
	if err != nil {
		t.Fatalf("ToSQL failed: %v", err)
	}
	if sql != "a = $1" {
		t.Errorf("Single-element OR should render bare, got %s", sql)
	}
}

func TestEscapePattern(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain", "plain"},
		{"50%", `50\%`},
		{"a_b", `a\_b`},
		{`back\slash`, `back\\slash`},
		{"%_", `\%\_`},
	}

	for _, tt := range tests {
		result := EscapePattern(tt.input)
		if result != tt.expected {
			t.Errorf("EscapePattern(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}
