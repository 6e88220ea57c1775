package ast

import (
	"testing"

	"github.com/sieveql/sieve/schema"
)

func TestAttribute_String(t *testing.T) {
	tests := []struct {
		attr     Attribute
		expected string
	}{
		{Attribute{Name: "id"}, "id"},
		{Attribute{Parent: []string{"post"}, Name: "title"}, "post_title"},
		{Attribute{Parent: []string{"posts", "comments"}, Name: "body"}, "posts_comments_body"},
	}

	for _, tt := range tests {
		if got := tt.attr.String(); got != tt.expected {
			t.Errorf("Attribute.String() = %s, want %s", got, tt.expected)
		}
	}
}

func TestAttribute_Equal(t *testing.T) {
	a := Attribute{Parent: []string{"post"}, Name: "title", Type: schema.TypeString}
	b := Attribute{Parent: []string{"post"}, Name: "title", Type: schema.TypeString}
	if !a.Equal(b) {
		t.Error("structurally identical attributes should be equal")
	}

	c := Attribute{Parent: []string{"posts"}, Name: "title", Type: schema.TypeString}
	if a.Equal(c) {
		t.Error("attributes with different parents should not be equal")
	}

	d := Attribute{Parent: []string{"post"}, Name: "title", Type: schema.TypeText}
	if a.Equal(d) {
		t.Error("attributes with different types should not be equal")
	}
}

func TestCombinator_String(t *testing.T) {
	if CombinatorAnd.String() != "and" || CombinatorOr.String() != "or" {
		t.Error("unexpected combinator strings")
	}
}

func TestDirection_String(t *testing.T) {
	if Ascending.String() != "asc" || Descending.String() != "desc" {
		t.Error("unexpected direction strings")
	}
}
