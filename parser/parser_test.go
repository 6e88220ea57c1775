package parser

import (
	"github.com/sieveql/sieve/schema"
)

// testReflector builds the schema used across the parser tests:
// user -> post -> comment.
func testReflector() *schema.Registry {
	registry := schema.NewRegistry()

	registry.Register(&schema.Entity{
		Name: "user",
		Fields: map[string]schema.PrimitiveType{
			"id":         schema.TypeID,
			"name":       schema.TypeString,
			"email":      schema.TypeString,
			"age":        schema.TypeInteger,
			"active":     schema.TypeBoolean,
			"bio":        schema.TypeText,
			"created_at": schema.TypeDateTime,
		},
		Associations: map[string]string{
			"post":  "post",
			"posts": "post",
		},
	})

	registry.Register(&schema.Entity{
		Name: "post",
		Fields: map[string]schema.PrimitiveType{
			"id":        schema.TypeID,
			"title":     schema.TypeString,
			"body":      schema.TypeString,
			"published": schema.TypeBoolean,
			"views":     schema.TypeInteger,
		},
		Associations: map[string]string{
			"comments": "comment",
			"author":   "user",
		},
	})

	registry.Register(&schema.Entity{
		Name: "comment",
		Fields: map[string]schema.PrimitiveType{
			"id":   schema.TypeID,
			"body": schema.TypeString,
		},
	})

	return registry
}
