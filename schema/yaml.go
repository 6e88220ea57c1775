package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// entityDef is the YAML shape of one entity definition:
//
//	user:
//	  fields:
//	    id: id
//	    name: string
//	  associations:
//	    posts: post
type entityDef struct {
	Fields       map[string]string `yaml:"fields"`
	Associations map[string]string `yaml:"associations"`
}

// LoadYAML parses entity definitions from YAML and registers them all.
// Association targets are validated after every entity is registered,
// so definitions may reference each other in any order.
func LoadYAML(data []byte) (*Registry, error) {
	var defs map[string]entityDef
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}

	registry := NewRegistry()
	for name, def := range defs {
		entity := &Entity{
			Name:         name,
			Fields:       make(map[string]PrimitiveType, len(def.Fields)),
			Associations: def.Associations,
		}
		if entity.Associations == nil {
			entity.Associations = map[string]string{}
		}
		for field, typeName := range def.Fields {
			typ, err := ParsePrimitiveType(typeName)
			if err != nil {
				return nil, fmt.Errorf("entity %s, field %s: %w", name, field, err)
			}
			entity.Fields[field] = typ
		}
		if err := registry.Register(entity); err != nil {
			return nil, err
		}
	}

	if err := registry.Validate(); err != nil {
		return nil, err
	}
	return registry, nil
}

// LoadYAMLFile reads a schema definition file and loads it
func LoadYAMLFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	return LoadYAML(data)
}
