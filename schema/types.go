// Package schema provides the typed-schema surface the filter pipeline
// resolves attributes against: primitive field types, a Reflector interface
// for field/association lookups, and an in-memory Registry implementation.
package schema

import "fmt"

// PrimitiveType represents the semantic type of a schema field.
type PrimitiveType int

const (
	// Text types
	TypeString PrimitiveType = iota
	TypeText

	// Numeric types
	TypeInteger
	TypeBigInt
	TypeFloat
	TypeDecimal

	// Boolean
	TypeBoolean

	// Time types
	TypeDate
	TypeTime
	TypeDateTime

	// Identifiers
	TypeID
	TypeUUID
)

// String returns the string representation of the primitive type
func (p PrimitiveType) String() string {
	switch p {
	case TypeString:
		return "string"
	case TypeText:
		return "text"
	case TypeInteger:
		return "integer"
	case TypeBigInt:
		return "bigint"
	case TypeFloat:
		return "float"
	case TypeDecimal:
		return "decimal"
	case TypeBoolean:
		return "boolean"
	case TypeDate:
		return "date"
	case TypeTime:
		return "time"
	case TypeDateTime:
		return "datetime"
	case TypeID:
		return "id"
	case TypeUUID:
		return "uuid"
	default:
		return "unknown"
	}
}

// ParsePrimitiveType converts a string to a PrimitiveType
func ParsePrimitiveType(s string) (PrimitiveType, error) {
	switch s {
	case "string":
		return TypeString, nil
	case "text":
		return TypeText, nil
	case "integer", "int":
		return TypeInteger, nil
	case "bigint":
		return TypeBigInt, nil
	case "float":
		return TypeFloat, nil
	case "decimal":
		return TypeDecimal, nil
	case "boolean", "bool":
		return TypeBoolean, nil
	case "date":
		return TypeDate, nil
	case "time":
		return TypeTime, nil
	case "datetime", "timestamp":
		return TypeDateTime, nil
	case "id":
		return TypeID, nil
	case "uuid":
		return TypeUUID, nil
	default:
		return 0, fmt.Errorf("unknown primitive type: %s", s)
	}
}

// IsText returns true if the type carries text semantics
func (p PrimitiveType) IsText() bool {
	return p == TypeString || p == TypeText
}

// IsOrderable returns true if the type has ordering semantics
func (p PrimitiveType) IsOrderable() bool {
	switch p {
	case TypeInteger, TypeBigInt, TypeFloat, TypeDecimal,
		TypeDate, TypeTime, TypeDateTime, TypeID:
		return true
	default:
		return false
	}
}

// Reflector answers field and association lookups for named entities.
// Implementations must be safe for concurrent read access; the filter
// pipeline probes them repeatedly while resolving attribute paths.
type Reflector interface {
	// Field reports the primitive type of a field on an entity, if it exists.
	Field(entity, name string) (PrimitiveType, bool)

	// Association reports the target entity of a named association, if it exists.
	Association(entity, name string) (string, bool)
}
