package parser

import (
	"errors"
	"fmt"
)

// ErrMaxDepthExceeded is returned when grouping nesting goes past the
// configured maximum depth
var ErrMaxDepthExceeded = errors.New("maximum grouping depth exceeded")

// AttributeNotFoundError is returned when a filter key's attribute path
// cannot be resolved against the schema.
type AttributeNotFoundError struct {
	Key string
}

func (e *AttributeNotFoundError) Error() string {
	return fmt.Sprintf("attribute not found: %s", e.Key)
}

// ValueIsEmptyError is returned when an empty value is supplied for a
// condition that requires one.
type ValueIsEmptyError struct {
	Key string
}

func (e *ValueIsEmptyError) Error() string {
	return fmt.Sprintf("value is empty for %s", e.Key)
}
