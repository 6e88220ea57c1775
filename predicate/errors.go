package predicate

import (
	"errors"
	"fmt"
)

// ErrConflictingFilter is returned when a filter sets both Only and Except
var ErrConflictingFilter = errors.New("only and except predicate filters are mutually exclusive")

// NotFoundError is returned when no predicate in the effective set matches
// a filter key, or when a compiled condition names an unknown predicate.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("predicate not found: %s", e.Key)
}
