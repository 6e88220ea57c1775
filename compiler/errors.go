package compiler

import "fmt"

// InvalidTypeError is returned when a field's type is outside a
// predicate's allowed-type set.
type InvalidTypeError struct {
	Field     string
	Predicate string
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("predicate %s does not apply to field %s", e.Predicate, e.Field)
}

// InvalidValueError is returned when a supplied value is outside a
// predicate's allowed-value set.
type InvalidValueError struct {
	Field string
	Value any
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %v for field %s", e.Value, e.Field)
}

// TooFewValuesError is returned when a custom predicate receives fewer
// values than its declared arity.
type TooFewValuesError struct {
	Key   string
	Arity int
}

func (e *TooFewValuesError) Error() string {
	return fmt.Sprintf("%s requires at least %d value(s)", e.Key, e.Arity)
}
