package catalogpatch

import "fmt"

type stateKind uint8

const (
	stateUnset stateKind = iota
	stateCleared
	stateValue
)

// FieldState is the resolved intent of a merge patch for one field:
// Unset (absent, leave alone), Cleared (explicit null) or Value(v).
//
// The zero value is Unset. Consumers read a state through Match or Fold,
// which take one handler per variant, so every variant is handled at each
// call site.
type FieldState[T any] struct {
	kind  stateKind
	value T
}

// Unset returns the state of a field absent from the patch.
func Unset[T any]() FieldState[T] { return FieldState[T]{} }

// Cleared returns the state of a field explicitly set to null.
func Cleared[T any]() FieldState[T] { return FieldState[T]{kind: stateCleared} }

// Value returns the state of a field explicitly set to v.
func Value[T any](v T) FieldState[T] { return FieldState[T]{kind: stateValue, value: v} }

func (s FieldState[T]) IsUnset() bool   { return s.kind == stateUnset }
func (s FieldState[T]) IsCleared() bool { return s.kind == stateCleared }

// Get returns the value and true when the state is Value.
func (s FieldState[T]) Get() (T, bool) {
	if s.kind != stateValue {
		var zero T
		return zero, false
	}
	return s.value, true
}

// Match calls exactly one of the handlers according to the variant.
func (s FieldState[T]) Match(unset func(), cleared func(), value func(T)) {
	switch s.kind {
	case stateCleared:
		cleared()
	case stateValue:
		value(s.value)
	default:
		unset()
	}
}

func (s FieldState[T]) String() string {
	switch s.kind {
	case stateCleared:
		return "Cleared"
	case stateValue:
		return fmt.Sprintf("Value(%v)", s.value)
	default:
		return "Unset"
	}
}

// Fold maps a FieldState to R with one function per variant.
func Fold[T, R any](s FieldState[T], unset func() R, cleared func() R, value func(T) R) R {
	switch s.kind {
	case stateCleared:
		return cleared()
	case stateValue:
		return value(s.value)
	default:
		return unset()
	}
}
