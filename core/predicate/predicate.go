package predicate

import "strings"

// Predicate decides whether a value passes a test.
// Implementations must be safe for concurrent use and must not mutate
// the value they are given.
type Predicate[T any] interface {
	Evaluate(v T) bool
}

// Func adapts an ordinary function to the Predicate interface.
type Func[T any] func(v T) bool

// Evaluate calls f(v).
func (f Func[T]) Evaluate(v T) bool {
	return f(v)
}

// Not inverts p.
func Not[T any](p Predicate[T]) Predicate[T] {
	if IsNil(p) {
		panic(ErrNilPredicate)
	}
	return Func[T](func(v T) bool { return !p.Evaluate(v) })
}

// Always matches every value.
func Always[T any]() Predicate[T] {
	return Func[T](func(T) bool { return true })
}

// Never matches no value.
func Never[T any]() Predicate[T] {
	return Func[T](func(T) bool { return false })
}

// HasPrefix matches strings that start with prefix.
func HasPrefix(prefix string) Predicate[string] {
	return Func[string](func(s string) bool { return strings.HasPrefix(s, prefix) })
}

// Contains matches strings that contain substr.
func Contains(substr string) Predicate[string] {
	return Func[string](func(s string) bool { return strings.Contains(s, substr) })
}

// Filter returns a new slice holding the items that satisfy p, in their
// original order. A nil p keeps every item. The input slice is not modified.
func Filter[T any](items []T, p Predicate[T]) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if p == nil || p.Evaluate(item) {
			out = append(out, item)
		}
	}
	return out
}

// IsNil reports whether p is a nil interface or wraps a nil function or chain.
func IsNil[T any](p Predicate[T]) bool {
	switch v := p.(type) {
	case nil:
		return true
	case Func[T]:
		return v == nil
	case *Chain[T]:
		return v == nil
	}
	return false
}
