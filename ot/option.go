package ot

import "fmt"

// Option represents an optional value, such as the result of looking up a table
// record by tag.
type Option[T any] struct {
	value T
	ok    bool
}

// Some constructs an Option with a value.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

// None constructs an empty Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// IsSome reports whether the option contains a value.
func (o Option[T]) IsSome() bool {
	return o.ok
}

// IsNone reports whether the option is empty.
func (o Option[T]) IsNone() bool {
	return !o.ok
}

// Unwrap returns the value and a boolean indicating presence, in the manner of
// Go's "(value, ok)" idiom.
func (o Option[T]) Unwrap() (T, bool) {
	return o.value, o.ok
}

// MustUnwrap returns the value or panics if o is None.
func (o Option[T]) MustUnwrap() T {
	if !o.ok {
		panic("option: unwrap of None")
	}
	return o.value
}

// Or returns the contained value or a default.
func (o Option[T]) Or(def T) T {
	if o.ok {
		return o.value
	}
	return def
}

func (o Option[T]) String() string {
	if !o.ok {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.value)
}
