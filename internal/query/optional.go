package query

// Optional distinguishes a value the caller supplied from one they left out.
// The zero value is absent, so a zero int or empty string can still be present.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// None returns an absent Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it was supplied.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether the value was supplied.
func (o Optional[T]) IsSet() bool {
	return o.set
}

// Value returns the held value, or the zero value when absent.
func (o Optional[T]) Value() T {
	return o.value
}
