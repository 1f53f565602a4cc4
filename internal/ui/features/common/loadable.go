package common

// Loadable holds a value that is either still loading or loaded.
// A loaded zero value is distinct from a value that has not arrived yet.
type Loadable[T any] struct {
	value  T
	loaded bool
}

// Loading returns a Loadable with no value yet.
func Loading[T any]() Loadable[T] {
	return Loadable[T]{}
}

// Loaded wraps an available value.
func Loaded[T any](v T) Loadable[T] {
	return Loadable[T]{value: v, loaded: true}
}

// Get returns the value and whether it has loaded.
func (l Loadable[T]) Get() (T, bool) {
	return l.value, l.loaded
}

// IsLoading reports whether the value is still pending.
func (l Loadable[T]) IsLoading() bool {
	return !l.loaded
}
