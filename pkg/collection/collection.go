// Package collection holds the generic slice helpers the services share.
package collection

// Filter returns the elements of s that keep accepts. The result is never
// nil, so it encodes as an empty JSON array.
func Filter[T any](s []T, keep func(T) bool) []T {
	out := make([]T, 0, len(s))
	for _, v := range s {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// First returns the first element matching fn, or (zero, false).
func First[T any](s []T, fn func(T) bool) (T, bool) {
	for _, v := range s {
		if fn(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Any reports whether some element of s satisfies fn.
func Any[T any](s []T, fn func(T) bool) bool {
	_, ok := First(s, fn)
	return ok
}
