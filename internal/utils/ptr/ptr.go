// Package ptr converts between optional string fields and their values.
package ptr

// To returns a pointer to a copy of v.
func To[T any](v T) *T {
	return &v
}

// NonEmpty returns a pointer to s, or nil when s is empty. Empty columns in
// delimited input map to absent optional fields this way.
func NonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the value p points to, or the zero value when p is nil.
func Deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
