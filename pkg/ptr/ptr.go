package ptr

// New creates and returns a pointer to the provided value.
func New[T any](v T) *T { return &v }

// Deref returns the value v points to, or def when v is nil.
func Deref[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}
