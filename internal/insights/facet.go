package insights

// Facet is the result of one extraction task. A task never fails; it
// either found its value or it did not.
type Facet[T any] struct {
	Value T
	Found bool
}

// Found wraps a located value.
func Found[T any](v T) Facet[T] {
	return Facet[T]{Value: v, Found: true}
}

// NotFound is the empty result of a task.
func NotFound[T any]() Facet[T] {
	return Facet[T]{}
}

// Or returns the facet's value, or fallback when nothing was found.
func (f Facet[T]) Or(fallback T) T {
	if f.Found {
		return f.Value
	}
	return fallback
}

// foundIf reports v as found when ok is true.
func foundIf[T any](v T, ok bool) Facet[T] {
	if ok {
		return Found(v)
	}
	return NotFound[T]()
}
