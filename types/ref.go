package types

// Ref is a cross-collection reference resolved at load time. A link whose
// target record is gone keeps its stored ID but carries a nil Value, so the
// integrity gap stays visible instead of collapsing into a silent null.
type Ref[T any] struct {
	ID    string `json:"id"`
	Value *T     `json:"-"`
}

// ResolvedRef builds a reference whose target was found.
func ResolvedRef[T any](id string, value *T) Ref[T] {
	return Ref[T]{ID: id, Value: value}
}

// UnresolvedRef builds a reference whose target is missing from its collection.
func UnresolvedRef[T any](id string) Ref[T] {
	return Ref[T]{ID: id}
}

// Resolved reports whether the target record was found at load time.
func (r Ref[T]) Resolved() bool {
	return r.Value != nil
}

// IsZero reports whether the reference is empty (no target assigned at all).
func (r Ref[T]) IsZero() bool {
	return r.ID == "" && r.Value == nil
}
