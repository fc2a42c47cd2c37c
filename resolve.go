package catalogpatch

// Resolve turns the presence and decoded value of one field into its
// FieldState. A null on a field that is not nullable is rejected with a
// *MalformedFieldError wrapping ErrNullNotAllowed.
func Resolve[P, V any](f *Field[P, V], presence PresenceSet, p P) (FieldState[V], error) {
	if !presence.Has(f.name) {
		return Unset[V](), nil
	}
	if presence.WasNull(f.name) {
		if !f.nullable {
			return Unset[V](), &MalformedFieldError{Field: f.name, Cause: ErrNullNotAllowed}
		}
		return Cleared[V](), nil
	}
	v := f.Get(p)
	if v == nil {
		// Present and not null but no value: the partial document was built
		// without Map.
		if f.nullable {
			return Cleared[V](), nil
		}
		return Unset[V](), &MalformedFieldError{Field: f.name, Cause: ErrNullNotAllowed}
	}
	return Value(*v), nil
}
