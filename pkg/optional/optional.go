// Package optional provides a presence wrapper for partially supplied input.
//
// A Field distinguishes "not supplied" from any supplied value, including the
// zero value and, for pointer types, an explicit null.
package optional

import "encoding/json"

// Field holds a value together with whether it was supplied.
type Field[T any] struct {
	value T
	set   bool
}

// Of returns a supplied field holding v.
func Of[T any](v T) Field[T] {
	return Field[T]{value: v, set: true}
}

// None returns a field that was not supplied.
func None[T any]() Field[T] {
	return Field[T]{}
}

// IsSet reports whether the field was supplied.
func (f Field[T]) IsSet() bool {
	return f.set
}

// Value returns the held value; the zero value when the field is not set.
func (f Field[T]) Value() T {
	return f.value
}

// Get returns the value and whether it was supplied.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.set
}

// NonNull converts a field of *T into a field of T, treating a supplied null
// the same as an absent field.
func NonNull[T any](f Field[*T]) Field[T] {
	if !f.set || f.value == nil {
		return None[T]()
	}
	return Of(*f.value)
}

// UnmarshalJSON marks the field as supplied. It is only invoked by
// encoding/json when the key is present, so absent keys stay unset.
// A JSON null decodes into the zero value of T.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f.value = v
	f.set = true
	return nil
}

// MarshalJSON renders the held value; unset fields render as null.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.set {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}
