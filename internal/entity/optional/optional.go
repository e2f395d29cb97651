// Package optional holds a tri-state value for partial updates: absent, explicit null or a value.
package optional

import (
	"bytes"
	"encoding/json"
)

type state uint8

const (
	absent state = iota
	null
	present
)

// Value is absent by default. Use it with the `omitzero` JSON option so absent fields are not emitted.
type Value[T any] struct {
	state state
	value T
}

func Of[T any](v T) Value[T] {
	return Value[T]{state: present, value: v}
}

func Null[T any]() Value[T] {
	return Value[T]{state: null}
}

func (v Value[T]) IsAbsent() bool { return v.state == absent }
func (v Value[T]) IsNull() bool   { return v.state == null }
func (v Value[T]) IsSet() bool    { return v.state == present }

// IsZero reports absence, it is what `omitzero` consults.
func (v Value[T]) IsZero() bool { return v.IsAbsent() }

// Get returns the value and whether one is present.
func (v Value[T]) Get() (T, bool) {
	return v.value, v.state == present
}

// Or returns the value when present and def otherwise.
func (v Value[T]) Or(def T) T {
	if v.state == present {
		return v.value
	}
	return def
}

func (v Value[T]) MarshalJSON() ([]byte, error) {
	if v.state != present {
		return []byte("null"), nil
	}
	return json.Marshal(v.value)
}

// UnmarshalJSON is only invoked for keys present in the document, so absence survives decoding.
func (v *Value[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*v = Null[T]()
		return nil
	}
	var val T
	if err := json.Unmarshal(data, &val); err != nil {
		return err
	}
	*v = Of(val)
	return nil
}
