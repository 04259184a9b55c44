package data

import "fmt"

// Value is a sealed interface over the five primitive kinds a column can
// hold. Only String, Bytes, Int64, Float64, and Bool implement it.
//
// Values are treated as plain values by the rest of the system: a Row owns
// its Values and never aliases them with another Row.
type Value interface {
	// Kind reports which member of the union this value is.
	Kind() DataType

	value() // sealed
}

// String is a text value.
type String string

func (String) value() {}

// Kind implements Value.
func (String) Kind() DataType { return TypeString }

// Bytes is a binary value.
type Bytes []byte

func (Bytes) value() {}

// Kind implements Value.
func (Bytes) Kind() DataType { return TypeBytes }

// Int64 is a 64-bit integer value.
type Int64 int64

func (Int64) value() {}

// Kind implements Value.
func (Int64) Kind() DataType { return TypeInt64 }

// Float64 is a 64-bit float value.
type Float64 float64

func (Float64) value() {}

// Kind implements Value.
func (Float64) Kind() DataType { return TypeFloat64 }

// Bool is a boolean value.
type Bool bool

func (Bool) value() {}

// Kind implements Value.
func (Bool) Kind() DataType { return TypeBool }

// Row is an ordered sequence of Values, one per column in schema order.
type Row []Value

// AsString extracts a text value. Panics if v holds a different kind.
func AsString(v Value) string {
	s, ok := v.(String)
	if !ok {
		panic(wrongKind(v, TypeString))
	}
	return string(s)
}

// AsBytes extracts a binary value. Panics if v holds a different kind.
func AsBytes(v Value) []byte {
	b, ok := v.(Bytes)
	if !ok {
		panic(wrongKind(v, TypeBytes))
	}
	return []byte(b)
}

// AsInt64 extracts an integer value. Panics if v holds a different kind.
func AsInt64(v Value) int64 {
	n, ok := v.(Int64)
	if !ok {
		panic(wrongKind(v, TypeInt64))
	}
	return int64(n)
}

// AsFloat64 extracts a float value. Panics if v holds a different kind.
func AsFloat64(v Value) float64 {
	n, ok := v.(Float64)
	if !ok {
		panic(wrongKind(v, TypeFloat64))
	}
	return float64(n)
}

// AsBool extracts a boolean value. Panics if v holds a different kind.
func AsBool(v Value) bool {
	b, ok := v.(Bool)
	if !ok {
		panic(wrongKind(v, TypeBool))
	}
	return bool(b)
}

func wrongKind(v Value, want DataType) string {
	return fmt.Sprintf("data: value holds %s, extracted as %s", v.Kind(), want)
}
