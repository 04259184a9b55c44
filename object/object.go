package object

import "github.com/roach88/stow/data"

// Object is the capability a mapped type must provide. It is implemented on
// the pointer type (e.g. *User) so Load can populate the receiver in place.
//
// Schema is pure and repeatable: it describes compile-time-fixed metadata and
// must not depend on instance state, so the engine may call it on a zero
// value.
type Object interface {
	// Schema describes the type's table and column layout.
	Schema() Schema

	// Row encodes the object as one Value per field, in declared order.
	Row() data.Row

	// Load is the inverse of Row: it populates the object from a row in the
	// same declared order. A row whose values disagree with the declared
	// column types is a schema-contract violation and panics.
	Load(row data.Row)
}
