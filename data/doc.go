// Package data defines the primitive value model shared by the object and
// storage layers: object identities, the closed set of column data types, and
// the Value union carried in rows.
//
// Value is a sealed interface - only String, Bytes, Int64, Float64, and Bool
// implement it. Extracting the wrong kind from a Value is a contract violation
// between a type's declared schema and its row encoding, and panics rather
// than returning an error.
package data
