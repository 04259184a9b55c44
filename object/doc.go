// Package object defines the contract a mapped type provides to the
// transaction engine: row (de)serialization plus a static Schema describing
// its table and column layout.
//
// Object implementations are mechanical, one-to-one field-to-column mappings
// and are normally produced by code generation from a type's field
// declarations. The engine only ever sees the interface, which keeps
// heterogeneous cached objects behind a single map while typed handles
// recover the concrete type with a checked assertion.
package object
