// Package storage defines the boundary between the transaction engine and
// the relational backend: a narrow eight-operation transaction contract plus
// the typed error taxonomy the engine relies on.
//
// The SQLite implementation translates two backend failure signals instead of
// surfacing them raw:
//
//   - "database is locked" / busy becomes ErrLockConflict, which the caller
//     may retry;
//   - "no such column" / "has no column named" is resolved against the
//     schema's declared columns to produce a MissingColumnError naming the
//     exact field, column, table, and type whose stored shape has drifted.
//
// Scanning a stored value whose backend type disagrees with the declared
// column type produces an UnexpectedTypeError carrying both sides.
package storage
