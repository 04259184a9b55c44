package storage

import (
	"github.com/roach88/stow/data"
	"github.com/roach88/stow/object"
)

// Tx is the storage-transaction contract the engine consumes. One Tx wraps
// one live backend transaction; all operations are synchronous and fail with
// a typed error on backend rejection.
//
// Commit and Rollback release the underlying transaction; exactly one of them
// is called, exactly once, over a Tx's lifetime.
type Tx interface {
	// TableExists reports whether the named table exists.
	TableExists(table string) (bool, error)

	// CreateTable creates the schema's table, including the identity column.
	CreateTable(schema object.Schema) error

	// InsertRow inserts one row and returns the backend-assigned identity.
	InsertRow(schema object.Schema, row data.Row) (data.ObjectID, error)

	// UpdateRow overwrites the row with the given identity.
	UpdateRow(id data.ObjectID, schema object.Schema, row data.Row) error

	// SelectRow materializes the row with the given identity. Fails with a
	// NotFoundError if no row matches.
	SelectRow(id data.ObjectID, schema object.Schema) (data.Row, error)

	// DeleteRow removes the row with the given identity.
	DeleteRow(id data.ObjectID, schema object.Schema) error

	Commit() error
	Rollback() error
}
