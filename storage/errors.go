package storage

import (
	"errors"
	"fmt"

	"github.com/roach88/stow/data"
)

// ErrLockConflict reports backend resource contention ("database is locked").
// The operation, or the whole transaction, may be retried by the caller.
var ErrLockConflict = errors.New("storage: resource is locked")

// NotFoundError reports that an identity has no live row - either the backend
// holds no such row, or the object was removed earlier in the same
// transaction.
type NotFoundError struct {
	// ID is the identity that failed to resolve.
	ID data.ObjectID

	// TypeName is the mapped type the lookup was performed for.
	TypeName string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("storage: %s with id=%s not found", e.TypeName, e.ID)
}

// MissingColumnError reports that a stored table lacks a column the type now
// declares. Recovering requires a schema migration outside this system's
// scope.
type MissingColumnError struct {
	TypeName   string
	FieldName  string
	TableName  string
	ColumnName string
}

// Error implements the error interface.
func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("storage: table %q has no column %q for field %s.%s",
		e.TableName, e.ColumnName, e.TypeName, e.FieldName)
}

// UnexpectedTypeError reports that a stored value's backend type disagrees
// with the column type the mapped type declares.
type UnexpectedTypeError struct {
	TypeName   string
	FieldName  string
	TableName  string
	ColumnName string

	// Expected is the declared column type.
	Expected data.DataType

	// Actual is the backend's description of what is actually stored.
	Actual string
}

// Error implements the error interface.
func (e *UnexpectedTypeError) Error() string {
	return fmt.Sprintf("storage: column %q of table %q holds %s, %s.%s declares %s",
		e.ColumnName, e.TableName, e.Actual, e.TypeName, e.FieldName, e.Expected)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsLockConflict reports whether err is (or wraps) ErrLockConflict.
func IsLockConflict(err error) bool {
	return errors.Is(err, ErrLockConflict)
}

// IsMissingColumn reports whether err is (or wraps) a MissingColumnError.
func IsMissingColumn(err error) bool {
	var mc *MissingColumnError
	return errors.As(err, &mc)
}

// IsUnexpectedType reports whether err is (or wraps) an UnexpectedTypeError.
func IsUnexpectedType(err error) bool {
	var ut *UnexpectedTypeError
	return errors.As(err, &ut)
}
