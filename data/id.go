package data

import "strconv"

// ObjectID is the stable integer identity assigned to a persisted object by
// the storage layer on insert. It is the cache key inside a transaction and
// the WHERE-clause key for update, select, and delete.
type ObjectID int64

// Int64 returns the identity as a plain int64 for binding into SQL.
func (id ObjectID) Int64() int64 {
	return int64(id)
}

// String implements fmt.Stringer.
func (id ObjectID) String() string {
	return strconv.FormatInt(int64(id), 10)
}
