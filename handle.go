package stow

import (
	"fmt"

	"github.com/roach88/stow/data"
)

// ObjectState is the pending-write state of one cached entry.
type ObjectState int

const (
	// StateClean means the cached object matches storage; commit skips it.
	StateClean ObjectState = iota

	// StateModified means the object has a pending update.
	StateModified

	// StateRemoved means the object has a pending delete. Removed is
	// terminal within the transaction.
	StateRemoved
)

// String implements fmt.Stringer.
func (s ObjectState) String() string {
	switch s {
	case StateClean:
		return "clean"
	case StateModified:
		return "modified"
	case StateRemoved:
		return "removed"
	default:
		return fmt.Sprintf("ObjectState(%d)", int(s))
	}
}

// Handle is the typed façade over one identity-map entry. Handles are cheap
// to copy; every copy aliases the same entry, and the entry's runtime borrow
// accounting keeps the aliases honest: at most one writer, or any number of
// readers, may be outstanding at a time.
//
// Borrow-exclusivity violations and use-after-delete are programmer errors
// and panic rather than returning an error.
type Handle[T any] struct {
	id data.ObjectID
	e  *entry
}

// ID returns the object's identity. Side-effect free.
func (h Handle[T]) ID() data.ObjectID {
	return h.id
}

// State returns the entry's current state. Side-effect free.
func (h Handle[T]) State() ObjectState {
	return h.e.state
}

// Borrow acquires shared read-only access. Panics if the object was removed
// or a writer is outstanding. The returned Ref must be released.
func (h Handle[T]) Borrow() *Ref[T] {
	if h.e.state == StateRemoved {
		panic(fmt.Sprintf("stow: borrow of removed object id=%s", h.id))
	}
	if h.e.writing {
		panic(fmt.Sprintf("stow: object id=%s is mutably borrowed", h.id))
	}
	v := h.typed()
	h.e.readers++
	return &Ref[T]{e: h.e, v: v}
}

// BorrowMut acquires exclusive writable access and marks the entry Modified
// (idempotent if it already is). Panics if the object was removed or any
// borrow is outstanding. The returned MutRef must be released.
func (h Handle[T]) BorrowMut() *MutRef[T] {
	if h.e.state == StateRemoved {
		panic(fmt.Sprintf("stow: borrow of removed object id=%s", h.id))
	}
	if h.e.borrowed() {
		panic(fmt.Sprintf("stow: object id=%s is already borrowed", h.id))
	}
	v := h.typed()
	h.e.state = StateModified
	h.e.writing = true
	return &MutRef[T]{e: h.e, v: v}
}

// Delete marks the object Removed; the delete is flushed at commit. Panics
// if any borrow is outstanding or the object was already removed.
func (h Handle[T]) Delete() {
	if h.e.borrowed() {
		panic(fmt.Sprintf("stow: cannot delete borrowed object id=%s", h.id))
	}
	if h.e.state == StateRemoved {
		panic(fmt.Sprintf("stow: object id=%s already removed", h.id))
	}
	h.e.state = StateRemoved
}

// typed recovers the concrete payload behind the type-erased entry. A handle
// whose type parameter disagrees with the cached instance is a programmer
// error.
func (h Handle[T]) typed() *T {
	v, ok := any(h.e.obj).(*T)
	if !ok {
		panic(fmt.Sprintf("stow: object id=%s holds %T, requested as %T", h.id, h.e.obj, v))
	}
	return v
}

// Ref is a shared, read-only borrow of a cached object.
type Ref[T any] struct {
	e        *entry
	v        *T
	released bool
}

// Value returns the borrowed object. The caller must not mutate it; use
// BorrowMut for writes so the entry is marked Modified.
func (r *Ref[T]) Value() *T {
	if r.released {
		panic("stow: use of released borrow")
	}
	return r.v
}

// Release returns the borrow. Panics if released twice.
func (r *Ref[T]) Release() {
	if r.released {
		panic("stow: borrow released twice")
	}
	r.released = true
	r.e.readers--
}

// MutRef is an exclusive, writable borrow of a cached object.
type MutRef[T any] struct {
	e        *entry
	v        *T
	released bool
}

// Value returns the borrowed object for reading and writing.
func (r *MutRef[T]) Value() *T {
	if r.released {
		panic("stow: use of released borrow")
	}
	return r.v
}

// Release returns the borrow. Panics if released twice.
func (r *MutRef[T]) Release() {
	if r.released {
		panic("stow: borrow released twice")
	}
	r.released = true
	r.e.writing = false
}
