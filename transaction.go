package stow

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/stow/data"
	"github.com/roach88/stow/object"
	"github.com/roach88/stow/storage"
)

// ErrTxClosed is returned when a transaction is used after Commit or
// Rollback has released it.
var ErrTxClosed = errors.New("stow: transaction already closed")

// Transaction is the identity map and unit of work over one storage
// transaction. Every object created or fetched within it is cached once per
// identity; Commit flushes exactly one write per non-Clean entry.
//
// A Transaction and its Handles are confined to one thread of control.
type Transaction struct {
	st      storage.Tx
	entries map[data.ObjectID]*entry
	token   string
	closed  bool
}

// entry is one identity-map slot: the type-erased payload, its pending-write
// state, and the borrow accounting shared by every Handle clone. The state
// sits beside the payload so it can be inspected without borrowing it.
type entry struct {
	obj     object.Object
	state   ObjectState
	readers int
	writing bool
}

// borrowed reports whether any shared or exclusive borrow is outstanding.
func (e *entry) borrowed() bool {
	return e.readers > 0 || e.writing
}

// objectPtr constrains a mapped type to its pointer form, which carries the
// Object implementation.
type objectPtr[T any] interface {
	*T
	object.Object
}

// Create inserts the object into storage, registers it in the transaction's
// identity map, and returns a typed handle to the cached instance.
//
// The fresh entry is Clean: the row already matches storage immediately after
// the insert, so only subsequent mutation marks it Modified.
func Create[T any, P objectPtr[T]](tx *Transaction, obj P) (Handle[T], error) {
	if tx.closed {
		return Handle[T]{}, ErrTxClosed
	}
	schema := obj.Schema()
	if err := tx.ensureTable(schema); err != nil {
		return Handle[T]{}, fmt.Errorf("create %s: %w", schema.TypeName, err)
	}
	id, err := tx.st.InsertRow(schema, obj.Row())
	if err != nil {
		return Handle[T]{}, fmt.Errorf("create %s: %w", schema.TypeName, err)
	}

	e := &entry{obj: obj, state: StateClean}
	tx.entries[id] = e
	slog.Debug("object created", "tx", tx.token, "type", schema.TypeName, "id", id)
	return Handle[T]{id: id, e: e}, nil
}

// Get returns a typed handle to the object with the given identity.
//
// A cached identity resolves to the existing entry, so repeated gets within
// one transaction alias a single instance. An identity removed earlier in
// this transaction fails with a NotFoundError rather than resurrecting the
// object. On a cache miss the row is materialized from storage and cached
// Clean.
func Get[T any, P objectPtr[T]](tx *Transaction, id data.ObjectID) (Handle[T], error) {
	if tx.closed {
		return Handle[T]{}, ErrTxClosed
	}

	if e, ok := tx.entries[id]; ok {
		if e.state == StateRemoved {
			var zero T
			return Handle[T]{}, &storage.NotFoundError{ID: id, TypeName: P(&zero).Schema().TypeName}
		}
		return Handle[T]{id: id, e: e}, nil
	}

	var obj T
	p := P(&obj)
	schema := p.Schema()
	if err := tx.ensureTable(schema); err != nil {
		return Handle[T]{}, fmt.Errorf("get %s id=%s: %w", schema.TypeName, id, err)
	}
	row, err := tx.st.SelectRow(id, schema)
	if err != nil {
		return Handle[T]{}, fmt.Errorf("get %s id=%s: %w", schema.TypeName, id, err)
	}
	p.Load(row)

	e := &entry{obj: p, state: StateClean}
	tx.entries[id] = e
	slog.Debug("object loaded", "tx", tx.token, "type", schema.TypeName, "id", id)
	return Handle[T]{id: id, e: e}, nil
}

// Commit flushes every pending write and commits the storage transaction.
//
// Entries are flushed in arbitrary order; each row write is independent, so
// no cross-object ordering exists. A Modified entry produces exactly one
// update from its current row encoding, a Removed entry exactly one delete,
// a Clean entry nothing. The first write failure aborts the commit and
// surfaces that error; the caller retries the whole transaction.
//
// An object created and then deleted in the same transaction incurs its
// insert followed by a delete here. The pair is deliberately not collapsed
// into a no-op.
func (tx *Transaction) Commit() error {
	if tx.closed {
		return ErrTxClosed
	}

	var updates, deletes int
	for id, e := range tx.entries {
		switch e.state {
		case StateModified:
			schema := e.obj.Schema()
			if err := tx.st.UpdateRow(id, schema, e.obj.Row()); err != nil {
				return fmt.Errorf("commit %s id=%s: %w", schema.TypeName, id, err)
			}
			updates++
		case StateRemoved:
			schema := e.obj.Schema()
			if err := tx.st.DeleteRow(id, schema); err != nil {
				return fmt.Errorf("commit %s id=%s: %w", schema.TypeName, id, err)
			}
			deletes++
		case StateClean:
		}
	}

	if err := tx.st.Commit(); err != nil {
		return err
	}
	tx.close()
	slog.Debug("transaction committed", "tx", tx.token, "updates", updates, "deletes", deletes)
	return nil
}

// Rollback discards every pending write and releases the storage
// transaction. The identity map is discarded unconditionally.
func (tx *Transaction) Rollback() error {
	if tx.closed {
		return ErrTxClosed
	}
	err := tx.st.Rollback()
	tx.close()
	slog.Debug("transaction rolled back", "tx", tx.token)
	return err
}

// ensureTable lazily creates the schema's table on first access.
func (tx *Transaction) ensureTable(schema object.Schema) error {
	exists, err := tx.st.TableExists(schema.TableName)
	if err != nil {
		return err
	}
	if !exists {
		return tx.st.CreateTable(schema)
	}
	return nil
}

// close drops the identity map; the transaction is spent either way.
func (tx *Transaction) close() {
	tx.closed = true
	tx.entries = nil
}
