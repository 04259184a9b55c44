// Package stow maps typed Go objects onto rows in a SQLite database and
// gives them persistent identity through a transactional unit of work.
//
// A Transaction owns one storage transaction and an identity map: every
// object created or fetched within it is cached once per identity, with a
// per-entry state machine (Clean, Modified, Removed) tracking the single
// pending write the object needs at commit. Mutating through a handle marks
// the entry Modified; Commit flushes exactly one update or delete per
// non-Clean entry and then commits the backend transaction.
//
// Handles enforce exclusivity at runtime: at most one writer, or any number
// of readers, may borrow an entry at a time, and a removed entry can no
// longer be borrowed. Violations are programmer errors and panic.
//
// # Scope
//
//   - Single-row CRUD by identity only; no query language, no relationships.
//   - One thread of control per Transaction and its Handles; cross-transaction
//     concurrency is delegated to SQLite's own locking and surfaces as a
//     retryable lock-conflict error.
//   - Schema drift (a stored table missing a declared column, or holding a
//     value of the wrong type) surfaces as a typed diagnostic naming the
//     exact field, column, table, and type.
package stow
