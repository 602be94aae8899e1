// Package records is the redis-backed password-record store.
//
// Each user has at most one active password record and an append-only
// history of superseded records. A record binds a scheme version and
// encoded hash to a uuid, with a lineage back-reference to the record it
// replaced when it was produced by a transparent upgrade. Old records are
// never mutated; an upgrade writes a new record and atomically swaps the
// active pointer.
//
// # Architecture boundaries
//
// The store persists credentials produced elsewhere. It never sees raw
// passwords, never hashes, and never decides whether a credential is
// valid.
//
// # What this package must NOT do
//
//   - Compare or verify hashes.
//   - Delete history on its own; pruning is the Cleaner's job and is
//     bounded by an explicit retention depth.
//   - Retry concurrent-swap conflicts; the caller re-reads and decides.
package records
