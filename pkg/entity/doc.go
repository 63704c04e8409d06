// Package entity implements the generic persistence primitives the CMS
// stores are composed from: a single-record store, an ordered id index, and
// their combination into a per-kind collection.
//
// # Primitives
//
// Record[T] wraps one entity instance under the key "{kind}:{id}". Reading an
// absent record yields the kind's initial value, never an error; a record
// "exists" once an id-bearing state has been written.
//
// IndexSet is an ordered, de-duplicated set of ids persisted as a JSON array
// under one key. Adds and removes are idempotent. Page returns up to limit
// ids after an opaque cursor; pagination over a stable index covers every id
// exactly once, and a concurrent remove may skip or re-show at most one
// neighboring element.
//
// CollectionStore[T] composes the two: Create writes the record before
// publishing the id to the index, Delete retracts the id before erasing the
// record, so an id visible in the index always resolves. EnsureSeed inserts
// default entities only when the index has never been populated.
//
// Operations touching multiple keys are not transactional; only the ordering
// discipline above is guaranteed. Backend failures surface as StorageError
// with no internal retries.
package entity
