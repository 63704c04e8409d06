package entity

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/stratumcms/stratum/pkg/kv"
)

// State is the serializable state of one entity instance. The storage key is
// the identity; EntityID reports the id a written state carries so the core
// can distinguish an initialized record from the initial value.
type State interface {
	EntityID() string
}

// RecordKey returns the primary record key for an entity kind and id
func RecordKey(kind, id string) string {
	return kind + ":" + id
}

// Record wraps one logical entity instance keyed by id
type Record[T State] struct {
	backend kv.Backend
	key     string
	initial T
}

// NewRecord creates a record handle for the entity of the given kind and id.
// initial is returned by Read when nothing has been written.
func NewRecord[T State](backend kv.Backend, kind, id string, initial T) *Record[T] {
	return &Record[T]{
		backend: backend,
		key:     RecordKey(kind, id),
		initial: initial,
	}
}

// Key returns the storage key the record lives under
func (r *Record[T]) Key() string {
	return r.key
}

// Read returns the stored state, or the initial value if absent. A missing
// key is never an error.
func (r *Record[T]) Read(ctx context.Context) (T, error) {
	data, err := r.backend.Get(ctx, r.key)
	if errors.Is(err, kv.ErrNotFound) {
		return r.initial, nil
	} else if err != nil {
		return r.initial, storageErr("get", r.key, err)
	}

	var state T
	if err := json.Unmarshal(data, &state); err != nil {
		return r.initial, storageErr("decode", r.key, err)
	}
	return state, nil
}

// Exists reports whether an id-bearing state has been written
func (r *Record[T]) Exists(ctx context.Context) (bool, error) {
	state, err := r.Read(ctx)
	if err != nil {
		return false, err
	}
	return state.EntityID() != "", nil
}

// Write replaces the stored state unconditionally
func (r *Record[T]) Write(ctx context.Context, state T) error {
	data, err := json.Marshal(state)
	if err != nil {
		return storageErr("encode", r.key, err)
	}
	if err := r.backend.Put(ctx, r.key, data); err != nil {
		return storageErr("put", r.key, err)
	}
	return nil
}

// Erase deletes the stored state and reports whether something was deleted
func (r *Record[T]) Erase(ctx context.Context) (bool, error) {
	deleted, err := r.backend.Delete(ctx, r.key)
	if err != nil {
		return false, storageErr("delete", r.key, err)
	}
	return deleted, nil
}

// Update applies fn to the current state (initial value if absent) and writes
// the result before returning it. Serialization of concurrent updates to the
// same key is the backend's contract, not enforced here.
func (r *Record[T]) Update(ctx context.Context, fn func(T) T) (T, error) {
	current, err := r.Read(ctx)
	if err != nil {
		return r.initial, err
	}
	next := fn(current)
	if err := r.Write(ctx, next); err != nil {
		return r.initial, err
	}
	return next, nil
}
