package entity

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested record has no resolvable state
var ErrNotFound = errors.New("record not found")

// ValidationError reports a caller-supplied entity missing required identity
// fields. It is raised before any write occurs.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// StorageError wraps an underlying backend I/O failure. The core has no
// retry policy; the caller decides whether to retry the logical operation.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s on %q failed: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op, key string, err error) error {
	return &StorageError{Op: op, Key: key, Err: err}
}
