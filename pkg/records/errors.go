package records

import (
	"errors"
	"fmt"
)

var (
	// ErrCorruptData indicates a stored collection is present but not a JSON array.
	ErrCorruptData = errors.New("corrupt collection data")
	// ErrStorageRead indicates the key-value store failed to return a value.
	ErrStorageRead = errors.New("storage read failed")
	// ErrStorageWrite indicates the key-value store failed to persist or remove a value.
	ErrStorageWrite = errors.New("storage write failed")
	// ErrNotFound indicates no record with the requested id exists.
	ErrNotFound = errors.New("record not found")
	// ErrStatusUnsupported indicates the entity kind has no status field.
	ErrStatusUnsupported = errors.New("record kind has no status")
)

// StoreError is the failure result of every collection operation.
// Kind is one of the sentinels above; Err is the underlying cause, if any.
type StoreError struct {
	Op   string
	Key  string
	Kind error
	Err  error
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Key, e.Kind)
	}
	return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Key, e.Kind, e.Err)
}

func (e *StoreError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// KindOf returns the failure kind of err, or nil when err is not a StoreError.
func KindOf(err error) error {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Kind
	}
	return nil
}
