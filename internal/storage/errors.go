package storage

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by the typed errors below through errors.Is
var (
	ErrSerialization    = errors.New("storage: serialization failed")
	ErrDeserialization  = errors.New("storage: deserialization failed")
	ErrStoreUnavailable = errors.New("storage: store unavailable")
)

// SerializationError reports a value that could not be encoded for a key.
// The write is skipped, the in-memory value is kept.
type SerializationError struct {
	Key string
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("error serializing value for key %q: %v", e.Key, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

func (e *SerializationError) Is(target error) bool { return target == ErrSerialization }

// DeserializationError reports a persisted payload that could not be decoded
type DeserializationError struct {
	Key     string
	Payload string
	Err     error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("error parsing stored value for key %q: %v", e.Key, e.Err)
}

func (e *DeserializationError) Unwrap() error { return e.Err }

func (e *DeserializationError) Is(target error) bool { return target == ErrDeserialization }

// StoreUnavailableError reports a backend read or write that failed
type StoreUnavailableError struct {
	Key string
	Op  string // "read" or "write"
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("error during %s of key %q: %v", e.Op, e.Key, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error { return e.Err }

func (e *StoreUnavailableError) Is(target error) bool { return target == ErrStoreUnavailable }
