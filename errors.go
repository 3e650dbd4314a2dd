package endfkit

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for nil or closed containers and malformed input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIndexOutOfRange is returned when an index is past the used length.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrAllocation is returned when create or growth cannot obtain memory.
	ErrAllocation = errors.New("allocation failed")

	// ErrOutOfRange is returned when a query lies outside a sorted table's domain.
	ErrOutOfRange = errors.New("value out of range")

	// ErrKeyNotFound is returned when a map key is absent.
	ErrKeyNotFound = errors.New("key not found")

	// ErrKeyExists is returned when inserting a key that is already present.
	ErrKeyExists = errors.New("key already exists")
)

// IndexError reports an index outside [0, Len).
//
// It matches ErrIndexOutOfRange via errors.Is.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range (len %d)", e.Index, e.Len)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }

// RangeError reports a query value outside the closed interval [Min, Max].
//
// It matches ErrOutOfRange via errors.Is.
type RangeError struct {
	Value float32
	Min   float32
	Max   float32
}

func (e *RangeError) Error() string {
	if e.Value < e.Min {
		return fmt.Sprintf("value %g below lower bound %g", e.Value, e.Min)
	}
	return fmt.Sprintf("value %g above upper bound %g", e.Value, e.Max)
}

func (e *RangeError) Unwrap() error { return ErrOutOfRange }

// KeyError reports a map key that is missing or already present.
type KeyError struct {
	Key   string
	cause error
}

// NewKeyError wraps cause (ErrKeyNotFound or ErrKeyExists) with the offending key.
func NewKeyError(key string, cause error) *KeyError {
	return &KeyError{Key: key, cause: cause}
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("%v: %q", e.cause, e.Key)
}

func (e *KeyError) Unwrap() error { return e.cause }

// AllocationError reports a reservation that could not be satisfied.
//
// It matches ErrAllocation via errors.Is. The underlying budget error (if any)
// is also reachable through errors.Is / errors.As.
type AllocationError struct {
	Requested int64
	cause     error
}

// NewAllocationError wraps the cause of a failed reservation of requested bytes.
func NewAllocationError(requested int64, cause error) *AllocationError {
	return &AllocationError{Requested: requested, cause: cause}
}

func (e *AllocationError) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("allocation failed: %d bytes", e.Requested)
	}
	return fmt.Sprintf("allocation failed: %d bytes: %v", e.Requested, e.cause)
}

func (e *AllocationError) Unwrap() []error {
	if e.cause == nil {
		return []error{ErrAllocation}
	}
	return []error{ErrAllocation, e.cause}
}
