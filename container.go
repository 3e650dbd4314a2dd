package endfkit

import "errors"

// Sized is implemented by every container.
type Sized interface {
	// Len returns the number of live elements (entries for maps).
	Len() int
	// Cap returns the allocated element count (bucket count for maps).
	Cap() int
}

// Disposable is implemented by every container.
//
// Close releases the backing storage and returns any budget reservation.
// A closed container rejects further operations with ErrInvalidArgument.
// Closing twice is a no-op.
type Disposable interface {
	Close() error
}

// Container is the common surface of the container family.
type Container interface {
	Sized
	Disposable
}

// CloseAll closes every non-nil container and joins the errors.
func CloseAll(cs ...Disposable) error {
	var errs []error
	for _, c := range cs {
		if c == nil {
			continue
		}
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
