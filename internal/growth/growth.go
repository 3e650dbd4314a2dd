package growth

import (
	"fmt"
	"math"
)

const (
	// Threshold is the capacity (1 MiB elements) from which growth stops doubling.
	Threshold = 1024 * 1024
	// Increment is the fixed growth step (1 MiB elements) at or above Threshold.
	Increment = 1024 * 1024
	// MinStart is the base used when growing an empty container.
	MinStart = 16
)

// Next returns the capacity that follows c under the growth law.
func Next(c int) int {
	if c <= 0 {
		c = MinStart
	}
	if c < Threshold {
		return c * 2
	}
	return c + Increment
}

// Bytes returns n*elemSize as int64, failing on negative input or overflow.
func Bytes(n, elemSize int) (int64, error) {
	if n < 0 || elemSize < 0 {
		return 0, fmt.Errorf("negative size: %d elements of %d bytes", n, elemSize)
	}
	if elemSize != 0 && int64(n) > math.MaxInt64/int64(elemSize) {
		return 0, fmt.Errorf("integer overflow: %d elements of %d bytes", n, elemSize)
	}
	return int64(n) * int64(elemSize), nil
}
