package builder

import (
	"errors"
	"fmt"
)

// Errors returned by builder operations.
var (
	// ErrOutOfRange indicates an index or length outside the live region.
	ErrOutOfRange = errors.New("index out of range")

	// ErrCapacityOverflow indicates a size beyond the builder's maximum capacity.
	ErrCapacityOverflow = errors.New("capacity overflow")

	// ErrInvalidArgument indicates a count, limit or pattern the operation cannot use.
	ErrInvalidArgument = errors.New("invalid argument")
)

func indexError(index, size int) error {
	return fmt.Errorf("%w: index %d, length %d", ErrOutOfRange, index, size)
}

func rangeError(index, length, size int) error {
	return fmt.Errorf("%w: range [%d, %d+%d) over length %d", ErrOutOfRange, index, index, length, size)
}

func overflowError(size, limit int) error {
	return fmt.Errorf("%w: need %d elements, limit %d", ErrCapacityOverflow, size, limit)
}
