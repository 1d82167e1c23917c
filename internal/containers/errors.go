package containers

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned for indexed access beyond the logical size.
	ErrOutOfRange = errors.New("containers: index out of range")

	// ErrEmpty is returned when reading or popping from an empty container.
	ErrEmpty = errors.New("containers: empty container")

	// ErrAllocation is returned when backing storage could not be grown.
	ErrAllocation = errors.New("containers: allocation failure")

	// ErrInvalidConfig is returned for unusable construction parameters.
	ErrInvalidConfig = errors.New("containers: invalid configuration")

	// ErrIteratorState is returned by Iterator.Remove when there is no current element.
	ErrIteratorState = errors.New("containers: remove called before next")
)

// MaxCapacity bounds backing storage growth. Requests past it fail with ErrAllocation.
const MaxCapacity = 1 << 30

// DefaultCapacity is used when a non-positive initial capacity is requested.
const DefaultCapacity = 32

// Error carries the failing operation and index alongside one of the sentinel errors.
// Index is -1 when the operation is not indexed.
type Error struct {
	Op    string
	Index int
	Err   error
}

func (e *Error) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s(%d): %v", e.Op, e.Index, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func opError(op string, index int, err error) error {
	return &Error{Op: op, Index: index, Err: err}
}

// allocate makes a backing slice of n elements, converting runtime
// allocation panics into ErrAllocation.
func allocate[E any](op string, n int) (buf []E, err error) {
	if n < 0 || n > MaxCapacity {
		return nil, opError(op, n, ErrAllocation)
	}
	defer func() {
		if r := recover(); r != nil {
			buf = nil
			err = opError(op, n, fmt.Errorf("%w: %v", ErrAllocation, r))
		}
	}()
	return make([]E, n), nil
}

// nextPow2 returns the smallest power of two >= n (1 for n <= 1).
func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
