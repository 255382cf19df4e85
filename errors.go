package freelist

import (
	"errors"

	"github.com/daniel-jones-dev/freelist/internal/layout"
)

var (
	// ErrExhausted indicates the pool has no free slot. The condition is
	// recoverable: freeing any element makes the next allocation succeed.
	ErrExhausted = errors.New("freelist: pool exhausted")

	// ErrReferenceType indicates the element type contains Go pointers,
	// which the pool's untyped storage cannot hold safely.
	ErrReferenceType = errors.New("freelist: element type must not contain pointers")

	// ErrZeroSizeType indicates the element type has no storage footprint.
	ErrZeroSizeType = layout.ErrZeroSizeType

	// ErrSizeNotMultiple indicates the pool size does not tile evenly into
	// slots; the error text names the required multiple.
	ErrSizeNotMultiple = layout.ErrSizeNotMultiple

	// ErrTooSmall indicates the pool size leaves no room for elements
	// beyond the control word.
	ErrTooSmall = layout.ErrTooSmall

	// ErrTooLarge indicates the pool would contain more slots than a
	// packed control-word field can address.
	ErrTooLarge = layout.ErrTooLarge
)
