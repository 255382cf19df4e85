package layout

import "errors"

var (
	// ErrZeroSizeType indicates the element type has no storage footprint.
	ErrZeroSizeType = errors.New("layout: element type has zero size")

	// ErrSizeNotMultiple indicates the pool size does not tile evenly into
	// slots. The wrapping error names the required multiple.
	ErrSizeNotMultiple = errors.New("layout: size is not a multiple of the slot size")

	// ErrTooSmall indicates the pool cannot hold a single element beyond
	// the control word.
	ErrTooSmall = errors.New("layout: pool too small to contain elements")

	// ErrTooLarge indicates the slot count cannot be addressed by a
	// control-word field, so no supported atomic can carry the pool state.
	ErrTooLarge = errors.New("layout: pool exceeds addressable slot count")
)
