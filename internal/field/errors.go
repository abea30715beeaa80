package field

import "errors"

var (
	// ErrAllocation indicates a display buffer could not be created. There is
	// no way to continue without one.
	ErrAllocation = errors.New("field: grid allocation failed")

	// ErrDegenerateViewport indicates non-positive terminal dimensions.
	ErrDegenerateViewport = errors.New("field: degenerate viewport")
)
