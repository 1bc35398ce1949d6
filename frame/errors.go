package frame

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidGeometry   = errors.New("width and height must be positive")
	ErrInvalidAudio      = errors.New("sample rate must be positive and sample count non-negative")
	ErrAllocation        = errors.New("unable to allocate the frame")
	ErrAlreadyReleased   = errors.New("the frame is already released")
	ErrShapeUndetermined = errors.New("the frame is neither video nor audio")
)

// AllocationError is returned when a frame cannot be pre-allocated.
// It matches ErrAllocation with errors.Is.
type AllocationError struct {
	Request string
	Err     error
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("unable to allocate %s: %v", e.Request, e.Err)
}

func (e *AllocationError) Unwrap() error {
	return e.Err
}

func (e *AllocationError) Is(target error) bool {
	return target == ErrAllocation
}
