package resampler

import (
	"errors"
	"fmt"
)

var ErrPrecondition = errors.New("precondition failed")

// PreconditionError describes an argument OutputByteSize cannot size.
// It matches ErrPrecondition with errors.Is.
type PreconditionError struct {
	Argument string
	Value    any
	Reason   string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s=%v: %s", ErrPrecondition, e.Argument, e.Value, e.Reason)
}

func (e *PreconditionError) Is(target error) bool {
	return target == ErrPrecondition
}
