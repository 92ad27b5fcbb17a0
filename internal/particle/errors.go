package particle

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParams indicates a configuration rejected at initialization.
	ErrInvalidParams = errors.New("particle: invalid parameters")

	// ErrNonFinite indicates a tick produced NaN or Inf.
	ErrNonFinite = errors.New("particle: non-finite value produced")

	// ErrFaulted is returned by an engine after a failed tick.
	ErrFaulted = errors.New("particle: engine faulted by an earlier non-finite tick")

	ErrIndexOutOfRange = errors.New("particle: index out of range")
)

// StepError carries the tick and particle index at which a step failed.
type StepError struct {
	Tick    uint64
	Index   int
	Field   string
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("tick %d particle %d (%s): %v", e.Tick, e.Index, e.Field, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
