package chain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrStalled is returned by Run when the context ends before every
	// step has advanced.
	ErrStalled = errors.New("run stalled")

	// ErrNextCalledTwice is returned by a Next that was already called.
	ErrNextCalledTwice = errors.New("next called more than once")

	// ErrRunSettled is returned by Next once the run has completed or failed.
	ErrRunSettled = errors.New("run already settled")

	// ErrStepPanicked wraps a panic recovered from a step.
	ErrStepPanicked = errors.New("step panicked")
)

// StepError reports the step that failed a run.
type StepError struct {
	Step  string
	Index int
	Err   error

	// run is the id of the run that produced the error.
	run uuid.UUID
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %q (#%d): %v", e.Step, e.Index, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
