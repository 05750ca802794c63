package script

import "errors"

var (
	// ErrStateClosed is returned when running on a closed state.
	ErrStateClosed = errors.New("script state is closed")

	// ErrExecutionTimeout is returned when a run exceeds its timeout.
	ErrExecutionTimeout = errors.New("script execution timeout")

	// ErrInstructionLimit is returned when a run exhausts its call budget.
	ErrInstructionLimit = errors.New("script instruction limit exceeded")
)
