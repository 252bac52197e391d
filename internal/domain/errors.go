package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent error conditions in the treeship domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrRetriesExhausted is returned when every transfer attempt for a batch
	// ended in a transient failure.
	ErrRetriesExhausted = errors.New("treeship: transfer retries exhausted")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("treeship: invalid configuration")
)

// TransferError is a non-recoverable transfer failure. It carries the exit
// status reported by the external transfer tool so callers can surface it as
// the process exit code. Check with errors.As.
type TransferError struct {
	// ExitCode is the subprocess's exit status.
	ExitCode int
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("treeship: transfer failed with exit status %d", e.ExitCode)
}
