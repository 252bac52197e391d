package transfer

import (
	"context"
	"errors"
	"os"
	"os/exec"
)

// Runner executes the external transfer command and reports its exit status.
// Implementations can wrap os/exec or provide fakes for testing.
type Runner interface {
	// Run executes name with the given argument vector and returns the
	// process exit status. A non-zero exit is reported as a status, not an
	// error; a non-nil error means the process could not be started or
	// terminated without reporting a status.
	Run(ctx context.Context, name string, args []string) (int, error)
}

// ExecRunner runs the transfer command as a subprocess with inherited
// standard streams, so the tool's own progress output reaches the operator
// directly.
type ExecRunner struct{}

// Run implements Runner using exec.CommandContext.
func (ExecRunner) Run(ctx context.Context, name string, args []string) (int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) && ee.ExitCode() >= 0 {
		return ee.ExitCode(), nil
	}
	return 0, err
}
