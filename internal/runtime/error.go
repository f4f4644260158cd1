// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"
)

// ErrExecution is the sentinel error wrapped by ExecError.
var ErrExecution = errors.New("command execution failed")

// ExecError reports a process that could not be started or exited non-zero.
type ExecError struct {
	// Command is the command that failed.
	Command Command
	// Result holds the output captured before the failure. It is nil when
	// the process never started.
	Result *Result
	// Cause is the underlying start or wait error.
	Cause error
}

// ShortMessage is a one-line description of the failure, suitable for
// surfacing to users without dumping the captured output.
func (e *ExecError) ShortMessage() string {
	switch {
	case e.Result == nil:
		return fmt.Sprintf("command failed to start: %s: %v", e.Command, e.Cause)
	case errors.Is(e.Cause, errCanceled):
		return fmt.Sprintf("command was canceled: %s", e.Command)
	default:
		return fmt.Sprintf("command failed with exit code %d: %s", e.Result.ExitCode, e.Command)
	}
}

// ExitCode returns the exit code of the failed process, or 1 when the
// process never started.
func (e *ExecError) ExitCode() ExitCode {
	if e.Result == nil {
		return 1
	}
	return e.Result.ExitCode
}

// Error implements the error interface.
func (e *ExecError) Error() string {
	if e.Result != nil && e.Result.Stderr != "" {
		return e.ShortMessage() + "\n" + e.Result.Stderr
	}
	return e.ShortMessage()
}

// Unwrap returns both the sentinel and the underlying cause.
func (e *ExecError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrExecution}
	}
	return []error{ErrExecution, e.Cause}
}
