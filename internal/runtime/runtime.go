// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"strings"
)

// Stdin routing modes.
const (
	// StdinNone leaves the child's stdin unconnected (reads see EOF).
	StdinNone StdinMode = iota
	// StdinParent connects the child's stdin to the parent's stdin.
	StdinParent
)

type (
	// StdinMode selects where a child process reads its standard input from.
	StdinMode int

	// Command describes one external process invocation.
	Command struct {
		// Name is the program to run, resolved through PATH when not absolute.
		Name string
		// Args are passed to the program verbatim.
		Args []string
		// Dir is the working directory; empty means the current directory.
		Dir string
		// PipeStdout forwards stdout live to the parent instead of capturing it.
		PipeStdout bool
		// PipeStderr forwards stderr live to the parent instead of capturing it.
		PipeStderr bool
		// Stdin selects the stdin routing.
		Stdin StdinMode
	}

	// Result contains the outcome of a finished process.
	Result struct {
		// Stdout is the captured standard output (empty when piped).
		Stdout string
		// Stderr is the captured standard error (empty when piped).
		Stderr string
		// ExitCode is the exit status of the process.
		ExitCode ExitCode
	}

	// Executor runs commands. Implementations must return a non-nil Result
	// whenever the process was started, including when it exits non-zero.
	Executor interface {
		Execute(ctx context.Context, cmd Command) (*Result, error)
	}
)

// String renders the command line for logs and error messages.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// String returns "none" or "parent".
func (m StdinMode) String() string {
	if m == StdinParent {
		return "parent"
	}
	return "none"
}

// Success reports whether the process exited with status 0.
func (r *Result) Success() bool {
	return r != nil && r.ExitCode.IsSuccess()
}
