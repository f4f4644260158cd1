// SPDX-License-Identifier: MPL-2.0

package exectest

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/pursctl/pursctl/internal/runtime"
)

// ErrNotScripted is returned for commands with no scripted response.
var ErrNotScripted = errors.New("command not scripted")

type (
	// Response is the scripted outcome of one command line.
	Response struct {
		stdout   string
		stderr   string
		exitCode runtime.ExitCode
		startErr error
	}

	// ResponseOption customizes a Response.
	ResponseOption func(*Response)

	// Rule maps a command line (Command.String()) to a Response.
	Rule struct {
		line     string
		response Response
	}

	// Executor is a runtime.Executor that replays scripted responses and
	// records every command it receives. It is safe for concurrent use.
	Executor struct {
		mu    sync.Mutex
		rules map[string]Response
		calls []runtime.Command
	}
)

// Respond scripts the outcome of the command whose String() equals line.
func Respond(line string, opts ...ResponseOption) Rule {
	r := Rule{line: line}
	for _, opt := range opts {
		opt(&r.response)
	}
	return r
}

// Stdout sets the captured standard output.
func Stdout(s string) ResponseOption {
	return func(r *Response) { r.stdout = s }
}

// Stderr sets the captured standard error.
func Stderr(s string) ResponseOption {
	return func(r *Response) { r.stderr = s }
}

// ExitCode sets a non-zero exit status.
func ExitCode(code runtime.ExitCode) ResponseOption {
	return func(r *Response) { r.exitCode = code }
}

// StartFailure makes the command fail before a process exists, as when the
// program is not on PATH.
func StartFailure() ResponseOption {
	return func(r *Response) { r.startErr = errors.New("executable file not found in $PATH") }
}

// NewExecutor creates an Executor with the given rules. Later rules for the
// same command line replace earlier ones.
func NewExecutor(rules ...Rule) *Executor {
	e := &Executor{rules: make(map[string]Response, len(rules))}
	for _, rule := range rules {
		e.rules[rule.line] = rule.response
	}
	return e
}

// Execute implements runtime.Executor. It mirrors the native executor's
// contract: start failures return a nil Result and a *runtime.ExecError,
// non-zero exits return both the Result and a *runtime.ExecError.
func (e *Executor) Execute(ctx context.Context, cmd runtime.Command) (*runtime.Result, error) {
	e.mu.Lock()
	e.calls = append(e.calls, cmd)
	resp, ok := e.rules[cmd.String()]
	e.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, &runtime.ExecError{Command: cmd, Cause: err}
	}
	if !ok {
		return nil, &runtime.ExecError{Command: cmd, Cause: fmt.Errorf("%w: %s", ErrNotScripted, cmd)}
	}
	if resp.startErr != nil {
		return nil, &runtime.ExecError{Command: cmd, Cause: resp.startErr}
	}

	result := &runtime.Result{ExitCode: resp.exitCode}
	if !cmd.PipeStdout {
		result.Stdout = resp.stdout
	}
	if !cmd.PipeStderr {
		result.Stderr = resp.stderr
	}
	if !result.Success() {
		return result, &runtime.ExecError{Command: cmd, Result: result}
	}
	return result, nil
}

// Calls returns the commands executed so far, in order.
func (e *Executor) Calls() []runtime.Command {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]runtime.Command, len(e.calls))
	copy(out, e.calls)
	return out
}

// CallLines returns Command.String() of every executed command, in order.
func (e *Executor) CallLines() []string {
	calls := e.Calls()
	lines := make([]string, len(calls))
	for i, c := range calls {
		lines[i] = c.String()
	}
	return lines
}
