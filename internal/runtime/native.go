// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/pursctl/pursctl/pkg/platform"
)

var errCanceled = errors.New("canceled")

// NativeExecutor runs commands directly on the host.
type NativeExecutor struct {
	// Stdout receives piped standard output. Defaults to os.Stdout.
	Stdout io.Writer
	// Stderr receives piped standard error. Defaults to os.Stderr.
	Stderr io.Writer
	// Stdin is connected to commands that request StdinParent. Defaults to os.Stdin.
	Stdin io.Reader
	// Platform decides whether commands must escape a sandbox to reach the host.
	Platform platform.HostPlatform
	// Logger receives debug traces; nil means slog.Default().
	Logger *slog.Logger
}

// NewNativeExecutor creates an executor wired to the process's own stdio.
func NewNativeExecutor(p platform.HostPlatform) *NativeExecutor {
	return &NativeExecutor{
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Stdin:    os.Stdin,
		Platform: p,
	}
}

// Execute runs cmd and waits for it to finish.
func (e *NativeExecutor) Execute(ctx context.Context, cmd Command) (*Result, error) {
	name, args := e.resolve(cmd)
	c := exec.CommandContext(ctx, name, args...)
	c.Dir = cmd.Dir

	out, captured := newExecuteOutput(cmd, e.parentStdout(), e.parentStderr())
	c.Stdout = out.stdout
	c.Stderr = out.stderr
	if cmd.Stdin == StdinParent {
		c.Stdin = e.parentStdin()
	}

	e.logger().Debug("running command", "command", cmd.String(), "stdin", cmd.Stdin.String())

	if err := c.Run(); err != nil {
		return e.failure(ctx, cmd, err, captured)
	}
	return captured.result(0), nil
}

// resolve prepends the sandbox spawn prefix, if any.
func (e *NativeExecutor) resolve(cmd Command) (string, []string) {
	spawn, spawnArgs := e.Platform.SpawnPrefix()
	if spawn == "" {
		return cmd.Name, cmd.Args
	}
	args := make([]string, 0, len(spawnArgs)+1+len(cmd.Args))
	args = append(args, spawnArgs...)
	args = append(args, cmd.Name)
	args = append(args, cmd.Args...)
	return spawn, args
}

func (e *NativeExecutor) failure(ctx context.Context, cmd Command, err error, captured *capturedOutput) (*Result, error) {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		e.logger().Debug("command failed to start", "command", cmd.String(), "error", err)
		return nil, &ExecError{Command: cmd, Cause: err}
	}

	code := ExitCode(exitErr.ExitCode())
	if code.Validate() != nil {
		// Killed by a signal; report a generic failure status.
		code = 1
	}
	result := captured.result(code)

	cause := error(exitErr)
	if ctxErr := ctx.Err(); ctxErr != nil {
		cause = fmt.Errorf("%w: %w", errCanceled, ctxErr)
	}
	e.logger().Debug("command exited with failure", "command", cmd.String(), "exit_code", code)
	return result, &ExecError{Command: cmd, Result: result, Cause: cause}
}

func (e *NativeExecutor) parentStdout() io.Writer {
	if e.Stdout != nil {
		return e.Stdout
	}
	return os.Stdout
}

func (e *NativeExecutor) parentStderr() io.Writer {
	if e.Stderr != nil {
		return e.Stderr
	}
	return os.Stderr
}

func (e *NativeExecutor) parentStdin() io.Reader {
	if e.Stdin != nil {
		return e.Stdin
	}
	return os.Stdin
}

func (e *NativeExecutor) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}
