// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"bytes"
	"io"
)

type (
	// executeOutput holds the writers a child process is wired to.
	executeOutput struct {
		stdout io.Writer
		stderr io.Writer
	}

	// capturedOutput holds the buffers for streams that are not piped.
	capturedOutput struct {
		stdout bytes.Buffer
		stderr bytes.Buffer
	}
)

// newExecuteOutput routes each stream either to the parent writer or to a
// capture buffer, according to the command's pipe flags.
func newExecuteOutput(cmd Command, parentStdout, parentStderr io.Writer) (*executeOutput, *capturedOutput) {
	captured := &capturedOutput{}
	out := &executeOutput{
		stdout: &captured.stdout,
		stderr: &captured.stderr,
	}
	if cmd.PipeStdout {
		out.stdout = parentStdout
	}
	if cmd.PipeStderr {
		out.stderr = parentStderr
	}
	return out, captured
}

func (c *capturedOutput) result(code ExitCode) *Result {
	return &Result{
		Stdout:   c.stdout.String(),
		Stderr:   c.stderr.String(),
		ExitCode: code,
	}
}
