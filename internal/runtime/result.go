// SPDX-License-Identifier: MPL-2.0

package runtime

// NewSuccessResult creates a Result with exit code 0 and the given output.
func NewSuccessResult(stdout, stderr string) *Result {
	return &Result{Stdout: stdout, Stderr: stderr}
}

// NewExitCodeResult creates a Result for a process that exited with code.
func NewExitCodeResult(code ExitCode, stdout, stderr string) *Result {
	return &Result{ExitCode: code, Stdout: stdout, Stderr: stderr}
}
