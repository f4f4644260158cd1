// SPDX-License-Identifier: MPL-2.0

// Package runtime runs external programs on the host.
//
// Executor is the narrow process contract the compiler layer depends on:
// a Command (program, arguments and stdio routing) goes in, a Result with
// the captured streams and exit code comes out. A non-zero exit or a failure
// to start is reported as an *ExecError that still carries whatever output
// was captured.
//
// Each of stdout and stderr is either piped live to the parent process or
// captured into the Result, never both. Stdin is either closed or connected
// to the parent's stdin for interactive programs.
package runtime
