// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that fail the test on
// error, reducing boilerplate.
//
// Helpers cover environment variables (MustSetenv, MustUnsetenv, SetHomeDir),
// the working directory (MustChdir) and files (MustWriteFile, MustReadFile).
// Helpers that mutate process state must not be used from parallel tests.
package testutil
