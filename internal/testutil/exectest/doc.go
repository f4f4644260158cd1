// SPDX-License-Identifier: MPL-2.0

// Package exectest provides a scripted runtime.Executor for tests that must
// not spawn real processes.
//
// This package is separate from testutil so that testutil stays free of
// internal/runtime imports.
//
// # Usage
//
//	exec := exectest.NewExecutor(
//	    exectest.Respond("purs.cmd --version", exectest.StartFailure()),
//	    exectest.Respond("purs --version", exectest.Stdout("0.15.4\n")),
//	)
//	compiler, err := purs.NewLocator(host, exec).Locate(ctx)
//	// exec.Calls() reports the commands in the order they ran.
package exectest
