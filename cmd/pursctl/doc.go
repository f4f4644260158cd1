// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the pursctl command-line interface.
//
// The root command and its subcommands (compile, repl, graph, version and
// config) are built around an App composition root so that tests can swap
// the process executor, configuration source and output streams.
package cmd
