// SPDX-License-Identifier: MPL-2.0

// Package purs locates the PureScript compiler and drives its subcommands.
//
// The pipeline has four stages:
//   - version.go: lenient parsing of `purs --version` output and the
//     minimum-version policy
//   - locate.go: platform-aware resolution of the compiler command into an
//     immutable Compiler handle
//   - invoke.go: argument construction and stdio routing for the compile,
//     repl and graph subcommands
//   - graph.go: decoding of the JSON module graph printed by `purs graph`
//
// Process execution is delegated to a runtime.Executor so every stage can
// be driven by a scripted executor in tests.
package purs
