// SPDX-License-Identifier: MPL-2.0

package purs

import (
	"context"
	"log/slog"
	"slices"

	"github.com/pursctl/pursctl/internal/runtime"
)

// Compiler subcommands.
const (
	SubcommandCompile = "compile"
	SubcommandRepl    = "repl"
	SubcommandGraph   = "graph"
)

type (
	// Invoker runs compiler subcommands for a located Compiler.
	Invoker struct {
		compiler *Compiler
		executor runtime.Executor
		logger   *slog.Logger
	}

	// InvokerOption configures an Invoker during construction.
	InvokerOption func(*Invoker)
)

// WithInvokerLogger sets the logger that receives invocation traces.
func WithInvokerLogger(logger *slog.Logger) InvokerOption {
	return func(i *Invoker) {
		i.logger = logger
	}
}

// NewInvoker creates an Invoker that runs compiler through executor.
func NewInvoker(compiler *Compiler, executor runtime.Executor, opts ...InvokerOption) *Invoker {
	i := &Invoker{
		compiler: compiler,
		executor: executor,
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.logger == nil {
		i.logger = slog.Default()
	}
	return i
}

// Compiler returns the compiler this Invoker runs.
func (i *Invoker) Compiler() *Compiler { return i.compiler }

// SortGlobs returns the globs de-duplicated and in lexicographic byte
// order, so the same set always yields the same argument list.
func SortGlobs(globs []string) []string {
	sorted := slices.Clone(globs)
	slices.Sort(sorted)
	return slices.Compact(sorted)
}

// BuildArgs returns subcommand ++ extraArgs ++ SortGlobs(globs).
func BuildArgs(subcommand string, globs, extraArgs []string) []string {
	sorted := SortGlobs(globs)
	args := make([]string, 0, 1+len(extraArgs)+len(sorted))
	args = append(args, subcommand)
	args = append(args, extraArgs...)
	return append(args, sorted...)
}

// CompileCommand builds the `compile` invocation. Stderr carries progress
// and is streamed; stdout carries diagnostics the caller renders itself,
// so it is captured.
func (i *Invoker) CompileCommand(globs, extraArgs []string) runtime.Command {
	return runtime.Command{
		Name:       i.compiler.command,
		Args:       BuildArgs(SubcommandCompile, globs, extraArgs),
		PipeStderr: true,
	}
}

// ReplCommand builds the interactive `repl` invocation: both output streams
// are streamed and stdin is connected to the parent's stdin.
func (i *Invoker) ReplCommand(globs, extraArgs []string) runtime.Command {
	return runtime.Command{
		Name:       i.compiler.command,
		Args:       BuildArgs(SubcommandRepl, globs, extraArgs),
		PipeStdout: true,
		PipeStderr: true,
		Stdin:      runtime.StdinParent,
	}
}

// GraphCommand builds the `graph` invocation with both streams captured.
func (i *Invoker) GraphCommand(globs, extraArgs []string) runtime.Command {
	return runtime.Command{
		Name: i.compiler.command,
		Args: BuildArgs(SubcommandGraph, globs, extraArgs),
	}
}

// Compile runs `purs compile`. A failed compilation is returned as a
// *runtime.ExecError alongside the captured result.
func (i *Invoker) Compile(ctx context.Context, globs, extraArgs []string) (*runtime.Result, error) {
	return i.run(ctx, i.CompileCommand(globs, extraArgs))
}

// Repl runs `purs repl` attached to the parent's terminal.
func (i *Invoker) Repl(ctx context.Context, globs, extraArgs []string) (*runtime.Result, error) {
	return i.run(ctx, i.ReplCommand(globs, extraArgs))
}

// Graph runs `purs graph` and decodes its output. Execution failures are
// reported as a *DecodeError carrying the execution's short message rather
// than the raw output.
func (i *Invoker) Graph(ctx context.Context, globs, extraArgs []string) (ModuleGraph, error) {
	result, err := i.run(ctx, i.GraphCommand(globs, extraArgs))
	if err != nil {
		return nil, &DecodeError{Message: shortMessage(err), Cause: err}
	}
	graph, err := DecodeGraph([]byte(result.Stdout))
	if err != nil {
		i.logger.Debug("module graph rejected", "error", err)
		return nil, err
	}
	i.logger.Debug("module graph decoded", "modules", len(graph))
	return graph, nil
}

func (i *Invoker) run(ctx context.Context, cmd runtime.Command) (*runtime.Result, error) {
	i.logger.Debug("invoking compiler", "command", cmd.String())
	result, err := i.executor.Execute(ctx, cmd)
	if err == nil && !result.Success() {
		err = &runtime.ExecError{Command: cmd, Result: result}
	}
	if err != nil {
		i.logger.Debug("compiler invocation failed", "command", cmd.Name, "error", shortMessage(err))
		return result, err
	}
	return result, nil
}
