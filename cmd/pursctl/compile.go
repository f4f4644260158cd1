// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pursctl/pursctl/internal/issue"
	"github.com/pursctl/pursctl/internal/purs"
	"github.com/pursctl/pursctl/internal/runtime"
	"github.com/pursctl/pursctl/internal/watch"
)

type (
	// pursRunner is the shape shared by Invoker.Compile and Invoker.Repl.
	pursRunner func(inv *purs.Invoker, ctx context.Context, globs, extraArgs []string) (*runtime.Result, error)

	// pursRun is a located compiler plus the inputs of one invocation.
	pursRun struct {
		app   *App
		sess  *session
		inv   *purs.Invoker
		globs []string
		extra []string
	}
)

func newCompileCommand(app *App, flags *rootFlags) *cobra.Command {
	var watchSources bool

	compileCmd := &cobra.Command{
		Use:   "compile [globs...] [-- purs-args...]",
		Short: "Compile PureScript sources with purs",
		Long: `Compile PureScript sources with purs.

Source globs default to sources.globs from the configuration
(src/**/*.purs). Arguments after "--" are passed to purs unchanged,
after any compiler.extra_args from the configuration.

With --watch, pursctl compiles once and then recompiles whenever a file
matching the source globs (or a .js foreign module next to one) changes.`,
		Example: `  pursctl compile
  pursctl compile 'src/**/*.purs' '.spago/*/src/**/*.purs'
  pursctl compile --watch -- --output build`,
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := preparePurs(cmd, app, flags, args, issue.CompilationFailedId)
			if err != nil {
				return err
			}
			if watchSources {
				return run.watch(cmd.Context())
			}
			return run.exec(cmd.Context(), "compile sources", issue.CompilationFailedId, (*purs.Invoker).Compile)
		},
	}

	compileCmd.Flags().BoolVarP(&watchSources, "watch", "w", false, "recompile when sources change")

	return compileCmd
}

func newReplCommand(app *App, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "repl [globs...] [-- purs-args...]",
		Short: "Start an interactive purs repl",
		Long: `Start an interactive purs repl with the terminal attached.

Source globs default to sources.globs from the configuration.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := preparePurs(cmd, app, flags, args, issue.ReplFailedId)
			if err != nil {
				return err
			}
			return run.exec(cmd.Context(), "run the repl", issue.ReplFailedId, (*purs.Invoker).Repl)
		},
	}
}

// preparePurs loads configuration, locates the compiler and resolves the
// globs and extra arguments of a compiler subcommand. Failures are rendered
// before they are returned.
func preparePurs(cmd *cobra.Command, app *App, flags *rootFlags, args []string, fallback issue.Id) (*pursRun, error) {
	ctx := cmd.Context()
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	sess, err := app.newSession(ctx, flags)
	if err != nil {
		return nil, &ExitError{Code: 1, Err: err}
	}

	inv, err := sess.invoker(ctx)
	if err != nil {
		return nil, sess.fail("locate the PureScript compiler", fallback, err)
	}

	globs, passthrough := splitArgs(cmd, args)
	globs, extra := resolveInputs(sess.loaded.Config, globs, passthrough)
	warnEmptyGlobs(sess.logger, globs)

	return &pursRun{app: app, sess: sess, inv: inv, globs: globs, extra: extra}, nil
}

// exec runs one passthrough subcommand. Captured stdout (compiler
// diagnostics) is printed whether or not the run succeeded.
func (r *pursRun) exec(ctx context.Context, operation string, fallback issue.Id, run pursRunner) error {
	result, err := run(r.inv, ctx, r.globs, r.extra)
	if result != nil && result.Stdout != "" {
		fmt.Fprint(r.app.stdout, result.Stdout)
	}
	if err != nil {
		return r.sess.fail(operation, fallback, err)
	}
	return nil
}

// watch compiles once and then on every batch of source changes until ctx
// is canceled. Compilation failures are rendered and watching continues.
func (r *pursRun) watch(ctx context.Context) error {
	compile := func(ctx context.Context) {
		if err := r.exec(ctx, "compile sources", issue.CompilationFailedId, (*purs.Invoker).Compile); err == nil {
			r.sess.logger.Info("compiled", "globs", len(r.globs))
		}
	}

	compile(ctx)

	w, err := watch.New(watch.Options{
		Patterns: watch.SourcePatterns(r.globs),
		Logger:   r.sess.logger,
	})
	if err != nil {
		return r.sess.fail("watch sources", issue.CompilationFailedId, err)
	}
	r.sess.logger.Info("watching for changes", "dir", w.Dir())

	err = w.Run(ctx, func(ctx context.Context, changed []string) error {
		r.sess.logger.Info("sources changed, recompiling", "files", len(changed), "first", changed[0])
		compile(ctx)
		return nil
	})
	if err != nil {
		return r.sess.fail("watch sources", issue.CompilationFailedId, err)
	}
	return nil
}
