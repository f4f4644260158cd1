// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pursctl/pursctl/internal/config"
	"github.com/pursctl/pursctl/internal/issue"
	"github.com/pursctl/pursctl/internal/purs"
	"github.com/pursctl/pursctl/internal/runtime"
	"github.com/pursctl/pursctl/pkg/platform"

	"github.com/charmbracelet/log"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: every Cobra handler receives an App and reaches
	// the configuration, host platform and process executor through it.
	App struct {
		Config   config.Provider
		Platform platform.HostPlatform
		Executor runtime.Executor
		stdout   io.Writer
		stderr   io.Writer
	}

	// Dependencies defines the injection points for building an App. Zero
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config   config.Provider
		Platform platform.HostPlatform
		Executor runtime.Executor
		Stdout   io.Writer
		Stderr   io.Writer
	}

	// rootFlags holds the persistent flags shared by every subcommand.
	rootFlags struct {
		verbose    bool
		configPath string
		purs       string
	}

	// session is the per-invocation state: loaded configuration, logger and
	// the rendering style derived from both.
	session struct {
		app     *App
		flags   *rootFlags
		loaded  *config.Loaded
		logger  *slog.Logger
		style   string
		verbose bool
	}
)

// NewApp creates an App, filling unset dependencies with production defaults.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Platform == (platform.HostPlatform{}) {
		deps.Platform = platform.Current()
	}
	if err := deps.Platform.Validate(); err != nil {
		return nil, err
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Executor == nil {
		native := runtime.NewNativeExecutor(deps.Platform)
		native.Stdout = deps.Stdout
		native.Stderr = deps.Stderr
		deps.Executor = native
	}

	return &App{
		Config:   deps.Config,
		Platform: deps.Platform,
		Executor: deps.Executor,
		stdout:   deps.Stdout,
		stderr:   deps.Stderr,
	}, nil
}

// newLogger builds the slog logger used by one invocation, backed by the
// charmbracelet/log handler.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	handler := log.NewWithOptions(w, log.Options{
		Prefix: config.AppName,
		Level:  level,
	})
	return slog.New(handler)
}

// newSession loads configuration and derives the logger for one invocation.
// A configuration failure is returned as a ServiceError that has already
// been rendered to stderr.
func (a *App) newSession(ctx context.Context, flags *rootFlags) (*session, error) {
	loaded, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: flags.configPath})
	if err != nil {
		logger := newLogger(a.stderr, flags.verbose)
		logger.Debug("configuration load failed", "path", flags.configPath, "error", err)
		ae := issue.NewErrorContext().
			WithOperation("load configuration").
			WithResource(flags.configPath).
			WithIssue(issue.ConfigLoadFailedId).
			WithSuggestion("Run 'pursctl config dump' to see the expected format").
			Wrap(err).
			Build()
		svcErr := newServiceError(ae, issue.ConfigLoadFailedId, styledError(ae, flags.verbose))
		renderServiceError(a.stderr, svcErr, config.DefaultConfig().UI.ColorScheme.GlamourStyle(), logger)
		return nil, svcErr
	}

	verbose := flags.verbose || loaded.Config.UI.Verbose
	logger := newLogger(a.stderr, verbose)
	if native, ok := a.Executor.(*runtime.NativeExecutor); ok {
		native.Logger = logger
	}
	if loaded.Path != "" {
		logger.Debug("loaded configuration", "path", loaded.Path)
	}

	return &session{
		app:     a,
		flags:   flags,
		loaded:  loaded,
		logger:  logger,
		style:   loaded.Config.UI.ColorScheme.GlamourStyle(),
		verbose: verbose,
	}, nil
}

// locator returns a compiler locator honoring --purs and compiler.command,
// in that order.
func (s *session) locator() *purs.Locator {
	override := s.flags.purs
	if override == "" {
		override = s.loaded.Config.Compiler.Command.String()
	}
	return purs.NewLocator(s.app.Platform, s.app.Executor,
		purs.WithLocatorLogger(s.logger),
		purs.WithCommandOverride(override),
	)
}

// invoker locates the compiler and returns an Invoker bound to it.
func (s *session) invoker(ctx context.Context) (*purs.Invoker, error) {
	compiler, err := s.locator().Locate(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("using compiler", "command", compiler.Command(), "version", compiler.Version().String())
	return purs.NewInvoker(compiler, s.app.Executor, purs.WithInvokerLogger(s.logger)), nil
}

// fail converts err into a rendered ServiceError wrapped in an ExitError.
// fallback names the catalog entry for process failures of operation.
func (s *session) fail(operation string, fallback issue.Id, err error) error {
	id, suggestions := classifyError(err, fallback)
	ae := issue.NewErrorContext().
		WithOperation(operation).
		WithIssue(id).
		WithSuggestions(suggestions...).
		Wrap(err).
		Build()

	svcErr := newServiceError(ae, id, styledError(ae, s.verbose))
	s.logger.Debug("command failed", "operation", operation, "issue", int(id), "error", err)
	renderServiceError(s.app.stderr, svcErr, s.style, s.logger)
	return &ExitError{Code: svcErr.ExitCode(), Err: svcErr}
}

// styledError formats an actionable error as a styled block for stderr.
func styledError(ae *issue.ActionableError, verbose bool) string {
	return fmt.Sprintf("%s %s\n", ErrorStyle.Render("Error:"), ae.Format(verbose))
}
