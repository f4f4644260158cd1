// SPDX-License-Identifier: MPL-2.0

package purs

import (
	"context"
	"errors"
	"log/slog"

	"github.com/pursctl/pursctl/internal/runtime"
	"github.com/pursctl/pursctl/pkg/platform"
)

const (
	// CommandName is the compiler executable on every platform.
	CommandName = "purs"
	// WindowsCommandName is the npm shim installed on Windows hosts.
	WindowsCommandName = "purs.cmd"
)

type (
	// Compiler is a resolved compiler: the command that answered and the
	// version it reported. Only Locator.Locate constructs one, so a
	// Compiler's version always satisfies the minimum-version policy.
	// It is immutable and safe to share between goroutines.
	Compiler struct {
		command string
		version SemanticVersion
	}

	// Locator resolves the compiler command for a host platform.
	Locator struct {
		platform platform.HostPlatform
		executor runtime.Executor
		logger   *slog.Logger
		override string
	}

	// LocatorOption configures a Locator during construction.
	LocatorOption func(*Locator)
)

// WithLocatorLogger sets the logger that receives resolution traces.
func WithLocatorLogger(logger *slog.Logger) LocatorOption {
	return func(l *Locator) {
		l.logger = logger
	}
}

// WithCommandOverride replaces the platform candidates with a single
// command name or path. An empty name keeps the platform candidates.
func WithCommandOverride(command string) LocatorOption {
	return func(l *Locator) {
		l.override = command
	}
}

// NewLocator creates a Locator for the given host using executor to run
// `--version` probes.
func NewLocator(host platform.HostPlatform, executor runtime.Executor, opts ...LocatorOption) *Locator {
	l := &Locator{
		platform: host,
		executor: executor,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.Default()
	}
	return l
}

// Command returns the command name used to invoke the compiler.
func (c *Compiler) Command() string { return c.command }

// Version returns the version reported by the compiler.
func (c *Compiler) Version() SemanticVersion { return c.version }

// Candidates returns the command names Locate tries, in order.
func (l *Locator) Candidates() []string {
	if l.override != "" {
		return []string{l.override}
	}
	if l.platform.IsWindows() {
		return []string{WindowsCommandName, CommandName}
	}
	return []string{CommandName}
}

// Locate finds a working compiler. Candidates are probed one after another
// with `--version`; the first that runs successfully decides the outcome.
// Unparsable or unsupported versions fail immediately without trying the
// remaining candidates.
func (l *Locator) Locate(ctx context.Context) (*Compiler, error) {
	candidates := l.Candidates()

	var lastErr error
	for i, name := range candidates {
		result, err := l.executor.Execute(ctx, runtime.Command{
			Name: name,
			Args: []string{"--version"},
		})
		if err == nil && !result.Success() {
			err = &runtime.ExecError{Command: runtime.Command{Name: name, Args: []string{"--version"}}, Result: result}
		}
		if err != nil {
			lastErr = err
			attrs := []any{"command", name, "error", shortMessage(err)}
			if i+1 < len(candidates) {
				attrs = append(attrs, "fallback", candidates[i+1])
			}
			l.logger.Debug("compiler candidate failed", attrs...)
			continue
		}
		return l.check(name, result.Stdout)
	}

	l.logger.Debug("no compiler candidate succeeded", "candidates", candidates)
	return nil, &ResolutionError{
		Reason:     ReasonNotFound,
		Candidates: candidates,
		Cause:      lastErr,
	}
}

func (l *Locator) check(name, stdout string) (*Compiler, error) {
	candidates := l.Candidates()

	version, err := ParseLenientVersion(stdout)
	if err != nil {
		l.logger.Debug("compiler printed an unparsable version", "command", name, "output", stdout, "error", err)
		return nil, &ResolutionError{
			Reason:     ReasonUnparsableVersion,
			Candidates: candidates,
			Command:    name,
			Output:     stdout,
			Cause:      err,
		}
	}

	if !version.SatisfiesMinimum() {
		if version.Compare(MinimumVersion) > 0 {
			l.logger.Warn("compiler is newer than the minimum but outside the supported minor/patch range",
				"command", name, "version", version.String(), "minimum", MinimumVersion.String())
		}
		l.logger.Debug("compiler version rejected", "command", name, "version", version.String())
		return nil, &ResolutionError{
			Reason:     ReasonUnsupportedVersion,
			Candidates: candidates,
			Command:    name,
			Output:     stdout,
			Version:    version,
		}
	}

	l.logger.Debug("compiler located", "command", name, "version", version.String())
	return &Compiler{command: name, version: version}, nil
}

// shortMessage prefers the one-line execution summary over the full error.
func shortMessage(err error) string {
	var execErr *runtime.ExecError
	if errors.As(err, &execErr) {
		return execErr.ShortMessage()
	}
	return err.Error()
}
