// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/pursctl/pursctl/internal/dag"
	"github.com/pursctl/pursctl/internal/issue"
	"github.com/pursctl/pursctl/internal/purs"
	"github.com/pursctl/pursctl/internal/runtime"
)

// ServiceError is an error that carries rendering information for the CLI
// layer: the catalog entry that explains it and an optional pre-styled
// one-line message. Always create via newServiceError.
type ServiceError struct {
	// Err is the underlying error (must not be nil).
	Err error
	// IssueID is the optional issue catalog ID for rendering help text.
	IssueID issue.Id
	// StyledMessage is the optional pre-rendered styled error text.
	StyledMessage string
}

// newServiceError creates a ServiceError with a nil-Err panic guard.
func newServiceError(err error, issueID issue.Id, styledMessage string) *ServiceError {
	if err == nil {
		panic("ServiceError: Err must not be nil")
	}
	return &ServiceError{
		Err:           err,
		IssueID:       issueID,
		StyledMessage: styledMessage,
	}
}

// Error implements the error interface.
func (e *ServiceError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ServiceError) Unwrap() error { return e.Err }

// ExitCode is the process exit code the CLI should use for this failure.
// A failed compiler run propagates its own exit code.
func (e *ServiceError) ExitCode() runtime.ExitCode {
	var execErr *runtime.ExecError
	if errors.As(e.Err, &execErr) && !execErr.ExitCode().IsSuccess() {
		return execErr.ExitCode()
	}
	return 1
}

// renderServiceError prints the styled message followed by the catalog
// entry rendered with the given glamour style.
func renderServiceError(stderr io.Writer, svcErr *ServiceError, style string, logger *slog.Logger) {
	if svcErr == nil {
		return
	}

	if svcErr.StyledMessage != "" {
		fmt.Fprint(stderr, svcErr.StyledMessage)
	}

	if svcErr.IssueID == 0 {
		return
	}

	if catalogEntry := issue.Get(svcErr.IssueID); catalogEntry != nil {
		rendered, renderErr := catalogEntry.Render(style)
		if renderErr != nil {
			logger.Warn("failed to render issue catalog entry", "issueID", svcErr.IssueID, "error", renderErr)
		} else {
			fmt.Fprint(stderr, rendered)
		}
	}
}

// classifyError picks the catalog entry and suggestions for a failure of
// the given operation. fallback is used for process failures.
func classifyError(err error, fallback issue.Id) (issue.Id, []string) {
	var resErr *purs.ResolutionError
	if errors.As(err, &resErr) {
		switch resErr.Reason {
		case purs.ReasonUnparsableVersion:
			return issue.CompilerVersionParseId, []string{
				"Check that the configured command really is the PureScript compiler",
			}
		case purs.ReasonUnsupportedVersion:
			return issue.UnsupportedCompilerVersionId, []string{
				fmt.Sprintf("Install purs %s or a later 0.x release", purs.MinimumVersion),
			}
		default:
			return issue.CompilerNotFoundId, []string{
				"Install the compiler with 'npm install -g purescript'",
				"Point pursctl at a specific binary with --purs or compiler.command",
			}
		}
	}

	var cycleErr *dag.CycleError
	if errors.As(err, &cycleErr) {
		return issue.DependencyCycleId, []string{"Break the import cycle between the listed modules"}
	}

	var decodeErr *purs.DecodeError
	var execErr *runtime.ExecError
	if errors.As(err, &decodeErr) && !errors.As(err, &execErr) {
		return issue.GraphDecodeFailedId, []string{"Run with --verbose to see the compiler invocation"}
	}

	return fallback, nil
}
