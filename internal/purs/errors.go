// SPDX-License-Identifier: MPL-2.0

package purs

import (
	"errors"
	"fmt"
	"strings"
)

// Resolution failure reasons.
const (
	// ReasonNotFound means no candidate command ran `--version` successfully.
	ReasonNotFound ResolutionReason = "not-found"
	// ReasonUnparsableVersion means `--version` succeeded but printed no version.
	ReasonUnparsableVersion ResolutionReason = "unparsable-version"
	// ReasonUnsupportedVersion means the version fails the minimum-version policy.
	ReasonUnsupportedVersion ResolutionReason = "unsupported-version"
)

var (
	// ErrResolution is the sentinel error wrapped by ResolutionError.
	ErrResolution = errors.New("compiler resolution failed")
	// ErrDecodeGraph is the sentinel error wrapped by DecodeError.
	ErrDecodeGraph = errors.New("module graph decoding failed")
)

type (
	// ResolutionReason classifies a ResolutionError.
	ResolutionReason string

	// ResolutionError is returned by Locator.Locate. It is fatal for the
	// calling program: no further fallback is attempted.
	ResolutionError struct {
		Reason ResolutionReason
		// Candidates lists the command names that were tried, in order.
		Candidates []string
		// Command is the candidate that answered `--version`, if any.
		Command string
		// Output is the raw stdout of `--version` for version failures.
		Output string
		// Version is the parsed version for ReasonUnsupportedVersion.
		Version SemanticVersion
		// Cause is the last execution or parse error.
		Cause error
	}

	// DecodeError is returned by DecodeGraph and Invoker.Graph.
	DecodeError struct {
		// Module is the graph key being decoded, if the failure is per-module.
		Module ModuleName
		// Field is the offending node field ("path", "depends"), if known.
		Field string
		// Message is a short human-readable description.
		Message string
		// Cause is the underlying JSON or execution error.
		Cause error
	}
)

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	switch e.Reason {
	case ReasonUnparsableVersion:
		return fmt.Sprintf("could not parse the version printed by %q: %q", e.Command, e.Output)
	case ReasonUnsupportedVersion:
		return fmt.Sprintf("purs version %s is not supported: the minimum supported version is %s", e.Version, MinimumVersion)
	default:
		msg := fmt.Sprintf("no working purs compiler found (tried %s)", strings.Join(e.Candidates, ", "))
		if e.Cause != nil {
			msg += ": " + e.Cause.Error()
		}
		return msg
	}
}

// Unwrap returns both the sentinel and the underlying cause.
func (e *ResolutionError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrResolution}
	}
	return []error{ErrResolution, e.Cause}
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	var msg strings.Builder
	msg.WriteString("failed to decode module graph")
	if e.Module != "" {
		fmt.Fprintf(&msg, ": module %q", e.Module)
	}
	if e.Field != "" {
		fmt.Fprintf(&msg, ": field %q", e.Field)
	}
	msg.WriteString(": ")
	msg.WriteString(e.Message)
	return msg.String()
}

// Unwrap returns both the sentinel and the underlying cause.
func (e *DecodeError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrDecodeGraph}
	}
	return []error{ErrDecodeGraph, e.Cause}
}
