// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
)

// ErrValidation is the sentinel error wrapped by ValidationError.
var ErrValidation = errors.New("CUE validation failed")

type (
	// ValidationError is one CUE error located in a file.
	ValidationError struct {
		// FilePath is the file being validated.
		FilePath string

		// CUEPath is the JSON-style path to the invalid value (e.g., "sources.globs[0]").
		CUEPath string

		// Message is the CUE error message without the path prefix.
		Message string
	}

	// ValidationErrors collects every error reported for one file.
	ValidationErrors []*ValidationError
)

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.CUEPath != "" {
		return fmt.Sprintf("%s: %s: %s", e.FilePath, e.CUEPath, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
}

// Unwrap returns ErrValidation for errors.Is() compatibility.
func (e *ValidationError) Unwrap() error { return ErrValidation }

// Error lists every error on its own indented line.
func (es ValidationErrors) Error() string {
	if len(es) == 0 {
		return "validation failed"
	}
	lines := make([]string, len(es))
	for i, e := range es {
		lines[i] = e.Error()
	}
	return fmt.Sprintf("validation failed:\n  %s", strings.Join(lines, "\n  "))
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (es ValidationErrors) Unwrap() []error {
	errs := make([]error, len(es))
	for i, e := range es {
		errs[i] = e
	}
	return errs
}

// FormatError converts a CUE error into *ValidationError (one error) or
// ValidationErrors (several), each prefixed with filePath and the field's
// path, e.g. "config.cue: ui.color_scheme: conflicting values ...".
// Errors that are not CUE errors are wrapped with the file path.
func FormatError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	cueErrs := cueerrors.Errors(err)
	if len(cueErrs) == 0 {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	out := make(ValidationErrors, 0, len(cueErrs))
	for _, e := range cueErrs {
		pathStr := formatPath(e.Path())
		format, args := e.Msg()
		msg := fmt.Sprintf(format, args...)
		out = append(out, &ValidationError{FilePath: filePath, CUEPath: pathStr, Message: msg})
	}

	if len(out) == 1 {
		return out[0]
	}
	return out
}

// formatPath converts a CUE path such as ["sources", "globs", "0"] to
// "sources.globs[0]".
func formatPath(path []string) string {
	var result strings.Builder
	for i, part := range path {
		if i > 0 && isIndex(part) {
			fmt.Fprintf(&result, "[%s]", part)
			continue
		}
		if i > 0 {
			result.WriteString(".")
		}
		result.WriteString(part)
	}
	return result.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// CheckFileSize returns an error when data exceeds maxSize bytes.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if int64(len(data)) > maxSize {
		return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes",
			filename, len(data), maxSize)
	}
	return nil
}
