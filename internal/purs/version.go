// SPDX-License-Identifier: MPL-2.0

package purs

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

const (
	minimumMinor = 15
	minimumPatch = 4
)

var (
	// ErrParseVersion is the sentinel error wrapped by ParseError.
	ErrParseVersion = errors.New("invalid compiler version")

	// MinimumVersion is the oldest compiler release pursctl supports.
	MinimumVersion = SemanticVersion{Major: 0, Minor: minimumMinor, Patch: minimumPatch}
)

type (
	// SemanticVersion is a MAJOR.MINOR.PATCH triple. Pre-release and build
	// metadata are stripped before parsing and never stored.
	SemanticVersion struct {
		Major uint64
		Minor uint64
		Patch uint64
	}

	// ParseError is returned when text does not contain a dotted numeric version.
	ParseError struct {
		// Input is the text as given to ParseLenientVersion.
		Input string
		// Reason describes what was wrong with the truncated version string.
		Reason string
	}
)

// TruncateVersionOutput reduces compiler version output to its bare version
// string. Trailing line endings are dropped, then everything from the first
// space and then from the first hyphen, so "0.15.6 [development build]" and
// "0.15.6-2" both become "0.15.6". A leading delimiter yields "".
func TruncateVersionOutput(text string) string {
	s := strings.TrimRight(text, "\r\n")
	s, _, _ = strings.Cut(s, " ")
	s, _, _ = strings.Cut(s, "-")
	return s
}

// ParseLenientVersion extracts a version from noisy compiler output.
// After truncation at least three dot-separated decimal components are
// required; components beyond the third are ignored.
func ParseLenientVersion(text string) (SemanticVersion, error) {
	truncated := TruncateVersionOutput(text)
	if truncated == "" {
		return SemanticVersion{}, &ParseError{Input: text, Reason: "no version found"}
	}

	parts := strings.Split(truncated, ".")
	if len(parts) < 3 {
		return SemanticVersion{}, &ParseError{
			Input:  text,
			Reason: fmt.Sprintf("%q has %d component(s), want MAJOR.MINOR.PATCH", truncated, len(parts)),
		}
	}

	var nums [3]uint64
	for i, part := range parts[:3] {
		n, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return SemanticVersion{}, &ParseError{
				Input:  text,
				Reason: fmt.Sprintf("component %q of %q is not a non-negative integer", part, truncated),
			}
		}
		nums[i] = n
	}

	return SemanticVersion{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// String returns the version as MAJOR.MINOR.PATCH.
func (v SemanticVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare orders versions by semantic-version precedence and returns -1, 0
// or +1.
func (v SemanticVersion) Compare(other SemanticVersion) int {
	return semver.Compare(v.canonical(), other.canonical())
}

// SatisfiesMinimum applies the compiler support policy: minor >= 15 and
// patch >= 4. Major is not consulted, so 0.16.0 is rejected while 1.15.4 is
// accepted. Callers rely on this exact boundary.
func (v SemanticVersion) SatisfiesMinimum() bool {
	return v.Minor >= minimumMinor && v.Patch >= minimumPatch
}

func (v SemanticVersion) canonical() string {
	return "v" + v.String()
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid compiler version in %q: %s", e.Input, e.Reason)
}

// Unwrap returns ErrParseVersion for errors.Is() compatibility.
func (e *ParseError) Unwrap() error { return ErrParseVersion }
