// SPDX-License-Identifier: MPL-2.0

package purs

import (
	"errors"
	"testing"
)

func TestTruncateVersionOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"0.15.4", "0.15.4"},
		{"0.15.6 [development build]", "0.15.6"},
		{"0.15.6-2", "0.15.6"},
		{"0.15.0-alpha-01 extra", "0.15.0"},
		{"0.15.4\n", "0.15.4"},
		{"0.15.4\r\n", "0.15.4"},
		{" 0.15.4", ""},
		{"-0.15.4", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := TruncateVersionOutput(tt.input); got != tt.want {
				t.Errorf("TruncateVersionOutput(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseLenientVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    SemanticVersion
		wantErr bool
	}{
		{name: "plain", input: "0.15.4", want: SemanticVersion{0, 15, 4}},
		{name: "trailing newline", input: "0.15.4\n", want: SemanticVersion{0, 15, 4}},
		{name: "build note", input: "0.15.6 [development build]", want: SemanticVersion{0, 15, 6}},
		{name: "prerelease suffix", input: "0.15.6-2", want: SemanticVersion{0, 15, 6}},
		{name: "extra components ignored", input: "0.15.4.1", want: SemanticVersion{0, 15, 4}},
		{name: "multi-digit", input: "10.200.3000", want: SemanticVersion{10, 200, 3000}},
		{name: "empty", input: "", wantErr: true},
		{name: "leading space", input: " 0.15.4", wantErr: true},
		{name: "leading hyphen", input: "-0.15.4", wantErr: true},
		{name: "two components", input: "0.15", wantErr: true},
		{name: "v prefix", input: "v0.15.4", wantErr: true},
		{name: "non-numeric patch", input: "0.15.x", wantErr: true},
		{name: "empty component", input: "0..4", wantErr: true},
		{name: "negative component", input: "0.+15.4", wantErr: true},
		{name: "not a version", input: "command not found", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseLenientVersion(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrParseVersion) {
					t.Fatalf("ParseLenientVersion(%q) error = %v, want ErrParseVersion", tt.input, err)
				}
				var parseErr *ParseError
				if !errors.As(err, &parseErr) || parseErr.Input != tt.input {
					t.Errorf("ParseLenientVersion(%q) error = %#v, want *ParseError with Input %q", tt.input, err, tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLenientVersion(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseLenientVersion(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSemanticVersion_SatisfiesMinimum(t *testing.T) {
	t.Parallel()

	tests := []struct {
		version SemanticVersion
		want    bool
	}{
		{SemanticVersion{0, 15, 4}, true},
		{SemanticVersion{0, 15, 3}, false},
		{SemanticVersion{0, 15, 10}, true},
		{SemanticVersion{0, 14, 9}, false},
		{SemanticVersion{0, 16, 0}, false},
		{SemanticVersion{0, 16, 4}, true},
		{SemanticVersion{1, 15, 4}, true},
	}

	for _, tt := range tests {
		t.Run(tt.version.String(), func(t *testing.T) {
			t.Parallel()
			if got := tt.version.SatisfiesMinimum(); got != tt.want {
				t.Errorf("%v.SatisfiesMinimum() = %v, want %v", tt.version, got, tt.want)
			}
		})
	}
}

func TestSemanticVersion_Compare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b SemanticVersion
		want int
	}{
		{SemanticVersion{0, 15, 4}, SemanticVersion{0, 15, 4}, 0},
		{SemanticVersion{0, 16, 0}, SemanticVersion{0, 15, 4}, 1},
		{SemanticVersion{0, 15, 3}, SemanticVersion{0, 15, 4}, -1},
		{SemanticVersion{0, 15, 10}, SemanticVersion{0, 15, 9}, 1},
		{SemanticVersion{1, 0, 0}, SemanticVersion{0, 99, 99}, 1},
	}

	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("%v.Compare(%v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSemanticVersion_String(t *testing.T) {
	t.Parallel()
	if got := MinimumVersion.String(); got != "0.15.4" {
		t.Errorf("MinimumVersion.String() = %q, want %q", got, "0.15.4")
	}
}
