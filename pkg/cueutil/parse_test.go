// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"
)

const testSchema = `
#Settings: {
	name:         string
	count:        int & >=0
	tags?:        [...string]
	mode?:        "fast" | "slow"
}
`

type testSettings struct {
	Name  string   `json:"name"`
	Count int      `json:"count"`
	Tags  []string `json:"tags,omitempty"`
	Mode  string   `json:"mode,omitempty"`
}

func TestParseAndDecode(t *testing.T) {
	t.Parallel()

	data := []byte(`
name: "purs"
count: 3
tags: ["a", "b"]
`)
	result, err := ParseAndDecodeString[testSettings](testSchema, data, "#Settings", WithFilename("settings.cue"))
	if err != nil {
		t.Fatalf("ParseAndDecode() unexpected error: %v", err)
	}
	if result.Value.Name != "purs" || result.Value.Count != 3 || len(result.Value.Tags) != 2 {
		t.Errorf("Value = %+v", result.Value)
	}
	if !result.Unified.Exists() {
		t.Error("Unified value should exist")
	}
}

func TestParseAndDecode_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		data     string
		contains []string
	}{
		{
			name:     "syntax error",
			data:     `name: "unterminated`,
			contains: []string{"settings.cue"},
		},
		{
			name:     "wrong type",
			data:     "name: 42\ncount: 1",
			contains: []string{"settings.cue", "name"},
		},
		{
			name:     "constraint violation",
			data:     "name: \"x\"\ncount: -1",
			contains: []string{"settings.cue", "count"},
		},
		{
			name:     "disallowed enum value",
			data:     "name: \"x\"\ncount: 1\nmode: \"medium\"",
			contains: []string{"settings.cue", "mode"},
		},
		{
			name:     "unknown field",
			data:     "name: \"x\"\ncount: 1\ncolour: \"red\"",
			contains: []string{"settings.cue", "colour"},
		},
		{
			name:     "missing required field",
			data:     `name: "x"`,
			contains: []string{"count"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseAndDecodeString[testSettings](testSchema, []byte(tt.data), "#Settings", WithFilename("settings.cue"))
			if err == nil {
				t.Fatal("ParseAndDecode() error = nil, want error")
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("errors.Is(err, ErrValidation) = false for %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("error %q should contain %q", err.Error(), want)
				}
			}
		})
	}
}

func TestParseAndDecode_NonConcrete(t *testing.T) {
	t.Parallel()

	const schema = `#Opt: { a?: string, b?: int }`
	result, err := ParseAndDecodeString[map[string]any](schema, []byte(`a: "set"`), "#Opt", WithConcrete(false))
	if err != nil {
		t.Fatalf("ParseAndDecode() unexpected error: %v", err)
	}
	if got := (*result.Value)["a"]; got != "set" {
		t.Errorf(`Value["a"] = %v, want "set"`, got)
	}
	if _, ok := (*result.Value)["b"]; ok {
		t.Error(`Value["b"] should be absent`)
	}
}

func TestParseAndDecode_FileSizeLimit(t *testing.T) {
	t.Parallel()

	data := []byte(`name: "` + strings.Repeat("x", 64) + `"` + "\ncount: 1")
	_, err := ParseAndDecodeString[testSettings](testSchema, data, "#Settings", WithMaxFileSize(16))
	if err == nil || !strings.Contains(err.Error(), "exceeds maximum") {
		t.Errorf("ParseAndDecode() error = %v, want size error", err)
	}
}

func TestParseAndDecode_MissingDefinition(t *testing.T) {
	t.Parallel()

	_, err := ParseAndDecodeString[testSettings](testSchema, []byte(`name: "x"`), "#Nope")
	if err == nil || !strings.Contains(err.Error(), "internal error") {
		t.Errorf("ParseAndDecode() error = %v, want internal error", err)
	}
	if errors.Is(err, ErrValidation) {
		t.Error("schema errors must not be reported as validation errors")
	}
}
