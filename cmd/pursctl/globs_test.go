// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/spf13/cobra"

	"github.com/pursctl/pursctl/internal/config"
	"github.com/pursctl/pursctl/internal/testutil"
)

func TestSplitArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		args            []string
		wantGlobs       []string
		wantPassthrough []string
	}{
		{name: "no args", args: []string{}},
		{name: "globs only", args: []string{"src/**/*.purs"}, wantGlobs: []string{"src/**/*.purs"}},
		{name: "passthrough only", args: []string{"--", "--output", "build"}, wantPassthrough: []string{"--output", "build"}},
		{
			name:            "globs and passthrough",
			args:            []string{"a.purs", "--", "--json-errors"},
			wantGlobs:       []string{"a.purs"},
			wantPassthrough: []string{"--json-errors"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotGlobs, gotPassthrough []string
			c := &cobra.Command{
				Use: "compile",
				RunE: func(cmd *cobra.Command, args []string) error {
					gotGlobs, gotPassthrough = splitArgs(cmd, args)
					return nil
				},
			}
			c.SetArgs(tt.args)
			if err := c.Execute(); err != nil {
				t.Fatalf("Execute() error = %v", err)
			}

			if diff := cmp.Diff(tt.wantGlobs, gotGlobs, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("globs mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantPassthrough, gotPassthrough, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("passthrough mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveInputs(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Compiler.ExtraArgs = []string{"--censor-lib"}
	cfg.Sources.Globs = []config.SourceGlob{"lib/**/*.purs"}

	tests := []struct {
		name        string
		globs       []string
		passthrough []string
		wantGlobs   []string
		wantExtra   []string
	}{
		{
			name:      "configured globs when none given",
			wantGlobs: []string{"lib/**/*.purs"},
			wantExtra: []string{"--censor-lib"},
		},
		{
			name:        "explicit globs win and configured args come first",
			globs:       []string{"src/Main.purs"},
			passthrough: []string{"--output", "build"},
			wantGlobs:   []string{"src/Main.purs"},
			wantExtra:   []string{"--censor-lib", "--output", "build"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			gotGlobs, gotExtra := resolveInputs(cfg, tt.globs, tt.passthrough)
			if diff := cmp.Diff(tt.wantGlobs, gotGlobs); diff != "" {
				t.Errorf("globs mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantExtra, gotExtra); diff != "" {
				t.Errorf("extra args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveInputs_DefaultSourceGlobs(t *testing.T) {
	t.Parallel()

	globs, extra := resolveInputs(config.DefaultConfig(), nil, nil)
	if diff := cmp.Diff([]string{"src/**/*.purs"}, globs); diff != "" {
		t.Errorf("globs mismatch (-want +got):\n%s", diff)
	}
	if len(extra) != 0 {
		t.Errorf("extra = %v, want empty", extra)
	}
}

func TestWarnEmptyGlobs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(dir, "src", "Main.purs"), "module Main where\n")

	matching := filepath.ToSlash(filepath.Join(dir, "src", "**", "*.purs"))
	empty := filepath.ToSlash(filepath.Join(dir, "test", "**", "*.purs"))

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	warnEmptyGlobs(logger, []string{matching, empty})

	out := buf.String()
	if strings.Count(out, "source glob matches no files") != 1 {
		t.Errorf("expected exactly one empty-glob warning, got:\n%s", out)
	}
	if !strings.Contains(out, "test/**/*.purs") {
		t.Errorf("warning should name the empty glob, got:\n%s", out)
	}
}
