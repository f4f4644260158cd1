// SPDX-License-Identifier: MPL-2.0

package purs

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/pursctl/pursctl/internal/runtime"
	"github.com/pursctl/pursctl/internal/testutil/exectest"
)

func testCompiler() *Compiler {
	return &Compiler{command: "purs", version: MinimumVersion}
}

func TestSortGlobs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		globs []string
		want  []string
	}{
		{name: "nil", globs: nil, want: []string{}},
		{name: "already sorted", globs: []string{"a/*.purs", "b/*.purs"}, want: []string{"a/*.purs", "b/*.purs"}},
		{
			name:  "byte order and duplicates",
			globs: []string{"src/**/*.purs", "Test/**/*.purs", ".spago/*/src/**/*.purs", "src/**/*.purs"},
			want:  []string{".spago/*/src/**/*.purs", "Test/**/*.purs", "src/**/*.purs"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := SortGlobs(tt.globs)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("SortGlobs() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSortGlobs_DoesNotMutateInput(t *testing.T) {
	t.Parallel()
	in := []string{"b", "a", "b"}
	_ = SortGlobs(in)
	if diff := cmp.Diff([]string{"b", "a", "b"}, in); diff != "" {
		t.Errorf("input mutated (-want +got):\n%s", diff)
	}
}

func TestInvoker_Commands(t *testing.T) {
	t.Parallel()

	inv := NewInvoker(testCompiler(), exectest.NewExecutor(), WithInvokerLogger(discardLogger()))
	globs := []string{"test/**/*.purs", "src/**/*.purs"}
	extra := []string{"--json-errors"}

	tests := []struct {
		name string
		got  runtime.Command
		want runtime.Command
	}{
		{
			name: "compile",
			got:  inv.CompileCommand(globs, extra),
			want: runtime.Command{
				Name:       "purs",
				Args:       []string{"compile", "--json-errors", "src/**/*.purs", "test/**/*.purs"},
				PipeStderr: true,
			},
		},
		{
			name: "repl",
			got:  inv.ReplCommand(globs, nil),
			want: runtime.Command{
				Name:       "purs",
				Args:       []string{"repl", "src/**/*.purs", "test/**/*.purs"},
				PipeStdout: true,
				PipeStderr: true,
				Stdin:      runtime.StdinParent,
			},
		},
		{
			name: "graph",
			got:  inv.GraphCommand(globs, nil),
			want: runtime.Command{
				Name: "purs",
				Args: []string{"graph", "src/**/*.purs", "test/**/*.purs"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tt.want, tt.got); diff != "" {
				t.Errorf("command mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInvoker_ArgumentsAreOrderIndependent(t *testing.T) {
	t.Parallel()
	inv := NewInvoker(testCompiler(), exectest.NewExecutor())
	a := inv.CompileCommand([]string{"b/*.purs", "a/*.purs"}, nil)
	b := inv.CompileCommand([]string{"a/*.purs", "b/*.purs", "a/*.purs"}, nil)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("argument lists differ (-first +second):\n%s", diff)
	}
}

func TestInvoker_Compile(t *testing.T) {
	t.Parallel()

	t.Run("success returns captured stdout", func(t *testing.T) {
		t.Parallel()
		exec := exectest.NewExecutor(exectest.Respond("purs compile src/**/*.purs",
			exectest.Stdout(`{"warnings":[],"errors":[]}`), exectest.Stderr("Compiling Main")))
		inv := NewInvoker(testCompiler(), exec, WithInvokerLogger(discardLogger()))

		result, err := inv.Compile(t.Context(), []string{"src/**/*.purs"}, nil)
		if err != nil {
			t.Fatalf("Compile() unexpected error: %v", err)
		}
		if result.Stdout != `{"warnings":[],"errors":[]}` {
			t.Errorf("Stdout = %q", result.Stdout)
		}
		if result.Stderr != "" {
			t.Errorf("Stderr = %q, want empty because stderr is piped", result.Stderr)
		}
	})

	t.Run("failure keeps the result", func(t *testing.T) {
		t.Parallel()
		exec := exectest.NewExecutor(exectest.Respond("purs compile src/**/*.purs",
			exectest.Stdout(`{"errors":[{}]}`), exectest.ExitCode(1)))
		inv := NewInvoker(testCompiler(), exec, WithInvokerLogger(discardLogger()))

		result, err := inv.Compile(t.Context(), []string{"src/**/*.purs"}, nil)
		var execErr *runtime.ExecError
		if !errors.As(err, &execErr) {
			t.Fatalf("Compile() error = %v, want *runtime.ExecError", err)
		}
		if execErr.ExitCode() != 1 {
			t.Errorf("ExitCode() = %d, want 1", execErr.ExitCode())
		}
		if result == nil || result.Stdout != `{"errors":[{}]}` {
			t.Errorf("result = %+v, want captured stdout", result)
		}
	})
}

func TestInvoker_Repl(t *testing.T) {
	t.Parallel()
	exec := exectest.NewExecutor(exectest.Respond("purs repl src/**/*.purs", exectest.Stdout("ignored")))
	inv := NewInvoker(testCompiler(), exec, WithInvokerLogger(discardLogger()))

	result, err := inv.Repl(t.Context(), []string{"src/**/*.purs"}, nil)
	if err != nil {
		t.Fatalf("Repl() unexpected error: %v", err)
	}
	if result.Stdout != "" {
		t.Errorf("Stdout = %q, want empty because stdout is piped", result.Stdout)
	}
	calls := exec.Calls()
	if len(calls) != 1 || calls[0].Stdin != runtime.StdinParent {
		t.Errorf("calls = %+v, want one call with parent stdin", calls)
	}
}

func TestInvoker_Graph(t *testing.T) {
	t.Parallel()

	t.Run("decodes output", func(t *testing.T) {
		t.Parallel()
		exec := exectest.NewExecutor(exectest.Respond("purs graph src/**/*.purs",
			exectest.Stdout(`{"Main":{"path":"src/Main.purs","depends":["Prelude"]}}`)))
		inv := NewInvoker(testCompiler(), exec, WithInvokerLogger(discardLogger()))

		graph, err := inv.Graph(t.Context(), []string{"src/**/*.purs"}, nil)
		if err != nil {
			t.Fatalf("Graph() unexpected error: %v", err)
		}
		want := ModuleGraph{"Main": {Path: "src/Main.purs", Depends: []ModuleName{"Prelude"}}}
		if diff := cmp.Diff(want, graph); diff != "" {
			t.Errorf("Graph() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("execution failure becomes a decode error", func(t *testing.T) {
		t.Parallel()
		exec := exectest.NewExecutor(exectest.Respond("purs graph src/**/*.purs",
			exectest.ExitCode(2), exectest.Stderr("Error found:\n  huge compiler dump")))
		inv := NewInvoker(testCompiler(), exec, WithInvokerLogger(discardLogger()))

		_, err := inv.Graph(t.Context(), []string{"src/**/*.purs"}, nil)
		var decodeErr *DecodeError
		if !errors.As(err, &decodeErr) {
			t.Fatalf("Graph() error = %v, want *DecodeError", err)
		}
		want := "command failed with exit code 2: purs graph src/**/*.purs"
		if decodeErr.Message != want {
			t.Errorf("Message = %q, want %q", decodeErr.Message, want)
		}
		if !errors.Is(err, runtime.ErrExecution) {
			t.Error("errors.Is(err, runtime.ErrExecution) = false, want true")
		}
	})

	t.Run("malformed output", func(t *testing.T) {
		t.Parallel()
		exec := exectest.NewExecutor(exectest.Respond("purs graph src/**/*.purs", exectest.Stdout("not json")))
		inv := NewInvoker(testCompiler(), exec, WithInvokerLogger(discardLogger()))

		if _, err := inv.Graph(t.Context(), []string{"src/**/*.purs"}, nil); !errors.Is(err, ErrDecodeGraph) {
			t.Errorf("Graph() error = %v, want ErrDecodeGraph", err)
		}
	})
}
