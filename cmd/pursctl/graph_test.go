// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pursctl/pursctl/internal/dag"
	"github.com/pursctl/pursctl/internal/purs"
)

func sampleGraph() purs.ModuleGraph {
	return purs.ModuleGraph{
		"Main":       {Path: "src/Main.purs", Depends: []purs.ModuleName{"Data.Tree", "Prelude"}},
		"Data.Tree":  {Path: "src/Data/Tree.purs", Depends: []purs.ModuleName{"Data.Maybe"}},
		"Data.Maybe": {Path: "src/Data/Maybe.purs", Depends: []purs.ModuleName{}},
	}
}

func TestGraphFormat_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format graphFormat
		want   bool
	}{
		{format: graphFormatJSON, want: true},
		{format: graphFormatOrder, want: true},
		{format: graphFormatSummary, want: true},
		{format: "", want: false},
		{format: "dot", want: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			t.Parallel()
			got, errs := tt.format.IsValid()
			if got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
			if !tt.want && (len(errs) != 1 || !errors.Is(errs[0], errInvalidGraphFormat)) {
				t.Errorf("IsValid() errors = %v, want one errInvalidGraphFormat", errs)
			}
		})
	}
}

func TestWriteGraph_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := writeGraph(&buf, sampleGraph(), graphFormatJSON); err != nil {
		t.Fatalf("writeGraph() error = %v", err)
	}

	got, err := purs.DecodeGraph(buf.Bytes())
	if err != nil {
		t.Fatalf("output is not a decodable graph: %v\n%s", err, buf.String())
	}
	if diff := cmp.Diff(sampleGraph(), got); diff != "" {
		t.Errorf("round-tripped graph mismatch (-want +got):\n%s", diff)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(raw) != 3 {
		t.Errorf("len(output) = %d, want 3", len(raw))
	}
}

func TestWriteGraph_Order(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := writeGraph(&buf, sampleGraph(), graphFormatOrder); err != nil {
		t.Fatalf("writeGraph() error = %v", err)
	}

	want := "Data.Maybe\nData.Tree\nMain\n"
	if buf.String() != want {
		t.Errorf("writeGraph() = %q, want %q", buf.String(), want)
	}
}

func TestWriteGraph_OrderCycle(t *testing.T) {
	t.Parallel()

	graph := purs.ModuleGraph{
		"A": {Path: "A.purs", Depends: []purs.ModuleName{"B"}},
		"B": {Path: "B.purs", Depends: []purs.ModuleName{"A"}},
	}

	var buf bytes.Buffer
	err := writeGraph(&buf, graph, graphFormatOrder)

	var cycleErr *dag.CycleError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("writeGraph() error = %v, want *dag.CycleError", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output on cycle, got %q", buf.String())
	}
}

func TestWriteGraph_Summary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := writeGraph(&buf, sampleGraph(), graphFormatSummary); err != nil {
		t.Fatalf("writeGraph() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Module graph", "modules: 3", "imports: 3", "not in graph: Prelude"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestWriteGraph_SummaryWithoutMissing(t *testing.T) {
	t.Parallel()

	graph := purs.ModuleGraph{"Main": {Path: "src/Main.purs", Depends: []purs.ModuleName{}}}

	var buf bytes.Buffer
	if err := writeGraph(&buf, graph, graphFormatSummary); err != nil {
		t.Fatalf("writeGraph() error = %v", err)
	}
	if strings.Contains(buf.String(), "not in graph") {
		t.Errorf("summary should not list missing modules:\n%s", buf.String())
	}
}
