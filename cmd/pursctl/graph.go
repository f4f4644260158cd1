// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pursctl/pursctl/internal/issue"
	"github.com/pursctl/pursctl/internal/purs"
)

const (
	graphFormatJSON    graphFormat = "json"
	graphFormatOrder   graphFormat = "order"
	graphFormatSummary graphFormat = "summary"
)

var errInvalidGraphFormat = errors.New("invalid graph format")

type (
	// graphFormat selects how `pursctl graph` prints the module graph.
	graphFormat string

	invalidGraphFormatError struct {
		Value graphFormat
	}
)

func (f graphFormat) IsValid() (bool, []error) {
	switch f {
	case graphFormatJSON, graphFormatOrder, graphFormatSummary:
		return true, nil
	default:
		return false, []error{&invalidGraphFormatError{Value: f}}
	}
}

func (e *invalidGraphFormatError) Error() string {
	return fmt.Sprintf("invalid graph format %q (valid: json, order, summary)", string(e.Value))
}

func (e *invalidGraphFormatError) Unwrap() error { return errInvalidGraphFormat }

func newGraphCommand(app *App, flags *rootFlags) *cobra.Command {
	var format string

	graphCmd := &cobra.Command{
		Use:   "graph [globs...] [-- purs-args...]",
		Short: "Print the module dependency graph",
		Long: `Run 'purs graph' and print the decoded module dependency graph.

Formats:
  json     the decoded graph as indented JSON, keyed by module name
  order    module names with dependencies before dependents
  summary  module count and modules referenced but not in the graph`,
		Example: `  pursctl graph
  pursctl graph --format order 'src/**/*.purs'`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if ok, errs := graphFormat(format).IsValid(); !ok {
				return errs[0]
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := preparePurs(cmd, app, flags, args, issue.GraphDecodeFailedId)
			if err != nil {
				return err
			}

			graph, err := run.inv.Graph(cmd.Context(), run.globs, run.extra)
			if err != nil {
				return run.sess.fail("read the module graph", issue.GraphDecodeFailedId, err)
			}

			if err := writeGraph(app.stdout, graph, graphFormat(format)); err != nil {
				return run.sess.fail("print the module graph", issue.GraphDecodeFailedId, err)
			}
			return nil
		},
	}

	graphCmd.Flags().StringVar(&format, "format", string(graphFormatJSON), "output format (json, order, summary)")

	return graphCmd
}

// writeGraph prints graph in the requested format.
func writeGraph(w io.Writer, graph purs.ModuleGraph, format graphFormat) error {
	switch format {
	case graphFormatOrder:
		order, err := graph.Order()
		if err != nil {
			return err
		}
		for _, name := range order {
			fmt.Fprintln(w, name)
		}
		return nil
	case graphFormatSummary:
		writeGraphSummary(w, graph)
		return nil
	default:
		data, err := json.MarshalIndent(graph, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode module graph: %w", err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	}
}

func writeGraphSummary(w io.Writer, graph purs.ModuleGraph) {
	fmt.Fprintln(w, TitleStyle.Render("Module graph"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s: %d\n", CmdStyle.Render("modules"), len(graph))

	edges := 0
	for _, node := range graph {
		edges += len(node.Depends)
	}
	fmt.Fprintf(w, "%s: %d\n", CmdStyle.Render("imports"), edges)

	missing := graph.Missing()
	if len(missing) == 0 {
		return
	}

	names := make([]string, len(missing))
	for i, name := range missing {
		names[i] = string(name)
	}
	fmt.Fprintf(w, "%s: %s\n", WarningStyle.Render("not in graph"), strings.Join(names, ", "))
}
