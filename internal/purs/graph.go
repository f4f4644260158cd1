// SPDX-License-Identifier: MPL-2.0

package purs

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/pursctl/pursctl/internal/dag"
)

type (
	// ModuleName identifies a compilation unit, e.g. "Data.Maybe".
	ModuleName string

	// ModuleGraphNode is one entry of the module graph.
	ModuleGraphNode struct {
		// Path is the source file of the module.
		Path string `json:"path"`
		// Depends lists imported modules in the order the compiler reported
		// them. Entries may name modules that are not keys of the graph.
		Depends []ModuleName `json:"depends"`
	}

	// ModuleGraph maps module names to their nodes. Iteration order is
	// unspecified; use Names for a stable order.
	ModuleGraph map[ModuleName]ModuleGraphNode

	// rawNode mirrors ModuleGraphNode with pointers so that absent and
	// null fields can be told apart from empty ones.
	rawNode struct {
		Path    *string        `json:"path"`
		Depends *[]*ModuleName `json:"depends"`
	}
)

// DecodeGraph parses the JSON printed by `purs graph`. The top level must be
// an object of module names to {"path": string, "depends": [string]}; both
// fields are required and unknown fields are ignored. Dependencies are not
// required to be keys of the graph. Decoding is all-or-nothing.
func DecodeGraph(data []byte) (ModuleGraph, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &DecodeError{Message: describeJSONError(err), Cause: err}
	}
	if raw == nil {
		return nil, &DecodeError{Message: "expected a JSON object of modules, got null"}
	}

	graph := make(ModuleGraph, len(raw))
	for _, key := range slices.Sorted(maps.Keys(raw)) {
		name := ModuleName(key)
		node, err := decodeNode(name, raw[key])
		if err != nil {
			return nil, err
		}
		graph[name] = node
	}
	return graph, nil
}

func decodeNode(name ModuleName, data json.RawMessage) (ModuleGraphNode, error) {
	var rn rawNode
	if err := json.Unmarshal(data, &rn); err != nil {
		field := ""
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			field = typeErr.Field
		}
		return ModuleGraphNode{}, &DecodeError{Module: name, Field: field, Message: describeJSONError(err), Cause: err}
	}
	if rn.Path == nil {
		return ModuleGraphNode{}, &DecodeError{Module: name, Field: "path", Message: "required string is missing or null"}
	}
	if rn.Depends == nil {
		return ModuleGraphNode{}, &DecodeError{Module: name, Field: "depends", Message: "required array is missing or null"}
	}

	depends := make([]ModuleName, 0, len(*rn.Depends))
	for idx, dep := range *rn.Depends {
		if dep == nil {
			return ModuleGraphNode{}, &DecodeError{
				Module:  name,
				Field:   "depends",
				Message: fmt.Sprintf("element %d: expected string, got null", idx),
			}
		}
		depends = append(depends, *dep)
	}
	return ModuleGraphNode{Path: *rn.Path, Depends: depends}, nil
}

func describeJSONError(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Sprintf("expected %s, got JSON %s", typeErr.Type, typeErr.Value)
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return fmt.Sprintf("malformed JSON at offset %d: %v", syntaxErr.Offset, err)
	}
	return err.Error()
}

// Names returns the module names in lexicographic order.
func (g ModuleGraph) Names() []ModuleName {
	return slices.Sorted(maps.Keys(g))
}

// Missing returns the sorted, de-duplicated names that appear in some
// node's Depends but are not keys of the graph.
func (g ModuleGraph) Missing() []ModuleName {
	seen := make(map[ModuleName]bool)
	for _, node := range g {
		for _, dep := range node.Depends {
			if _, ok := g[dep]; !ok {
				seen[dep] = true
			}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

// Order returns the modules so that every module comes after the modules it
// depends on. Dependencies outside the graph are ignored. The order is
// deterministic for a given graph. A cycle is reported as *dag.CycleError.
func (g ModuleGraph) Order() ([]ModuleName, error) {
	d := dag.New()
	names := g.Names()
	for _, name := range names {
		d.AddNode(string(name))
	}
	for _, name := range names {
		for _, dep := range g[name].Depends {
			if _, ok := g[dep]; ok {
				d.AddEdge(string(dep), string(name))
			}
		}
	}

	order, err := d.TopologicalSort()
	if err != nil {
		return nil, err
	}
	result := make([]ModuleName, len(order))
	for i, name := range order {
		result[i] = ModuleName(name)
	}
	return result, nil
}
