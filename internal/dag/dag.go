// SPDX-License-Identifier: MPL-2.0

// Package dag orders the nodes of a directed graph so that every node comes
// after its prerequisites, and reports cycles when no such order exists.
// pursctl uses it to print the modules of a `purs graph` result in build
// order.
package dag

import (
	"fmt"
	"slices"
	"strings"
)

type (
	// CycleError indicates that the graph contains a cycle, preventing topological ordering.
	CycleError struct {
		// Cycle lists the nodes left unordered once every acyclic node has
		// been emitted, in lexicographic order. It contains at least one cycle.
		Cycle []string
	}

	// Graph is a directed graph keyed by node name. An edge from A to B
	// means A must be ordered before B.
	Graph struct {
		// successors maps each node to the set of nodes that follow it.
		successors map[string]map[string]struct{}
		nodes      map[string]struct{}
	}
)

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(e.Cycle, " -> "))
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		successors: make(map[string]map[string]struct{}),
		nodes:      make(map[string]struct{}),
	}
}

// AddNode adds a node. Adding an existing node is a no-op.
func (g *Graph) AddNode(name string) {
	g.nodes[name] = struct{}{}
}

// AddEdge records that from must be ordered before to. Both nodes are added
// if missing; repeated edges are collapsed.
func (g *Graph) AddEdge(from, to string) {
	g.AddNode(from)
	g.AddNode(to)
	next, ok := g.successors[from]
	if !ok {
		next = make(map[string]struct{})
		g.successors[from] = next
	}
	next[to] = struct{}{}
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// TopologicalSort returns the nodes in dependency order using Kahn's
// algorithm. Among nodes that are ready at the same time the
// lexicographically smallest is emitted first, so the result depends only
// on the graph's contents. Returns *CycleError if the graph has a cycle.
func (g *Graph) TopologicalSort() ([]string, error) {
	if len(g.nodes) == 0 {
		return nil, nil
	}

	inDegree := make(map[string]int, len(g.nodes))
	for node := range g.nodes {
		inDegree[node] += 0
		for next := range g.successors[node] {
			inDegree[next]++
		}
	}

	var ready []string
	for node, deg := range inDegree {
		if deg == 0 {
			ready = append(ready, node)
		}
	}
	slices.Sort(ready)

	result := make([]string, 0, len(g.nodes))
	for len(ready) > 0 {
		node := ready[0]
		ready = ready[1:]
		result = append(result, node)

		for next := range g.successors[node] {
			inDegree[next]--
			if inDegree[next] == 0 {
				pos, _ := slices.BinarySearch(ready, next)
				ready = slices.Insert(ready, pos, next)
			}
		}
	}

	if len(result) != len(g.nodes) {
		var stuck []string
		for node, deg := range inDegree {
			if deg > 0 {
				stuck = append(stuck, node)
			}
		}
		slices.Sort(stuck)
		return nil, &CycleError{Cycle: stuck}
	}

	return result, nil
}
