// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package depgraph provides topological ordering of simple directed graphs.
package depgraph

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCycle is matched by CycleError with errors.Is.
var ErrCycle = errors.New("dependency cycle")

// Graph is a directed graph.
// An edge from a node to its child means the node depends on the child.
type Graph[N comparable] interface {
	// Nodes returns all nodes in the graph.
	Nodes() []N

	// Children returns nodes that n depends on.
	// A child may appear more than once.
	Children(n N) []N
}

// AncestorGraph is a Graph that can look up reverse edges directly.
type AncestorGraph[N comparable] interface {
	Graph[N]

	// Ancestors returns nodes that depend on n.
	// A node must appear as many times as n appears in its children.
	Ancestors(n N) []N
}

// Ancestors returns nodes that depend on n.
// It uses g.Ancestors if g is an AncestorGraph, otherwise it scans
// children of all nodes.
func Ancestors[N comparable](g Graph[N], n N) []N {
	if ag, ok := g.(AncestorGraph[N]); ok {
		return ag.Ancestors(n)
	}
	var ancestors []N
	for _, m := range g.Nodes() {
		for _, c := range g.Children(m) {
			if c == n {
				ancestors = append(ancestors, m)
			}
		}
	}
	return ancestors
}

// CycleError is returned by TopologicalOrder when the graph has a cycle.
type CycleError[N comparable] struct {
	// Nodes are nodes that could not be ordered, i.e. nodes on a cycle
	// or nodes depending on a cycle.
	Nodes []N
}

func (e *CycleError[N]) Error() string {
	names := make([]string, 0, len(e.Nodes))
	for _, n := range e.Nodes {
		names = append(names, fmt.Sprint(n))
	}
	return fmt.Sprintf("%v in %d nodes: %s", ErrCycle, len(e.Nodes), strings.Join(names, ", "))
}

func (e *CycleError[N]) Is(target error) bool {
	return target == ErrCycle
}

// TopologicalOrder returns all nodes of g ordered so that every node
// comes after all of its children.
//
// It uses Kahn's algorithm. When more than one node is ready, the node
// that became ready last is picked first, so the order among
// independent nodes is not meaningful.
// If g has a cycle, it returns *CycleError.
// It runs in O(V+E), calling g.Children once per node.
func TopologicalOrder[N comparable](g Graph[N]) ([]N, error) {
	nodes := g.Nodes()
	index := make(map[N]int, len(nodes))
	for i, n := range nodes {
		index[n] = i
	}
	// pending[i] is the number of children of nodes[i] not yet ordered.
	pending := make([]int, len(nodes))
	var candidates []int
	ag, hasAncestors := g.(AncestorGraph[N])
	// ancestors[i] is indexes of nodes depending on nodes[i], when g
	// can't look up reverse edges.
	var ancestors [][]int
	if !hasAncestors {
		ancestors = make([][]int, len(nodes))
	}
	for i, n := range nodes {
		children := g.Children(n)
		pending[i] = len(children)
		if pending[i] == 0 {
			candidates = append(candidates, i)
		}
		if hasAncestors {
			continue
		}
		for _, c := range children {
			if j, ok := index[c]; ok {
				ancestors[j] = append(ancestors[j], i)
			}
		}
	}
	release := func(j int) {
		pending[j]--
		if pending[j] == 0 {
			candidates = append(candidates, j)
		}
	}

	order := make([]N, 0, len(nodes))
	for len(candidates) > 0 {
		i := candidates[len(candidates)-1]
		candidates = candidates[:len(candidates)-1]
		order = append(order, nodes[i])
		if !hasAncestors {
			for _, j := range ancestors[i] {
				release(j)
			}
			continue
		}
		for _, a := range ag.Ancestors(nodes[i]) {
			j, ok := index[a]
			if !ok {
				continue
			}
			release(j)
		}
	}
	if len(order) == len(nodes) {
		return order, nil
	}
	cerr := &CycleError[N]{}
	for i, n := range nodes {
		if pending[i] > 0 {
			cerr.Nodes = append(cerr.Nodes, n)
		}
	}
	return nil, cerr
}
