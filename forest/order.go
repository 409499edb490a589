// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package forest

import (
	"go.chromium.org/infra/build/cppdeps/depgraph"
)

var _ depgraph.AncestorGraph[*Node] = (*Forest)(nil)

// TopologicalOrder returns all nodes, with every file after the files
// it includes.
// It returns *depgraph.CycleError[*Node] for circular includes.
func (f *Forest) TopologicalOrder() ([]*Node, error) {
	return depgraph.TopologicalOrder[*Node](f)
}

// IncludeOrder returns nodes in include order, i.e. dependencies
// before dependents.
// If withExternal is true, external nodes (files not found under root)
// come first, otherwise they are omitted.
// It returns *depgraph.CycleError[*Node] for circular includes.
func (f *Forest) IncludeOrder(withExternal bool) ([]*Node, error) {
	order, err := f.TopologicalOrder()
	if err != nil {
		return nil, err
	}
	var external, files []*Node
	for _, n := range order {
		if n.IsExternal() {
			external = append(external, n)
			continue
		}
		files = append(files, n)
	}
	if !withExternal {
		return files, nil
	}
	return append(external, files...), nil
}
