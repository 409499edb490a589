// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package forest builds the include dependency forest of a C/C++ source
// tree, and derives include order from it.
//
// Files are identified by keys (see Keyify), so files with the same
// name in different directories are the same node.
package forest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/golang/glog"
	"golang.org/x/sync/errgroup"

	"go.chromium.org/infra/build/cppdeps/o11y/clog"
	"go.chromium.org/infra/build/cppdeps/o11y/iometrics"
	"go.chromium.org/infra/build/cppdeps/runtimex"
	"go.chromium.org/infra/build/cppdeps/scandeps"
)

// Option is an option of the forest.
type Option struct {
	// Jobs is the number of files scanned concurrently.
	// Default to runtimex.NumCPU().
	Jobs int

	// Excludes are glob patterns of root relative paths to skip.
	Excludes []string
}

// Forest is a dependency forest, i.e. a set of include trees.
//
// Nodes are stored in an append-only arena, and edges refer to nodes
// by NodeID.
// A Forest is filled by a single FillFromDirectory, and then it is
// safe to query concurrently.
type Forest struct {
	opt Option

	root  string
	nodes []*Node
	index map[string]NodeID

	diags []Diagnostic

	m *iometrics.IOMetrics
}

// New creates an empty forest.
func New(opt Option) *Forest {
	return &Forest{
		opt:   opt,
		index: make(map[string]NodeID),
		m:     iometrics.New("forest"),
	}
}

// IOStats returns I/O metrics of the fill.
func (f *Forest) IOStats() iometrics.Stats {
	return f.m.Stats()
}

// Root returns the directory given to FillFromDirectory.
func (f *Forest) Root() string {
	return f.root
}

// Len returns number of nodes.
func (f *Forest) Len() int {
	return len(f.nodes)
}

// Node returns a node for the key.
func (f *Forest) Node(key string) (*Node, bool) {
	id, ok := f.index[key]
	if !ok {
		return nil, false
	}
	return f.nodes[id], true
}

// Lookup returns a node for a path or an include target.
func (f *Forest) Lookup(name string) (*Node, error) {
	key, err := Keyify(name)
	if err != nil {
		return nil, err
	}
	n, ok := f.Node(key)
	if !ok {
		return nil, fmt.Errorf("%s (key=%s) not found in %s", name, key, f.root)
	}
	return n, nil
}

// Nodes returns all nodes in creation order.
func (f *Forest) Nodes() []*Node {
	return append([]*Node(nil), f.nodes...)
}

// Children returns nodes included by n.
func (f *Forest) Children(n *Node) []*Node {
	return f.resolve(n.uses)
}

// Ancestors returns nodes including n.
func (f *Forest) Ancestors(n *Node) []*Node {
	return f.resolve(n.usedBy)
}

func (f *Forest) resolve(ids []NodeID) []*Node {
	nodes := make([]*Node, 0, len(ids))
	for _, id := range ids {
		nodes = append(nodes, f.nodes[id])
	}
	return nodes
}

func (f *Forest) keys(ids []NodeID) []string {
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, f.nodes[id].key)
	}
	return keys
}

// node gets or inserts a node for key.
func (f *Forest) node(key string) NodeID {
	if id, ok := f.index[key]; ok {
		return id
	}
	if f.index == nil {
		f.index = make(map[string]NodeID)
	}
	id := NodeID(len(f.nodes))
	f.nodes = append(f.nodes, &Node{
		f:   f,
		key: key,
	})
	f.index[key] = id
	return id
}

// addEdge adds an edge from a file to its include.
func (f *Forest) addEdge(from, to NodeID) {
	f.nodes[from].uses = append(f.nodes[from].uses, to)
	f.nodes[to].usedBy = append(f.nodes[to].usedBy, from)
}

type scanFile struct {
	path string
	key  string
}

type scanResult struct {
	includes []string
	err      error
}

// FillFromDirectory fills the forest from all header and source files
// in root.
//
// Files and includes that can not be processed are recorded as
// diagnostics, and don't stop the fill.
// It returns an error when root is not a readable directory (or
// a symlink to it), when ctx is done, or when the walk yields a file
// out of root.
// Filling twice with different trees mixes both trees.
func (f *Forest) FillFromDirectory(ctx context.Context, root string, recursive bool) error {
	f.root = root
	ctx = clog.NewSpan(ctx, "", map[string]string{"root": root})

	var files []scanFile
	opt := scandeps.WalkOption{
		Recursive: recursive,
		Excludes:  f.opt.Excludes,
		OnError:   f.addDirectoryFailure,
	}
	err := scandeps.Walk(ctx, root, opt, func(path string) error {
		f.m.VisitDone(nil)
		if !IsScannable(path) {
			if log.V(2) {
				clog.Infof(ctx, "skip %s", path)
			}
			return nil
		}
		key, err := Keyify(path)
		if err != nil {
			clog.Warningf(ctx, "skip %s: %v", path, err)
			f.diags = append(f.diags, Diagnostic{Path: path, Kind: KindNoStem, Err: err})
			return nil
		}
		files = append(files, scanFile{path: path, key: key})
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk %s: %w", root, err)
	}

	results, err := f.scanFiles(ctx, files)
	if err != nil {
		return err
	}
	for i, sf := range files {
		err := f.addIncludesFromFile(ctx, sf, results[i])
		if err != nil {
			return err
		}
	}
	clog.Infof(ctx, "filled %d files, %d nodes, %d diagnostics. %s: %v", len(files), len(f.nodes), len(f.diags), f.m.Name(), f.m.Stats())
	return nil
}

// scanFiles reads and scans files concurrently.
// results[i] is the result for files[i].
func (f *Forest) scanFiles(ctx context.Context, files []scanFile) ([]scanResult, error) {
	jobs := runtimex.Jobs(f.opt.Jobs)
	results := make([]scanResult, len(files))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(jobs)
	for i, sf := range files {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			buf, err := os.ReadFile(sf.path)
			f.m.ReadDone(len(buf), err)
			if err != nil {
				results[i].err = err
				return nil
			}
			results[i].includes, results[i].err = scandeps.CPPScan(ctx, sf.path, buf)
			return nil
		})
	}
	err := eg.Wait()
	if err != nil {
		return nil, err
	}
	return results, nil
}

// addDirectoryFailure records a directory that could not be read.
func (f *Forest) addDirectoryFailure(path string, err error) {
	f.m.VisitDone(err)
	f.diags = append(f.diags, Diagnostic{Path: path, Kind: KindDirectoryReadFailure, Err: err})
}

// addIncludesFromFile adds the file and its includes to the forest.
func (f *Forest) addIncludesFromFile(ctx context.Context, sf scanFile, sr scanResult) error {
	rel, err := filepath.Rel(f.root, sf.path)
	if err != nil || !filepath.IsLocal(rel) {
		return fmt.Errorf("%s is not under root %s", sf.path, f.root)
	}
	id := f.node(sf.key)
	n := f.nodes[id]
	if n.found && n.path != rel {
		if log.V(1) {
			clog.Infof(ctx, "key %s: %s overrides %s", sf.key, rel, n.path)
		}
	}
	n.path = rel
	n.found = true
	if sr.err != nil {
		clog.Warningf(ctx, "failed to scan %s: %v", sf.path, sr.err)
		f.diags = append(f.diags, Diagnostic{Path: sf.path, Kind: KindReadFailure, Err: sr.err})
		return nil
	}
	for _, inc := range sr.includes {
		key, err := Keyify(inc)
		if err != nil {
			clog.Warningf(ctx, "skip include %q in %s: %v", inc, sf.path, err)
			f.diags = append(f.diags, Diagnostic{Path: inc, Kind: KindNoStem, Err: err})
			continue
		}
		f.addEdge(id, f.node(key))
	}
	f.m.IncludesDone(len(sr.includes))
	return nil
}
