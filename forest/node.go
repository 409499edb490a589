// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package forest

// NodeID is an index of a node in the forest.
type NodeID int

// Node is a node in the dependency forest, one per key.
type Node struct {
	f *Forest

	key string

	// path is root relative path, valid only if found.
	path  string
	found bool

	// uses are nodes this file includes, in include order.
	uses []NodeID
	// usedBy are nodes including this file.
	usedBy []NodeID
}

// Key returns key of the node.
func (n *Node) Key() string { return n.key }

// Path returns root relative path of the file.
// It returns false if the node is only known as an include target,
// e.g. system headers.
func (n *Node) Path() (string, bool) {
	return n.path, n.found
}

// IsExternal reports whether the file was not found under the root.
func (n *Node) IsExternal() bool { return !n.found }

// Uses returns keys of files included by this file.
func (n *Node) Uses() []string {
	return n.f.keys(n.uses)
}

// UsedBy returns keys of files including this file.
func (n *Node) UsedBy() []string {
	return n.f.keys(n.usedBy)
}

func (n *Node) String() string {
	return n.key
}
