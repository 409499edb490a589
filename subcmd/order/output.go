// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package order

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"

	"go.chromium.org/infra/build/cppdeps/forest"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Entry is a json entry of a node.
type Entry struct {
	Key      string   `json:"key"`
	Path     string   `json:"path,omitempty"`
	External bool     `json:"external,omitempty"`
	Uses     []string `json:"uses,omitempty"`
	UsedBy   []string `json:"used_by,omitempty"`
}

// NewEntry returns json entry for n.
func NewEntry(n *forest.Node) Entry {
	p, _ := n.Path()
	return Entry{
		Key:      n.Key(),
		Path:     p,
		External: n.IsExternal(),
		Uses:     n.Uses(),
		UsedBy:   n.UsedBy(),
	}
}

// Line returns text line for n.
// It is root relative path for a file in the forest, or <key> for
// external node.
func Line(n *forest.Node) string {
	p, ok := n.Path()
	if !ok {
		return "<" + n.Key() + ">"
	}
	return p
}

// Write writes nodes to w in format.
func Write(w io.Writer, nodes []*forest.Node, format string) error {
	switch format {
	case FormatText:
		bw := bufio.NewWriter(w)
		for _, n := range nodes {
			fmt.Fprintln(bw, Line(n))
		}
		return bw.Flush()
	case FormatJSON:
		entries := make([]Entry, 0, len(nodes))
		for _, n := range nodes {
			entries = append(entries, NewEntry(n))
		}
		buf, err := json.MarshalIndent(entries, "", " ")
		if err != nil {
			return err
		}
		buf = append(buf, '\n')
		_, err = w.Write(buf)
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// WriteFile writes nodes to fname in format.
// If fname has .zst suffix, it is compressed with zstd.
func WriteFile(fname string, nodes []*forest.Node, format string) (err error) {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer func() {
		cerr := f.Close()
		if err == nil {
			err = cerr
		}
	}()
	if !strings.HasSuffix(fname, ".zst") {
		return Write(f, nodes, format)
	}
	zw, err := zstd.NewWriter(f)
	if err != nil {
		return err
	}
	err = Write(zw, nodes, format)
	return errors.Join(err, zw.Close())
}
