// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package order

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/zstd"

	"go.chromium.org/infra/build/cppdeps/config"
	"go.chromium.org/infra/build/cppdeps/depgraph"
	"go.chromium.org/infra/build/cppdeps/forest"
)

func setupTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		fname := filepath.Join(dir, name)
		err := os.MkdirAll(filepath.Dir(fname), 0755)
		if err != nil {
			t.Fatal(err)
		}
		err = os.WriteFile(fname, []byte(content), 0644)
		if err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func scanOrder(t *testing.T, files map[string]string, withExternal bool) []*forest.Node {
	t.Helper()
	ctx := context.Background()
	dir := setupTree(t, files)
	cfg := config.Default()
	cfg.WithExternal = withExternal
	f, err := Scan(ctx, dir, cfg)
	if err != nil {
		t.Fatalf("Scan(ctx, %q, cfg)=_, %v; want nil err", dir, err)
	}
	nodes, err := f.IncludeOrder(cfg.WithExternal)
	if err != nil {
		t.Fatalf("IncludeOrder(%t)=_, %v; want nil err", cfg.WithExternal, err)
	}
	return nodes
}

var chain = map[string]string{
	"lib/b.h":   "#include <string>\n",
	"lib/a.h":   "#include \"lib/b.h\"\n",
	"app/a.cpp": "#include \"lib/a.h\"\n#include <string>\n",
}

func TestWrite_Text(t *testing.T) {
	for _, tc := range []struct {
		name         string
		withExternal bool
		want         string
	}{
		{
			name: "files",
			want: "lib/b.h\nlib/a.h\napp/a.cpp\n",
		},
		{
			name:         "external",
			withExternal: true,
			want:         "<string_hdr>\nlib/b.h\nlib/a.h\napp/a.cpp\n",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			nodes := scanOrder(t, chain, tc.withExternal)
			var buf bytes.Buffer
			err := Write(&buf, nodes, FormatText)
			if err != nil {
				t.Fatalf("Write(buf, nodes, %q)=%v; want nil err", FormatText, err)
			}
			if diff := cmp.Diff(filepath.FromSlash(tc.want), buf.String()); diff != "" {
				t.Errorf("Write(buf, nodes, %q) diff -want +got:\n%s", FormatText, diff)
			}
		})
	}
}

func TestWrite_JSON(t *testing.T) {
	nodes := scanOrder(t, chain, true)
	var buf bytes.Buffer
	err := Write(&buf, nodes, FormatJSON)
	if err != nil {
		t.Fatalf("Write(buf, nodes, %q)=%v; want nil err", FormatJSON, err)
	}
	var got []Entry
	err = json.Unmarshal(buf.Bytes(), &got)
	if err != nil {
		t.Fatalf("json.Unmarshal(%q)=%v; want nil err", buf.String(), err)
	}
	want := []Entry{
		{
			Key:      "string_hdr",
			External: true,
			UsedBy:   []string{"a_src", "b_hdr"},
		},
		{
			Key:    "b_hdr",
			Path:   filepath.FromSlash("lib/b.h"),
			Uses:   []string{"string_hdr"},
			UsedBy: []string{"a_hdr"},
		},
		{
			Key:    "a_hdr",
			Path:   filepath.FromSlash("lib/a.h"),
			Uses:   []string{"b_hdr"},
			UsedBy: []string{"a_src"},
		},
		{
			Key:  "a_src",
			Path: filepath.FromSlash("app/a.cpp"),
			Uses: []string{"a_hdr", "string_hdr"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Write(buf, nodes, %q) diff -want +got:\n%s", FormatJSON, diff)
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := Write(io.Discard, nil, "xml")
	if err == nil {
		t.Errorf(`Write(io.Discard, nil, "xml")=nil; want error`)
	}
}

func TestWriteFile(t *testing.T) {
	nodes := scanOrder(t, chain, false)
	want := filepath.FromSlash("lib/b.h\nlib/a.h\napp/a.cpp\n")
	dir := t.TempDir()

	fname := filepath.Join(dir, "order.txt")
	err := WriteFile(fname, nodes, FormatText)
	if err != nil {
		t.Fatalf("WriteFile(%q, nodes, %q)=%v; want nil err", fname, FormatText, err)
	}
	buf, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, string(buf)); diff != "" {
		t.Errorf("WriteFile(%q) diff -want +got:\n%s", fname, diff)
	}

	fname = filepath.Join(dir, "order.txt.zst")
	err = WriteFile(fname, nodes, FormatText)
	if err != nil {
		t.Fatalf("WriteFile(%q, nodes, %q)=%v; want nil err", fname, FormatText, err)
	}
	f, err := os.Open(fname)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rd, err := zstd.NewReader(f)
	if err != nil {
		t.Fatal(err)
	}
	defer rd.Close()
	buf, err = io.ReadAll(rd)
	if err != nil {
		t.Fatalf("zstd read %q: %v", fname, err)
	}
	if diff := cmp.Diff(want, string(buf)); diff != "" {
		t.Errorf("WriteFile(%q) zstd diff -want +got:\n%s", fname, diff)
	}
}

func TestScan_Cycle(t *testing.T) {
	ctx := context.Background()
	dir := setupTree(t, map[string]string{
		"a.h": "#include \"b.h\"\n",
		"b.h": "#include \"a.h\"\n",
	})
	f, err := Scan(ctx, dir, config.Default())
	if err != nil {
		t.Fatalf("Scan(ctx, %q, cfg)=_, %v; want nil err", dir, err)
	}
	_, err = f.IncludeOrder(false)
	if !errors.Is(err, depgraph.ErrCycle) {
		t.Errorf("IncludeOrder(false)=_, %v; want %v", err, depgraph.ErrCycle)
	}
}

func TestLine(t *testing.T) {
	nodes := scanOrder(t, map[string]string{
		"x.c": "#include <stdio.h>\n",
	}, true)
	var got []string
	for _, n := range nodes {
		got = append(got, Line(n))
	}
	if diff := cmp.Diff([]string{"<stdio_hdr>", "x.c"}, got); diff != "" {
		t.Errorf("Line diff -want +got:\n%s", diff)
	}
}
