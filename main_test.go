// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"runtime/debug"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCppdepsMain(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"a.h":   "#include \"b.h\"\n",
		"b.h":   "#include <vector>\n",
		"a.cpp": "#include \"a.h\"\n",
	} {
		err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644)
		if err != nil {
			t.Fatal(err)
		}
	}
	out := filepath.Join(t.TempDir(), "order.txt")

	exitCode := cppdepsMain([]string{"order", "-C", dir, "-external", "-o", out})
	if exitCode != 0 {
		t.Fatalf("cppdepsMain(order)=%d; want 0", exitCode)
	}
	buf, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("<vector_hdr>\nb.h\na.h\na.cpp\n", string(buf)); diff != "" {
		t.Errorf("order output diff -want +got:\n%s", diff)
	}
}

func TestCppdepsMain_Cycle(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"a.h": "#include \"b.h\"\n",
		"b.h": "#include \"a.h\"\n",
	} {
		err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644)
		if err != nil {
			t.Fatal(err)
		}
	}
	out := filepath.Join(t.TempDir(), "order.txt")
	exitCode := cppdepsMain([]string{"order", "-C", dir, "-o", out})
	if exitCode == 0 {
		t.Errorf("cppdepsMain(order) with circular includes=0; want non-zero")
	}
}

func TestVcsInfo(t *testing.T) {
	got := vcsInfo(&debug.BuildInfo{
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc"},
			{Key: "vcs.time", Value: "2025-01-02T03:04:05Z"},
			{Key: "vcs.modified", Value: "true"},
			{Key: "GOOS", Value: "linux"},
		},
	})
	want := "vcs[revision=abc time=2025-01-02T03:04:05Z modified=true]"
	if got != want {
		t.Errorf("vcsInfo()=%q; want %q", got, want)
	}
}
