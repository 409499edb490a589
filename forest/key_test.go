// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package forest

import (
	"errors"
	"testing"
)

func TestKeyify(t *testing.T) {
	for _, tc := range []struct {
		input string
		want  string
	}{
		{input: "a.h", want: "a_hdr"},
		{input: "a.hpp", want: "a_hdr"},
		{input: "a.hxx", want: "a_hdr"},
		{input: "a", want: "a_hdr"},
		{input: "vector", want: "vector_hdr"},
		{input: "a.c", want: "a_src"},
		{input: "a.cpp", want: "a_src"},
		{input: "a.cxx", want: "a_src"},
		{input: "a.whatever", want: "a"},
		{input: "a.inl", want: "a"},
		{input: "a.cc", want: "a"},
		{input: "a.H", want: "a"},
		{input: "a.", want: "a"},
		{input: "a.tar.h", want: "a.tar_hdr"},
		{input: ".clang-format", want: ".clang-format_hdr"},
		{input: "base/strings/string_piece.h", want: "string_piece_hdr"},
		{input: "/usr/include/stdio.h", want: "stdio_hdr"},
		{input: "./src/main.cpp", want: "main_src"},
		{input: "foo/", want: "foo_hdr"},
		{input: "foo/.", want: "foo_hdr"},
		{input: "sys/../types.h", want: "types_hdr"},
	} {
		got, err := Keyify(tc.input)
		if err != nil || got != tc.want {
			t.Errorf("Keyify(%q)=%q, %v; want %q, nil", tc.input, got, err, tc.want)
		}
	}
}

func TestKeyify_NoStem(t *testing.T) {
	for _, input := range []string{
		"",
		".",
		"..",
		"/",
		"foo/..",
		"../",
	} {
		got, err := Keyify(input)
		if !errors.Is(err, ErrNoStem) {
			t.Errorf("Keyify(%q)=%q, %v; want %v", input, got, err, ErrNoStem)
		}
	}
}

func TestIsScannable(t *testing.T) {
	for _, tc := range []struct {
		input string
		want  bool
	}{
		{input: "a.h", want: true},
		{input: "a.hpp", want: true},
		{input: "a.hxx", want: true},
		{input: "a.c", want: true},
		{input: "a.cpp", want: true},
		{input: "a.cxx", want: true},
		{input: "src/README", want: true},
		{input: "a.cc"},
		{input: "a.o"},
		{input: "a.inl"},
		{input: "BUILD.gn"},
		{input: "."},
	} {
		got := IsScannable(tc.input)
		if got != tc.want {
			t.Errorf("IsScannable(%q)=%t; want %t", tc.input, got, tc.want)
		}
	}
}
