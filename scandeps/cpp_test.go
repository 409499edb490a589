// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package scandeps

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCPPScan(t *testing.T) {
	ctx := context.Background()
	for _, tc := range []struct {
		name string
		buf  string
		want []string
	}{
		{
			name: "helloworld",
			buf: `
#include <stdio.h>

int main(int arg, char *argv[]) {
  printf("hello, world\n");
}
`,
			want: []string{"stdio.h"},
		},
		{
			name: "base",
			buf: `
// Copyright 2012 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

#ifndef BASE_VERSION_H_
#define BASE_VERSION_H_

#include <stdint.h>

#include <iosfwd>
#include <string>
#include <vector>

#include "base/base_export.h"
#include "base/strings/string_piece.h"

namespace base {
 ...
}
`,
			want: []string{
				"stdint.h",
				"iosfwd",
				"string",
				"vector",
				"base/base_export.h",
				"base/strings/string_piece.h",
			},
		},
		{
			name: "whitespace",
			buf: "  #include <a.hpp>\n" +
				"#include<b.cpp>\n" +
				"#\tinclude \t\"c.h\"\n" +
				"# include <d.h>\r\n" +
				"#include \"e.h\" // comment\n",
			want: []string{"a.hpp", "b.cpp", "c.h", "d.h", "e.h"},
		},
		{
			name: "duplicate",
			buf: `
#include <vector>
#include "a.h"
#include <vector>
`,
			want: []string{"vector", "a.h", "vector"},
		},
		{
			name: "space-in-target",
			buf: `
#include < >
#include " "
`,
			want: []string{" ", " "},
		},
		{
			name: "unsupported",
			buf: `
#include <>
#include ""
#include "unclosed.h
#include <unclosed.h
#include USER_CONFIG_H
#include_next <limits.h>
#include /* comment */ "foo.h"
#include \
 "baz.h"
#import "HTTPRequest.h"
noinclude
// #include "commented.h"
#define FOO_H "foo.h"
`,
		},
		{
			name: "no-newline-at-eof",
			buf:  `#include "last.h"`,
			want: []string{"last.h"},
		},
		{
			name: "empty",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CPPScan(ctx, tc.name, []byte(tc.buf))
			if err != nil {
				t.Errorf("CPPScan(ctx,%q,buf)=%q,%v; want nil error", tc.name, got, err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("CPPScan(ctx,%q,buf) diff -want +got:\n%s", tc.name, diff)
			}
		})
	}
}

func TestIncludeTarget(t *testing.T) {
	for _, tc := range []struct {
		input  string
		want   string
		wantOK bool
	}{
		{input: "<a0.h>", want: "a0.h", wantOK: true},
		{input: `"b1.h"`, want: "b1.h", wantOK: true},
		{input: "<foo.h> // comment", want: "foo.h", wantOK: true},
		{input: `"foo.h"  // comment`, want: "foo.h", wantOK: true},
		{input: `"a>b.h"`, want: "a>b.h", wantOK: true},
		{input: `<a"b.h>`, want: `a"b.h`, wantOK: true},
		{input: "<>"},
		{input: `""`},
		{input: "FOO_H"},
		{input: ""},
	} {
		got, ok := includeTarget([]byte(tc.input))
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("includeTarget(%q)=%q, %t; want %q, %t", tc.input, got, ok, tc.want, tc.wantOK)
		}
	}
}
