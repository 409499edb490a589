// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package scandeps provides the file level collaborators of the include
// order analysis: a directory walker and a forged C/C++ #include scanner.
//
// The scanner only checks the following forms of #include
//
//	#include "foo.h"
//	#include <foo.h>
//
// It doesn't process `#if` or `#ifdef`, macros (`#include FOO_H`),
// comments nor multiline (\ at the end of line) directives,
// so all includes in a file are reported regardless of conditions.
package scandeps
