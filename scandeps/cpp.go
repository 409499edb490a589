// Copyright 2023 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package scandeps

import (
	"bytes"
	"context"
	"time"

	log "github.com/golang/glog"

	"go.chromium.org/infra/build/cppdeps/o11y/clog"
)

// CPPScan scans #include directives in buf, and returns include targets
// without delimiters in the order they appear.
//
// It accepts
//
//	#include "foo.h"
//	#include <foo.h>
//	  #  include<foo.h>
//
// and ignores anything else, including `#include FOO_H`.
func CPPScan(ctx context.Context, fname string, buf []byte) ([]string, error) {
	started := time.Now()

	var includes []string
	for len(buf) > 0 {
		var line []byte
		i := bytes.IndexByte(buf, '\n')
		if i < 0 {
			line = buf
			buf = nil
		} else {
			line = buf[:i]
			buf = buf[i+1:]
		}
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] != '#' {
			continue
		}
		lineStart := line
		// skip #
		line = bytes.TrimSpace(line[1:])
		if !bytes.HasPrefix(line, []byte("include")) {
			if log.V(3) {
				clog.Infof(ctx, "skip %q", lineStart)
			}
			continue
		}
		line = bytes.TrimSpace(bytes.TrimPrefix(line, []byte("include")))
		incname, ok := includeTarget(line)
		if !ok {
			if log.V(2) {
				clog.Infof(ctx, "skip %q", lineStart)
			}
			continue
		}
		if log.V(1) {
			clog.Infof(ctx, "include %q", incname)
		}
		includes = append(includes, incname)
	}
	dur := time.Since(started)
	if dur > time.Second {
		clog.Infof(ctx, "slow cppScan %s %s", fname, dur)
	}
	return includes, nil
}

// includeTarget returns the path in `"path"` or `<path>` at the start
// of line.
func includeTarget(line []byte) (string, bool) {
	if len(line) == 0 {
		return "", false
	}
	var delim byte
	switch line[0] {
	case '"':
		delim = '"'
	case '<':
		delim = '>'
	default:
		// `#include_next`, `#include FOO_H` etc.
		return "", false
	}
	i := bytes.IndexByte(line[1:], delim)
	if i <= 0 {
		// unclosed or empty path.
		return "", false
	}
	return string(line[1 : i+1]), true
}
