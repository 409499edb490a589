// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package forest

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// ErrNoStem is returned by Keyify when a path has no file stem.
var ErrNoStem = errors.New("cannot determine file stem")

const (
	headerTag = "_hdr"
	sourceTag = "_src"
)

// Keyify returns the node key for a file path or an include target.
//
// The key is the file stem followed by
//   - "_hdr" if there is no extension, or the extension is h, hpp or hxx.
//   - "_src" if the extension is c, cpp or cxx.
//   - nothing for any other extension.
//
// Directories are not part of the key, so "foo/bar.h" and "baz/bar.h"
// map to the same node.
func Keyify(p string) (string, error) {
	stem, ext, hasExt, err := splitName(p)
	if err != nil {
		return "", err
	}
	if !hasExt {
		return stem + headerTag, nil
	}
	switch ext {
	case "h", "hpp", "hxx":
		return stem + headerTag, nil
	case "c", "cpp", "cxx":
		return stem + sourceTag, nil
	}
	return stem, nil
}

// IsScannable reports whether the file p should be scanned for includes.
// Files without extension are scanned, as they are often C++ standard
// library style headers.
func IsScannable(p string) bool {
	_, ext, hasExt, err := splitName(p)
	if err != nil {
		return false
	}
	if !hasExt {
		return true
	}
	switch ext {
	case "h", "hpp", "hxx", "c", "cpp", "cxx":
		return true
	}
	return false
}

// splitName splits the last element of p into stem and extension.
// A leading dot does not start an extension, i.e. ".clang-format" has
// no extension.
func splitName(p string) (stem, ext string, hasExt bool, err error) {
	name := path.Base(path.Clean(filepath.ToSlash(p)))
	switch name {
	case ".", "..", "/":
		return "", "", false, fmt.Errorf("%q: %w", p, ErrNoStem)
	}
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return name, "", false, nil
	}
	return name[:i], name[i+1:], true, nil
}
