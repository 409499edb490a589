// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package forest

import (
	"fmt"

	"go.chromium.org/luci/common/errors"
)

// Kind is a kind of a diagnostic recorded while filling the forest.
type Kind int

const (
	// KindNoStem means a file or an include target has no usable key.
	// The file or the include is skipped.
	KindNoStem Kind = iota

	// KindDirectoryReadFailure means a directory could not be listed.
	// The subtree is skipped.
	KindDirectoryReadFailure

	// KindReadFailure means a file could not be read.
	// The file is kept as a node without includes.
	KindReadFailure
)

func (k Kind) String() string {
	switch k {
	case KindNoStem:
		return "no-stem"
	case KindDirectoryReadFailure:
		return "directory-read-failure"
	case KindReadFailure:
		return "read-failure"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Diagnostic is a non fatal error found while filling the forest.
type Diagnostic struct {
	// Path is a file path, a directory path or an include target.
	Path string
	Kind Kind
	Err  error
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s: %v", d.Kind, d.Path, d.Err)
}

func (d Diagnostic) Unwrap() error {
	return d.Err
}

// Diagnostics returns diagnostics recorded while filling the forest.
func (f *Forest) Diagnostics() []Diagnostic {
	return f.diags
}

// Err returns all diagnostics as errors.MultiError,
// or nil if there are none.
func (f *Forest) Err() error {
	if len(f.diags) == 0 {
		return nil
	}
	merr := make(errors.MultiError, 0, len(f.diags))
	for _, d := range f.diags {
		merr = append(merr, d)
	}
	return merr
}
