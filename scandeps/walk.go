// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package scandeps

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar"
	log "github.com/golang/glog"

	"go.chromium.org/infra/build/cppdeps/o11y/clog"
)

// WalkOption is an option for Walk.
type WalkOption struct {
	// Recursive walks into subdirectories.
	Recursive bool

	// Excludes are glob patterns (`**` is supported) of root relative
	// slash separated paths to skip.
	// Excluded directories are not walked.
	Excludes []string

	// OnError is called for a subdirectory that could not be read.
	// The walk continues with the rest of the tree.
	OnError func(path string, err error)
}

// Walk calls fn for every regular file under root, in lexical order.
// fn receives filepath.Join(root, rel), so it always has root as prefix.
// It never calls fn for directories.
// root must be a directory or a symlink to a directory, and must be
// readable. Otherwise, it returns an error.
// It stops and returns an error when fn returns an error or ctx is done.
func Walk(ctx context.Context, root string, opt WalkOption, fn func(path string) error) error {
	walkRoot, err := resolveRoot(root)
	if err != nil {
		return err
	}
	return filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == walkRoot {
				return err
			}
			clog.Warningf(ctx, "failed to read %s: %v", path, err)
			if opt.OnError != nil {
				opt.OnError(path, err)
			}
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if path == walkRoot {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		excluded, err := opt.excluded(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		if d.IsDir() {
			if !opt.Recursive || excluded {
				if log.V(1) {
					clog.Infof(ctx, "skip dir %s", path)
				}
				return fs.SkipDir
			}
			return nil
		}
		if excluded {
			if log.V(1) {
				clog.Infof(ctx, "skip file %s", path)
			}
			return nil
		}
		if !d.Type().IsRegular() {
			// symlink to regular file is fine, but others are not.
			fi, err := os.Stat(path)
			if err != nil || !fi.Mode().IsRegular() {
				if log.V(1) {
					clog.Infof(ctx, "skip non regular file %s: %v", path, err)
				}
				return nil
			}
		}
		return fn(path)
	})
}

// resolveRoot returns the path to walk for root.
// filepath.WalkDir doesn't follow a symlink root, so a trailing
// separator is added for it.
func resolveRoot(root string) (string, error) {
	fi, err := os.Stat(root)
	if err != nil {
		return "", fmt.Errorf("bad root: %w", err)
	}
	if !fi.IsDir() {
		return "", fmt.Errorf("bad root %s: not a directory", root)
	}
	lfi, err := os.Lstat(root)
	if err != nil {
		return "", fmt.Errorf("bad root: %w", err)
	}
	if lfi.Mode()&fs.ModeSymlink != 0 {
		return root + string(filepath.Separator), nil
	}
	return root, nil
}

func (opt WalkOption) excluded(rel string) (bool, error) {
	for _, pat := range opt.Excludes {
		ok, err := doublestar.Match(pat, rel)
		if err != nil {
			return false, fmt.Errorf("bad exclude pattern %q: %w", pat, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
